package scan

import (
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/PhiFever/docscan-helper/internal/logger"
)

// SessionState tracks a capture session through its lifecycle
type SessionState int

const (
	StateIdle SessionState = iota
	StatePresenting
	StateCapturing
	StateCropping
	StateRecognizing
	StateDelivered
	StateFailed
)

var stateNames = map[SessionState]string{
	StateIdle:        "idle",
	StatePresenting:  "presenting",
	StateCapturing:   "capturing",
	StateCropping:    "cropping",
	StateRecognizing: "recognizing",
	StateDelivered:   "delivered",
	StateFailed:      "failed",
}

func (s SessionState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether the state ends the session
func (s SessionState) IsTerminal() bool {
	return s == StateDelivered || s == StateFailed
}

// Session is one user-initiated capture. It is created per capture event
// and never reused; all fields are owned by the session.
type Session struct {
	ID        uuid.UUID
	State     SessionState
	StartedAt time.Time

	// band is the cropped code band handed to recognition
	band image.Image
}

func newSession() *Session {
	return &Session{
		ID:        uuid.New(),
		State:     StateIdle,
		StartedAt: time.Now(),
	}
}

// setState advances the session lifecycle
func (s *Session) setState(state SessionState) {
	if s.State.IsTerminal() {
		logger.Warningf("[Session %s] Ignoring transition %s -> %s after terminal state",
			shortID(s.ID), s.State, state)
		return
	}
	logger.Debugf("[Session %s] %s -> %s", shortID(s.ID), s.State, state)
	s.State = state
}

// Elapsed returns the time since the session started
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.StartedAt)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
