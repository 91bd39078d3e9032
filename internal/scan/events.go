package scan

import (
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/PhiFever/docscan-helper/internal/recognize"
)

// ErrorDomain is the fixed domain carried by every ScanError
const ErrorDomain = "DocScanErrorDomain"

// Fixed failure codes
const (
	// CodeNoCaptureDevice means no display was available to capture from
	CodeNoCaptureDevice = 1
	// CodeRecognitionFailed means the engine produced no usable result
	CodeRecognitionFailed = 2
)

// ScanError is the terminal failure reported for a capture session
type ScanError struct {
	Domain  string
	Code    int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Domain, e.Code, e.Message)
}

func errNoCaptureDevice(detail string) *ScanError {
	msg := "no capture device available"
	if detail != "" {
		msg = msg + ": " + detail
	}
	return &ScanError{Domain: ErrorDomain, Code: CodeNoCaptureDevice, Message: msg}
}

func errRecognitionFailed(detail string) *ScanError {
	msg := "recognition produced no result"
	if detail != "" {
		msg = msg + ": " + detail
	}
	return &ScanError{Domain: ErrorDomain, Code: CodeRecognitionFailed, Message: msg}
}

// EventKind discriminates the presenter event variants
type EventKind int

const (
	// EventBeginScan is emitted once per session with the cropped band
	EventBeginScan EventKind = iota
	// EventFinished is emitted when recognition delivered a result
	EventFinished
	// EventFailed is emitted when the session terminated with an error
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventBeginScan:
		return "begin-scan"
	case EventFinished:
		return "finished"
	case EventFailed:
		return "failed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one presenter outcome, delivered on the single-consumer
// event channel. Exactly one of Image, Info or Err is set, matching Kind.
type Event struct {
	Kind      EventKind
	SessionID uuid.UUID

	// Image is the cropped band (begin-scan only)
	Image image.Image
	// Info is the structured result (finished only)
	Info *recognize.DocumentInfo
	// Err is the terminal failure (failed only)
	Err *ScanError

	// Elapsed is the time since the session started (terminal events only)
	Elapsed time.Duration
	At      time.Time
}
