package scan

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PhiFever/docscan-helper/internal/config"
	"github.com/PhiFever/docscan-helper/internal/logger"
	"github.com/PhiFever/docscan-helper/internal/recognize"
	"github.com/PhiFever/docscan-helper/pkg/capture"
)

// Recognizer is the recognition pipeline the presenter dispatches to
type Recognizer interface {
	Run(ctx context.Context, band image.Image) (*recognize.DocumentInfo, error)
}

// Presenter owns the capture-to-recognition flow. Each capture event
// creates a fresh session: the frame is cropped to the guide band
// synchronously on the calling goroutine, a begin-scan event is emitted,
// and recognition runs on a dedicated background worker. Every session
// terminates with exactly one finished or failed event, delivered after
// its begin-scan event on the single-consumer event channel.
type Presenter struct {
	cfg        *config.Config
	capturer   capture.Capturer
	recognizer Recognizer

	// Channels
	events   chan Event
	jobs     chan *Session
	stopChan chan struct{}

	// State
	running bool
	mu      sync.RWMutex
	wg      sync.WaitGroup

	// Statistics
	statsMu   sync.Mutex
	started   uint64
	delivered uint64
	failed    uint64
}

// NewPresenter creates a presenter. The configured viewport must have a
// positive size; band geometry is undefined otherwise.
func NewPresenter(cfg *config.Config, capturer capture.Capturer, recognizer Recognizer) (*Presenter, error) {
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return nil, fmt.Errorf("viewport size must be positive, got %dx%d",
			cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.GuideHeight() <= 0 {
		return nil, fmt.Errorf("guide band height must be positive (ratio %g of %d)",
			cfg.GuideHeightRatio, cfg.Viewport.Height)
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 16
	}

	return &Presenter{
		cfg:        cfg,
		capturer:   capturer,
		recognizer: recognizer,
		events:     make(chan Event, queueSize),
		jobs:       make(chan *Session, queueSize),
		stopChan:   make(chan struct{}),
	}, nil
}

// Events returns the event channel. It must be drained by a single
// consumer until it is closed by Stop.
func (p *Presenter) Events() <-chan Event {
	return p.events
}

// GuideRect returns the guide band in view coordinates, for hosts that
// render the overlay.
func (p *Presenter) GuideRect() Rect {
	vp := p.cfg.Viewport
	guideH := p.cfg.GuideHeight()
	return NewRect(0, (vp.Height-guideH)/2, vp.Width, guideH)
}

// Start starts the recognition worker and, when configured, the
// auto-scan loop.
func (p *Presenter) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("presenter is already running")
	}
	p.running = true
	p.mu.Unlock()

	logger.Info("[Presenter] Starting...")

	p.wg.Add(1)
	go p.recognitionLoop(ctx)

	if p.cfg.AutoScanInterval > 0 {
		p.wg.Add(1)
		go p.autoScanLoop(ctx)
	}

	logger.Info("[Presenter] Started successfully")
	return nil
}

// Stop stops the presenter. Taking the write lock waits out in-flight
// Capture calls; queued and in-flight recognitions are finished next,
// then the event channel is closed.
func (p *Presenter) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return fmt.Errorf("presenter is not running")
	}
	p.running = false
	p.mu.Unlock()

	logger.Info("[Presenter] Stopping...")

	close(p.stopChan)
	p.wg.Wait()
	close(p.events)

	logger.Info("[Presenter] Stopped successfully")
	return nil
}

// IsRunning returns whether the presenter is running
func (p *Presenter) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Capture runs one capture session: grab a frame, crop the guide band,
// emit begin-scan and enqueue recognition. It returns as soon as the job
// is queued; the outcome arrives on the event channel. Capture failures
// are reported through the event channel too, never as a return error.
//
// The read lock is held for the whole call: Stop takes the write lock
// before closing the event channel, so an in-flight capture always
// finishes emitting first.
func (p *Presenter) Capture() (uuid.UUID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running {
		return uuid.Nil, fmt.Errorf("presenter is not running")
	}

	sess := newSession()
	p.statsMu.Lock()
	p.started++
	p.statsMu.Unlock()

	sess.setState(StatePresenting)
	if p.capturer.DisplayCount() == 0 {
		p.fail(sess, errNoCaptureDevice("no active display"))
		return sess.ID, nil
	}

	sess.setState(StateCapturing)
	frame, err := p.captureFrame()
	if err != nil {
		p.fail(sess, errNoCaptureDevice(err.Error()))
		return sess.ID, nil
	}

	// Prefer the edited (viewport) frame over the raw display image
	img := frame.Image()

	sess.setState(StateCropping)
	vp := p.cfg.Viewport
	geom, err := ComputeBand(vp.Width, vp.Height, img.Bounds().Dx(), p.cfg.GuideHeight())
	if err != nil {
		// Viewport size was validated at construction
		p.fail(sess, errNoCaptureDevice(err.Error()))
		return sess.ID, nil
	}

	sess.band = CropImage(img, geom.Rect(img.Bounds().Dx()))
	logger.Debugf("[Presenter] Session %s cropped band %dx%d (offset %.0f)",
		shortID(sess.ID), sess.band.Bounds().Dx(), sess.band.Bounds().Dy(), geom.OffsetY)

	p.emit(Event{
		Kind:      EventBeginScan,
		SessionID: sess.ID,
		Image:     sess.band,
		At:        time.Now(),
	})

	sess.setState(StateRecognizing)
	// The worker outlives every in-flight capture (Stop waits for the
	// read lock before signalling it), so this send always completes
	p.jobs <- sess

	return sess.ID, nil
}

// captureFrame grabs the full display plus the viewport crop
func (p *Presenter) captureFrame() (capture.Frame, error) {
	idx := p.cfg.DisplayIndex

	original, err := p.capturer.CaptureDisplay(idx)
	if err != nil {
		return capture.Frame{}, err
	}

	frame := capture.Frame{Original: original}

	vp := p.cfg.Viewport
	region := image.Rect(vp.X, vp.Y, vp.X+vp.Width, vp.Y+vp.Height)
	edited, err := p.capturer.CaptureRegion(idx, region)
	if err != nil {
		logger.Warningf("[Presenter] Viewport capture failed, using full frame: %v", err)
	} else {
		frame.Edited = edited
	}

	return frame, nil
}

// recognitionLoop is the dedicated recognition worker
func (p *Presenter) recognitionLoop(ctx context.Context) {
	defer p.wg.Done()

	logger.Info("[Presenter] Recognition worker started")

	for {
		select {
		case sess := <-p.jobs:
			p.recognizeSession(ctx, sess)

		case <-p.stopChan:
			// Finish queued sessions before exiting
			for {
				select {
				case sess := <-p.jobs:
					p.recognizeSession(ctx, sess)
				default:
					logger.Info("[Presenter] Recognition worker stopped")
					return
				}
			}
		}
	}
}

// recognizeSession runs recognition for one session and emits its
// terminal event
func (p *Presenter) recognizeSession(ctx context.Context, sess *Session) {
	info, err := p.recognizer.Run(ctx, sess.band)
	if err != nil {
		p.fail(sess, errRecognitionFailed(err.Error()))
		return
	}

	sess.setState(StateDelivered)
	p.statsMu.Lock()
	p.delivered++
	p.statsMu.Unlock()

	logger.Infof("[Presenter] Session %s delivered: %s", shortID(sess.ID), info.String())

	p.emit(Event{
		Kind:      EventFinished,
		SessionID: sess.ID,
		Info:      info,
		Elapsed:   sess.Elapsed(),
		At:        time.Now(),
	})
}

// autoScanLoop triggers captures at the configured interval
func (p *Presenter) autoScanLoop(ctx context.Context) {
	defer p.wg.Done()

	interval := time.Duration(p.cfg.AutoScanInterval * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Infof("[Presenter] Auto-scan loop started (interval: %v)", interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("[Presenter] Context cancelled, stopping auto-scan loop")
			return

		case <-p.stopChan:
			logger.Info("[Presenter] Stop signal received, stopping auto-scan loop")
			return

		case <-ticker.C:
			if _, err := p.Capture(); err != nil {
				logger.Warningf("[Presenter] Auto-scan capture skipped: %v", err)
			}
		}
	}
}

// fail marks the session failed and emits its terminal event
func (p *Presenter) fail(sess *Session, serr *ScanError) {
	sess.setState(StateFailed)
	p.statsMu.Lock()
	p.failed++
	p.statsMu.Unlock()

	logger.Warningf("[Presenter] Session %s failed: %v", shortID(sess.ID), serr)

	p.emit(Event{
		Kind:      EventFailed,
		SessionID: sess.ID,
		Err:       serr,
		Elapsed:   sess.Elapsed(),
		At:        time.Now(),
	})
}

// emit delivers an event to the consumer. The send blocks when the
// buffer is full; the consumer must keep draining until Stop closes the
// channel.
func (p *Presenter) emit(ev Event) {
	p.events <- ev
}

// GetStatistics returns presenter statistics
func (p *Presenter) GetStatistics() map[string]interface{} {
	p.mu.RLock()
	running := p.running
	p.mu.RUnlock()

	p.statsMu.Lock()
	defer p.statsMu.Unlock()

	return map[string]interface{}{
		"running":   running,
		"started":   p.started,
		"delivered": p.delivered,
		"failed":    p.failed,
	}
}
