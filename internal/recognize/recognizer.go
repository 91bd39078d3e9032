package recognize

import (
	"context"
	"fmt"
	"image"

	"github.com/PhiFever/docscan-helper/internal/config"
	"github.com/PhiFever/docscan-helper/internal/logger"
)

// Recognizer runs the full band pipeline: preprocessing, the configured
// engine, and structured-field extraction.
type Recognizer struct {
	engine           Engine
	upscaleMinHeight int
}

// NewRecognizer builds a recognizer with the engine selected by cfg
func NewRecognizer(cfg *config.Config) (*Recognizer, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create recognition engine: %w", err)
	}

	logger.Infof("[Recognize] Using engine: %s", engine.Name())

	return &Recognizer{
		engine:           engine,
		upscaleMinHeight: cfg.OCR.UpscaleMinHeight,
	}, nil
}

// NewRecognizerWithEngine wraps an already-built engine; used by tests
func NewRecognizerWithEngine(engine Engine, upscaleMinHeight int) *Recognizer {
	return &Recognizer{engine: engine, upscaleMinHeight: upscaleMinHeight}
}

// Engine returns the underlying engine
func (r *Recognizer) Engine() Engine {
	return r.engine
}

// Run recognizes one cropped band. Returns ErrNoResult when the engine
// output does not normalize into a usable code.
func (r *Recognizer) Run(ctx context.Context, band image.Image) (*DocumentInfo, error) {
	if segments := CountGlyphSegments(band); segments == 0 {
		logger.Warningf("[Recognize] Band looks blank (no glyph segments), recognizing anyway")
	}

	prepared := PrepareBand(band, r.upscaleMinHeight)

	text, err := r.engine.Recognize(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", r.engine.Name(), err)
	}

	info, err := ParseDocumentText(text)
	if err != nil {
		return nil, err
	}

	info.Engine = r.engine.Name()
	logger.Debugf("[Recognize] %s", info.String())

	return info, nil
}
