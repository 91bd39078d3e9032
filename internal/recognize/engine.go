package recognize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/PhiFever/docscan-helper/internal/config"
)

var (
	// ErrNoResult indicates the engine ran but produced nothing usable
	ErrNoResult = errors.New("recognition produced no usable result")

	// ErrNotEnabled indicates tesseract support was not compiled in
	ErrNotEnabled = errors.New("tesseract support not compiled in (build with -tags=ocr)")
)

// Engine transcribes a prepared code band into raw text
type Engine interface {
	// Name returns the engine's registered name
	Name() string

	// Recognize returns the raw text read from the band image.
	// An empty string with a nil error means nothing was read.
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Factory builds an engine from configuration
type Factory func(cfg *config.Config) (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an engine factory available under the given name.
// Engines self-register from init functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Engines returns the registered engine names, sorted
func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEngine builds the engine selected by cfg.Engine. The "auto" setting
// prefers tesseract when compiled in and falls back to gemini when an API
// key is configured.
func NewEngine(cfg *config.Config) (Engine, error) {
	name := cfg.Engine
	if name == "" || name == "auto" {
		switch {
		case TesseractAvailable:
			name = "tesseract"
		case cfg.Gemini.APIKey != "":
			name = "gemini"
		default:
			return nil, fmt.Errorf("no recognition engine available: %w", ErrNotEnabled)
		}
	}

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown recognition engine %q (registered: %v)", name, Engines())
	}

	return factory(cfg)
}
