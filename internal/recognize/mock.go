package recognize

import (
	"context"
	"image"
)

// MockEngine is a mock implementation of Engine for testing.
type MockEngine struct {
	// Configurable behavior
	RecognizeFunc func(ctx context.Context, img image.Image) (string, error)
	// Text is returned when RecognizeFunc is nil
	Text string

	// Captured calls for assertions
	Calls  int
	Images []image.Image
}

// NewMockEngine creates a mock engine returning the given text
func NewMockEngine(text string) *MockEngine {
	return &MockEngine{Text: text}
}

// Name implements Engine.
func (m *MockEngine) Name() string { return "mock" }

// Recognize implements Engine.
func (m *MockEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	m.Calls++
	m.Images = append(m.Images, img)
	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, img)
	}
	return m.Text, nil
}
