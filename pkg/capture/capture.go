package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Frame is the output of one capture: the full display image plus an
// optional viewport crop. Edited is nil when no viewport was applied.
type Frame struct {
	Original image.Image
	Edited   image.Image
}

// Image returns the edited image if present, else the original
func (f Frame) Image() image.Image {
	if f.Edited != nil {
		return f.Edited
	}
	return f.Original
}

// Capturer provides display capture functionality
type Capturer interface {
	// DisplayCount returns the number of available displays
	DisplayCount() int

	// DisplayBounds returns the bounds of the specified display
	DisplayBounds(displayIndex int) (image.Rectangle, error)

	// CaptureDisplay captures the entire specified display
	CaptureDisplay(displayIndex int) (image.Image, error)

	// CaptureRegion captures a region of the specified display.
	// The region is relative to the display origin.
	CaptureRegion(displayIndex int, region image.Rectangle) (image.Image, error)
}

// DefaultCapturer implements display capture using the screenshot library
type DefaultCapturer struct{}

// NewCapturer creates a new default display capturer
func NewCapturer() Capturer {
	return &DefaultCapturer{}
}

func checkDisplayIndex(displayIndex int) error {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return fmt.Errorf("no capture device available")
	}
	if displayIndex < 0 || displayIndex >= n {
		return fmt.Errorf("invalid display index: %d (available: 0-%d)", displayIndex, n-1)
	}
	return nil
}

// DisplayCount returns the number of available displays
func (c *DefaultCapturer) DisplayCount() int {
	return screenshot.NumActiveDisplays()
}

// DisplayBounds returns the bounds of the specified display
func (c *DefaultCapturer) DisplayBounds(displayIndex int) (image.Rectangle, error) {
	if err := checkDisplayIndex(displayIndex); err != nil {
		return image.Rectangle{}, err
	}
	return screenshot.GetDisplayBounds(displayIndex), nil
}

// CaptureDisplay captures the entire specified display
func (c *DefaultCapturer) CaptureDisplay(displayIndex int) (image.Image, error) {
	if err := checkDisplayIndex(displayIndex); err != nil {
		return nil, err
	}

	bounds := screenshot.GetDisplayBounds(displayIndex)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display: %w", err)
	}

	return img, nil
}

// CaptureRegion captures a region of the specified display
func (c *DefaultCapturer) CaptureRegion(displayIndex int, region image.Rectangle) (image.Image, error) {
	if err := checkDisplayIndex(displayIndex); err != nil {
		return nil, err
	}

	bounds := screenshot.GetDisplayBounds(displayIndex)
	rect := region.Add(bounds.Min)

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %w", err)
	}

	return img, nil
}
