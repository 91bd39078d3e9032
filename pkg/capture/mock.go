package capture

import (
	"fmt"
	"image"
)

// Mock is a mock implementation of Capturer for testing.
type Mock struct {
	// Displays is the simulated display count
	Displays int
	// Screen is returned by CaptureDisplay when set
	Screen image.Image

	// Configurable behavior
	CaptureDisplayFunc func(displayIndex int) (image.Image, error)
	CaptureRegionFunc  func(displayIndex int, region image.Rectangle) (image.Image, error)

	// Captured calls for assertions
	DisplayCaptures int
	RegionCaptures  int
}

// NewMock creates a mock capturer with a single display
func NewMock(screen image.Image) *Mock {
	return &Mock{Displays: 1, Screen: screen}
}

// DisplayCount implements Capturer.
func (m *Mock) DisplayCount() int {
	return m.Displays
}

// DisplayBounds implements Capturer.
func (m *Mock) DisplayBounds(displayIndex int) (image.Rectangle, error) {
	if displayIndex < 0 || displayIndex >= m.Displays {
		return image.Rectangle{}, fmt.Errorf("invalid display index: %d", displayIndex)
	}
	if m.Screen == nil {
		return image.Rect(0, 0, 1920, 1080), nil
	}
	return m.Screen.Bounds(), nil
}

// CaptureDisplay implements Capturer.
func (m *Mock) CaptureDisplay(displayIndex int) (image.Image, error) {
	m.DisplayCaptures++
	if m.CaptureDisplayFunc != nil {
		return m.CaptureDisplayFunc(displayIndex)
	}
	if displayIndex < 0 || displayIndex >= m.Displays {
		return nil, fmt.Errorf("invalid display index: %d", displayIndex)
	}
	if m.Screen == nil {
		return nil, fmt.Errorf("no screen image configured")
	}
	return m.Screen, nil
}

// CaptureRegion implements Capturer.
func (m *Mock) CaptureRegion(displayIndex int, region image.Rectangle) (image.Image, error) {
	m.RegionCaptures++
	if m.CaptureRegionFunc != nil {
		return m.CaptureRegionFunc(displayIndex, region)
	}

	img, err := m.CaptureDisplay(displayIndex)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	for y := 0; y < region.Dy(); y++ {
		for x := 0; x < region.Dx(); x++ {
			out.Set(x, y, img.At(region.Min.X+x, region.Min.Y+y))
		}
	}
	return out, nil
}
