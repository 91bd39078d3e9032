package capture

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCapturer tests creating a new capturer
func TestNewCapturer(t *testing.T) {
	capturer := NewCapturer()
	require.NotNil(t, capturer, "NewCapturer should not return nil")
}

// TestDisplayCount tests getting display count
func TestDisplayCount(t *testing.T) {
	capturer := NewCapturer()
	count := capturer.DisplayCount()

	// In headless environment, there might be no displays
	if count == 0 {
		t.Skip("No displays available (headless environment)")
	}

	assert.GreaterOrEqual(t, count, 1, "Should have at least one display")
	t.Logf("Found %d display(s)", count)
}

// TestDisplayBounds tests getting display bounds
func TestDisplayBounds(t *testing.T) {
	capturer := NewCapturer()
	count := capturer.DisplayCount()

	if count == 0 {
		t.Skip("No displays available for testing")
	}

	bounds, err := capturer.DisplayBounds(0)
	require.NoError(t, err, "Getting bounds for display 0 should succeed")
	assert.Greater(t, bounds.Dx(), 0, "Display width should be positive")
	assert.Greater(t, bounds.Dy(), 0, "Display height should be positive")
	t.Logf("Display 0 bounds: %v (size: %dx%d)", bounds, bounds.Dx(), bounds.Dy())

	// Invalid indexes should fail
	_, err = capturer.DisplayBounds(-1)
	assert.Error(t, err, "Getting bounds for invalid index should fail")

	_, err = capturer.DisplayBounds(count)
	assert.Error(t, err, "Getting bounds for out-of-range index should fail")
}

// TestCaptureDisplay tests capturing an entire display
func TestCaptureDisplay(t *testing.T) {
	capturer := NewCapturer()
	count := capturer.DisplayCount()

	if count == 0 {
		t.Skip("No displays available for testing")
	}

	img, err := capturer.CaptureDisplay(0)
	require.NoError(t, err, "Capturing display should succeed")
	require.NotNil(t, img, "Captured image should not be nil")

	bounds := img.Bounds()
	assert.Greater(t, bounds.Dx(), 0, "Captured image width should be positive")
	assert.Greater(t, bounds.Dy(), 0, "Captured image height should be positive")
	t.Logf("Captured display: %dx%d", bounds.Dx(), bounds.Dy())

	_, err = capturer.CaptureDisplay(-1)
	assert.Error(t, err, "Capturing invalid display should fail")

	_, err = capturer.CaptureDisplay(count)
	assert.Error(t, err, "Capturing out-of-range display should fail")
}

// TestCaptureRegion tests capturing a specific region
func TestCaptureRegion(t *testing.T) {
	capturer := NewCapturer()
	count := capturer.DisplayCount()

	if count == 0 {
		t.Skip("No displays available for testing")
	}

	region := image.Rect(0, 0, 100, 100)
	img, err := capturer.CaptureRegion(0, region)
	require.NoError(t, err, "Capturing region should succeed")
	require.NotNil(t, img, "Captured image should not be nil")

	bounds := img.Bounds()
	assert.Equal(t, region.Dx(), bounds.Dx(), "Captured region width should match")
	assert.Equal(t, region.Dy(), bounds.Dy(), "Captured region height should match")
	t.Logf("Captured region: %dx%d", bounds.Dx(), bounds.Dy())

	_, err = capturer.CaptureRegion(-1, region)
	assert.Error(t, err, "Capturing region from invalid display should fail")
}

// TestFrameImage tests edited-over-original selection
func TestFrameImage(t *testing.T) {
	original := image.NewRGBA(image.Rect(0, 0, 10, 10))
	edited := image.NewRGBA(image.Rect(0, 0, 5, 5))

	frame := Frame{Original: original}
	assert.Equal(t, image.Image(original), frame.Image(), "Should fall back to original")

	frame.Edited = edited
	assert.Equal(t, image.Image(edited), frame.Image(), "Should prefer the edited image")
}

// TestMockCaptureRegion tests the mock region crop
func TestMockCaptureRegion(t *testing.T) {
	screen := image.NewRGBA(image.Rect(0, 0, 200, 100))
	screen.Set(50, 40, color.RGBA{R: 255, A: 255})

	mock := NewMock(screen)

	img, err := mock.CaptureRegion(0, image.Rect(40, 30, 140, 80))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	// The marked pixel moves with the region origin
	r, _, _, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r, "Marked pixel should survive the crop")

	assert.Equal(t, 1, mock.RegionCaptures)

	_, err = mock.CaptureRegion(2, image.Rect(0, 0, 10, 10))
	assert.Error(t, err, "Out-of-range display should fail")
}
