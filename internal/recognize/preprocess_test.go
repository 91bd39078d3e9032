package recognize

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawBand paints glyph-like bars onto a band image. Bars are fg on bg.
func drawBand(width, height, bars int, fg, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, bg)
		}
	}

	if bars == 0 {
		return img
	}

	barWidth := width / (bars * 2)
	if barWidth < 1 {
		barWidth = 1
	}
	for i := 0; i < bars; i++ {
		startX := i * width / bars
		for y := height / 4; y < height*3/4; y++ {
			for x := startX; x < startX+barWidth && x < width; x++ {
				img.Set(x, y, fg)
			}
		}
	}
	return img
}

var (
	dark  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	light = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

// TestPrepareBandPolarity checks both polarities end up dark-on-light
func TestPrepareBandPolarity(t *testing.T) {
	testCases := []struct {
		name   string
		fg, bg color.Color
	}{
		{"dark on light", dark, light},
		{"light on dark", light, dark},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			band := drawBand(200, 60, 4, tc.fg, tc.bg)
			prepared := PrepareBand(band, 0)

			bounds := prepared.Bounds()
			total := bounds.Dx() * bounds.Dy()
			white := CountNonZero(prepared)

			// Background dominates, so most pixels must be white
			assert.Greater(t, white, total/2,
				"prepared band should be dark glyphs on a light background")
		})
	}
}

// TestPrepareBandUpscale checks short bands are doubled
func TestPrepareBandUpscale(t *testing.T) {
	band := drawBand(100, 20, 3, dark, light)

	prepared := PrepareBand(band, 48)
	assert.Equal(t, 200, prepared.Bounds().Dx(), "short band should be upscaled 2x")
	assert.Equal(t, 40, prepared.Bounds().Dy())

	tall := drawBand(100, 60, 3, dark, light)
	prepared = PrepareBand(tall, 48)
	assert.Equal(t, 100, prepared.Bounds().Dx(), "tall band should keep its size")
	assert.Equal(t, 60, prepared.Bounds().Dy())
}

// TestCountGlyphSegments checks the projection-based segment count
func TestCountGlyphSegments(t *testing.T) {
	band := drawBand(240, 60, 4, light, dark)
	segments := CountGlyphSegments(band)
	assert.Equal(t, 4, segments, "should count one segment per bar")

	blank := drawBand(240, 60, 0, light, dark)
	assert.Equal(t, 0, CountGlyphSegments(blank), "blank band should count zero segments")

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	assert.Equal(t, -1, CountGlyphSegments(empty), "degenerate band should return -1")
}

// TestRecognizerRun checks the mock-engine pipeline end to end
func TestRecognizerRun(t *testing.T) {
	engine := NewMockEngine("6222 0212 3456 7890")
	rec := NewRecognizerWithEngine(engine, 48)

	band := drawBand(240, 60, 4, dark, light)
	info, err := rec.Run(context.Background(), band)
	require.NoError(t, err)

	assert.Equal(t, KindNumeric, info.Kind)
	assert.Equal(t, "mock", info.Engine)
	assert.Equal(t, 1, engine.Calls)
	require.Len(t, engine.Images, 1)

	// The engine must receive the prepared band, not the raw crop
	prepared := engine.Images[0].Bounds()
	assert.Equal(t, 240, prepared.Dx())
}

func TestRecognizerRunNoResult(t *testing.T) {
	rec := NewRecognizerWithEngine(NewMockEngine(""), 0)

	_, err := rec.Run(context.Background(), drawBand(240, 60, 4, dark, light))
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestRecognizerRunEngineError(t *testing.T) {
	engine := &MockEngine{
		RecognizeFunc: func(ctx context.Context, img image.Image) (string, error) {
			return "", errors.New("engine exploded")
		},
	}
	rec := NewRecognizerWithEngine(engine, 0)

	_, err := rec.Run(context.Background(), drawBand(240, 60, 4, dark, light))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResult, "engine failures are not no-result failures")
	assert.Contains(t, err.Error(), "mock")
}
