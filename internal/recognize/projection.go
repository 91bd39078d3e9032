package recognize

import "image"

// CountGlyphSegments estimates how many glyph columns a code band holds
// by scanning the vertical projection of its binarized pixels. A count of
// zero means the band is almost certainly blank. Returns -1 when the band
// is degenerate.
func CountGlyphSegments(img image.Image) int {
	gray := RGB2Gray(img)
	binary := AdaptiveThreshold(gray)

	bounds := binary.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width == 0 || height == 0 {
		return -1
	}

	// Glyphs must be the foreground; flip dark-majority bands
	if CountNonZero(binary) > width*height/2 {
		binary = InvertImage(binary)
	}

	// Column projection: white pixels per column
	projection := make([]int, width)
	maxProjection := 0
	for x := 0; x < width; x++ {
		sum := 0
		for y := 0; y < height; y++ {
			if binary.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 128 {
				sum++
			}
		}
		projection[x] = sum
		if sum > maxProjection {
			maxProjection = sum
		}
	}

	if maxProjection == 0 {
		return 0
	}

	threshold := maxProjection / 3
	if threshold < height/6 {
		threshold = height / 6
	}

	// Count threshold crossings with hysteresis so thin gaps inside a
	// glyph do not split it into two segments
	segments := 0
	inSegment := false
	for x := 0; x < width; x++ {
		if projection[x] >= threshold {
			if !inSegment {
				segments++
				inSegment = true
			}
		} else if projection[x] < threshold/2 {
			inSegment = false
		}
	}

	return segments
}
