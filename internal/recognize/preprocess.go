package recognize

import (
	"image"

	"golang.org/x/image/draw"
)

// PrepareBand normalizes a cropped code band for recognition: grayscale,
// Otsu binarization, polarity normalization to dark-on-light, and a 2x
// upscale for bands shorter than minHeight.
func PrepareBand(img image.Image, minHeight int) *image.Gray {
	gray := RGB2Gray(img)
	binary := AdaptiveThreshold(gray)

	// Tesseract wants dark glyphs on a light background. If the band is
	// dark-majority after thresholding, the polarity is wrong.
	bounds := binary.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total > 0 && CountNonZero(binary) < total/2 {
		binary = InvertImage(binary)
	}

	if minHeight > 0 && bounds.Dy() > 0 && bounds.Dy() < minHeight {
		binary = upscale2x(binary)
	}

	return binary
}

// upscale2x doubles the image size with Catmull-Rom resampling
func upscale2x(img *image.Gray) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx()*2, bounds.Dy()*2))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
