package scan

import (
	"fmt"
	"image"
)

// Rect 表示一个矩形
type Rect struct {
	X, Y, Width, Height int
}

// NewRect 创建一个新的矩形
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// ToImageRect 转换为 image.Rectangle
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// BandGeometry holds the derived image-space measurements for one capture.
//
// The guide band is full-width and vertically centered in the viewport, so
// only vertical measurements need deriving; the horizontal extent is always
// the full image width.
type BandGeometry struct {
	// ImageHeight is the image height implied by preserving the viewport
	// aspect ratio against the actual frame width. It differs from the
	// frame's native height when the frame aspect does not match the view.
	ImageHeight float64
	// BandHeight is the guide height scaled into image space
	BandHeight float64
	// OffsetY centers the band vertically: (ImageHeight - BandHeight) / 2
	OffsetY float64
}

// ComputeBand maps the on-screen guide band into image pixel space.
//
// viewW and viewH are the viewport size in view coordinates, imageW is the
// captured frame width in pixels, and guideH is the guide band height in
// view coordinates. The scale factor is imageW/viewW, so the result is
// exact whenever the frame is an integer multiple of the viewport.
func ComputeBand(viewW, viewH, imageW, guideH int) (BandGeometry, error) {
	if viewW <= 0 {
		return BandGeometry{}, fmt.Errorf("viewport width must be positive, got %d", viewW)
	}

	scale := float64(imageW) / float64(viewW)
	imageHeight := float64(viewH) * scale
	bandHeight := float64(guideH) * scale

	return BandGeometry{
		ImageHeight: imageHeight,
		BandHeight:  bandHeight,
		OffsetY:     (imageHeight - bandHeight) / 2,
	}, nil
}

// Rect returns the crop band as an image-space rectangle: full image
// width, vertically centered at OffsetY. OffsetY is not clamped; an
// oversized guide yields a rectangle extending past the image bounds.
func (g BandGeometry) Rect(imageW int) Rect {
	return NewRect(0, int(g.OffsetY), imageW, int(g.BandHeight))
}

// CropImage 将图像裁剪到指定的矩形
// 超出源图像范围的像素保持零值
func CropImage(img image.Image, rect Rect) image.Image {
	bounds := rect.ToImageRect()

	cropped := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if x >= img.Bounds().Min.X && x < img.Bounds().Max.X &&
				y >= img.Bounds().Min.Y && y < img.Bounds().Max.Y {
				cropped.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
			}
		}
	}

	return cropped
}
