//go:build !ocr
// +build !ocr

package recognize

import (
	"github.com/PhiFever/docscan-helper/internal/config"
)

// TesseractAvailable 指示是否编译了 OCR 支持
const TesseractAvailable = false

func init() {
	Register("tesseract", func(cfg *config.Config) (Engine, error) {
		return nil, ErrNotEnabled
	})
}
