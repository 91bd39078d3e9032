//go:build ocr
// +build ocr

package recognize

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"

	"github.com/PhiFever/docscan-helper/internal/config"
)

// TesseractAvailable 指示是否编译了 OCR 支持
const TesseractAvailable = true

func init() {
	Register("tesseract", func(cfg *config.Config) (Engine, error) {
		return &TesseractEngine{
			languages: cfg.OCR.Languages,
			whitelist: cfg.OCR.Whitelist,
		}, nil
	})
}

// TesseractEngine reads a code band with the local tesseract installation
type TesseractEngine struct {
	languages string
	whitelist string
}

// Name returns the engine's registered name
func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs tesseract over the band image in single-line mode
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	client.SetLanguage(e.languages)
	client.SetPageSegMode(gosseract.PSM_SINGLE_LINE)
	if e.whitelist != "" {
		client.SetWhitelist(e.whitelist)
	}

	// 保存图像到临时文件供 Tesseract 使用
	tmpfile, err := os.CreateTemp("", "docscan-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpfile.Name())
	defer tmpfile.Close()

	if err := png.Encode(tmpfile, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	if err := client.SetImage(tmpfile.Name()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}
