package recognize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/PhiFever/docscan-helper/internal/config"
)

func init() {
	Register("gemini", func(cfg *config.Config) (Engine, error) {
		if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
			return nil, errors.New("gemini: api_key is empty (set GEMINI_API_KEY)")
		}
		return NewGeminiEngine(cfg.Gemini.APIKey, cfg.Gemini.Model), nil
	})
}

const geminiSystemPrompt = `You transcribe the machine-readable code band cropped from an identity or bank document.
Return ONLY the characters printed on the band, preserving spacing and line breaks.
Do not describe the image, do not add punctuation or commentary.
If the band holds no readable code, return an empty response.`

// GeminiEngine reads a code band with the Gemini vision API
type GeminiEngine struct {
	APIKey string
	Model  string
}

// NewGeminiEngine creates a gemini engine for the given credentials
func NewGeminiEngine(apiKey, model string) *GeminiEngine {
	return &GeminiEngine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

// Name returns the engine's registered name
func (e *GeminiEngine) Name() string { return "gemini" }

// Recognize sends the band image to the model and returns the raw
// transcription. Transient API failures are retried three times.
func (e *GeminiEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("gemini: api key is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(geminiSystemPrompt)},
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("gemini: failed to encode band: %w", err)
	}

	parts := []genai.Part{
		genai.Text("Transcribe the code band."),
		&genai.Blob{MIMEType: "image/png", Data: buf.Bytes()},
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			if err := sleepBackoff(ctx, attempt); err != nil {
				return "", err
			}
			continue
		}
		return firstText(resp), nil
	}
	return "", lastErr
}

// sleepBackoff waits out the retry delay for the given attempt, bailing
// out early when the context is cancelled
func sleepBackoff(ctx context.Context, attempt int) error {
	select {
	case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
