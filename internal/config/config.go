package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/PhiFever/docscan-helper/internal/logger"
	"github.com/PhiFever/docscan-helper/pkg/utils"
)

// RegionConfig describes a screen-space rectangle
type RegionConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// OCRConfig holds tesseract tuning parameters
type OCRConfig struct {
	// Languages is a tesseract language string, e.g. "eng" or "eng+deu"
	Languages string `yaml:"languages"`
	// Whitelist restricts recognition to the given characters
	Whitelist string `yaml:"whitelist"`
	// UpscaleMinHeight upscales bands shorter than this before recognition
	UpscaleMinHeight int `yaml:"upscale_min_height"`
}

// GeminiConfig holds the cloud engine credentials
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Config is the application configuration
type Config struct {
	// DisplayIndex selects which display the preview viewport lives on
	DisplayIndex int `yaml:"display_index"`
	// Viewport is the on-screen preview rectangle the operator watches
	Viewport RegionConfig `yaml:"viewport"`
	// GuideHeightRatio is the guide band height as a fraction of the
	// viewport height (0 < ratio <= 1)
	GuideHeightRatio float64 `yaml:"guide_height_ratio"`
	// Engine selects the recognition engine: auto, tesseract or gemini
	Engine string `yaml:"engine"`

	OCR    OCRConfig    `yaml:"ocr"`
	Gemini GeminiConfig `yaml:"gemini"`

	// QueueSize bounds the recognition job and event channels
	QueueSize int `yaml:"queue_size"`
	// AutoScanInterval triggers a capture every N seconds; 0 disables
	AutoScanInterval float64 `yaml:"auto_scan_interval"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DisplayIndex:     0,
		Viewport:         RegionConfig{X: 0, Y: 0, Width: 640, Height: 480},
		GuideHeightRatio: 0.2,
		Engine:           "auto",
		OCR: OCRConfig{
			Languages:        "eng",
			Whitelist:        "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ< ",
			UpscaleMinHeight: 48,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		QueueSize:        16,
		AutoScanInterval: 0,
		LogLevel:         "INFO",
	}
}

// Validate returns a list of configuration problems.
// An empty slice means the configuration is usable.
func (c *Config) Validate() []string {
	var problems []string

	if c.DisplayIndex < 0 {
		problems = append(problems, fmt.Sprintf("display_index must be >= 0, got %d", c.DisplayIndex))
	}
	if c.Viewport.Width <= 0 {
		problems = append(problems, fmt.Sprintf("viewport.width must be positive, got %d", c.Viewport.Width))
	}
	if c.Viewport.Height <= 0 {
		problems = append(problems, fmt.Sprintf("viewport.height must be positive, got %d", c.Viewport.Height))
	}
	if c.GuideHeightRatio <= 0 || c.GuideHeightRatio > 1 {
		problems = append(problems, fmt.Sprintf("guide_height_ratio must be in (0, 1], got %g", c.GuideHeightRatio))
	}
	switch c.Engine {
	case "auto", "tesseract", "gemini":
	default:
		problems = append(problems, fmt.Sprintf("engine must be auto, tesseract or gemini, got %q", c.Engine))
	}
	if c.QueueSize <= 0 {
		problems = append(problems, fmt.Sprintf("queue_size must be positive, got %d", c.QueueSize))
	}
	if c.AutoScanInterval < 0 {
		problems = append(problems, fmt.Sprintf("auto_scan_interval must be >= 0, got %g", c.AutoScanInterval))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	return problems
}

// GuideHeight returns the guide band height in view coordinates
func (c *Config) GuideHeight() int {
	return int(c.GuideHeightRatio * float64(c.Viewport.Height))
}

// applyEnv overrides credentials from the environment
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		c.Gemini.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_MODEL")); v != "" {
		c.Gemini.Model = v
	}
}

var (
	globalConfig *Config
	configMu     sync.Mutex
)

// Get 返回全局配置单例
// 首次调用时从应用数据目录加载 config.yaml，不存在则写入默认配置
func Get() (*Config, error) {
	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	path, err := utils.GetAppDataPath("config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg = DefaultConfig()
		if saveErr := Save(path, cfg); saveErr != nil {
			return nil, fmt.Errorf("failed to write default config: %w", saveErr)
		}
		logger.Infof("[Config] Wrote default configuration to %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.applyEnv()

	for _, problem := range cfg.Validate() {
		logger.Warningf("[Config] %s", problem)
	}

	globalConfig = cfg
	return globalConfig, nil
}
