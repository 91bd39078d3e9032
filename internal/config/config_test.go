package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	problems := cfg.Validate()
	assert.Empty(t, problems, "default config should validate cleanly: %v", problems)
}

func TestValidateReportsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisplayIndex = -1
	cfg.Viewport.Width = 0
	cfg.GuideHeightRatio = 1.5
	cfg.Engine = "carrier-pigeon"
	cfg.QueueSize = 0
	cfg.AutoScanInterval = -1
	cfg.LogLevel = "LOUD"

	problems := cfg.Validate()
	assert.Len(t, problems, 7)
	for _, p := range problems {
		t.Logf("problem: %s", p)
	}
}

func TestGuideHeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Viewport.Height = 480
	cfg.GuideHeightRatio = 0.2

	assert.Equal(t, 96, cfg.GuideHeight())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.DisplayIndex = 1
	cfg.Viewport = RegionConfig{X: 10, Y: 20, Width: 800, Height: 600}
	cfg.Engine = "gemini"
	cfg.OCR.Languages = "eng+deu"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err), "missing file should surface as not-exist")
}

func TestSaveIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, Save(path, DefaultConfig()))

	// No temp file left behind
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg := DefaultConfig()
	cfg.applyEnv()

	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-test", cfg.Gemini.Model)
}
