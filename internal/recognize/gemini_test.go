package recognize

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSleepBackoffCancelled checks a cancelled context aborts the retry
// delay instead of sitting it out
func TestSleepBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepBackoff(ctx, 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 100*time.Millisecond,
		"cancelled backoff should return immediately")
}

func TestSleepBackoff(t *testing.T) {
	err := sleepBackoff(context.Background(), 0)
	assert.NoError(t, err)
}

func TestFirstTextEmpty(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
}

// TestNewGeminiEngineTrimsCredentials checks whitespace is stripped
func TestNewGeminiEngineTrimsCredentials(t *testing.T) {
	e := NewGeminiEngine(" key \n", " gemini-2.0-flash ")
	assert.Equal(t, "key", e.APIKey)
	assert.Equal(t, "gemini-2.0-flash", e.Model)
}
