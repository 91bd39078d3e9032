package recognize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentTextNumeric(t *testing.T) {
	info, err := ParseDocumentText("6222 0212 3456 7890")
	require.NoError(t, err)

	assert.Equal(t, KindNumeric, info.Kind)
	assert.Equal(t, []string{"6222", "0212", "3456", "7890"}, info.Groups)
	assert.Equal(t, "6222 0212 3456 7890", info.Raw)
	assert.Equal(t, "6222021234567890", info.Compact())
}

// TestParseDocumentTextConfusions checks common tesseract misreads are
// repaired in numeric bands
func TestParseDocumentTextConfusions(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"62O5 13I7", "6205 1317"},
		{"S123 B456", "5123 8456"},
		{"12Z4 56L8", "1224 5618"},
		{"lO23 4567", "1023 4567"},
	}

	for _, tc := range testCases {
		info, err := ParseDocumentText(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.expected, info.Raw, "raw=%q", tc.raw)
	}
}

func TestParseDocumentTextMRZ(t *testing.T) {
	text := "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<\nL898902C36UTO7408122F1204159ZE184226B<<<<<10"
	info, err := ParseDocumentText(text)
	require.NoError(t, err)

	assert.Equal(t, KindMRZ, info.Kind)
	require.Len(t, info.Groups, 2)
	assert.Equal(t, "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<", info.Groups[0])
	t.Logf("MRZ raw: %s", info.Raw)
}

// TestParseDocumentTextMRZStripsNoise checks non-MRZ characters are dropped
func TestParseDocumentTextMRZStripsNoise(t *testing.T) {
	info, err := ParseDocumentText("p<uto.doe<<john!<<<<<<<<<<<<<<<<<<<<<<<<<")
	require.NoError(t, err)

	assert.Equal(t, KindMRZ, info.Kind)
	assert.NotContains(t, info.Raw, ".")
	assert.NotContains(t, info.Raw, "!")
}

func TestParseDocumentTextNoResult(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t", "--..--", "12"} {
		_, err := ParseDocumentText(raw)
		assert.ErrorIs(t, err, ErrNoResult, "raw=%q", raw)
	}
}

func TestDocumentInfoString(t *testing.T) {
	var nilInfo *DocumentInfo
	assert.Equal(t, "<none>", nilInfo.String())

	info, err := ParseDocumentText("1234 5678")
	require.NoError(t, err)
	assert.Equal(t, "numeric: 1234 5678", info.String())
}
