package utils

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingCodeEntropy(t *testing.T) {
	code, err := GenerateTrackingCode()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(code)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestGenerateTrackingCodeIsURLSafe(t *testing.T) {
	code, err := GenerateTrackingCode()
	require.NoError(t, err)

	assert.Equal(t, code, url.PathEscape(code))
}

func TestGenerateTrackingCodeUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateTrackingCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate tracking code generated")
		seen[code] = true
	}
}
