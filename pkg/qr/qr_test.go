package qr

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBase64_ProducesPNGDataURI(t *testing.T) {
	enc := NewEncoder(256)

	out, err := enc.EncodeBase64("https://logmi.app/Xk92mA?qrcode=true")

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), raw[:8], "payload should be a PNG")
}

func TestEncodeBase64_Deterministic(t *testing.T) {
	enc := NewEncoder(128)

	first, err := enc.EncodeBase64("https://logmi.app/links/go/8d9f")
	require.NoError(t, err)
	second, err := enc.EncodeBase64("https://logmi.app/links/go/8d9f")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeBase64_EmptyContentFails(t *testing.T) {
	enc := NewEncoder(128)

	_, err := enc.EncodeBase64("")

	assert.Error(t, err)
}

func TestNewEncoder_DefaultSize(t *testing.T) {
	enc := NewEncoder(0)

	assert.Equal(t, DefaultSize, enc.size)
}
