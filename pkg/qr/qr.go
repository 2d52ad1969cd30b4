// Package qr renders tracking URLs as scannable PNG images.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered image edge in pixels.
const DefaultSize = 256

// Encoder produces base64 PNG QR codes. Output is deterministic for a given
// input and size, so repeated renders of the same URL are byte-identical.
type Encoder struct {
	size int
}

func NewEncoder(size int) Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return Encoder{size: size}
}

// EncodeBase64 renders content as a PNG QR code with medium error correction
// and returns it as a data URI suitable for direct embedding in API
// responses and pages.
func (e Encoder) EncodeBase64(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, e.size)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
