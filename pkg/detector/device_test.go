package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDeviceType(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      string
	}{
		{
			name:      "iphone is mobile",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			want:      DeviceMobile,
		},
		{
			name:      "android phone is mobile",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			want:      DeviceMobile,
		},
		{
			name:      "ipad is tablet despite Mobile token",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			want:      DeviceTablet,
		},
		{
			name:      "android tablet lacks Mobile token",
			userAgent: "Mozilla/5.0 (Linux; Android 13; SM-X710) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want:      DeviceTablet,
		},
		{
			name:      "windows browser is desktop",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want:      DeviceDesktop,
		},
		{
			name:      "mac browser is desktop",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			want:      DeviceDesktop,
		},
		{
			name:      "empty string is unknown",
			userAgent: "",
			want:      DeviceUnknown,
		},
		{
			name:      "whitespace only is unknown",
			userAgent: "   ",
			want:      DeviceUnknown,
		},
		{
			name:      "garbage is unknown",
			userAgent: "\x00\xffnot a real user agent 12345",
			want:      DeviceUnknown,
		},
		{
			name:      "curl is unknown",
			userAgent: "curl/8.4.0",
			want:      DeviceUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDeviceType(tt.userAgent))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name          string
		remoteAddr    string
		xForwardedFor string
		xRealIP       string
		want          string
	}{
		{
			name:          "first forwarded-for entry wins",
			remoteAddr:    "10.0.0.1:4312",
			xForwardedFor: "203.0.113.7, 10.0.0.1",
			xRealIP:       "198.51.100.2",
			want:          "203.0.113.7",
		},
		{
			name:       "real-ip used when forwarded-for absent",
			remoteAddr: "10.0.0.1:4312",
			xRealIP:    "198.51.100.2",
			want:       "198.51.100.2",
		},
		{
			name:       "peer address host without port",
			remoteAddr: "203.0.113.7:51423",
			want:       "203.0.113.7",
		},
		{
			name:       "peer address without port returned as-is",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetClientIP(tt.remoteAddr, tt.xForwardedFor, tt.xRealIP))
		})
	}
}
