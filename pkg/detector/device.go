// Package detector classifies inbound requests: device class from the
// User-Agent header and client IP from proxy-forwarding headers.
package detector

import (
	"net"
	"strings"
)

const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// Tablet tokens run before the mobile ones: iPad user agents carry the
// generic "Mobile" Safari token, and Android tablets are the Android UAs
// without it.
var tabletKeywords = []string{"ipad", "tablet", "kindle", "silk", "playbook"}

var mobileKeywords = []string{"mobile", "iphone", "ipod", "android", "blackberry", "windows phone", "opera mini"}

var desktopKeywords = []string{"windows", "macintosh", "x11", "linux", "cros"}

// DetectDeviceType maps a raw User-Agent string to one of the four device
// classes. It never fails: empty or unrecognized input yields "unknown".
func DetectDeviceType(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return DeviceUnknown
	}

	for _, keyword := range tabletKeywords {
		if strings.Contains(ua, keyword) {
			return DeviceTablet
		}
	}
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobile") {
		return DeviceTablet
	}

	for _, keyword := range mobileKeywords {
		if strings.Contains(ua, keyword) {
			return DeviceMobile
		}
	}

	for _, keyword := range desktopKeywords {
		if strings.Contains(ua, keyword) {
			return DeviceDesktop
		}
	}

	return DeviceUnknown
}

// GetClientIP resolves the visitor address through proxy-forwarding rules:
// first X-Forwarded-For entry, then X-Real-IP, then the direct peer address.
func GetClientIP(remoteAddr, xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		if ip := strings.TrimSpace(strings.Split(xForwardedFor, ",")[0]); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(xRealIP); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
