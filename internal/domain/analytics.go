package domain

import (
	"time"

	"github.com/google/uuid"
)

// Device classes recorded on click events. DetectDeviceType in pkg/detector
// only ever produces one of these four values.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// ClickEvent is one recorded visit through a redirect. Rows are append-only:
// they are written exactly once by the click recorder and afterwards only
// read for aggregation or removed when their link is deleted.
type ClickEvent struct {
	ID         uuid.UUID `json:"id"`
	LinkID     uuid.UUID `json:"link_id"`
	CreatedAt  time.Time `json:"created_at"`
	ViaQRCode  bool      `json:"via_qrcode"`
	DeviceType string    `json:"device_type"`
	City       string    `json:"city,omitempty"`
	Country    string    `json:"country,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
}

// ClickContext carries the request metadata needed to classify a click.
// IPAddress must already be resolved through proxy-forwarding rules.
type ClickContext struct {
	UserAgent string
	IPAddress string
	ViaQR     bool
}
