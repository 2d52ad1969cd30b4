// Package geoip resolves client IPs to a coarse location through an
// ip-api.com style endpoint. Lookups are strictly best-effort: every failure
// mode degrades to an empty Location so the redirect path can never be
// failed or blocked past the timeout by geolocation.
package geoip

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout keeps lookups fast enough to ride along a redirect.
const DefaultTimeout = 2 * time.Second

// Location is the resolved origin of a request. Zero fields mean the lookup
// failed or was skipped.
type Location struct {
	City    string
	Country string
}

type Resolver struct {
	endpoint string
	client   *http.Client
}

// NewResolver builds a resolver against endpoint (e.g.
// "http://ip-api.com/json"). A non-positive timeout falls back to
// DefaultTimeout.
func NewResolver(endpoint string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Resolve looks up ip and returns its location. Empty, unparseable, private,
// loopback and link-local addresses short-circuit without any network call.
// Resolve never returns an error; callers always get a usable Location.
func (r *Resolver) Resolve(ip string) Location {
	if !isPublicIP(ip) {
		return Location{}
	}

	lookupURL := fmt.Sprintf("%s/%s?fields=status,country,city", r.endpoint, url.PathEscape(ip))
	resp, err := r.client.Get(lookupURL)
	if err != nil {
		return Location{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}
	}

	var out struct {
		Status  string `json:"status"`
		Country string `json:"country"`
		City    string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Location{}
	}
	if out.Status != "success" {
		return Location{}
	}

	return Location{City: out.City, Country: out.Country}
}

func isPublicIP(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified() {
		return false
	}
	return true
}
