// Package stats computes time-windowed rollups over click events. Every
// function here is a pure function of its input: counting is exact,
// order-independent and idempotent, so callers may feed events in any order
// and re-aggregate freely.
package stats

import (
	"sort"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/google/uuid"
)

// TopCountries bounds the per-country breakdown.
const TopCountries = 10

type DeviceBreakdown struct {
	Mobile  int64 `json:"mobile"`
	Tablet  int64 `json:"tablet"`
	Desktop int64 `json:"desktop"`
	Unknown int64 `json:"unknown"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type Summary struct {
	TotalClicks     int64           `json:"total_clicks"`
	QRCodeClicks    int64           `json:"qrcode_clicks"`
	DirectClicks    int64           `json:"direct_clicks"`
	ClicksByDevice  DeviceBreakdown `json:"clicks_by_device"`
	ClicksByCountry []CountryCount  `json:"clicks_by_country"`
	ClicksByDay     []DayCount      `json:"clicks_by_day"`
}

// LinkCount pairs a link with its click volume inside a window.
type LinkCount struct {
	LinkID uuid.UUID
	Count  int64
}

// Aggregate rolls events up into a Summary. Calendar days are bucketed in
// loc (UTC when nil). The device breakdown always carries all four
// categories, zero-filled; countries are top-10 by count descending with
// ties broken by name ascending, and events without a country are excluded
// from that breakdown. Days appear ascending and only when they saw at
// least one event.
func Aggregate(events []domain.ClickEvent, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}

	summary := Summary{
		ClicksByCountry: []CountryCount{},
		ClicksByDay:     []DayCount{},
	}

	countries := make(map[string]int64)
	days := make(map[string]int64)

	for _, evt := range events {
		summary.TotalClicks++
		if evt.ViaQRCode {
			summary.QRCodeClicks++
		}

		switch evt.DeviceType {
		case domain.DeviceMobile:
			summary.ClicksByDevice.Mobile++
		case domain.DeviceTablet:
			summary.ClicksByDevice.Tablet++
		case domain.DeviceDesktop:
			summary.ClicksByDevice.Desktop++
		default:
			summary.ClicksByDevice.Unknown++
		}

		if evt.Country != "" {
			countries[evt.Country]++
		}

		days[evt.CreatedAt.In(loc).Format("2006-01-02")]++
	}

	summary.DirectClicks = summary.TotalClicks - summary.QRCodeClicks

	for country, count := range countries {
		summary.ClicksByCountry = append(summary.ClicksByCountry, CountryCount{Country: country, Count: count})
	}
	sort.Slice(summary.ClicksByCountry, func(i, j int) bool {
		a, b := summary.ClicksByCountry[i], summary.ClicksByCountry[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Country < b.Country
	})
	if len(summary.ClicksByCountry) > TopCountries {
		summary.ClicksByCountry = summary.ClicksByCountry[:TopCountries]
	}

	for day, count := range days {
		summary.ClicksByDay = append(summary.ClicksByDay, DayCount{Date: day, Count: count})
	}
	sort.Slice(summary.ClicksByDay, func(i, j int) bool {
		return summary.ClicksByDay[i].Date < summary.ClicksByDay[j].Date
	})

	return summary
}

// TopLinks ranks links by click volume, descending, ties broken by link ID
// ascending so repeated aggregations stay deterministic. At most n entries
// are returned.
func TopLinks(events []domain.ClickEvent, n int) []LinkCount {
	counts := make(map[uuid.UUID]int64)
	for _, evt := range events {
		counts[evt.LinkID]++
	}

	ranked := make([]LinkCount, 0, len(counts))
	for id, count := range counts {
		ranked = append(ranked, LinkCount{LinkID: id, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].LinkID.String() < ranked[j].LinkID.String()
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
