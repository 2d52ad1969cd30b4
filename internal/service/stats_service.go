package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/stats"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// DefaultWindowDays is the trailing aggregation window when the caller
	// supplies none.
	DefaultWindowDays = 30

	// MaxWindowDays caps how far back a caller may aggregate.
	MaxWindowDays = 365

	topLinksLimit     = 10
	recentClicksLimit = 10
)

// NormalizeDays applies the permissive days-parameter policy: anything
// non-numeric, below one or above the cap silently falls back to the
// default window.
func NormalizeDays(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > MaxWindowDays {
		return DefaultWindowDays
	}
	return days
}

// TopLinkEntry is one row of a dashboard's top-links ranking.
type TopLinkEntry struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name,omitempty"`
	ShortCode  string    `json:"short_code,omitempty"`
	LongURL    string    `json:"long_url"`
	ClickCount int64     `json:"click_count"`
}

// Dashboard is the variant-wide aggregation: link counts, the windowed
// Summary, a top-links ranking and a window-independent sample of the most
// recent clicks.
type Dashboard struct {
	TotalLinks  int64 `json:"total_links"`
	ActiveLinks int64 `json:"active_links"`
	stats.Summary
	TopLinks     []TopLinkEntry      `json:"top_links"`
	RecentClicks []domain.ClickEvent `json:"recent_clicks"`
}

// StatsService computes per-link and dashboard statistics by fetching the
// windowed events and handing them to the pure aggregator.
type StatsService struct {
	links    LinkRepository
	clicks   ClickRepository
	timezone *time.Location
}

func NewStatsService(links LinkRepository, clicks ClickRepository, timezone *time.Location) *StatsService {
	if timezone == nil {
		timezone = time.UTC
	}
	return &StatsService{links: links, clicks: clicks, timezone: timezone}
}

// StatsForShortCode aggregates one tinyurl link's clicks over the trailing
// window. Inactive links still report stats; only the redirect path hides
// them.
func (s *StatsService) StatsForShortCode(ctx context.Context, shortCode string, days int) (*stats.Summary, error) {
	link, err := s.links.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get link for stats: %w", err)
	}
	return s.summarize(ctx, link.ID, days)
}

// StatsForLink aggregates one linktree entry's clicks over the trailing
// window.
func (s *StatsService) StatsForLink(ctx context.Context, id uuid.UUID, days int) (*stats.Summary, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get link for stats: %w", err)
	}
	return s.summarize(ctx, link.ID, days)
}

func (s *StatsService) summarize(ctx context.Context, linkID uuid.UUID, days int) (*stats.Summary, error) {
	since := time.Now().AddDate(0, 0, -days)
	events, err := s.clicks.ListByLinkSince(ctx, linkID, since)
	if err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}

	summary := stats.Aggregate(events, s.timezone)
	return &summary, nil
}

// DashboardStats aggregates a whole variant over the trailing window.
func (s *StatsService) DashboardStats(ctx context.Context, variant domain.Variant, days int) (*Dashboard, error) {
	total, active, err := s.links.CountByVariant(ctx, variant)
	if err != nil {
		return nil, fmt.Errorf("count links: %w", err)
	}

	since := time.Now().AddDate(0, 0, -days)
	events, err := s.clicks.ListByVariantSince(ctx, variant, since)
	if err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}

	recent, err := s.clicks.RecentByVariant(ctx, variant, recentClicksLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent clicks: %w", err)
	}

	topEntries, err := s.topLinks(ctx, events)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalLinks:   total,
		ActiveLinks:  active,
		Summary:      stats.Aggregate(events, s.timezone),
		TopLinks:     topEntries,
		RecentClicks: recent,
	}, nil
}

func (s *StatsService) topLinks(ctx context.Context, events []domain.ClickEvent) ([]TopLinkEntry, error) {
	ranked := stats.TopLinks(events, topLinksLimit)

	ids := make([]uuid.UUID, len(ranked))
	for i, lc := range ranked {
		ids[i] = lc.LinkID
	}

	links, err := s.links.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load top links: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	entries := make([]TopLinkEntry, 0, len(ranked))
	for _, lc := range ranked {
		link, ok := byID[lc.LinkID]
		if !ok {
			// Link deleted between the event query and the link fetch.
			continue
		}
		entries = append(entries, TopLinkEntry{
			ID:         link.ID,
			Name:       link.Name,
			ShortCode:  link.ShortCode,
			LongURL:    link.LongURL,
			ClickCount: lc.Count,
		})
	}
	return entries, nil
}
