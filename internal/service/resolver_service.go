package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	redisrepo "github.com/LoganMichel/logmi-app/internal/repository/redis"
	"github.com/LoganMichel/logmi-app/pkg/detector"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ResolverService is the redirect resolution state machine shared by both
// variants: validate the identifier, look the link up (cache first), and
// record the click. Absent, inactive, malformed and reserved identifiers
// all collapse into ErrLinkNotFound so callers cannot probe for disabled
// links.
type ResolverService struct {
	links    LinkRepository
	clicks   ClickRepository
	cache    LinkCache
	geo      GeoResolver
	reserved map[string]struct{}
	cacheTTL time.Duration
}

func NewResolverService(
	links LinkRepository,
	clicks ClickRepository,
	cache LinkCache,
	geo GeoResolver,
	reservedPaths []string,
	cacheTTL time.Duration,
) *ResolverService {
	reserved := make(map[string]struct{}, len(reservedPaths))
	for _, p := range reservedPaths {
		reserved[strings.ToLower(p)] = struct{}{}
	}

	return &ResolverService{
		links:    links,
		clicks:   clicks,
		cache:    cache,
		geo:      geo,
		reserved: reserved,
		cacheTTL: cacheTTL,
	}
}

// ResolveShortCode maps a bare short code to its active link. Reserved
// paths short-circuit before any cache or store access.
func (s *ResolverService) ResolveShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	if shortCode == "" {
		return nil, domain.ErrLinkNotFound
	}
	if _, ok := s.reserved[strings.ToLower(shortCode)]; ok {
		return nil, domain.ErrLinkNotFound
	}

	key := redisrepo.CodeKey(shortCode)
	if link, err := s.cache.GetLink(ctx, key); err == nil && link != nil && link.IsActive {
		return link, nil
	}

	link, err := s.links.GetActiveByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("resolve short code: %w", err)
	}

	s.cacheResolved(key, link)
	return link, nil
}

// ResolveLinkID maps an opaque link ID to its active link. A malformed ID
// is indistinguishable from a missing one.
func (s *ResolverService) ResolveLinkID(ctx context.Context, rawID string) (*domain.Link, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.ErrLinkNotFound
	}

	key := redisrepo.IDKey(id)
	if link, err := s.cache.GetLink(ctx, key); err == nil && link != nil && link.IsActive {
		return link, nil
	}

	link, err := s.links.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("resolve link id: %w", err)
	}

	s.cacheResolved(key, link)
	return link, nil
}

// TrackClick classifies the request and appends one click event. Device and
// geo classification can only degrade to their fallbacks, so the sole error
// path is the persistence write.
func (s *ResolverService) TrackClick(ctx context.Context, link *domain.Link, cc domain.ClickContext) error {
	location := s.geo.Resolve(cc.IPAddress)

	evt := &domain.ClickEvent{
		ID:         uuid.New(),
		LinkID:     link.ID,
		ViaQRCode:  cc.ViaQR,
		DeviceType: detector.DetectDeviceType(cc.UserAgent),
		City:       location.City,
		Country:    location.Country,
		IPAddress:  cc.IPAddress,
		UserAgent:  cc.UserAgent,
	}

	if err := s.clicks.Insert(ctx, evt); err != nil {
		return fmt.Errorf("record click for link %s: %w", link.ID, err)
	}
	return nil
}

func (s *ResolverService) cacheResolved(key string, link *domain.Link) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.cache.SetLink(ctx, key, link, s.cacheTTL)
	}()
}
