package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LoganMichel/logmi-app/internal/config"
	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/logger"
	redisrepo "github.com/LoganMichel/logmi-app/internal/repository/redis"
	"github.com/LoganMichel/logmi-app/pkg/generator"
	"github.com/LoganMichel/logmi-app/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LinkService owns link creation and management for both variants.
type LinkService struct {
	links         LinkRepository
	cache         LinkCache
	codeLength    int
	reservedPaths []string
	cacheTTL      time.Duration
}

func NewLinkService(links LinkRepository, cache LinkCache, cfg config.AppConfig) *LinkService {
	return &LinkService{
		links:         links,
		cache:         cache,
		codeLength:    cfg.CodeLength,
		reservedPaths: cfg.ReservedPaths,
		cacheTTL:      cfg.CacheTTL,
	}
}

// ShortenURL creates a tinyurl link. A custom code is taken as-is after
// reserved-path and availability checks; otherwise a code is allocated by
// the bounded retry loop. The unique constraint stays the final arbiter:
// when a concurrent creation wins the race on a generated code, the
// allocation loop is rerun once before giving up.
func (s *LinkService) ShortenURL(ctx context.Context, req *domain.ShortenRequest) (*domain.Link, error) {
	shortCode := req.CustomCode
	if shortCode != "" {
		if validator.IsReserved(shortCode, s.reservedPaths) {
			return nil, domain.ErrCodeTaken
		}
		taken, err := s.links.ExistsShortCode(ctx, shortCode)
		if err != nil {
			return nil, fmt.Errorf("check custom code: %w", err)
		}
		if taken {
			return nil, domain.ErrCodeTaken
		}
	} else {
		var err error
		shortCode, err = s.allocateCode(ctx)
		if err != nil {
			return nil, err
		}
	}

	link := &domain.Link{
		ID:        uuid.New(),
		Variant:   domain.VariantTinyURL,
		ShortCode: shortCode,
		LongURL:   req.LongURL,
		Owner:     req.Owner,
		IsActive:  true,
	}

	err := s.links.Create(ctx, link)
	if err == nil {
		return link, nil
	}
	if !isUniqueViolation(err) {
		return nil, fmt.Errorf("create short url: %w", err)
	}
	if req.CustomCode != "" {
		return nil, domain.ErrCodeTaken
	}

	// Lost the allocation race against a concurrent creation.
	link.ShortCode, err = s.allocateCode(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create short url after reallocation: %w", err)
	}
	return link, nil
}

func (s *LinkService) allocateCode(ctx context.Context) (string, error) {
	code, err := generator.Allocate(ctx, s.codeLength, s.links.ExistsShortCode)
	if errors.Is(err, generator.ErrExhausted) {
		return "", domain.ErrCodeSpaceExhausted
	}
	if err != nil {
		return "", fmt.Errorf("allocate short code: %w", err)
	}
	return code, nil
}

// CreateLinktreeLink creates a link-in-bio entry addressed by a fresh
// opaque ID; there is no code allocation and no reserved-path concept.
func (s *LinkService) CreateLinktreeLink(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error) {
	link := &domain.Link{
		ID:           uuid.New(),
		Variant:      domain.VariantLinktree,
		Name:         req.Name,
		LongURL:      req.LongURL,
		Owner:        req.Owner,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *LinkService) ListTinyURLs(ctx context.Context) ([]domain.LinkWithClicks, error) {
	return s.links.ListTinyURLs(ctx)
}

func (s *LinkService) ListLinktree(ctx context.Context, owner string) ([]domain.LinkWithClicks, error) {
	return s.links.ListLinktree(ctx, owner)
}

func (s *LinkService) GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	link, err := s.links.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get link by code: %w", err)
	}
	return link, nil
}

func (s *LinkService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get link by id: %w", err)
	}
	return link, nil
}

// UpdateLink applies a partial update and drops any cached resolution of
// the link.
func (s *LinkService) UpdateLink(ctx context.Context, id uuid.UUID, req *domain.UpdateLinkRequest) (*domain.Link, error) {
	link, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		link.Name = *req.Name
	}
	if req.LongURL != nil {
		link.LongURL = *req.LongURL
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		link.DisplayOrder = *req.DisplayOrder
	}

	if err := s.links.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	s.invalidate(ctx, link)
	return link, nil
}

func (s *LinkService) DeleteLink(ctx context.Context, id uuid.UUID) error {
	link, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.links.Delete(ctx, link.ID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.invalidate(ctx, link)
	return nil
}

func (s *LinkService) DeleteByShortCode(ctx context.Context, shortCode string) error {
	link, err := s.GetByShortCode(ctx, shortCode)
	if err != nil {
		return err
	}

	if err := s.links.Delete(ctx, link.ID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.invalidate(ctx, link)
	return nil
}

func (s *LinkService) invalidate(ctx context.Context, link *domain.Link) {
	keys := []string{redisrepo.IDKey(link.ID)}
	if link.ShortCode != "" {
		keys = append(keys, redisrepo.CodeKey(link.ShortCode))
	}
	for _, key := range keys {
		if err := s.cache.InvalidateLink(ctx, key); err != nil {
			logger.FromContext(ctx).Warn("cache invalidation failed", "key", key, "error", err)
		}
	}
}
