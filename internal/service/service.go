// Package service implements the business core: short-code allocation, the
// redirect resolution state machine, click recording and statistics
// aggregation. Repositories are consumed through interfaces defined here so
// tests can substitute mocks.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/pkg/geoip"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetActiveByShortCode(ctx context.Context, shortCode string) (*domain.Link, error)
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	ExistsShortCode(ctx context.Context, shortCode string) (bool, error)
	ListTinyURLs(ctx context.Context) ([]domain.LinkWithClicks, error)
	ListLinktree(ctx context.Context, owner string) ([]domain.LinkWithClicks, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Link, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByVariant(ctx context.Context, variant domain.Variant) (total, active int64, err error)
}

type ClickRepository interface {
	Insert(ctx context.Context, evt *domain.ClickEvent) error
	ListByLinkSince(ctx context.Context, linkID uuid.UUID, since time.Time) ([]domain.ClickEvent, error)
	ListByVariantSince(ctx context.Context, variant domain.Variant, since time.Time) ([]domain.ClickEvent, error)
	RecentByVariant(ctx context.Context, variant domain.Variant, limit int) ([]domain.ClickEvent, error)
}

type LinkCache interface {
	GetLink(ctx context.Context, key string) (*domain.Link, error)
	SetLink(ctx context.Context, key string, link *domain.Link, ttl time.Duration) error
	InvalidateLink(ctx context.Context, key string) error
}

// GeoResolver is the best-effort IP location collaborator; implementations
// must never fail, only degrade to the zero Location.
type GeoResolver interface {
	Resolve(ip string) geoip.Location
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
