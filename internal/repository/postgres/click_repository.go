package postgres

import (
	"context"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClickRepository struct {
	db *pgxpool.Pool
}

func NewClickRepository(db *pgxpool.Pool) *ClickRepository {
	return &ClickRepository{db: db}
}

// Insert appends one click event. Events are write-once: no update path
// exists, deletion happens only through the link cascade.
func (r *ClickRepository) Insert(ctx context.Context, evt *domain.ClickEvent) error {
	query := `
		INSERT INTO link_clicks (id, link_id, via_qrcode, device_type, city, country, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		evt.ID,
		evt.LinkID,
		evt.ViaQRCode,
		evt.DeviceType,
		evt.City,
		evt.Country,
		evt.IPAddress,
		evt.UserAgent,
	).Scan(&evt.CreatedAt)
}

// ListByLinkSince returns one link's events recorded at or after since.
func (r *ClickRepository) ListByLinkSince(ctx context.Context, linkID uuid.UUID, since time.Time) ([]domain.ClickEvent, error) {
	query := `
		SELECT id, link_id, created_at, via_qrcode, device_type,
		       COALESCE(city, ''), COALESCE(country, ''), ip_address, user_agent
		FROM link_clicks
		WHERE link_id = $1 AND created_at >= $2
	`
	rows, err := r.db.Query(ctx, query, linkID, since)
	if err != nil {
		return nil, err
	}
	return scanClickEvents(rows)
}

// ListByVariantSince returns all events for one product variant recorded at
// or after since, for dashboard aggregation.
func (r *ClickRepository) ListByVariantSince(ctx context.Context, variant domain.Variant, since time.Time) ([]domain.ClickEvent, error) {
	query := `
		SELECT c.id, c.link_id, c.created_at, c.via_qrcode, c.device_type,
		       COALESCE(c.city, ''), COALESCE(c.country, ''), c.ip_address, c.user_agent
		FROM link_clicks c
		JOIN links l ON l.id = c.link_id
		WHERE l.variant = $1 AND c.created_at >= $2
	`
	rows, err := r.db.Query(ctx, query, variant, since)
	if err != nil {
		return nil, err
	}
	return scanClickEvents(rows)
}

// RecentByVariant returns the latest events for a variant, most recent
// first, independent of any window.
func (r *ClickRepository) RecentByVariant(ctx context.Context, variant domain.Variant, limit int) ([]domain.ClickEvent, error) {
	query := `
		SELECT c.id, c.link_id, c.created_at, c.via_qrcode, c.device_type,
		       COALESCE(c.city, ''), COALESCE(c.country, ''), c.ip_address, c.user_agent
		FROM link_clicks c
		JOIN links l ON l.id = c.link_id
		WHERE l.variant = $1
		ORDER BY c.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, variant, limit)
	if err != nil {
		return nil, err
	}
	return scanClickEvents(rows)
}

func scanClickEvents(rows pgx.Rows) ([]domain.ClickEvent, error) {
	defer rows.Close()

	var events []domain.ClickEvent
	for rows.Next() {
		var evt domain.ClickEvent
		err := rows.Scan(
			&evt.ID,
			&evt.LinkID,
			&evt.CreatedAt,
			&evt.ViaQRCode,
			&evt.DeviceType,
			&evt.City,
			&evt.Country,
			&evt.IPAddress,
			&evt.UserAgent,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, rows.Err()
}
