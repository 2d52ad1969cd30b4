package postgres

import (
	"context"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const linkColumns = `id, variant, name, short_code, long_url, owner, is_active, display_order, created_at, updated_at`

type LinkRepository struct {
	db *pgxpool.Pool
}

func NewLinkRepository(db *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `
		INSERT INTO links (id, variant, name, short_code, long_url, owner, is_active, display_order)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		link.ID,
		link.Variant,
		link.Name,
		link.ShortCode,
		link.LongURL,
		link.Owner,
		link.IsActive,
		link.DisplayOrder,
	).Scan(&link.CreatedAt, &link.UpdatedAt)
}

// GetActiveByShortCode serves the redirect path: only active links resolve.
func (r *LinkRepository) GetActiveByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE short_code = $1 AND is_active = TRUE
	`
	return r.scanOne(r.db.QueryRow(ctx, query, shortCode))
}

// GetByShortCode serves the management API: inactive links stay reachable.
func (r *LinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE short_code = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, shortCode))
}

func (r *LinkRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE id = $1 AND is_active = TRUE
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *LinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *LinkRepository) ExistsShortCode(ctx context.Context, shortCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM links WHERE short_code = $1)`,
		shortCode,
	).Scan(&exists)
	return exists, err
}

// ListTinyURLs returns all short-code links with lifetime click totals,
// newest first.
func (r *LinkRepository) ListTinyURLs(ctx context.Context) ([]domain.LinkWithClicks, error) {
	query := `
		SELECT ` + prefixedLinkColumns + `, COUNT(c.id) AS click_count
		FROM links l
		LEFT JOIN link_clicks c ON c.link_id = l.id
		WHERE l.variant = $1
		GROUP BY l.id
		ORDER BY l.created_at DESC
	`
	return r.listWithClicks(ctx, query, domain.VariantTinyURL)
}

// ListLinktree returns one owner's link-in-bio entries in presentation
// order, with lifetime click totals.
func (r *LinkRepository) ListLinktree(ctx context.Context, owner string) ([]domain.LinkWithClicks, error) {
	query := `
		SELECT ` + prefixedLinkColumns + `, COUNT(c.id) AS click_count
		FROM links l
		LEFT JOIN link_clicks c ON c.link_id = l.id
		WHERE l.variant = $1 AND l.owner = $2
		GROUP BY l.id
		ORDER BY l.display_order ASC, l.created_at DESC
	`
	return r.listWithClicks(ctx, query, domain.VariantLinktree, owner)
}

func (r *LinkRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Link, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		link, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

func (r *LinkRepository) Update(ctx context.Context, link *domain.Link) error {
	query := `
		UPDATE links
		SET name = $2, long_url = $3, is_active = $4, display_order = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		link.ID,
		link.Name,
		link.LongURL,
		link.IsActive,
		link.DisplayOrder,
	).Scan(&link.UpdatedAt)
}

// Delete removes a link; its click events go with it via the FK cascade.
func (r *LinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

func (r *LinkRepository) CountByVariant(ctx context.Context, variant domain.Variant) (total, active int64, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM links
		WHERE variant = $1
	`
	err = r.db.QueryRow(ctx, query, variant).Scan(&total, &active)
	return total, active, err
}

const prefixedLinkColumns = `l.id, l.variant, l.name, l.short_code, l.long_url, l.owner, l.is_active, l.display_order, l.created_at, l.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *LinkRepository) scanOne(row rowScanner) (*domain.Link, error) {
	var link domain.Link
	var shortCode *string

	err := row.Scan(
		&link.ID,
		&link.Variant,
		&link.Name,
		&shortCode,
		&link.LongURL,
		&link.Owner,
		&link.IsActive,
		&link.DisplayOrder,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if shortCode != nil {
		link.ShortCode = *shortCode
	}
	return &link, nil
}

func (r *LinkRepository) listWithClicks(ctx context.Context, query string, args ...any) ([]domain.LinkWithClicks, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.LinkWithClicks
	for rows.Next() {
		var lwc domain.LinkWithClicks
		var shortCode *string

		err := rows.Scan(
			&lwc.ID,
			&lwc.Variant,
			&lwc.Name,
			&shortCode,
			&lwc.LongURL,
			&lwc.Owner,
			&lwc.IsActive,
			&lwc.DisplayOrder,
			&lwc.CreatedAt,
			&lwc.UpdatedAt,
			&lwc.ClickCount,
		)
		if err != nil {
			return nil, err
		}

		if shortCode != nil {
			lwc.ShortCode = *shortCode
		}
		links = append(links, lwc)
	}
	return links, rows.Err()
}
