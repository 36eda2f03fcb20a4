package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetBySlug(ctx context.Context, slug string) (*models.Property, error)
	ListAllProperties(ctx context.Context) ([]*models.Property, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, property_name, slug, listing_url, source_platform, time_zone, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW())
    `,
		p.ID,
		p.PropertyName,
		p.Slug,
		p.ListingURL,
		p.SourcePlatform,
		p.TimeZone,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE slug=$1", slug)
	return scanProperty(row)
}

func (r *propertyRepo) ListAllProperties(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" ORDER BY slug")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNoRowsUpdated
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectProperty() string {
	return `
		SELECT id, property_name, slug, listing_url, source_platform, time_zone, created_at
		FROM properties`
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	if err := row.Scan(
		&p.ID, &p.PropertyName, &p.Slug,
		&p.ListingURL, &p.SourcePlatform, &p.TimeZone,
		&p.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
