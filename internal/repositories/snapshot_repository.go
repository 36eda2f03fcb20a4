package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/vacancy-watch/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type SnapshotRepository interface {
	// Upsert inserts the snapshot or, when a row for the same
	// (property, snapshot_date) already exists, overwrites it in the
	// same statement. Concurrent reruns for one property-day can
	// therefore never produce two rows or a half-written one.
	Upsert(ctx context.Context, s *models.Snapshot) error

	// GetLatestBefore returns the most recent snapshot with a date
	// strictly before the target, or nil when the property has none.
	// This is the comparison baseline for diffing: a same-day rerun
	// never diffs against its own output.
	GetLatestBefore(ctx context.Context, propertyID uuid.UUID, date time.Time) (*models.Snapshot, error)

	GetByDate(ctx context.Context, propertyID uuid.UUID, date time.Time) (*models.Snapshot, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, limit int) ([]*models.Snapshot, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type snapshotRepo struct {
	db DB
}

func NewSnapshotRepository(db DB) SnapshotRepository {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) Upsert(ctx context.Context, s *models.Snapshot) error {
	units := s.Units
	if units == nil {
		units = []models.CanonicalUnit{}
	}
	unitsJSON, err := json.Marshal(units)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO snapshots (
            id, property_id, snapshot_date, units, unit_count, suspect_empty, source, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
        ON CONFLICT (property_id, snapshot_date) DO UPDATE SET
            units         = EXCLUDED.units,
            unit_count    = EXCLUDED.unit_count,
            suspect_empty = EXCLUDED.suspect_empty,
            source        = EXCLUDED.source,
            created_at    = NOW()
    `,
		s.ID,
		s.PropertyID,
		s.SnapshotDate,
		unitsJSON,
		len(units),
		s.SuspectEmpty,
		s.Source,
	)
	return err
}

func (r *snapshotRepo) GetLatestBefore(ctx context.Context, propertyID uuid.UUID, date time.Time) (*models.Snapshot, error) {
	row := r.db.QueryRow(ctx, baseSelectSnapshot()+`
		WHERE property_id=$1 AND snapshot_date < $2
		ORDER BY snapshot_date DESC
		LIMIT 1`, propertyID, date)
	return scanSnapshot(row)
}

func (r *snapshotRepo) GetByDate(ctx context.Context, propertyID uuid.UUID, date time.Time) (*models.Snapshot, error) {
	row := r.db.QueryRow(ctx, baseSelectSnapshot()+`
		WHERE property_id=$1 AND snapshot_date=$2`, propertyID, date)
	return scanSnapshot(row)
}

func (r *snapshotRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID, limit int) ([]*models.Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(ctx, baseSelectSnapshot()+`
		WHERE property_id=$1
		ORDER BY snapshot_date DESC
		LIMIT $2`, propertyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

/* ---------- internals ---------- */

func baseSelectSnapshot() string {
	return `
		SELECT id, property_id, snapshot_date, units, unit_count, suspect_empty, source, created_at
		FROM snapshots`
}

func scanSnapshot(row pgx.Row) (*models.Snapshot, error) {
	var (
		s         models.Snapshot
		unitsJSON []byte
	)
	if err := row.Scan(
		&s.ID, &s.PropertyID, &s.SnapshotDate,
		&unitsJSON, &s.UnitCount, &s.SuspectEmpty,
		&s.Source, &s.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(unitsJSON, &s.Units); err != nil {
		return nil, err
	}
	return &s, nil
}
