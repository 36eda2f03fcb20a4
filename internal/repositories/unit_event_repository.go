package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/vacancy-watch/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type UnitEventRepository interface {
	// ReplaceForRun deletes every event row matching the
	// (property, event_date, source) tuple and bulk-inserts the given
	// rows, all inside one transaction. Rerunning the pipeline for the
	// same tuple therefore leaves exactly the latest diff in place,
	// never a union of runs. Events from other source labels are
	// untouched.
	ReplaceForRun(ctx context.Context, propertyID uuid.UUID, date time.Time, source string, events []models.UnitEvent) (int, error)

	ListForDate(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]*models.UnitEvent, error)
	ListForDateAndSource(ctx context.Context, propertyID uuid.UUID, date time.Time, source string) ([]*models.UnitEvent, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type unitEventRepo struct {
	db DB
}

func NewUnitEventRepository(db DB) UnitEventRepository {
	return &unitEventRepo{db: db}
}

func (r *unitEventRepo) ReplaceForRun(
	ctx context.Context,
	propertyID uuid.UUID,
	date time.Time,
	source string,
	events []models.UnitEvent,
) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM unit_events
		WHERE property_id=$1 AND event_date=$2 AND source=$3
	`, propertyID, date, source); err != nil {
		return 0, err
	}

	for i := range events {
		e := &events[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO unit_events (
				id, property_id, event_date, unit_key, unit_number, event_type, source, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
		`, e.ID, e.PropertyID, e.EventDate, e.UnitKey, e.UnitNumber, e.EventType, e.Source); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(events), nil
}

func (r *unitEventRepo) ListForDate(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]*models.UnitEvent, error) {
	rows, err := r.db.Query(ctx, baseSelectUnitEvent()+`
		WHERE property_id=$1 AND event_date=$2
		ORDER BY event_type, unit_key`, propertyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnitEvents(rows)
}

func (r *unitEventRepo) ListForDateAndSource(ctx context.Context, propertyID uuid.UUID, date time.Time, source string) ([]*models.UnitEvent, error) {
	rows, err := r.db.Query(ctx, baseSelectUnitEvent()+`
		WHERE property_id=$1 AND event_date=$2 AND source=$3
		ORDER BY event_type, unit_key`, propertyID, date, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnitEvents(rows)
}

/* ---------- internals ---------- */

func baseSelectUnitEvent() string {
	return `
		SELECT id, property_id, event_date, unit_key, unit_number, event_type, source, created_at
		FROM unit_events`
}

func scanUnitEvent(row pgx.Row) (*models.UnitEvent, error) {
	var e models.UnitEvent
	if err := row.Scan(
		&e.ID, &e.PropertyID, &e.EventDate,
		&e.UnitKey, &e.UnitNumber, &e.EventType,
		&e.Source, &e.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func scanUnitEvents(rows pgx.Rows) ([]*models.UnitEvent, error) {
	var out []*models.UnitEvent
	for rows.Next() {
		e, err := scanUnitEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
