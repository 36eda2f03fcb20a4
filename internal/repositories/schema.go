package repositories

import "context"

// EnsureSchema creates the service's tables when missing. The service
// owns exactly these three tables, so the DDL lives here instead of an
// external migration tool; every statement is idempotent.
func EnsureSchema(ctx context.Context, db DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS properties (
			id              UUID PRIMARY KEY,
			property_name   TEXT NOT NULL,
			slug            TEXT NOT NULL UNIQUE,
			listing_url     TEXT NOT NULL DEFAULT '',
			source_platform TEXT NOT NULL DEFAULT '',
			time_zone       TEXT NOT NULL DEFAULT 'UTC',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id            UUID PRIMARY KEY,
			property_id   UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			snapshot_date DATE NOT NULL,
			units         JSONB NOT NULL DEFAULT '[]',
			unit_count    INT NOT NULL DEFAULT 0,
			suspect_empty BOOLEAN NOT NULL DEFAULT FALSE,
			source        TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (property_id, snapshot_date)
		)`,
		`CREATE TABLE IF NOT EXISTS unit_events (
			id          UUID PRIMARY KEY,
			property_id UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			event_date  DATE NOT NULL,
			unit_key    TEXT NOT NULL,
			unit_number TEXT NOT NULL DEFAULT '',
			event_type  TEXT NOT NULL,
			source      TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_unit_events_replace_key
			ON unit_events (property_id, event_date, source)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_property_date
			ON snapshots (property_id, snapshot_date DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
