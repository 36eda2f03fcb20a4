package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/vacancy-watch/internal/models"
)

/* ---------- in-memory snapshot repo ---------- */

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Snapshot
	upsertErr error
	upserts   int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{rows: map[string]*models.Snapshot{}}
}

func snapKey(propertyID uuid.UUID, date time.Time) string {
	return propertyID.String() + "|" + date.Format("2006-01-02")
}

func (r *fakeSnapshotRepo) Upsert(_ context.Context, s *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	cp := *s
	cp.Units = append([]models.CanonicalUnit(nil), s.Units...)
	cp.UnitCount = len(cp.Units)
	cp.CreatedAt = time.Now()
	r.rows[snapKey(s.PropertyID, s.SnapshotDate)] = &cp
	return nil
}

func (r *fakeSnapshotRepo) GetLatestBefore(_ context.Context, propertyID uuid.UUID, date time.Time) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *models.Snapshot
	for _, s := range r.rows {
		if s.PropertyID != propertyID || !s.SnapshotDate.Before(date) {
			continue
		}
		if best == nil || s.SnapshotDate.After(best.SnapshotDate) {
			best = s
		}
	}
	return best, nil
}

func (r *fakeSnapshotRepo) GetByDate(_ context.Context, propertyID uuid.UUID, date time.Time) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[snapKey(propertyID, date)], nil
}

func (r *fakeSnapshotRepo) ListByProperty(_ context.Context, propertyID uuid.UUID, _ int) ([]*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Snapshot
	for _, s := range r.rows {
		if s.PropertyID == propertyID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SnapshotDate.After(out[j].SnapshotDate) })
	return out, nil
}

/* ---------- in-memory unit-event repo ---------- */

type fakeUnitEventRepo struct {
	mu         sync.Mutex
	rows       map[string][]models.UnitEvent
	replaceErr error
	replaces   int
}

func newFakeUnitEventRepo() *fakeUnitEventRepo {
	return &fakeUnitEventRepo{rows: map[string][]models.UnitEvent{}}
}

func eventKey(propertyID uuid.UUID, date time.Time, source string) string {
	return propertyID.String() + "|" + date.Format("2006-01-02") + "|" + source
}

func (r *fakeUnitEventRepo) ReplaceForRun(
	_ context.Context,
	propertyID uuid.UUID,
	date time.Time,
	source string,
	events []models.UnitEvent,
) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return 0, r.replaceErr
	}
	r.replaces++
	r.rows[eventKey(propertyID, date, source)] = append([]models.UnitEvent(nil), events...)
	return len(events), nil
}

func (r *fakeUnitEventRepo) ListForDate(_ context.Context, propertyID uuid.UUID, date time.Time) ([]*models.UnitEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.UnitEvent
	prefix := propertyID.String() + "|" + date.Format("2006-01-02") + "|"
	for key, events := range r.rows {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			for i := range events {
				e := events[i]
				out = append(out, &e)
			}
		}
	}
	return out, nil
}

func (r *fakeUnitEventRepo) ListForDateAndSource(_ context.Context, propertyID uuid.UUID, date time.Time, source string) ([]*models.UnitEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.rows[eventKey(propertyID, date, source)]
	out := make([]*models.UnitEvent, 0, len(events))
	for i := range events {
		e := events[i]
		out = append(out, &e)
	}
	return out, nil
}
