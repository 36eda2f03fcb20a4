package services

import (
	"context"
	"sync"
	"time"

	"github.com/poofware/vacancy-watch/internal/adapters"
	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/utils"
)

// BatchSummary aggregates per-property outcomes of one sweep.
type BatchSummary struct {
	Started      time.Time   `json:"started"`
	Finished     time.Time   `json:"finished"`
	Succeeded    int         `json:"succeeded"`
	SuspectEmpty int         `json:"suspect_empty"`
	Failed       int         `json:"failed"`
	TotalEvents  int         `json:"total_events"`
	Results      []RunResult `json:"results"`
}

// BatchService sweeps every managed property through the run pipeline.
// Concurrency is deliberately low and bounded: each in-flight run holds
// a scrape session against a third-party site, and hammering those in
// parallel gets the extractor blocked.
type BatchService struct {
	propRepo    repositories.PropertyRepository
	runService  *RunService
	adapter     adapters.Adapter
	concurrency int
}

func NewBatchService(
	propRepo repositories.PropertyRepository,
	runService *RunService,
	adapter adapters.Adapter,
	concurrency int,
) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchService{
		propRepo:    propRepo,
		runService:  runService,
		adapter:     adapter,
		concurrency: concurrency,
	}
}

// RunAll runs the pipeline for every property. Property runs are
// independent: one failure is recorded and the sweep moves on. A zero
// date means each property's local calendar day.
func (s *BatchService) RunAll(ctx context.Context, date time.Time, source string) (*BatchSummary, error) {
	props, err := s.propRepo.ListAllProperties(ctx)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{Started: time.Now()}
	results := make([]RunResult, len(props))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)
	for i, prop := range props {
		wg.Add(1)
		go func(i int, prop *models.Property) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.runService.RunProperty(ctx, prop, s.adapter, date, source)
		}(i, prop)
	}
	wg.Wait()

	for _, r := range results {
		switch r.State {
		case RunSucceeded:
			summary.Succeeded++
		case RunSuspectEmpty:
			summary.SuspectEmpty++
		default:
			summary.Failed++
			utils.Logger.WithError(r.Err()).Errorf("Run failed for property %s", r.PropertySlug)
		}
		summary.TotalEvents += r.EventsWritten
	}
	summary.Results = results
	summary.Finished = time.Now()

	utils.Logger.Infof(
		"Batch sweep finished: %d succeeded, %d suspect-empty, %d failed, %d events written",
		summary.Succeeded, summary.SuspectEmpty, summary.Failed, summary.TotalEvents,
	)
	return summary, nil
}
