// Package scheduler wires up the cron job that keeps the job-feed cache
// warm, so the dashboard's first page never waits on the upstream API.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Sanmit243/KodJobs/internal/catalog"
)

// Scheduler wraps robfig/cron and periodically pre-fetches page 1 through
// the (cached) catalog.
type Scheduler struct {
	cron    *cron.Cron
	catalog catalog.Catalog
	spec    string // cron spec, e.g. "@every 15m"
}

// New creates a Scheduler that fires every intervalMinutes minutes.
func New(cat catalog.Catalog, intervalMinutes int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		catalog: cat,
		spec:    fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the warm-up job and starts the scheduler. Also runs one
// warm-up immediately so the cache is populated without waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.warm(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Warm immediately on startup (non-blocking)
	go s.warm(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) warm(ctx context.Context) {
	jobs, err := s.catalog.FetchPage(ctx, 1)
	if err != nil {
		log.Printf("[scheduler] Warm-up fetch failed: %v", err)
		return
	}
	log.Printf("[scheduler] Cache warm — %d job(s) on page 1", len(jobs))
}
