package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sanmit243/KodJobs/internal/catalog"
	"github.com/Sanmit243/KodJobs/internal/model"
)

type fixedCatalog struct {
	pages   int
	details int
}

func (f *fixedCatalog) FetchPage(_ context.Context, _ int) ([]model.Job, error) {
	f.pages++
	return []model.Job{sampleJob(1)}, nil
}

func (f *fixedCatalog) FetchByID(_ context.Context, id int) (*model.Job, error) {
	f.details++
	j := sampleJob(id)
	return &j, nil
}

// A dead Redis must never break reads: every cache error falls through to
// the upstream catalog.
func TestCachedCatalog_FallsThroughWhenRedisUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1", // nothing listens here
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	upstream := &fixedCatalog{}
	cached := catalog.NewCachedCatalog(upstream, rdb, time.Minute)

	jobs, err := cached.FetchPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(jobs) != 1 || upstream.pages != 1 {
		t.Errorf("jobs=%d upstream calls=%d, want 1 and 1", len(jobs), upstream.pages)
	}

	job, err := cached.FetchByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if job.ID != 42 || upstream.details != 1 {
		t.Errorf("job id=%d upstream calls=%d, want 42 and 1", job.ID, upstream.details)
	}
}
