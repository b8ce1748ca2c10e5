package pipeline

import (
	"context"

	"github.com/lnielsen-cern/docmeta/internal/meta"
)

// fetchCandidates resolves and fetches registry records for every mined
// candidate, one buffered channel per candidate so the adoption loop
// can consume strictly in mining order. With Workers below 2 this
// degenerates to a single worker draining the queue sequentially, which
// preserves the one-call-in-flight behavior exactly.
//
// Each channel receives exactly one record. Workers outlive an early
// adoption only until their in-flight call returns; the buffered send
// never blocks them.
func (p *Pipeline) fetchCandidates(ctx context.Context, candidates []string) []chan meta.Record {
	results := make([]chan meta.Record, len(candidates))
	for i := range results {
		results[i] = make(chan meta.Record, 1)
	}

	workers := p.cfg.Workers
	if workers < 2 {
		workers = 1
	}

	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				if ctx.Err() != nil {
					results[i] <- meta.Record{}
					continue
				}

				rec, _ := p.fetchByAgency(ctx, candidates[i])
				results[i] <- rec
			}
		}()
	}

	go func() {
		defer close(jobs)

		for i := range candidates {
			select {
			case jobs <- i:
			case <-ctx.Done():
				// Unclaimed candidates still need their send so the
				// adoption loop never deadlocks.
				results[i] <- meta.Record{}
			}
		}
	}()

	return results
}
