// Package worker runs document mapping jobs concurrently. Each document's
// resolution is independent and read-only against the shared concept index
// and reference dictionary, so workers need no locking beyond the
// position-indexed result slice.
package worker

import (
	"context"
	"sync"

	"github.com/mkhairi/xbrlfacts/internal/pipeline"
)

// MapFunc maps a single ingested document file
type MapFunc func(path string) (*pipeline.MapResult, error)

// BatchResult pairs a document path with its mapping outcome
type BatchResult struct {
	Path   string
	Result *pipeline.MapResult
	Err    error
}

// BatchProcessor maps multiple documents concurrently
type BatchProcessor struct {
	mapFn   MapFunc
	workers int
}

// NewBatchProcessor creates a batch processor with the given worker count
func NewBatchProcessor(fn MapFunc, workers int) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	return &BatchProcessor{mapFn: fn, workers: workers}
}

// Process maps all documents and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, paths []string) []BatchResult {
	if len(paths) == 0 {
		return []BatchResult{}
	}

	results := make([]BatchResult, len(paths))
	var wg sync.WaitGroup

	// Semaphore bounds concurrent mapping jobs.
	semaphore := make(chan struct{}, b.workers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = BatchResult{Path: p, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			res, err := b.mapFn(p)
			results[idx] = BatchResult{Path: p, Result: res, Err: err}
		}(i, path)
	}

	wg.Wait()
	return results
}
