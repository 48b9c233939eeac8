package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/pipeline"
)

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	fn := func(path string) (*pipeline.MapResult, error) {
		return &pipeline.MapResult{Report: &model.Report{SourceName: path}}, nil
	}
	b := NewBatchProcessor(fn, 4)

	paths := []string{"a.json", "b.json", "c.json", "d.json", "e.json"}
	results := b.Process(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("Expected %d results, got %d", len(paths), len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("Result %d: expected %q, got %q", i, paths[i], r.Path)
		}
		if r.Err != nil || r.Result.Report.SourceName != paths[i] {
			t.Errorf("Result %d: unexpected outcome %+v", i, r)
		}
	}
}

func TestBatchProcessor_ErrorsDoNotStopBatch(t *testing.T) {
	fn := func(path string) (*pipeline.MapResult, error) {
		if path == "bad.json" {
			return nil, errors.New("decode failed")
		}
		return &pipeline.MapResult{}, nil
	}
	b := NewBatchProcessor(fn, 2)

	results := b.Process(context.Background(), []string{"ok.json", "bad.json", "also-ok.json"})

	if results[0].Err != nil || results[2].Err != nil {
		t.Error("Expected healthy documents to succeed")
	}
	if results[1].Err == nil {
		t.Error("Expected error to surface for bad document")
	}
}

func TestBatchProcessor_BoundsConcurrency(t *testing.T) {
	var active, peak int64
	fn := func(path string) (*pipeline.MapResult, error) {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		defer atomic.AddInt64(&active, -1)
		return &pipeline.MapResult{}, nil
	}
	b := NewBatchProcessor(fn, 2)

	paths := make([]string, 20)
	for i := range paths {
		paths[i] = "doc.json"
	}
	b.Process(context.Background(), paths)

	if p := atomic.LoadInt64(&peak); p > 2 {
		t.Errorf("Expected at most 2 concurrent jobs, observed %d", p)
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn := func(path string) (*pipeline.MapResult, error) {
		return &pipeline.MapResult{}, nil
	}
	// A single worker with a full semaphore forces the cancellation path.
	b := NewBatchProcessor(fn, 1)
	results := b.Process(ctx, []string{"a.json", "b.json", "c.json"})

	cancelled := 0
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Error("Expected at least one job to observe cancellation")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(func(string) (*pipeline.MapResult, error) { return nil, nil }, 0)
	results := b.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}
