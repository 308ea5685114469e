package textgen

import (
	"context"
	"errors"
	"testing"
)

func TestBatch(t *testing.T) {
	d := setupDraw(t, 3)
	names, err := Batch(context.Background(), d, 25)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}
	if len(names) != 25 {
		t.Errorf("expected 25 names, got %d", len(names))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Batch(ctx, d, 5); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStream(t *testing.T) {
	d := setupDraw(t, 4)
	var count int
	for res := range Stream(context.Background(), d, 10) {
		if res.Err != nil {
			t.Fatalf("stream error: %v", res.Err)
		}
		count++
	}
	if count != 10 {
		t.Errorf("expected 10 results, got %d", count)
	}
}

func TestStreamStopsOnError(t *testing.T) {
	untrained := NewRandomDraw(Filter{}, NewSource(1))
	var results []Result
	for res := range Stream(context.Background(), untrained, 10) {
		results = append(results, res)
	}
	if len(results) != 1 || !errors.Is(results[0].Err, ErrNotTrained) {
		t.Errorf("expected a single ErrNotTrained result, got %+v", results)
	}
}

func TestStreamCancel(t *testing.T) {
	d := setupDraw(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	results := Stream(ctx, d, 0)
	<-results
	cancel()
	for range results {
	}
}
