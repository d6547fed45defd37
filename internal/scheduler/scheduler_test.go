package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(context.Context) (*rental.Dataset, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &rental.Dataset{Version: "v"}, nil
}

func TestStartWithoutIntervalIsNoop(t *testing.T) {
	r := &countingReloader{}
	s := New(0, r)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := r.calls.Load(); got != 0 {
		t.Fatalf("expected no reloads, got %d", got)
	}
}

func TestStartReloadsPeriodically(t *testing.T) {
	r := &countingReloader{err: errors.New("source down")}
	s := New(20*time.Millisecond, r)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least 2 reloads, got %d", r.calls.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
