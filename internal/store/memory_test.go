package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}

	s.Save(&rental.Dataset{Version: "a"})
	s.Save(nil)

	ds, err := s.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Version != "a" {
		t.Fatalf("expected version a, got %s", ds.Version)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	s.Save(&rental.Dataset{Version: "0"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Save(&rental.Dataset{Version: "next"})
		}()
		go func() {
			defer wg.Done()
			if _, err := s.Current(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}
