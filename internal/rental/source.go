package rental

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvariant is returned when a row's casual and registered counts do not
// add up to its total.
var ErrInvariant = errors.New("casual + registered != total")

// ErrInvalidHour is returned when an hourly row's hour is outside 0..23.
var ErrInvalidHour = errors.New("hour out of range")

// Source abstracts where the two tables come from (local CSV files, remote
// CSV over HTTP, a sqlite database).
type Source interface {
	Name() string
	Load(ctx context.Context) (Tables, error)
}

// Store is the contract the in-memory dataset store must satisfy.
type Store interface {
	Save(ds *Dataset)
	Current() (*Dataset, error)
}

// CheckInvariants verifies total = casual + registered on every row of both
// tables and that every hourly row has an hour in 0..23. Rows are numbered
// from 1 in source order.
func CheckInvariants(t Tables) error {
	for i, r := range t.Daily {
		if r.Casual+r.Registered != r.Total {
			return fmt.Errorf("%w: daily row %d (%s): %d + %d != %d",
				ErrInvariant, i+1, r.Date.Format("2006-01-02"), r.Casual, r.Registered, r.Total)
		}
	}
	for i, r := range t.Hourly {
		if r.Hour < 0 || r.Hour > 23 {
			return fmt.Errorf("%w: hourly row %d (%s): hr = %d",
				ErrInvalidHour, i+1, r.Date.Format("2006-01-02"), r.Hour)
		}
		if r.Casual+r.Registered != r.Total {
			return fmt.Errorf("%w: hourly row %d (%s %02d:00): %d + %d != %d",
				ErrInvariant, i+1, r.Date.Format("2006-01-02"), r.Hour, r.Casual, r.Registered, r.Total)
		}
	}
	return nil
}
