package rental

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/i474232898/bikeshare-analytics/internal/log"
)

// Service orchestrates loading the dataset and evaluating selections against
// the current snapshot.
type Service struct {
	store  Store
	source Source

	// reloadMu serialises Reload so an older load never replaces a newer one.
	reloadMu sync.Mutex
}

// NewService creates a new Service.
func NewService(store Store, source Source) *Service {
	return &Service{
		store:  store,
		source: source,
	}
}

// Reload loads both tables from the source, checks them, labels them and
// stores them as a new Dataset. On failure the current Dataset is left in
// place.
func (s *Service) Reload(ctx context.Context) (*Dataset, error) {
	if s.source == nil {
		return nil, errors.New("no dataset source configured")
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	started := time.Now()
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load from %s: %w", s.source.Name(), err)
	}
	if err := CheckInvariants(tables); err != nil {
		return nil, err
	}

	if report := ApplyLabels(&tables); !report.Empty() {
		log.Warnw("out-of-domain codes labelled Unknown",
			"source", s.source.Name(),
			"year", report.Year,
			"season", report.Season,
			"weather", report.Weather,
		)
	}

	ds := &Dataset{
		Version:  uuid.NewString(),
		Source:   s.source.Name(),
		LoadedAt: time.Now().UTC(),
		Tables:   tables,
	}
	s.store.Save(ds)

	log.Infow("dataset loaded",
		"source", ds.Source,
		"version", ds.Version,
		"daily", len(ds.Daily),
		"hourly", len(ds.Hourly),
		"elapsed", time.Since(started),
	)
	return ds, nil
}

// Dataset returns the current snapshot.
func (s *Service) Dataset() (*Dataset, error) {
	return s.store.Current()
}

// Options lists the filter values present in the dataset.
type Options struct {
	DatasetVersion string      `json:"datasetVersion"`
	LoadedAt       time.Time   `json:"loadedAt"`
	Years          []string    `json:"years"`
	Seasons        []string    `json:"seasons"`
	Weathers       []string    `json:"weathers"`
	Riders         []RiderType `json:"riders"`
	DailyRows      int         `json:"dailyRows"`
	HourlyRows     int         `json:"hourlyRows"`
}

// Options returns the sorted distinct labels of the daily table.
func (s *Service) Options() (Options, error) {
	ds, err := s.store.Current()
	if err != nil {
		return Options{}, err
	}

	distinct := func(label func(Record) string) []string {
		out := lo.Uniq(lo.Map(ds.Daily, func(r Record, _ int) string { return label(r) }))
		sort.Strings(out)
		return out
	}

	return Options{
		DatasetVersion: ds.Version,
		LoadedAt:       ds.LoadedAt,
		Years:          distinct(func(r Record) string { return r.YearLabel }),
		Seasons:        distinct(func(r Record) string { return r.SeasonLabel }),
		Weathers:       distinct(func(r Record) string { return r.WeatherLabel }),
		Riders:         RiderTypes(),
		DailyRows:      len(ds.Daily),
		HourlyRows:     len(ds.Hourly),
	}, nil
}

// snapshot validates sel and returns the dataset every computation for this
// request reads from.
func (s *Service) snapshot(sel Selection) (*Dataset, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return s.store.Current()
}

// Report evaluates sel against the current dataset.
func (s *Service) Report(sel Selection) (Report, error) {
	ds, err := s.snapshot(sel)
	if err != nil {
		return Report{}, err
	}

	col := sel.Rider.Column()
	daily := Filter(ds.Daily, sel)
	hourly := Filter(ds.Hourly, sel)

	dailyRep, err := BuildDaily(daily, col)
	if err != nil {
		return Report{}, err
	}
	hourlyRep, err := BuildHourly(hourly, sel.Rider)
	if err != nil {
		return Report{}, err
	}

	id := uuid.NewString()
	log.Debugw("report built",
		"id", id,
		"version", ds.Version,
		"rider", sel.Rider,
		"daily", len(daily),
		"hourly", len(hourly),
	)

	return Report{
		ID:             id,
		DatasetVersion: ds.Version,
		Selection:      sel,
		Metric:         col,
		Summary:        BuildSummary(daily, col),
		Daily:          dailyRep,
		Hourly:         hourlyRep,
	}, nil
}

// Summary returns only the KPIs for sel.
func (s *Service) Summary(sel Selection) (Summary, error) {
	ds, err := s.snapshot(sel)
	if err != nil {
		return Summary{}, err
	}
	return BuildSummary(Filter(ds.Daily, sel), sel.Rider.Column()), nil
}

// Daily returns only the daily section for sel.
func (s *Service) Daily(sel Selection) (DailyReport, error) {
	ds, err := s.snapshot(sel)
	if err != nil {
		return DailyReport{}, err
	}
	return BuildDaily(Filter(ds.Daily, sel), sel.Rider.Column())
}

// Hourly returns only the hourly section for sel.
func (s *Service) Hourly(sel Selection) (HourlyReport, error) {
	ds, err := s.snapshot(sel)
	if err != nil {
		return HourlyReport{}, err
	}
	return BuildHourly(Filter(ds.Hourly, sel), sel.Rider)
}

// DailyRecords returns the filtered daily rows.
func (s *Service) DailyRecords(sel Selection) ([]Record, error) {
	ds, err := s.snapshot(sel)
	if err != nil {
		return nil, err
	}
	return Filter(ds.Daily, sel), nil
}

// HourlyRecords returns the filtered hourly rows.
func (s *Service) HourlyRecords(sel Selection) ([]HourlyRecord, error) {
	ds, err := s.snapshot(sel)
	if err != nil {
		return nil, err
	}
	return Filter(ds.Hourly, sel), nil
}
