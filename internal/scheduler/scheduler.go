package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/bikeshare-analytics/internal/log"
	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

const reloadTimeout = 2 * time.Minute

// Reloader is satisfied by *rental.Service.
type Reloader interface {
	Reload(ctx context.Context) (*rental.Dataset, error)
}

// Scheduler periodically reloads the dataset from its source.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Reloader
	interval  time.Duration
}

// New creates a new Scheduler. A non-positive interval disables reloading.
func New(interval time.Duration, service Reloader) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the reload job and starts the underlying scheduler. The
// first run happens one interval after Start.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: reload interval not set; dataset stays fixed")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().WaitForSchedule().Do(s.reload)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Infow("scheduler: started", "interval", s.interval)
	return nil
}

func (s *Scheduler) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	if _, err := s.service.Reload(ctx); err != nil {
		log.Warnw("scheduler: reload failed, keeping current dataset", "error", err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
