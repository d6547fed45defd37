package sources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

// HTTPSource downloads both tables as CSV from remote URLs.
type HTTPSource struct {
	name      string
	dailyURL  string
	hourlyURL string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

func NewHTTPSource(client *http.Client, dailyURL, hourlyURL string) *HTTPSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-http",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		name:      "http",
		dailyURL:  dailyURL,
		hourlyURL: hourlyURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return s.name
}

func (s *HTTPSource) Load(ctx context.Context) (rental.Tables, error) {
	var (
		t   rental.Tables
		err error
	)

	if err = s.fetch(ctx, s.dailyURL, func(resp *http.Response) (err error) {
		t.Daily, err = DecodeDaily(resp.Body)
		return err
	}); err != nil {
		return rental.Tables{}, err
	}
	if err = s.fetch(ctx, s.hourlyURL, func(resp *http.Response) (err error) {
		t.Hourly, err = DecodeHourly(resp.Body)
		return err
	}); err != nil {
		return rental.Tables{}, err
	}
	return t, nil
}

func (s *HTTPSource) fetch(ctx context.Context, url string, decode func(*http.Response) error) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := decode(resp); err != nil {
		return fmt.Errorf("%s: %w", url, err)
	}
	return nil
}
