package sources

import (
	"fmt"
	"net/http"

	"github.com/i474232898/bikeshare-analytics/internal/config"
	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

// New builds the source named by cfg.DataSource.
func New(cfg *config.AppConfig, client *http.Client) (rental.Source, error) {
	switch cfg.DataSource {
	case config.SourceCSV:
		return NewCSVSource(cfg.DailyCSV, cfg.HourlyCSV), nil
	case config.SourceHTTP:
		return NewHTTPSource(client, cfg.DailyURL, cfg.HourlyURL), nil
	case config.SourceSQLite:
		return NewSQLiteSource(cfg.SQLitePath, cfg.DailyTable, cfg.HourlyTable)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
