package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/bikeshare-analytics/internal/log"
)

// Supported dataset sources.
const (
	SourceCSV    = "csv"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

type AppConfig struct {
	Port string

	// DataSource selects where the daily and hourly tables are read from.
	DataSource string

	DailyCSV  string
	HourlyCSV string

	DailyURL  string
	HourlyURL string

	SQLitePath  string
	DailyTable  string
	HourlyTable string

	// HTTPTimeout bounds each outbound request of the http source.
	HTTPTimeout time.Duration

	// ReloadInterval re-reads the source periodically (0 = load once).
	ReloadInterval time.Duration

	Debug bool
}

// fileConfig mirrors AppConfig for the optional YAML file. Environment
// variables override every value set here.
type fileConfig struct {
	Port       string `yaml:"port"`
	DataSource string `yaml:"data_source"`
	CSV        struct {
		Daily  string `yaml:"daily"`
		Hourly string `yaml:"hourly"`
	} `yaml:"csv"`
	HTTP struct {
		Daily   string `yaml:"daily"`
		Hourly  string `yaml:"hourly"`
		Timeout string `yaml:"timeout"`
	} `yaml:"http"`
	SQLite struct {
		Path        string `yaml:"path"`
		DailyTable  string `yaml:"daily_table"`
		HourlyTable string `yaml:"hourly_table"`
	} `yaml:"sqlite"`
	ReloadInterval string `yaml:"reload_interval"`
	Debug          bool   `yaml:"debug"`
}

// Load reads configuration from environment (and .env) with sensible
// defaults. CONFIG_FILE may name a YAML file supplying the defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file found or error loading it: %v", err)
	}

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(b, &file); err != nil {
			return nil, fmt.Errorf("parse CONFIG_FILE %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	cfg.Port = getenvDefault("PORT", orDefault(file.Port, "8080"))
	cfg.DataSource = getenvDefault("DATA_SOURCE", orDefault(file.DataSource, SourceCSV))

	cfg.DailyCSV = getenvDefault("DAILY_CSV", orDefault(file.CSV.Daily, "data/day_final.csv"))
	cfg.HourlyCSV = getenvDefault("HOURLY_CSV", orDefault(file.CSV.Hourly, "data/hour_final.csv"))

	cfg.DailyURL = getenvDefault("DAILY_URL", file.HTTP.Daily)
	cfg.HourlyURL = getenvDefault("HOURLY_URL", file.HTTP.Hourly)

	cfg.SQLitePath = getenvDefault("SQLITE_PATH", orDefault(file.SQLite.Path, "data/bikeshare.db"))
	cfg.DailyTable = getenvDefault("DAILY_TABLE", orDefault(file.SQLite.DailyTable, "day"))
	cfg.HourlyTable = getenvDefault("HOURLY_TABLE", orDefault(file.SQLite.HourlyTable, "hour"))

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", orDefault(file.HTTP.Timeout, "15s")))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	reload, err := time.ParseDuration(getenvDefault("RELOAD_INTERVAL", orDefault(file.ReloadInterval, "0s")))
	if err != nil {
		return nil, fmt.Errorf("invalid RELOAD_INTERVAL: %w", err)
	}
	cfg.ReloadInterval = reload

	cfg.Debug = getenvBool("LOG_DEBUG", file.Debug)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.DailyCSV == "" || c.HourlyCSV == "" {
			return errors.New("DAILY_CSV and HOURLY_CSV are required for the csv source")
		}
	case SourceHTTP:
		if c.DailyURL == "" || c.HourlyURL == "" {
			return errors.New("DAILY_URL and HOURLY_URL are required for the http source")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite source")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (want csv, http or sqlite)", c.DataSource)
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if c.ReloadInterval < 0 {
		return errors.New("RELOAD_INTERVAL must not be negative")
	}
	return nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
