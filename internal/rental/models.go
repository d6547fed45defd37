package rental

import (
	"time"
)

// Column names a numeric column of the rental tables. The values match the
// column headers of the source data.
type Column string

const (
	ColumnTotal      Column = "cnt"
	ColumnCasual     Column = "casual"
	ColumnRegistered Column = "registered"
	ColumnWindspeed  Column = "windspeed"
)

// MetricColumns are the rider-count columns aggregated when no explicit
// column list is given.
var MetricColumns = []Column{ColumnTotal, ColumnCasual, ColumnRegistered}

// Record is one row of the daily table. Codes are kept as loaded; the label
// fields are filled by ApplyLabels.
type Record struct {
	Date       time.Time `json:"date"`
	Year       int       `json:"yr"`
	Month      int       `json:"mnth"`
	Season     int       `json:"season"`
	Weather    int       `json:"weathersit"`
	Holiday    bool      `json:"holiday"`
	WorkingDay bool      `json:"workingday"`
	Windspeed  float64   `json:"windspeed"`
	Casual     int       `json:"casual"`
	Registered int       `json:"registered"`
	Total      int       `json:"cnt"`

	YearLabel    string `json:"yearLabel"`
	SeasonLabel  string `json:"seasonLabel"`
	WeatherLabel string `json:"weatherLabel"`
}

// HourlyRecord is one row of the hourly table.
type HourlyRecord struct {
	Record
	Hour int `json:"hr"`
}

// Row is implemented by both table row types so filtering and aggregation
// work on either table.
type Row interface {
	Attributes() Record
	HourOfDay() (int, bool)
}

// Attributes returns the daily-level attributes of the row.
func (r Record) Attributes() Record { return r }

// HourOfDay reports false: daily rows carry no hour.
func (r Record) HourOfDay() (int, bool) { return 0, false }

// HourOfDay returns the hour of the row.
func (r HourlyRecord) HourOfDay() (int, bool) { return r.Hour, true }

// Value returns the numeric value of col. Unknown columns yield zero.
func (r Record) Value(col Column) float64 {
	switch col {
	case ColumnTotal:
		return float64(r.Total)
	case ColumnCasual:
		return float64(r.Casual)
	case ColumnRegistered:
		return float64(r.Registered)
	case ColumnWindspeed:
		return r.Windspeed
	default:
		return 0
	}
}

// Tables holds the two source tables in source order.
type Tables struct {
	Daily  []Record
	Hourly []HourlyRecord
}

// Dataset is an immutable, labelled snapshot of both tables. A reload builds
// a new Dataset rather than mutating the current one.
type Dataset struct {
	Version  string
	Source   string
	LoadedAt time.Time
	Tables
}
