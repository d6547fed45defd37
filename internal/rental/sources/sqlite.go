package sources

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const recordColumns = `dteday, yr, mnth, season, weathersit, holiday, workingday, windspeed, casual, registered, cnt`

// SQLiteSource reads both tables from a sqlite database, in rowid order.
type SQLiteSource struct {
	path        string
	dailyTable  string
	hourlyTable string
}

// NewSQLiteSource validates the table names, which are interpolated into the
// queries.
func NewSQLiteSource(path, dailyTable, hourlyTable string) (*SQLiteSource, error) {
	for _, t := range []string{dailyTable, hourlyTable} {
		if !tableName.MatchString(t) {
			return nil, fmt.Errorf("invalid table name %q", t)
		}
	}
	return &SQLiteSource{path: path, dailyTable: dailyTable, hourlyTable: hourlyTable}, nil
}

func (s *SQLiteSource) Name() string {
	return "sqlite"
}

func (s *SQLiteSource) Load(ctx context.Context) (rental.Tables, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return rental.Tables{}, err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return rental.Tables{}, fmt.Errorf("open %s: %w", s.path, err)
	}

	var t rental.Tables

	t.Daily = []rental.Record{}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY rowid`, recordColumns, s.dailyTable)
	if err := queryRows(ctx, db, query, func(rows *sql.Rows) error {
		var r sqlRecord
		if err := rows.Scan(r.dest()...); err != nil {
			return err
		}
		rec, err := r.record()
		if err != nil {
			return err
		}
		t.Daily = append(t.Daily, rec)
		return nil
	}); err != nil {
		return rental.Tables{}, fmt.Errorf("table %s: %w", s.dailyTable, err)
	}

	t.Hourly = []rental.HourlyRecord{}
	query = fmt.Sprintf(`SELECT %s, hr FROM %s ORDER BY rowid`, recordColumns, s.hourlyTable)
	if err := queryRows(ctx, db, query, func(rows *sql.Rows) error {
		var (
			r  sqlRecord
			hr int
		)
		if err := rows.Scan(append(r.dest(), &hr)...); err != nil {
			return err
		}
		rec, err := r.record()
		if err != nil {
			return err
		}
		t.Hourly = append(t.Hourly, rental.HourlyRecord{Record: rec, Hour: hr})
		return nil
	}); err != nil {
		return rental.Tables{}, fmt.Errorf("table %s: %w", s.hourlyTable, err)
	}

	return t, nil
}

func queryRows(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// sqlRecord holds one scanned row; dteday is stored as text.
type sqlRecord struct {
	date       string
	rec        rental.Record
	holiday    int
	workingDay int
}

func (r *sqlRecord) dest() []any {
	return []any{
		&r.date, &r.rec.Year, &r.rec.Month, &r.rec.Season, &r.rec.Weather,
		&r.holiday, &r.workingDay, &r.rec.Windspeed,
		&r.rec.Casual, &r.rec.Registered, &r.rec.Total,
	}
}

func (r *sqlRecord) record() (rental.Record, error) {
	date, err := parseDate(r.date)
	if err != nil {
		return rental.Record{}, err
	}
	if !finite(r.rec.Windspeed) {
		return rental.Record{}, fmt.Errorf("column windspeed: invalid number %v", r.rec.Windspeed)
	}
	rec := r.rec
	rec.Date = date
	rec.Holiday = r.holiday != 0
	rec.WorkingDay = r.workingDay != 0
	return rec, nil
}
