package sources

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/bikeshare-analytics/internal/common"
	"github.com/i474232898/bikeshare-analytics/internal/rental"
)

// Required columns. mnth is optional and falls back to the month of dteday.
var (
	dailyColumns  = []string{"dteday", "season", "yr", "holiday", "workingday", "weathersit", "windspeed", "casual", "registered", "cnt"}
	hourlyColumns = append(append([]string(nil), dailyColumns...), "hr")
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339, "1/2/2006"}

// CSVSource reads both tables from local CSV files.
type CSVSource struct {
	dailyPath  string
	hourlyPath string
}

func NewCSVSource(dailyPath, hourlyPath string) *CSVSource {
	return &CSVSource{dailyPath: dailyPath, hourlyPath: hourlyPath}
}

func (s *CSVSource) Name() string {
	return "csv"
}

func (s *CSVSource) Load(ctx context.Context) (rental.Tables, error) {
	var t rental.Tables

	if err := readFile(ctx, s.dailyPath, func(r io.Reader) (err error) {
		t.Daily, err = DecodeDaily(r)
		return err
	}); err != nil {
		return rental.Tables{}, err
	}
	if err := readFile(ctx, s.hourlyPath, func(r io.Reader) (err error) {
		t.Hourly, err = DecodeHourly(r)
		return err
	}); err != nil {
		return rental.Tables{}, err
	}
	return t, nil
}

func readFile(ctx context.Context, path string, decode func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := decode(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// DecodeDaily parses a daily table with a header row.
func DecodeDaily(r io.Reader) ([]rental.Record, error) {
	out := []rental.Record{}
	err := readTable(r, dailyColumns, func(row csvRow) error {
		rec, err := row.record()
		if err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// DecodeHourly parses an hourly table with a header row.
func DecodeHourly(r io.Reader) ([]rental.HourlyRecord, error) {
	out := []rental.HourlyRecord{}
	err := readTable(r, hourlyColumns, func(row csvRow) error {
		rec, err := row.record()
		if err != nil {
			return err
		}
		hr, err := row.integer("hr")
		if err != nil {
			return err
		}
		out = append(out, rental.HourlyRecord{Record: rec, Hour: hr})
		return nil
	})
	return out, err
}

func readTable(r io.Reader, required []string, fn func(row csvRow) error) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("empty table: no header row")
	}
	if err != nil {
		return err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[common.NormalizeHeader(h)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return fmt.Errorf("missing column %s", col)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return err
		}
		if err := fn(csvRow{idx: idx, rec: rec}); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

type csvRow struct {
	idx map[string]int
	rec []string
}

func (r csvRow) get(col string) (string, bool) {
	i, ok := r.idx[col]
	if !ok || i >= len(r.rec) {
		return "", false
	}
	return strings.TrimSpace(r.rec[i]), true
}

func (r csvRow) integer(col string) (int, error) {
	v, _ := r.get(col)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	// Exports sometimes write integer columns as 1.0.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("column %s: invalid integer %q", col, v)
	}
	return int(f), nil
}

// number rejects NaN and infinities, which ParseFloat accepts but JSON
// cannot encode.
func (r csvRow) number(col string) (float64, error) {
	v, _ := r.get(col)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		return 0, fmt.Errorf("column %s: invalid number %q", col, v)
	}
	return f, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (r csvRow) flag(col string) (bool, error) {
	n, err := r.integer(col)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r csvRow) date(col string) (time.Time, error) {
	v, _ := r.get(col)
	return parseDate(v)
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}

func (r csvRow) record() (rental.Record, error) {
	var (
		rec rental.Record
		err error
	)
	if rec.Date, err = r.date("dteday"); err != nil {
		return rec, err
	}
	if rec.Year, err = r.integer("yr"); err != nil {
		return rec, err
	}
	if rec.Season, err = r.integer("season"); err != nil {
		return rec, err
	}
	if rec.Weather, err = r.integer("weathersit"); err != nil {
		return rec, err
	}
	if rec.Holiday, err = r.flag("holiday"); err != nil {
		return rec, err
	}
	if rec.WorkingDay, err = r.flag("workingday"); err != nil {
		return rec, err
	}
	if rec.Windspeed, err = r.number("windspeed"); err != nil {
		return rec, err
	}
	if rec.Casual, err = r.integer("casual"); err != nil {
		return rec, err
	}
	if rec.Registered, err = r.integer("registered"); err != nil {
		return rec, err
	}
	if rec.Total, err = r.integer("cnt"); err != nil {
		return rec, err
	}

	if _, ok := r.get("mnth"); ok {
		if rec.Month, err = r.integer("mnth"); err != nil {
			return rec, err
		}
	} else {
		rec.Month = int(rec.Date.Month())
	}
	return rec, nil
}
