package rental

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned by ArgMax and ArgMin for an empty view.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidDimension is returned when a grouping names an unsupported
	// dimension or the wrong number of dimensions.
	ErrInvalidDimension = errors.New("invalid grouping dimension")
)

// values extracts col from every row, in order.
func values[R Row](rows []R, col Column) []float64 {
	return lo.Map(rows, func(row R, _ int) float64 {
		return row.Attributes().Value(col)
	})
}

// Sum adds col over rows. An empty view sums to zero.
func Sum[R Row](rows []R, col Column) float64 {
	return lo.SumBy(rows, func(row R) float64 {
		return row.Attributes().Value(col)
	})
}

// Mean averages col over rows. It reports false for an empty view.
func Mean[R Row](rows []R, col Column) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	return stat.Mean(values(rows, col), nil), true
}

// YearOverYear returns the percent change of the summed col from 2011 to
// 2012, rounded to two decimals. It reports false when either year is absent
// from rows or sums to zero.
func YearOverYear[R Row](rows []R, col Column) (float64, bool) {
	sums := make(map[string]float64, len(yearNames))
	for _, row := range rows {
		a := row.Attributes()
		sums[a.YearLabel] += a.Value(col)
	}

	prev, okPrev := sums[yearNames[0]]
	cur, okCur := sums[yearNames[1]]
	if !okPrev || !okCur || prev == 0 || cur == 0 {
		return 0, false
	}
	return round2((cur - prev) / prev * 100), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ArgMax returns the row with the largest col. Ties go to the earliest row.
func ArgMax[R Row](rows []R, col Column) (R, error) {
	return extreme(rows, col, func(candidate, best float64) bool { return candidate > best })
}

// ArgMin returns the row with the smallest col. Ties go to the earliest row.
func ArgMin[R Row](rows []R, col Column) (R, error) {
	return extreme(rows, col, func(candidate, best float64) bool { return candidate < best })
}

func extreme[R Row](rows []R, col Column, better func(candidate, best float64) bool) (R, error) {
	var zero R
	if len(rows) == 0 {
		return zero, ErrEmptyInput
	}

	best := rows[0]
	bestValue := best.Attributes().Value(col)
	for _, row := range rows[1:] {
		if v := row.Attributes().Value(col); better(v, bestValue) {
			best, bestValue = row, v
		}
	}
	return best, nil
}

// DayType classifies a day by its holiday and working-day flags.
type DayType string

const (
	DayHoliday DayType = "Holiday"
	DayWorking DayType = "Working Day"
	DayWeekday DayType = "Weekday"
)

var dayTypeNames = [...]string{string(DayHoliday), string(DayWorking), string(DayWeekday)}

// ClassifyDayType returns Holiday when the holiday flag is set, otherwise
// Working Day when the working-day flag is set, otherwise Weekday. Holiday
// wins when both flags are set.
func ClassifyDayType(rec Record) DayType {
	switch {
	case rec.Holiday:
		return DayHoliday
	case rec.WorkingDay:
		return DayWorking
	default:
		return DayWeekday
	}
}

// Dimension is a grouping key for GroupMean and GroupSum.
type Dimension string

const (
	DimensionMonth   Dimension = "month"
	DimensionDayType Dimension = "day_type"
	DimensionSeason  Dimension = "season"
	DimensionWeather Dimension = "weather"
	DimensionHour    Dimension = "hour"
)

func (d Dimension) valid() bool {
	switch d {
	case DimensionMonth, DimensionDayType, DimensionSeason, DimensionWeather, DimensionHour:
		return true
	}
	return false
}

type groupKey struct {
	label string
	rank  int
}

// dimensionKey returns the group a row belongs to under d. Rows with an
// Unknown label, an out-of-range month, or no hour are not grouped.
func dimensionKey[R Row](d Dimension, row R) (groupKey, bool) {
	a := row.Attributes()
	switch d {
	case DimensionMonth:
		if a.Month < 1 || a.Month > 12 {
			return groupKey{}, false
		}
		return groupKey{label: strconv.Itoa(a.Month), rank: a.Month}, true
	case DimensionDayType:
		t := ClassifyDayType(a)
		rank, _ := labelRank(dayTypeNames[:], string(t))
		return groupKey{label: string(t), rank: rank}, true
	case DimensionSeason:
		rank, ok := labelRank(seasonNames[:], a.SeasonLabel)
		return groupKey{label: a.SeasonLabel, rank: rank}, ok
	case DimensionWeather:
		rank, ok := labelRank(weatherNames[:], a.WeatherLabel)
		return groupKey{label: a.WeatherLabel, rank: rank}, ok
	case DimensionHour:
		h, ok := row.HourOfDay()
		if !ok || h < 0 || h > 23 {
			return groupKey{}, false
		}
		return groupKey{label: strconv.Itoa(h), rank: h}, true
	}
	return groupKey{}, false
}

// AggregateRow is one group of a grouped aggregate. Subgroup is empty for
// single-dimension groupings.
type AggregateRow struct {
	Group    string             `json:"group"`
	Subgroup string             `json:"subgroup,omitempty"`
	Count    int                `json:"count"`
	Values   map[Column]float64 `json:"values"`

	rank [2]int
}

// Value returns the aggregated value of col for the group.
func (r AggregateRow) Value(col Column) float64 {
	return r.Values[col]
}

// GroupMean averages cols per group of dims (one or two dimensions). With no
// cols the three rider-count columns are used. Output is ordered by the
// natural order of the first dimension, then the second.
func GroupMean[R Row](rows []R, dims []Dimension, cols ...Column) ([]AggregateRow, error) {
	return group(rows, dims, cols, true)
}

// GroupSum is GroupMean with sums instead of means.
func GroupSum[R Row](rows []R, dims []Dimension, cols ...Column) ([]AggregateRow, error) {
	return group(rows, dims, cols, false)
}

func group[R Row](rows []R, dims []Dimension, cols []Column, mean bool) ([]AggregateRow, error) {
	if len(dims) == 0 || len(dims) > 2 {
		return nil, fmt.Errorf("%w: need one or two dimensions, got %d", ErrInvalidDimension, len(dims))
	}
	for _, d := range dims {
		if !d.valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, d)
		}
	}
	if len(cols) == 0 {
		cols = MetricColumns
	}

	buckets := make(map[[2]string]*AggregateRow)
	var order []*AggregateRow

next:
	for _, row := range rows {
		var keys [2]groupKey
		for i, d := range dims {
			k, ok := dimensionKey(d, row)
			if !ok {
				continue next
			}
			keys[i] = k
		}

		id := [2]string{keys[0].label, keys[1].label}
		agg, ok := buckets[id]
		if !ok {
			agg = &AggregateRow{
				Group:    keys[0].label,
				Subgroup: keys[1].label,
				Values:   make(map[Column]float64, len(cols)),
				rank:     [2]int{keys[0].rank, keys[1].rank},
			}
			buckets[id] = agg
			order = append(order, agg)
		}

		agg.Count++
		a := row.Attributes()
		for _, c := range cols {
			agg.Values[c] += a.Value(c)
		}
	}

	out := make([]AggregateRow, 0, len(order))
	for _, agg := range order {
		if mean {
			for c, v := range agg.Values {
				agg.Values[c] = v / float64(agg.Count)
			}
		}
		out = append(out, *agg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].rank[0] != out[j].rank[0] {
			return out[i].rank[0] < out[j].rank[0]
		}
		return out[i].rank[1] < out[j].rank[1]
	})
	return out, nil
}

// SortByColumnDesc returns a copy of rows ordered by col, largest first.
// Equal values keep their relative order.
func SortByColumnDesc(rows []AggregateRow, col Column) []AggregateRow {
	out := append([]AggregateRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value(col) > out[j].Value(col)
	})
	return out
}

// MaxGroup returns the first group with the largest col. It reports false
// when rows is empty.
func MaxGroup(rows []AggregateRow, col Column) (AggregateRow, bool) {
	if len(rows) == 0 {
		return AggregateRow{}, false
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.Value(col) > best.Value(col) {
			best = r
		}
	}
	return best, true
}

// Correlation returns the Pearson correlation of columns a and b. It reports
// false with fewer than two rows or when either column is constant.
func Correlation[R Row](rows []R, a, b Column) (float64, bool) {
	if len(rows) < 2 {
		return 0, false
	}
	x, y := values(rows, a), values(rows, b)
	if constant(x) || constant(y) {
		return 0, false
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Trendline is an ordinary least squares fit y = Intercept + Slope*x.
type Trendline struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Trend fits y against x. It reports false with fewer than two rows or a
// constant x.
func Trend[R Row](rows []R, x, y Column) (Trendline, bool) {
	if len(rows) < 2 {
		return Trendline{}, false
	}
	xs, ys := values(rows, x), values(rows, y)
	if constant(xs) {
		return Trendline{}, false
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return Trendline{}, false
	}
	return Trendline{Slope: beta, Intercept: alpha}, true
}

// constant compares exactly; a computed variance can be a tiny non-zero
// value for identical inputs.
func constant(xs []float64) bool {
	return lo.EveryBy(xs, func(v float64) bool { return v == xs[0] })
}
