package rental

import (
	"fmt"
	"time"
)

// Summary holds the headline KPIs over the filtered daily table. Nil fields
// are not available for the selection.
type Summary struct {
	Days         int      `json:"days"`
	Total        int64    `json:"total"`
	Average      *float64 `json:"average"`
	YearOverYear *float64 `json:"yearOverYear"`
}

// WindPoint is one point of the windspeed scatter.
type WindPoint struct {
	Date      time.Time `json:"date"`
	Windspeed float64   `json:"windspeed"`
	Value     float64   `json:"value"`
}

// WindAnalysis relates windspeed to the selected metric.
type WindAnalysis struct {
	Points      []WindPoint `json:"points"`
	Correlation *float64    `json:"correlation"`
	Trendline   *Trendline  `json:"trendline"`
}

// DailyReport is the daily analytics section.
type DailyReport struct {
	Rows      int            `json:"rows"`
	PeakDay   *Record        `json:"peakDay"`
	LowestDay *Record        `json:"lowestDay"`
	Monthly   []AggregateRow `json:"monthlyAverage"`
	DayTypes  []AggregateRow `json:"dayTypeAverage"`
	Seasons   []AggregateRow `json:"seasonAverage"`
	Weathers  []AggregateRow `json:"weatherAverage"`
	Wind      WindAnalysis   `json:"wind"`
	Insights  []string       `json:"insights"`
}

// HourlyReport is the hourly analytics section.
type HourlyReport struct {
	Rows          int            `json:"rows"`
	PeakHour      *HourlyRecord  `json:"peakHour"`
	LowestHour    *HourlyRecord  `json:"lowestHour"`
	Hourly        []AggregateRow `json:"hourlyAverage"`
	DayTypeByHour []AggregateRow `json:"dayTypeByHour"`
	SeasonByHour  []AggregateRow `json:"seasonByHour"`
	WeatherByHour []AggregateRow `json:"weatherByHour"`
	Insights      []string       `json:"insights"`
}

// Report is everything computed for one selection.
type Report struct {
	ID             string       `json:"id"`
	DatasetVersion string       `json:"datasetVersion"`
	Selection      Selection    `json:"selection"`
	Metric         Column       `json:"metric"`
	Summary        Summary      `json:"summary"`
	Daily          DailyReport  `json:"daily"`
	Hourly         HourlyReport `json:"hourly"`
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// BuildSummary computes the KPIs over a filtered daily view.
func BuildSummary(daily []Record, col Column) Summary {
	return Summary{
		Days:         len(daily),
		Total:        int64(Sum(daily, col)),
		Average:      optional(Mean(daily, col)),
		YearOverYear: optional(YearOverYear(daily, col)),
	}
}

// BuildDaily computes the daily section over a filtered daily view.
func BuildDaily(daily []Record, col Column) (DailyReport, error) {
	rep := DailyReport{Rows: len(daily)}

	if peak, err := ArgMax(daily, col); err == nil {
		rep.PeakDay = &peak
	}
	if low, err := ArgMin(daily, col); err == nil {
		rep.LowestDay = &low
	}

	var err error
	if rep.Monthly, err = GroupMean(daily, []Dimension{DimensionMonth}); err != nil {
		return rep, fmt.Errorf("monthly average: %w", err)
	}
	dayTypes, err := GroupMean(daily, []Dimension{DimensionDayType})
	if err != nil {
		return rep, fmt.Errorf("day type average: %w", err)
	}
	seasons, err := GroupMean(daily, []Dimension{DimensionSeason})
	if err != nil {
		return rep, fmt.Errorf("season average: %w", err)
	}
	weathers, err := GroupMean(daily, []Dimension{DimensionWeather})
	if err != nil {
		return rep, fmt.Errorf("weather average: %w", err)
	}
	rep.DayTypes = SortByColumnDesc(dayTypes, col)
	rep.Seasons = SortByColumnDesc(seasons, col)
	rep.Weathers = SortByColumnDesc(weathers, col)

	rep.Wind.Points = make([]WindPoint, 0, len(daily))
	for _, r := range daily {
		rep.Wind.Points = append(rep.Wind.Points, WindPoint{Date: r.Date, Windspeed: r.Windspeed, Value: r.Value(col)})
	}
	rep.Wind.Correlation = optional(Correlation(daily, ColumnWindspeed, col))
	if tl, ok := Trend(daily, ColumnWindspeed, col); ok {
		rep.Wind.Trendline = &tl
	}

	rep.Insights = DailyInsights(DailyFacts{
		Metric:          col,
		Rows:            len(daily),
		Monthly:         rep.Monthly,
		DayTypes:        dayTypes,
		Seasons:         seasons,
		CasualSum:       Sum(daily, ColumnCasual),
		RegisteredSum:   Sum(daily, ColumnRegistered),
		WindCorrelation: rep.Wind.Correlation,
	})
	return rep, nil
}

// BuildHourly computes the hourly section over a filtered hourly view.
func BuildHourly(hourly []HourlyRecord, rider RiderType) (HourlyReport, error) {
	col := rider.Column()
	rep := HourlyReport{Rows: len(hourly)}
	facts := HourlyFacts{Rider: rider, Rows: len(hourly)}

	if peak, err := ArgMax(hourly, col); err == nil {
		rep.PeakHour = &peak
		facts.PeakHour = &peak.Hour
	}
	if low, err := ArgMin(hourly, col); err == nil {
		rep.LowestHour = &low
		facts.LowestHour = &low.Hour
	}

	var err error
	if rep.Hourly, err = GroupMean(hourly, []Dimension{DimensionHour}); err != nil {
		return rep, fmt.Errorf("hourly average: %w", err)
	}
	if rep.DayTypeByHour, err = GroupMean(hourly, []Dimension{DimensionDayType, DimensionHour}); err != nil {
		return rep, fmt.Errorf("day type by hour: %w", err)
	}
	if rep.SeasonByHour, err = GroupMean(hourly, []Dimension{DimensionSeason, DimensionHour}); err != nil {
		return rep, fmt.Errorf("season by hour: %w", err)
	}
	if rep.WeatherByHour, err = GroupMean(hourly, []Dimension{DimensionWeather, DimensionHour}); err != nil {
		return rep, fmt.Errorf("weather by hour: %w", err)
	}

	facts.SeasonByHour = rep.SeasonByHour
	facts.WeatherByHour = rep.WeatherByHour
	rep.Insights = HourlyInsights(facts)
	return rep, nil
}
