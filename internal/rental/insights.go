package rental

import (
	"fmt"
)

// DailyFacts are the aggregates the daily insights are built from.
type DailyFacts struct {
	Metric          Column
	Rows            int
	Monthly         []AggregateRow
	DayTypes        []AggregateRow
	Seasons         []AggregateRow
	CasualSum       float64
	RegisteredSum   float64
	WindCorrelation *float64
}

// DailyInsights turns daily aggregates into short statements. Each statement
// whose aggregate is unavailable says so instead of printing an empty value.
func DailyInsights(f DailyFacts) []string {
	if f.Rows == 0 {
		return []string{"No daily records match the selected filters, so daily insights are not available."}
	}

	var out []string

	if g, ok := MaxGroup(f.Monthly, f.Metric); ok {
		out = append(out, fmt.Sprintf("The highest average rentals occur in month %s, indicating strong seasonal demand.", g.Group))
	} else {
		out = append(out, "The peak month is not available for the selected data.")
	}

	if g, ok := MaxGroup(f.Seasons, f.Metric); ok {
		out = append(out, fmt.Sprintf("%s shows the highest average bike rental activity among all seasons.", g.Group))
	} else {
		out = append(out, "The peak season is not available for the selected data.")
	}

	if g, ok := MaxGroup(f.DayTypes, f.Metric); ok {
		out = append(out, fmt.Sprintf("%s records the highest average rentals compared to other day types.", g.Group))
	}

	dominant := RiderCasual
	if f.RegisteredSum > f.CasualSum {
		dominant = RiderRegistered
	}
	out = append(out, fmt.Sprintf("%s users dominate total bike rentals in the selected data.", dominant))

	switch {
	case f.WindCorrelation == nil:
		out = append(out, "The correlation between windspeed and rentals is not available for the selected data.")
	case *f.WindCorrelation < 0:
		out = append(out, fmt.Sprintf("Windspeed has a weak negative correlation with rentals (%.2f), suggesting that higher wind slightly reduces demand.", *f.WindCorrelation))
	default:
		out = append(out, fmt.Sprintf("Windspeed shows little to no negative impact on bike rentals (%.2f).", *f.WindCorrelation))
	}

	return out
}

// HourlyFacts are the aggregates the hourly insights are built from.
type HourlyFacts struct {
	Rider         RiderType
	Rows          int
	PeakHour      *int
	LowestHour    *int
	SeasonByHour  []AggregateRow
	WeatherByHour []AggregateRow
}

// HourlyInsights turns hourly aggregates into short statements.
func HourlyInsights(f HourlyFacts) []string {
	if f.Rows == 0 {
		return []string{"No hourly records match the selected filters, so hourly insights are not available."}
	}

	metric := f.Rider.Column()
	var out []string

	if f.PeakHour != nil && f.LowestHour != nil {
		out = append(out, fmt.Sprintf("Peak rental activity occurs around %d:00, while the lowest demand is around %d:00.", *f.PeakHour, *f.LowestHour))
	}

	if g, ok := MaxGroup(meanOfGroups(f.SeasonByHour, metric), metric); ok {
		out = append(out, fmt.Sprintf("%s records the highest hourly rental averages.", g.Group))
	} else {
		out = append(out, "The season with the highest hourly averages is not available for the selected data.")
	}

	if g, ok := MaxGroup(meanOfGroups(f.WeatherByHour, metric), metric); ok {
		out = append(out, fmt.Sprintf("%s weather conditions show the strongest hourly rental performance.", g.Group))
	} else {
		out = append(out, "The weather condition with the strongest hourly performance is not available for the selected data.")
	}

	out = append(out, fmt.Sprintf("%s users dominate rentals during peak hours in the selected filters.", f.Rider))
	return out
}

// meanOfGroups collapses a two-dimension aggregate to its first dimension by
// averaging col over the subgroups. Group order is preserved.
func meanOfGroups(rows []AggregateRow, col Column) []AggregateRow {
	var out []AggregateRow
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Group]
		if !ok {
			i = len(out)
			index[r.Group] = i
			out = append(out, AggregateRow{Group: r.Group, Values: map[Column]float64{}, rank: [2]int{r.rank[0], 0}})
		}
		out[i].Count++
		out[i].Values[col] += r.Value(col)
	}
	for i := range out {
		out[i].Values[col] /= float64(out[i].Count)
	}
	return out
}
