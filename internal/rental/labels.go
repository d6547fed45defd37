package rental

import (
	"github.com/samber/lo"
)

// LabelUnknown is assigned to any code outside its enumeration so the row
// stays in the table and in totals.
const LabelUnknown = "Unknown"

// Enumerations in code order. Year code i maps to yearNames[i]; season and
// weather codes are 1-based.
var (
	yearNames    = [...]string{"2011", "2012"}
	seasonNames  = [...]string{"Springer", "Summer", "Fall", "Winter"}
	weatherNames = [...]string{"Clear", "Misty", "Light Rain/Snow", "Heavy Rain/Snow"}
)

// YearLabel maps a year index (0, 1) to its calendar year.
func YearLabel(code int) (string, bool) {
	return lookup(yearNames[:], code)
}

// SeasonLabel maps a season code (1..4) to its name.
func SeasonLabel(code int) (string, bool) {
	return lookup(seasonNames[:], code-1)
}

// WeatherLabel maps a weather situation code (1..4) to its name.
func WeatherLabel(code int) (string, bool) {
	return lookup(weatherNames[:], code-1)
}

func lookup(names []string, i int) (string, bool) {
	if i < 0 || i >= len(names) {
		return LabelUnknown, false
	}
	return names[i], true
}

// YearLabels, SeasonLabels and WeatherLabels return the enumerations in code
// order, without the Unknown bucket.
func YearLabels() []string    { return append([]string(nil), yearNames[:]...) }
func SeasonLabels() []string  { return append([]string(nil), seasonNames[:]...) }
func WeatherLabels() []string { return append([]string(nil), weatherNames[:]...) }

// LabelReport counts the out-of-domain codes seen while labelling, keyed by
// the offending code.
type LabelReport struct {
	Year    map[int]int `json:"year,omitempty"`
	Season  map[int]int `json:"season,omitempty"`
	Weather map[int]int `json:"weather,omitempty"`
}

// Empty reports whether every code was inside its enumeration.
func (r LabelReport) Empty() bool {
	return len(r.Year) == 0 && len(r.Season) == 0 && len(r.Weather) == 0
}

func (r *LabelReport) note(m *map[int]int, code int) {
	if *m == nil {
		*m = make(map[int]int)
	}
	(*m)[code]++
}

// Label returns a copy of rec with its label fields filled from its codes.
func Label(rec Record) Record {
	rec.YearLabel, _ = YearLabel(rec.Year)
	rec.SeasonLabel, _ = SeasonLabel(rec.Season)
	rec.WeatherLabel, _ = WeatherLabel(rec.Weather)
	return rec
}

// ApplyLabels labels every row of t in place and reports unknown codes.
func ApplyLabels(t *Tables) LabelReport {
	var report LabelReport
	check := func(rec Record) {
		if _, ok := YearLabel(rec.Year); !ok {
			report.note(&report.Year, rec.Year)
		}
		if _, ok := SeasonLabel(rec.Season); !ok {
			report.note(&report.Season, rec.Season)
		}
		if _, ok := WeatherLabel(rec.Weather); !ok {
			report.note(&report.Weather, rec.Weather)
		}
	}

	for i := range t.Daily {
		check(t.Daily[i])
		t.Daily[i] = Label(t.Daily[i])
	}
	for i := range t.Hourly {
		check(t.Hourly[i].Record)
		t.Hourly[i].Record = Label(t.Hourly[i].Record)
	}
	return report
}

// labelRank returns the position of label within names, used to order
// grouped output by code order.
func labelRank(names []string, label string) (int, bool) {
	i := lo.IndexOf(names, label)
	return i, i >= 0
}
