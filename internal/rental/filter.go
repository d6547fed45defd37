package rental

import (
	"github.com/samber/lo"
)

// Filter returns the rows whose year, season and weather labels are all
// members of the selection. Source order is preserved; the result is never
// nil.
func Filter[R Row](rows []R, sel Selection) []R {
	years := toSet(sel.Years)
	seasons := toSet(sel.Seasons)
	weathers := toSet(sel.Weathers)

	return lo.Filter(rows, func(row R, _ int) bool {
		a := row.Attributes()
		_, okYear := years[a.YearLabel]
		_, okSeason := seasons[a.SeasonLabel]
		_, okWeather := weathers[a.WeatherLabel]
		return okYear && okSeason && okWeather
	})
}

func toSet(items []string) map[string]struct{} {
	return lo.SliceToMap(items, func(s string) (string, struct{}) {
		return s, struct{}{}
	})
}
