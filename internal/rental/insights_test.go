package rental

import (
	"strings"
	"testing"
)

func TestDailyInsights(t *testing.T) {
	rows := []Record{day(0, 1, 1, 10, 100), day(0, 3, 1, 50, 400)}
	rows[0].Windspeed, rows[1].Windspeed = 0.1, 0.3

	rep, err := BuildDaily(rows, ColumnTotal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Insights) != 5 {
		t.Fatalf("expected 5 insights, got %d: %v", len(rep.Insights), rep.Insights)
	}
	if !strings.HasPrefix(rep.Insights[1], "Fall shows the highest") {
		t.Fatalf("unexpected season insight: %s", rep.Insights[1])
	}
	if !strings.HasPrefix(rep.Insights[3], "Registered users dominate") {
		t.Fatalf("unexpected rider insight: %s", rep.Insights[3])
	}
	if !strings.Contains(rep.Insights[4], "(1.00)") {
		t.Fatalf("unexpected wind insight: %s", rep.Insights[4])
	}
}

func TestDailyInsightsDegrade(t *testing.T) {
	// One row: correlation is unavailable.
	rep, err := BuildDaily([]Record{day(0, 1, 1, 10, 100)}, ColumnTotal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := rep.Insights[len(rep.Insights)-1]
	if !strings.Contains(last, "not available") {
		t.Fatalf("expected unavailable wind insight, got %s", last)
	}

	// Only Unknown seasons: no season group.
	got := DailyInsights(DailyFacts{Metric: ColumnTotal, Rows: 1})
	if !strings.Contains(got[1], "peak season is not available") {
		t.Fatalf("expected unavailable season insight, got %s", got[1])
	}

	got = DailyInsights(DailyFacts{Metric: ColumnTotal})
	if len(got) != 1 || !strings.Contains(got[0], "not available") {
		t.Fatalf("expected a single unavailable message, got %v", got)
	}
}

func TestHourlyInsights(t *testing.T) {
	spring := day(0, 1, 1, 10, 10)
	summer := day(0, 2, 2, 50, 50)
	rows := []HourlyRecord{hour(spring, 3), hour(summer, 17), hour(spring, 17)}

	rep, err := BuildHourly(rows, RiderCasual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.PeakHour == nil || rep.PeakHour.Hour != 17 || rep.LowestHour.Hour != 3 {
		t.Fatalf("unexpected peak/lowest: %+v / %+v", rep.PeakHour, rep.LowestHour)
	}
	want := []string{
		"Peak rental activity occurs around 17:00, while the lowest demand is around 3:00.",
		"Summer records the highest hourly rental averages.",
		"Misty weather conditions show the strongest hourly rental performance.",
		"Casual users dominate rentals during peak hours in the selected filters.",
	}
	if len(rep.Insights) != len(want) {
		t.Fatalf("expected %d insights, got %v", len(want), rep.Insights)
	}
	for i := range want {
		if rep.Insights[i] != want[i] {
			t.Fatalf("insight %d: expected %q, got %q", i, want[i], rep.Insights[i])
		}
	}

	empty, err := BuildHourly(nil, RiderTotal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.PeakHour != nil || len(empty.Insights) != 1 {
		t.Fatalf("unexpected empty report: %+v", empty)
	}
}
