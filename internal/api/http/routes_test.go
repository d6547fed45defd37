package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bikeshare-analytics/internal/rental"
	"github.com/i474232898/bikeshare-analytics/internal/store"
)

type staticSource struct {
	tables rental.Tables
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) (rental.Tables, error) {
	return s.tables, nil
}

func day(date string, yr, season, weather, casual, registered int) rental.Record {
	d, _ := time.Parse("2006-01-02", date)
	return rental.Record{
		Date:       d,
		Year:       yr,
		Month:      int(d.Month()),
		Season:     season,
		Weather:    weather,
		WorkingDay: true,
		Windspeed:  0.1 * float64(season),
		Casual:     casual,
		Registered: registered,
		Total:      casual + registered,
	}
}

func fixture() rental.Tables {
	daily := []rental.Record{
		day("2011-01-01", 0, 1, 1, 100, 900),
		day("2011-07-01", 0, 3, 2, 300, 700),
		day("2012-01-01", 1, 1, 1, 200, 1300),
	}
	hourly := []rental.HourlyRecord{
		{Record: daily[0], Hour: 8},
		{Record: daily[1], Hour: 17},
	}
	return rental.Tables{Daily: daily, Hourly: hourly}
}

func newTestApp(t *testing.T, load bool) *fiber.App {
	t.Helper()

	svc := rental.NewService(store.NewMemoryStore(), staticSource{tables: fixture()})
	if load {
		if _, err := svc.Reload(context.Background()); err != nil {
			t.Fatalf("reload: %v", err)
		}
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, svc)
	return app
}

func get(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("decode %s: %v (%s)", target, err, body)
		}
	}
	return resp.StatusCode
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t, true)

	var rep rental.Report
	if code := get(t, app, "/api/v1/dashboard", &rep); code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if rep.Summary.Days != 3 || rep.Summary.Total != 3500 {
		t.Fatalf("unexpected summary: %+v", rep.Summary)
	}
	// 2011 = 2000, 2012 = 1500.
	if rep.Summary.YearOverYear == nil || *rep.Summary.YearOverYear != -25 {
		t.Fatalf("expected yoy -25, got %v", rep.Summary.YearOverYear)
	}
	if rep.Daily.PeakDay == nil || rep.Daily.PeakDay.Total != 1500 {
		t.Fatalf("unexpected peak day: %+v", rep.Daily.PeakDay)
	}
	if rep.Hourly.PeakHour == nil || rep.Hourly.PeakHour.Hour != 8 {
		t.Fatalf("unexpected peak hour: %+v", rep.Hourly.PeakHour)
	}
	if len(rep.Daily.Insights) == 0 || len(rep.Hourly.Insights) == 0 {
		t.Fatalf("expected insights in both sections")
	}
}

func TestSummaryRiderAndFilters(t *testing.T) {
	app := newTestApp(t, true)

	var sum rental.Summary
	if code := get(t, app, "/api/v1/summary?years=2011&rider=casual", &sum); code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if sum.Days != 2 || sum.Total != 400 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.Average == nil || *sum.Average != 200 {
		t.Fatalf("expected average 200, got %v", sum.Average)
	}
	if sum.YearOverYear != nil {
		t.Fatalf("expected yoy unavailable with one year, got %v", *sum.YearOverYear)
	}
}

func TestEmptySelection(t *testing.T) {
	app := newTestApp(t, true)

	var sum rental.Summary
	if code := get(t, app, "/api/v1/summary?seasons=", &sum); code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if sum.Days != 0 || sum.Total != 0 || sum.Average != nil {
		t.Fatalf("unexpected summary for empty selection: %+v", sum)
	}
}

func TestInvalidSelection(t *testing.T) {
	app := newTestApp(t, true)

	for _, target := range []string{
		"/api/v1/dashboard?rider=Tourist",
		"/api/v1/summary?seasons=Monsoon",
		"/api/v1/records/daily?years=2013",
	} {
		var body map[string]any
		if code := get(t, app, target, &body); code != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, code)
		}
		if body["error"] != true {
			t.Fatalf("%s: expected error body, got %v", target, body)
		}
	}
}

func TestNotLoaded(t *testing.T) {
	app := newTestApp(t, false)

	if code := get(t, app, "/api/v1/dashboard", nil); code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if code := get(t, app, "/api/v1/dashboard", nil); code != http.StatusOK {
		t.Fatalf("expected status %d after reload, got %d", http.StatusOK, code)
	}
}

func TestOptions(t *testing.T) {
	app := newTestApp(t, true)

	var opts rental.Options
	if code := get(t, app, "/api/v1/options", &opts); code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if len(opts.Years) != 2 || opts.Years[0] != "2011" || opts.Years[1] != "2012" {
		t.Fatalf("unexpected years: %v", opts.Years)
	}
	if len(opts.Seasons) != 2 || opts.DailyRows != 3 || opts.HourlyRows != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestRecords(t *testing.T) {
	app := newTestApp(t, true)

	var body struct {
		Count   int                   `json:"count"`
		Records []rental.HourlyRecord `json:"records"`
	}
	if code := get(t, app, "/api/v1/records/hourly?weathers=Misty", &body); code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if body.Count != 1 || body.Records[0].Hour != 17 || body.Records[0].WeatherLabel != "Misty" {
		t.Fatalf("unexpected records: %+v", body)
	}
}
