package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bikeshare-analytics/internal/common"
	"github.com/i474232898/bikeshare-analytics/internal/log"
	"github.com/i474232898/bikeshare-analytics/internal/rental"
	"github.com/i474232898/bikeshare-analytics/internal/store"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *rental.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/options", func(c *fiber.Ctx) error {
		opts, err := service.Options()
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(opts)
	})

	v1.Get("/dashboard", selectionHandler(service.Report))
	v1.Get("/summary", selectionHandler(service.Summary))
	v1.Get("/daily", selectionHandler(service.Daily))
	v1.Get("/hourly", selectionHandler(service.Hourly))

	v1.Get("/records/daily", func(c *fiber.Ctx) error {
		sel := parseSelection(c)
		rows, err := service.DailyRecords(sel)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"selection": sel,
			"count":     len(rows),
			"records":   rows,
		})
	})

	v1.Get("/records/hourly", func(c *fiber.Ctx) error {
		sel := parseSelection(c)
		rows, err := service.HourlyRecords(sel)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"selection": sel,
			"count":     len(rows),
			"records":   rows,
		})
	})

	v1.Post("/admin/reload", func(c *fiber.Ctx) error {
		ds, err := service.Reload(c.UserContext())
		if err != nil {
			log.Errorw("manual reload failed", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to reload dataset: "+err.Error())
		}
		return c.JSON(fiber.Map{
			"version":    ds.Version,
			"source":     ds.Source,
			"loadedAt":   ds.LoadedAt,
			"dailyRows":  len(ds.Daily),
			"hourlyRows": len(ds.Hourly),
		})
	})
}

func selectionHandler[T any](fn func(rental.Selection) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := fn(parseSelection(c))
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(out)
	}
}

// parseSelection reads the selection from the query string. An absent list
// parameter selects everything; a present but empty one selects nothing.
func parseSelection(c *fiber.Ctx) rental.Selection {
	sel := rental.FullSelection()

	if v, ok := listParam(c, "years"); ok {
		sel.Years = v
	}
	if v, ok := listParam(c, "seasons"); ok {
		sel.Seasons = v
	}
	if v, ok := listParam(c, "weathers"); ok {
		sel.Weathers = v
	}
	if r := c.Query("rider"); r != "" {
		sel.Rider = rental.ParseRiderType(r)
	}
	return sel
}

func listParam(c *fiber.Ctx, key string) ([]string, bool) {
	if !c.Context().QueryArgs().Has(key) {
		return nil, false
	}
	return common.SplitList(c.Query(key)), true
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, rental.ErrInvalidSelection):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotLoaded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded yet")
	default:
		log.Errorw("request failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
	}
}
