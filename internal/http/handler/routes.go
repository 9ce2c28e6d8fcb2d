package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pageserver/internal/page"
)

// RegisterRoutes attaches the page handler to every method and path of app.
func RegisterRoutes(app *fiber.App, src page.Source) {
	app.Use(ServePage(src))
}

// ServePage streams the page for any request. The reader is handed to fasthttp,
// which closes it once the body is written or the client goes away.
func ServePage(src page.Source) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, err := src.Open(c.UserContext())
		if err != nil {
			return err
		}
		c.Status(fiber.StatusOK)
		c.Set(fiber.HeaderContentType, page.ContentType)
		// A streamed body of unknown size is framed as chunked, which fasthttp
		// still terminates on HEAD and so corrupts a kept-alive connection.
		if c.Method() == fiber.MethodHead {
			return rc.Close()
		}
		return c.SendStream(rc)
	}
}

// RegisterAdminRoutes attaches health and metrics endpoints. They live on a
// separate app because the page app answers every path.
func RegisterAdminRoutes(app *fiber.App, src page.Source, gatherer prometheus.Gatherer) {
	app.Get("/health", HealthCheck(src))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// HealthCheck reports whether the page can currently be opened.
func HealthCheck(src page.Source) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		rc, err := src.Open(ctx)
		if err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "page unavailable")
		}
		rc.Close()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
