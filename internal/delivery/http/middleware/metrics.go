package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/venue-finder/internal/metrics"
)

// Metrics - middleware учёта HTTP запросов в Prometheus.
// Метка route - шаблон маршрута, а не фактический путь.
func Metrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		collector.ObserveHTTP(c.Method(), c.Route().Path, responseStatus(c, err), time.Since(start))
		return err
	}
}
