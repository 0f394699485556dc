package middleware

import (
	"time"

	"aspiro/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
)

const unmatchedRoute = "unmatched"

type MetricsMiddleware struct {
	metrics *metrics.Manager
}

func NewMetricsMiddleware(m *metrics.Manager) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Middleware labels requests with the matched route pattern rather than the
// raw path.
func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		route := unmatchedRoute
		if r := c.Route(); r != nil && status != fiber.StatusNotFound && status != fiber.StatusMethodNotAllowed {
			route = r.Path
		}
		m.metrics.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
