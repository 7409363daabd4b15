package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"content_admin/internal/metrics"

	"github.com/labstack/echo/v4"
)

const metricsPath = "/metrics"

// PrometheusMetrics считает запросы и их длительность по шаблону маршрута.
// Запросы к самому /metrics не учитываются.
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Path() == metricsPath {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		duration := time.Since(start).Seconds()

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		method := c.Request().Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusOf(c, err))).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)

		return err
	}
}

// statusOf returns the code the error handler will write when the handler
// failed before committing a response.
func statusOf(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}

	return http.StatusInternalServerError
}
