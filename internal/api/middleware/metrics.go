package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/weatherapp/internal/observability/metrics"
)

// unmatchedPath labels requests that hit no route, keeping label cardinality bounded.
const unmatchedPath = "unmatched"

// NewMetrics records request counts, latency and response size per route.
// A nil m disables recording.
func NewMetrics(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m == nil {
			return next
		}
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = unmatchedPath
			}
			method := c.Request().Method

			m.RecordHTTPRequest(method, path, c.Response().Status, time.Since(start).Seconds())
			m.RecordHTTPResponseSize(method, path, c.Response().Size)

			return nil
		}
	}
}
