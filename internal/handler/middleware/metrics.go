package middleware

import (
	"strconv"
	"time"

	"amenity-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request duration labelled by the matched route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
