package middleware

import (
	"strconv"
	"time"

	"barbershop/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records every request under its route template, so path
// parameters do not explode label cardinality.
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Observe(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
