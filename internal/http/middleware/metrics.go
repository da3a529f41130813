package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnpath-backend/internal/observability"
)

const metricsRoute = "/metrics"

// Metrics records request count, latency and in-flight gauge per matched
// route. Scrapes of the metrics endpoint itself are not counted, and
// requests that match no route share one "unmatched" label so arbitrary
// paths cannot blow up label cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.FullPath() == metricsRoute {
			c.Next()
			return
		}
		m.ApiInflightInc()
		start := time.Now()
		defer func() {
			m.ApiInflightDec()
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
		}()
		c.Next()
	}
}
