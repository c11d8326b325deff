package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/cari_ledger/internal/metrics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that are not recorded as HTTP metrics.
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Metrics records request counts and latencies by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
