package middleware

import (
	"strconv"
	"time"

	"hotel-booking/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics labels requests by route template, so /hotels/1 and /hotels/2
// share one series. Unmatched paths are grouped under "unmatched".
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
