package middleware

import (
	"strconv"
	"time"

	"studybuddy/utils"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template.
func Metrics(collector *utils.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		collector.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		collector.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
