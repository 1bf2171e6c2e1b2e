package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pqh/blog/metrics"
)

// Timed records the latency of every matched route.
func Timed(rec *metrics.Recorder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveRequest(ctx.Request.Method, route, ctx.Writer.Status(), time.Since(start))
	}
}
