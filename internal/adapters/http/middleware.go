package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// submissionLimiter throttles job submissions with a token bucket so a
// burst of solve requests cannot saturate the worker pool
func submissionLimiter(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Error: "job submission rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
