package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/atomic"
)

var served = atomic.NewInt64(0)

// CountRequests counts every handled request for the admin status endpoint.
func CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		served.Inc()
		c.Next()
	}
}

// RequestsServed returns the number of requests handled since startup.
func RequestsServed() int64 {
	return served.Load()
}
