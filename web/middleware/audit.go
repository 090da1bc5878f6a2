package middleware

import (
	"net/http"

	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Audit logs every admin mutation with a request id, the acting admin and
// the client address. Reads pass through silently.
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		requestId := uuid.NewString()
		c.Next()

		logger.Infof("audit %s: %s %s by %q from %s -> %d",
			requestId,
			c.Request.Method,
			c.Request.URL.Path,
			session.GetAdminUser(c),
			c.ClientIP(),
			c.Writer.Status(),
		)
	}
}
