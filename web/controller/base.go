// Package controller provides the HTTP handlers for the portfolio backend:
// public pages, the public works API and the session-gated admin API.
package controller

import (
	"net/http"

	"github.com/astatica/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authorization check shared by gated routes.
type BaseController struct{}

// checkLogin refuses anonymous sessions uniformly, regardless of the
// resource requested.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsAdmin(c) {
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}
	c.Next()
}
