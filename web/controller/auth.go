package controller

import (
	"net/http"

	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/service"
	"github.com/astatica/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request body.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthController handles admin login and logout.
type AuthController struct {
	adminService service.AdminService
}

// NewAuthController creates a new AuthController and initializes its routes.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
}

// login verifies credentials and marks the session authenticated for the
// session's fixed time to live. Every failure path answers the same way.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	admin := a.adminService.CheckAdmin(form.Username, form.Password)
	if admin == nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := session.SetAdmin(c, admin.Username); err != nil {
		logger.Warning("unable to save session:", err)
		jsonError(c, http.StatusInternalServerError, "Session error")
		return
	}

	logger.Infof("%s logged in from %s", admin.Username, getRemoteIp(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// logout destroys the session. Always succeeds from the caller's view.
func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetAdminUser(c); user != "" {
		logger.Infof("%s logged out", user)
	}
	if err := session.Clear(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
