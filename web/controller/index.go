package controller

import (
	"io/fs"
	"net/http"

	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/session"

	"github.com/gin-gonic/gin"
)

// PageController serves the embedded HTML pages. The admin page degrades to
// the login view for anonymous sessions instead of revealing anything.
type PageController struct {
	pages fs.FS
}

// NewPageController creates a PageController over the embedded page
// filesystem and initializes its routes.
func NewPageController(g *gin.RouterGroup, pages fs.FS) *PageController {
	a := &PageController{pages: pages}
	a.initRouter(g)
	return a
}

func (a *PageController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/works", a.works)
	g.GET("/work", a.work)
	g.GET("/admin", a.admin)
}

func (a *PageController) index(c *gin.Context) {
	a.serve(c, "index.html")
}

func (a *PageController) works(c *gin.Context) {
	a.serve(c, "works.html")
}

func (a *PageController) work(c *gin.Context) {
	a.serve(c, "work.html")
}

func (a *PageController) admin(c *gin.Context) {
	if session.IsAdmin(c) {
		a.serve(c, "admin.html")
		return
	}
	a.serve(c, "login.html")
}

func (a *PageController) serve(c *gin.Context, name string) {
	data, err := fs.ReadFile(a.pages, "html/"+name)
	if err != nil {
		logger.Error("read embedded page failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
