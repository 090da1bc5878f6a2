package controller

import (
	"net/http"

	"github.com/astatica/portfolio/database"
	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/service"

	"github.com/gin-gonic/gin"
)

// WorkController serves the public read API.
type WorkController struct {
	workService service.WorkService
}

// NewWorkController creates a new WorkController and initializes its routes.
func NewWorkController(g *gin.RouterGroup) *WorkController {
	a := &WorkController{}
	a.initRouter(g)
	return a
}

func (a *WorkController) initRouter(g *gin.RouterGroup) {
	g.GET("/categories", a.getCategories)
	g.GET("/works", a.getWorks)
	g.GET("/works/:slug", a.getWork)
}

// getCategories returns the fixed category vocabulary.
func (a *WorkController) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, service.Categories)
}

// getWorks returns every work, newest first.
func (a *WorkController) getWorks(c *gin.Context) {
	works, err := a.workService.GetWorks()
	if err != nil {
		logger.Error("list works failed:", err)
		jsonError(c, http.StatusInternalServerError, "Internal error")
		return
	}
	c.JSON(http.StatusOK, works)
}

// getWork returns one work by slug or 404.
func (a *WorkController) getWork(c *gin.Context) {
	work, err := a.workService.GetWorkBySlug(c.Param("slug"))
	if database.IsNotFound(err) {
		jsonError(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logger.Error("get work failed:", err)
		jsonError(c, http.StatusInternalServerError, "Internal error")
		return
	}
	c.JSON(http.StatusOK, work)
}
