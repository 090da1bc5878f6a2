package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/astatica/portfolio/database"
	"github.com/astatica/portfolio/database/model"
	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/web/middleware"
	"github.com/astatica/portfolio/web/service"

	"github.com/gin-gonic/gin"
)

// AdminController handles the session-gated admin API: work creation and
// deletion plus the status and log endpoints for the admin page.
type AdminController struct {
	BaseController

	workService   service.WorkService
	serverService service.ServerService
	uploader      service.Uploader
}

// NewAdminController creates a new AdminController bound to the configured
// upload strategy and initializes its routes.
func NewAdminController(g *gin.RouterGroup, uploader service.Uploader) *AdminController {
	a := &AdminController{uploader: uploader}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)
	g.Use(middleware.Audit())

	g.POST("/works", a.createWork)
	g.DELETE("/works/:id", a.deleteWork)
	g.GET("/status", a.status)
	g.GET("/logs", a.getLogs)
}

// createWork runs the work-creation workflow: validate the structured
// fields, mediate the upload, then persist. The upload happens strictly
// before the database write; if the write fails a local upload is removed
// again so no orphan is left behind.
func (a *AdminController) createWork(c *gin.Context) {
	credits, err := service.ParseCredits(c.PostForm("credits"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid credits")
		return
	}
	categories := service.ParseCategories(c.PostForm("categories"))

	coverImage := c.PostForm("coverImageUrl")
	uploadedUrl := ""
	if fileHeader, err := c.FormFile("coverImage"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "Upload failed")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "Upload failed")
			return
		}

		url, err := a.uploader.Upload(fileHeader.Filename, data)
		if err != nil {
			a.uploadError(c, err)
			return
		}
		coverImage = url
		uploadedUrl = url
	}

	work := &model.Work{
		Title:       c.PostForm("title"),
		Categories:  categories,
		Description: c.PostForm("description"),
		YoutubeUrl:  c.PostForm("youtubeUrl"),
		CoverImage:  coverImage,
		Credits:     credits,
	}
	if err := a.workService.CreateWork(work); err != nil {
		logger.Error("create work failed:", err)
		if uploadedUrl != "" {
			if remover, ok := a.uploader.(service.Remover); ok {
				if err := remover.Remove(uploadedUrl); err != nil {
					logger.Warning("remove orphaned upload failed:", err)
				}
			}
		}
		jsonError(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "work": work})
}

func (a *AdminController) uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		logger.Error("upload mediation misconfigured:", err)
		jsonError(c, http.StatusInternalServerError, "Storage not configured")
	case errors.Is(err, service.ErrUnsupportedType):
		jsonError(c, http.StatusBadRequest, "Unsupported file type")
	default:
		logger.Error("upload failed:", err)
		jsonError(c, http.StatusInternalServerError, "Upload failed")
	}
}

// deleteWork removes a work by its storage-assigned id.
func (a *AdminController) deleteWork(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusNotFound, "Not found")
		return
	}
	err = a.workService.DeleteWork(id)
	if database.IsNotFound(err) {
		jsonError(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logger.Error("delete work failed:", err)
		jsonError(c, http.StatusInternalServerError, "Internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// status reports a process health snapshot.
func (a *AdminController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

// getLogs returns recent log entries from the in-memory buffer.
func (a *AdminController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count < 0 {
		count = 50
	}
	level := strings.ToUpper(c.DefaultQuery("level", "INFO"))
	jsonObj(c, logger.GetLogs(count, level), nil)
}
