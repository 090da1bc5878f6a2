// Package web provides the portfolio web server: routing, session handling,
// embedded pages and the scheduled maintenance jobs.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/astatica/portfolio/config"
	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/util/common"
	"github.com/astatica/portfolio/util/random"
	"github.com/astatica/portfolio/web/controller"
	"github.com/astatica/portfolio/web/job"
	"github.com/astatica/portfolio/web/middleware"
	"github.com/astatica/portfolio/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

const sessionName = "portfolio"

// Server is the portfolio web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	pages *controller.PageController
	auth  *controller.AuthController
	work  *controller.WorkController
	admin *controller.AdminController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter configures gin, the cookie session store, middleware, static
// uploads and the controllers.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret := config.GetSessionSecret()
	if secret == "" {
		// Sessions won't survive a restart without a configured secret.
		secret = random.Seq(32)
		logger.Warning("PORTFOLIO_SESSION_SECRET not set, using a generated secret")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(sessionName, store))

	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{config.GetUploadPublicPath()}),
	))
	engine.Use(middleware.CountRequests())

	// Locally stored cover images are served straight from disk.
	if config.GetStorageKind() == config.StorageLocal {
		engine.Static(config.GetUploadPublicPath(), config.GetUploadDir())
	}

	uploader := service.NewUploader()

	s.pages = controller.NewPageController(engine.Group("/"), htmlFS)

	api := engine.Group("/api")
	s.auth = controller.NewAuthController(api)
	s.work = controller.NewWorkController(api)
	s.admin = controller.NewAdminController(api.Group("/admin"), uploader)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the maintenance jobs.
func (s *Server) startTask() {
	if config.GetStorageKind() == config.StorageLocal {
		if _, err := s.cron.AddJob("@daily", job.NewOrphanUploadJob(config.GetUploadDir())); err != nil {
			logger.Warning("schedule orphan sweep failed:", err)
		}
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
