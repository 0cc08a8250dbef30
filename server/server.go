package server

import (
	"context"
	"net/http"
	"time"

	"tasksearch/configs"
	"tasksearch/delivery/rest"
	"tasksearch/delivery/rest/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the gin engine
type Server struct {
	engine     *gin.Engine
	config     configs.ServerConfig
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg configs.ServerConfig, h *rest.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Recovery(logger))

	s := &Server{
		engine: engine,
		config: cfg,
		logger: logger,
	}

	s.registerRoutes(engine, h)

	return s
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes(engine *gin.Engine, h *rest.Handler) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := engine.Group("/api/search")
	{
		api.POST("/advanced", h.AdvancedSearch)
		api.POST("/simple", h.SimpleSearch)
		api.POST("/sync/:userId", h.SyncUser)

		api.GET("/user/:userId", h.GetUserTasks)
		api.GET("/user/:userId/page", h.GetUserTasksPaged)
		api.GET("/user/:userId/keyword", h.SearchByKeyword)
		api.GET("/user/:userId/status", h.FilterByStatus)
		api.GET("/user/:userId/priority", h.FilterByPriority)
		api.GET("/user/:userId/task/:taskId", h.GetTaskByID)
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address(),
		Handler: s.engine,
	}

	s.logger.Info("starting HTTP server", zap.String("address", s.config.Address()))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
