package ui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"extfin/app"
	"extfin/internal"
)

// Server is the JSON collaborator surface a charting frontend consumes. It
// exposes the dataset, the indicator catalog, and every derived view; it
// renders nothing itself.
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	logger    *internal.Logger
}

// NewServer creates the API server around a dashboard service.
func NewServer(dashboard *app.DashboardService, ginMode string, logger *internal.Logger) *Server {
	gin.SetMode(ginMode)

	s := &Server{
		router:    gin.New(),
		dashboard: dashboard,
		logger:    logger,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/guide", s.handleGuide)
		api.GET("/indicators", s.handleIndicators)
		api.GET("/dataset", s.handleDatasetSummary)
		api.POST("/dataset", s.handleDatasetUpload)
		api.GET("/series", s.handleSeries)
		api.GET("/series/indexed", s.handleIndexed)
		api.GET("/series/ratio", s.handleRatio)
		api.GET("/series/correlation", s.handleCorrelation)
		api.GET("/series/scatter", s.handleScatter)
		api.GET("/dashboard", s.handleDashboard)
	}
}

// Run starts the HTTP server on the given port and blocks.
func (s *Server) Run(port string) error {
	addr := fmt.Sprintf(":%s", port)
	s.logger.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
