package ui

import (
	"log"
	"net/http"

	"boothpulse/app"
	"boothpulse/internal"
	"boothpulse/internal/config"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the boothpulse API
type Server struct {
	router         *gin.Engine
	store          *SessionStore
	importService  *app.ImportService
	summaryService *app.SummaryService
	importCfg      config.ImportConfig
	logger         *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(importService *app.ImportService, summaryService *app.SummaryService, importCfg config.ImportConfig, logger *internal.Logger) *Server {
	s := &Server{
		router:         gin.Default(),
		store:          NewSessionStore(),
		importService:  importService,
		summaryService: summaryService,
		importCfg:      importCfg,
		logger:         logger,
	}

	s.router.MaxMultipartMemory = importCfg.MaxUploadMB << 20
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.Use(orgScope())
	{
		api.POST("/imports", s.handleCreateImport)
		api.GET("/imports/:id", s.handleGetImport)
		api.PUT("/imports/:id/mapping", s.handleRemap)
		api.POST("/imports/:id/validate", s.handleValidate)
		api.POST("/imports/:id/submit", s.handleSubmit)
		api.DELETE("/imports/:id", s.handleCancelImport)

		api.GET("/imports", s.handleRecentBatches)
		api.GET("/summary/voters", s.handleVoterSummary)
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("Starting boothpulse server on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"live_sessions": s.store.Count(),
	})
}
