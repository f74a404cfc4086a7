// Package api exposes the analysis service over HTTP with gin.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"gocorr/app"
	"gocorr/internal"
	"gocorr/internal/errors"

	"github.com/gin-gonic/gin"
)

// Server is the JSON API in front of one AnalysisService
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	events  *EventHub
	logger  *internal.Logger
}

// NewServer creates a server with its routes registered
func NewServer(service *app.AnalysisService, events *EventHub, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if events == nil {
		events = NewEventHub(logger)
	}

	s := &Server{
		router:  gin.New(),
		service: service,
		events:  events,
		logger:  logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")

	api.POST("/dataset", s.handleLoadRecords)
	api.POST("/dataset/csv", s.handleLoadCSV)
	api.GET("/dataset/export", s.handleExportCSV)
	api.GET("/dataset/profile", s.handleProfile)
	api.DELETE("/dataset", s.handleClearDataset)

	api.GET("/columns", s.handleColumns)
	api.GET("/columns/:name/summary", s.handleSummary)
	api.GET("/columns/:name/normality", s.handleNormality)

	api.POST("/correlations", s.handleCorrelate)
	api.POST("/hypothesis", s.handleHypothesis)

	api.GET("/dimensions/:variable", s.handleGetDimensions)
	api.PUT("/dimensions/:variable", s.handleConfigureDimensions)
	api.POST("/dimensions/correlations", s.handleCorrelateDimensions)

	api.GET("/framework", s.handleGetFramework)
	api.PUT("/framework", s.handleConfigureFramework)

	api.POST("/reports", s.handleCreateReport)
	api.GET("/reports", s.handleListReports)
	api.GET("/reports/:id", s.handleGetReport)

	api.GET("/events", s.events.HandleSSE)
}

// requestLogger logs one line per request at debug level, warn for 5xx
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		if status >= http.StatusInternalServerError {
			s.logger.Warn("[HTTP] %s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path, status, elapsed)
			return
		}
		s.logger.Debug("[HTTP] %s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting gocorr API on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// respondError writes the classified error as JSON
func (s *Server) respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	status := errors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": appErr.Error(), "code": appErr.Code})
}

// bindJSON decodes the body, answering 400 on malformed input
func (s *Server) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body: "+err.Error()))
		return false
	}
	return true
}
