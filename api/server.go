package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"activity-forecast/metrics"
	"activity-forecast/models"
	"activity-forecast/scoring"

	"github.com/gin-gonic/gin"
)

// Forecaster produces the merged weather forecast for a location query
type Forecaster interface {
	GetForecast(ctx context.Context, query string) (*models.WeatherForecast, error)
}

// Server represents the API server
type Server struct {
	forecaster Forecaster
	metrics    *metrics.Metrics
	logger     *slog.Logger
	engine     *gin.Engine
	server     *http.Server
	started    time.Time
}

// NewServer creates a new API server listening on addr. m may be nil, in
// which case /metrics is not served.
func NewServer(forecaster Forecaster, m *metrics.Metrics, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), cors())

	s := &Server{
		forecaster: forecaster,
		metrics:    m,
		logger:     logger,
		engine:     engine,
		started:    time.Now(),
		server: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	api := engine.Group("/api")
	{
		api.GET("/activity-forecast", s.handleActivityForecast)
		api.GET("/weather", s.handleWeather)
		api.GET("/health", s.handleHealthCheck)
	}
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins the API server. It returns nil once Shutdown has been called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleActivityForecast scores the forecast for ?location= and returns the
// ranked activities
// GET /api/activity-forecast
func (s *Server) handleActivityForecast(c *gin.Context) {
	forecast, err := s.forecaster.GetForecast(c.Request.Context(), c.Query("location"))
	if err != nil {
		_ = c.Error(err)
		s.metrics.ForecastRequest(writeError(c, err))
		return
	}

	s.metrics.ForecastRequest("ok")
	c.JSON(http.StatusOK, scoring.BuildOutlook(*forecast))
}

// handleWeather returns the merged daily forecast without scoring
// GET /api/weather
func (s *Server) handleWeather(c *gin.Context) {
	forecast, err := s.forecaster.GetForecast(c.Request.Context(), c.Query("location"))
	if err != nil {
		_ = c.Error(err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// handleHealthCheck provides a simple health check endpoint
// GET /api/health
func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
