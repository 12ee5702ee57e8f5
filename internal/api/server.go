package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	mw "github.com/tphakala/weatherapp/internal/api/middleware"
	"github.com/tphakala/weatherapp/internal/logger"
	"github.com/tphakala/weatherapp/internal/observability"
	"github.com/tphakala/weatherapp/internal/observability/metrics"
	"github.com/tphakala/weatherapp/internal/weather"
)

// WeatherFetcher is the part of weather.Client the server uses.
type WeatherFetcher interface {
	FetchCurrentWeather(ctx context.Context, city string) (weather.Record, error)
	HasAPIKey() bool
}

// Server is the HTTP server for the weather web interface.
type Server struct {
	echo    *echo.Echo
	config  *Config
	weather WeatherFetcher
	metrics *observability.Metrics
	log     logger.Logger

	indexTmpl    *template.Template
	staticServer *StaticFileServer

	startTime time.Time
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics sets the observability metrics for the server and exposes /metrics.
func WithMetrics(m *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a new HTTP server serving fetcher's results.
func New(config *Config, fetcher WeatherFetcher, opts ...ServerOption) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	if fetcher == nil {
		return nil, errors.New("weather fetcher is required")
	}

	s := &Server{
		config:    config,
		weather:   fetcher,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = GetLogger()
	}

	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	s.indexTmpl = tmpl

	staticFS, err := fs.Sub(webFS, "web/static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}
	s.staticServer = NewStaticFileServer(s.log, staticFS)

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Debug = config.Debug

	s.echo.Server.ReadTimeout = config.ReadTimeout
	s.echo.Server.WriteTimeout = config.WriteTimeout
	s.echo.Server.IdleTimeout = config.IdleTimeout

	s.setupMiddleware()
	s.setupRoutes()

	s.log.Info("HTTP server initialized",
		logger.String("address", config.Address()),
		logger.Bool("api_key_configured", fetcher.HasAPIKey()),
		logger.Bool("metrics", s.metrics != nil),
		logger.Bool("debug", config.Debug))

	return s, nil
}

// setupMiddleware configures the Echo middleware stack.
func (s *Server) setupMiddleware() {
	// Recovery middleware - should be first
	s.echo.Use(echomw.Recover())
	s.echo.Use(mw.NewRequestID())

	var httpMetrics *metrics.HTTPMetrics
	if s.metrics != nil {
		httpMetrics = s.metrics.HTTP
	}
	s.echo.Use(mw.NewMetrics(httpMetrics))
	s.echo.Use(mw.NewRequestLoggerWithSkipper(s.log, skipProbeRequests))

	securityConfig := mw.DefaultSecurityConfig()
	s.echo.Use(mw.NewCORS(securityConfig))
	s.echo.Use(mw.NewBodyLimit(s.config.BodyLimit))
	s.echo.Use(mw.NewSecureHeaders(securityConfig))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/weather", s.handleWeather)
	s.echo.GET("/healthz", s.healthCheck)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	s.staticServer.RegisterRoutes(s.echo)
}

// renderIndex executes the page template into a buffer so a template error
// never leaves a half-written response.
func (s *Server) renderIndex() ([]byte, error) {
	var buf bytes.Buffer
	data := struct{ HasAPIKey bool }{HasAPIKey: s.weather.HasAPIKey()}
	if err := s.indexTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Start serves HTTP requests and blocks until the server is shut down.
func (s *Server) Start() error {
	addr := s.config.Address()
	s.log.Info("Starting HTTP server", logger.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.log.Error("Error during server shutdown", logger.Error(err))
		return fmt.Errorf("shutdown error: %w", err)
	}

	s.log.Info("Server shutdown complete")
	return nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// skipProbeRequests keeps health and scrape requests out of the request log.
func skipProbeRequests(c echo.Context) bool {
	switch c.Path() {
	case "/healthz", "/metrics":
		return true
	}
	return false
}
