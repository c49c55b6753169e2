package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

type Options struct {
	Address        string
	Debug          bool
	DisableReqLogs bool
	Logger         *zap.Logger

	Auth    AuthService
	Schools SchoolService
	Results ResultService
	// Cache is optional.
	Cache Invalidator
	// HealthCheck is optional; a non-nil error turns /healthz into 503.
	HealthCheck func(ctx context.Context) error
}

type Server struct {
	opts     Options
	app      *echo.Echo
	logger   *zap.Logger
	validate *requestValidator
}

// NewServer builds the echo application serving the /v1 API.
func NewServer(opts Options) *Server {
	if opts.Auth == nil || opts.Schools == nil || opts.Results == nil {
		panic("httpapi: auth, schools and results services are required")
	}
	if opts.Address == "" {
		opts.Address = ":8080"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		opts:     opts,
		app:      echo.New(),
		logger:   logger.Named("http-server"),
		validate: newRequestValidator(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug
	s.app.Validator = s.validate
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.logger, s.validate)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestID())
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLogger(s.logger))
	}
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.GET("/healthz", s.health)

	v1 := s.app.Group("/v1")
	requireAuth := authenticate(s.opts.Auth.Authenticate)

	v1.POST("/auth/login", s.login)
	v1.GET("/auth/me", s.me, requireAuth)

	schools := v1.Group("/schools", requireAuth)
	schools.GET("", s.listSchools)
	schools.POST("", s.createSchool)
	schools.DELETE("/:id", s.deleteSchool)
	schools.GET("/:id/results", s.listResults)
	schools.POST("/:id/results", s.createResult)

	v1.DELETE("/results/:id", s.deleteResult, requireAuth)
}

// Start serves in a goroutine and returns immediately.
func (s *Server) Start() {
	s.logger.Info("HTTP server starting", zap.String("addr", s.opts.Address))

	go func() {
		if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
}

// Shutdown waits for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.app.Shutdown(ctx)
}

// Addr returns the listening address once the server has started.
func (s *Server) Addr() net.Addr {
	return s.app.ListenerAddr()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) invalidate(ctx context.Context, schoolID string) {
	if s.opts.Cache != nil {
		s.opts.Cache.Invalidate(ctx, schoolID)
	}
}

func (s *Server) health(c echo.Context) error {
	if s.opts.HealthCheck != nil {
		if err := s.opts.HealthCheck(c.Request().Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
