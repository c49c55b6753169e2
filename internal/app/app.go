package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/config"
	handler "github.com/simre/results-server/internal/grpc"
	"github.com/simre/results-server/internal/httpapi"
	"github.com/simre/results-server/internal/repository"
	"github.com/simre/results-server/internal/service"
	"github.com/simre/results-server/pkg/cache"
	dbbuilder "github.com/simre/results-server/pkg/database"
	grpcsrv "github.com/simre/results-server/pkg/grpc/server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	grpcServer *grpcsrv.Server
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := ensureDataDir(cfg.DBPath); err != nil {
		return nil, err
	}

	dbPool, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithSetup(repository.Migrate),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	var cacheClient *cache.Cache
	var cacher handler.Cacher
	if cfg.CacheEnabled {
		cacheClient, err = cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		cacher = cacheClient
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("Cache disabled, dashboard reads go straight to the database")
	}

	users := repository.NewUserRepository(dbPool)
	schools := repository.NewSchoolRepository(dbPool)
	results := repository.NewResultRepository(dbPool)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	policy := auth.NewAdminPolicy(cfg.AdminUserIDs...)

	dashboardService := service.NewDashboardService(schools, results, logger.Named("dashboard"),
		service.WithActivityWindow(cfg.ActivityWindow))
	schoolService := service.NewSchoolService(schools, policy, logger.Named("schools"))
	resultService := service.NewResultService(schools, results, policy, logger.Named("results"))
	authService := service.NewAuthService(users, tokens, logger.Named("auth"))

	grpcHandlers := handler.NewDashboardHandlers(dashboardService, cacher, logger, cfg.CacheTTL)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithUnaryInterceptors(handler.AuthInterceptor(tokens, logger)),
	)
	if err != nil {
		closeQuietly(logger, cacheClient, dbPool)
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(handler.DashboardServiceName, func(s *grpc.Server) {
		handler.RegisterDashboardServer(s, grpcHandlers)
	})

	httpServer := httpapi.NewServer(httpapi.Options{
		Address:     cfg.HTTPAddr,
		Debug:       cfg.AppEnv == "development",
		Logger:      logger,
		Auth:        authService,
		Schools:     schoolService,
		Results:     resultService,
		Cache:       grpcHandlers,
		HealthCheck: dbPool.PingContext,
	})

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
		httpServer: httpServer,
	}, nil
}

// Run starts both servers and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.grpcServer.Start()
	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	a.logger.Info("application shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.Shutdown(ctx)
}

// Shutdown stops the servers, then closes the cache and the database.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
		firstErr = err
	}
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Error("gRPC server shutdown error", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	closeQuietly(a.logger, a.cache, a.dbPool)

	if firstErr == nil {
		a.logger.Info("graceful shutdown completed successfully")
	}
	_ = a.logger.Sync()
	return firstErr
}

func closeQuietly(logger *zap.Logger, c *cache.Cache, db *sql.DB) {
	if c != nil {
		if err := c.Close(); err != nil {
			logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("database shutdown error", zap.Error(err))
		}
	}
}

// ensureDataDir creates the directory holding a file-backed sqlite database.
func ensureDataDir(dsn string) error {
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return nil
}
