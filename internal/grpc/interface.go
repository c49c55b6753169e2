package grpc

import (
	"context"
	"time"

	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type DashboardService interface {
	Summary(ctx context.Context, schoolID string) (analytics.KPISummary, error)
	SchoolCharts(ctx context.Context, schoolID string) ([]service.ChartSeries, error)
	RecentActivity(ctx context.Context) ([]analytics.Activity, error)
	// Now is the clock the summaries are computed against; elapsed labels use it too.
	Now() time.Time
}

// TokenVerifier resolves a bearer token into a session.
type TokenVerifier interface {
	Verify(token string) (auth.Session, error)
}
