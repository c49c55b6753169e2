package grpc

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/service"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type DashboardHandlers struct {
	dashboard DashboardService
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	writes    writeGuard
	cacheTTL  time.Duration
}

var _ DashboardServer = (*DashboardHandlers)(nil)

// NewDashboardHandlers initializes the gRPC handlers. cache may be nil.
func NewDashboardHandlers(dashboard DashboardService, cache Cacher, logger *zap.Logger, ttl time.Duration) *DashboardHandlers {
	if dashboard == nil {
		panic("nil DashboardService provided to NewDashboardHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &DashboardHandlers{
		dashboard: dashboard,
		cache:     cache,
		logger:    logger.Named("grpc-handler"),
		cacheTTL:  ttl,
	}
}

func schoolIDFrom(req *structpb.Struct) string {
	return req.GetFields()["school_id"].GetStringValue()
}

func (s *DashboardHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		s.logger.Info("not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, "school not found")
	case errors.Is(err, service.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, auth.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid session token")
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed", op)
	}
}

func (s *DashboardHandlers) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	schoolID := schoolIDFrom(req)

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	summary, err := FindAndCache(ctx, s.cache, &s.sfGroup, &s.writes, summaryKey(schoolID), s.cacheTTL, s.logger, func(fetchCtx context.Context) (analytics.KPISummary, error) {
		return s.dashboard.Summary(fetchCtx, schoolID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetSummary", err)
	}

	return s.encode("GetSummary", summaryToMap(summary))
}

func (s *DashboardHandlers) GetSchoolCharts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	schoolID := schoolIDFrom(req)
	if schoolID == "" {
		return nil, status.Error(codes.InvalidArgument, "school_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	charts, err := FindAndCache(ctx, s.cache, &s.sfGroup, &s.writes, chartsKey(schoolID), s.cacheTTL, s.logger, func(fetchCtx context.Context) ([]service.ChartSeries, error) {
		return s.dashboard.SchoolCharts(fetchCtx, schoolID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetSchoolCharts", err)
	}

	return s.encode("GetSchoolCharts", map[string]any{"series": chartsToList(charts)})
}

func (s *DashboardHandlers) GetRecentActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	feed, err := FindAndCache(ctx, s.cache, &s.sfGroup, &s.writes, cacheKeyActivity, s.cacheTTL, s.logger, func(fetchCtx context.Context) ([]analytics.Activity, error) {
		return s.dashboard.RecentActivity(fetchCtx)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetRecentActivity", err)
	}

	return s.encode("GetRecentActivity", map[string]any{"activities": activitiesToList(feed, s.dashboard.Now())})
}

// Invalidate drops the cached dashboard entries affected by a write to schoolID.
// An empty schoolID drops only the global entries.
func (s *DashboardHandlers) Invalidate(ctx context.Context, schoolID string) {
	if s.cache == nil {
		return
	}
	keys := dashboardKeys(schoolID)
	err := s.writes.invalidate(func() error {
		return s.cache.Delete(ctx, keys...)
	})
	if err != nil {
		s.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
		return
	}
	s.logger.Debug("cache invalidated", zap.Strings("keys", keys))
}

func (s *DashboardHandlers) encode(op string, m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		s.logger.Error("encode response", zap.String("op", op), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "%s failed", op)
	}
	return out, nil
}
