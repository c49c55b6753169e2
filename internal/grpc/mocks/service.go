package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/service"
)

// MockDashboardService is a mock implementation of the DashboardService interface
// for testing the handler layer.
type MockDashboardService struct {
	SummaryFunc        func(ctx context.Context, schoolID string) (analytics.KPISummary, error)
	SchoolChartsFunc   func(ctx context.Context, schoolID string) ([]service.ChartSeries, error)
	RecentActivityFunc func(ctx context.Context) ([]analytics.Activity, error)
	NowFunc            func() time.Time
}

func (m *MockDashboardService) Summary(ctx context.Context, schoolID string) (analytics.KPISummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, schoolID)
	}
	return analytics.KPISummary{}, errors.New("SummaryFunc not implemented")
}

func (m *MockDashboardService) SchoolCharts(ctx context.Context, schoolID string) ([]service.ChartSeries, error) {
	if m.SchoolChartsFunc != nil {
		return m.SchoolChartsFunc(ctx, schoolID)
	}
	return nil, errors.New("SchoolChartsFunc not implemented")
}

func (m *MockDashboardService) RecentActivity(ctx context.Context) ([]analytics.Activity, error) {
	if m.RecentActivityFunc != nil {
		return m.RecentActivityFunc(ctx)
	}
	return nil, errors.New("RecentActivityFunc not implemented")
}

func (m *MockDashboardService) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Now()
}

// MockTokenVerifier is a mock implementation of the TokenVerifier interface.
type MockTokenVerifier struct {
	VerifyFunc func(token string) (auth.Session, error)
}

func (m *MockTokenVerifier) Verify(token string) (auth.Session, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return auth.Session{}, auth.ErrInvalidToken
}
