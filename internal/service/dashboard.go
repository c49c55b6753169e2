package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/repository/models"
)

// DashboardService feeds the dashboard screens: KPI cards, per-school charts and the activity feed.
type DashboardService struct {
	schools SchoolRepository
	results ResultRepository
	logger  *zap.Logger
	window  int
	now     func() time.Time
}

type DashboardOption func(*DashboardService)

// WithActivityWindow sets how many entries the activity feed returns.
func WithActivityWindow(n int) DashboardOption {
	return func(s *DashboardService) {
		if n > 0 {
			s.window = n
		}
	}
}

// WithClock overrides the time source used for the current year and elapsed labels.
func WithClock(now func() time.Time) DashboardOption {
	return func(s *DashboardService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewDashboardService(schools SchoolRepository, results ResultRepository, logger *zap.Logger, opts ...DashboardOption) *DashboardService {
	if schools == nil || results == nil {
		panic("storage must not be nil")
	}
	s := &DashboardService{
		schools: schools,
		results: results,
		logger:  defaultLogger(logger),
		window:  analytics.DefaultActivityWindow,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the KPI cards. An empty schoolID summarizes every school.
func (s *DashboardService) Summary(ctx context.Context, schoolID string) (analytics.KPISummary, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var schoolCount int
	if schoolID == "" {
		n, err := s.schools.CountSchools(dbCtx)
		if err != nil {
			return analytics.KPISummary{}, storageError("count schools", err)
		}
		schoolCount = n
	} else {
		if _, err := s.schools.GetSchool(dbCtx, schoolID); err != nil {
			return analytics.KPISummary{}, storageError("get school", err)
		}
		schoolCount = 1
	}

	results, err := s.results.ListResults(dbCtx, models.ResultFilter{SchoolID: schoolID})
	if err != nil {
		return analytics.KPISummary{}, storageError("list results", err)
	}

	summary := analytics.Summarize(results, schoolCount, s.now())

	s.logger.Info("computed summary",
		zap.String("school_id", schoolID),
		zap.Int("school_count", summary.SchoolCount),
		zap.Int("result_count", summary.ResultCount),
		zap.Float64("current_year_average", summary.CurrentYearAverage))

	return summary, nil
}

// SchoolCharts builds one chart per (assessment, grade, subject) of the school, ordered by key.
func (s *DashboardService) SchoolCharts(ctx context.Context, schoolID string) ([]ChartSeries, error) {
	if schoolID == "" {
		return nil, ErrInvalidInput
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.schools.GetSchool(dbCtx, schoolID); err != nil {
		return nil, storageError("get school", err)
	}

	results, err := s.results.ListResults(dbCtx, models.ResultFilter{SchoolID: schoolID})
	if err != nil {
		return nil, storageError("list results", err)
	}

	groups := analytics.Group(results)
	charts := make([]ChartSeries, 0, len(groups))
	for _, key := range analytics.SortedKeys(groups) {
		series := groups[key]
		scale := analytics.SelectScale(series)
		charts = append(charts, ChartSeries{
			Key:    key,
			Title:  analytics.FormatTitle(key.String()),
			Scale:  scale,
			Points: analytics.ToPlotPoints(series, scale),
		})
	}

	s.logger.Debug("built school charts",
		zap.String("school_id", schoolID),
		zap.Int("results", len(results)),
		zap.Int("series", len(charts)))

	return charts, nil
}

// RecentActivity returns the newest schools and results merged into one feed.
func (s *DashboardService) RecentActivity(ctx context.Context) ([]analytics.Activity, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	schools, err := s.schools.LatestSchools(dbCtx, s.window)
	if err != nil {
		return nil, storageError("latest schools", err)
	}
	results, err := s.results.LatestResults(dbCtx, s.window)
	if err != nil {
		return nil, storageError("latest results", err)
	}

	return analytics.RecentActivity(schools, results, s.window), nil
}

// Now is the clock the service computes against.
func (s *DashboardService) Now() time.Time {
	return s.now()
}
