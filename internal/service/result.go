package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository/models"
)

// ResultService manages the evaluation results of schools.
type ResultService struct {
	schools SchoolRepository
	results ResultRepository
	policy  auth.Policy
	logger  *zap.Logger
	now     func() time.Time
}

func NewResultService(schools SchoolRepository, results ResultRepository, policy auth.Policy, logger *zap.Logger) *ResultService {
	if schools == nil || results == nil {
		panic("storage must not be nil")
	}
	if policy == nil {
		panic("policy must not be nil")
	}
	return &ResultService{
		schools: schools,
		results: results,
		policy:  policy,
		logger:  defaultLogger(logger),
		now:     time.Now,
	}
}

// ListBySchool returns the results of one school, newest first.
func (s *ResultService) ListBySchool(ctx context.Context, schoolID string) ([]models.Result, error) {
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
	if results == nil {
		results = []models.Result{}
	}
	return results, nil
}

func (s *ResultService) Create(ctx context.Context, session auth.Session, schoolID string, in CreateResultInput) (models.Result, error) {
	if !s.policy.CanWrite(session) {
		return models.Result{}, ErrForbidden
	}
	if schoolID == "" {
		return models.Result{}, fmt.Errorf("%w: school id is required", ErrInvalidInput)
	}
	if in.Score != nil && (math.IsNaN(*in.Score) || math.IsInf(*in.Score, 0)) {
		return models.Result{}, fmt.Errorf("%w: score must be a finite number", ErrInvalidInput)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.schools.GetSchool(dbCtx, schoolID); err != nil {
		return models.Result{}, storageError("get school", err)
	}

	r := models.Result{
		ID:         uuid.NewString(),
		SchoolID:   schoolID,
		Assessment: strings.TrimSpace(in.Assessment),
		Subject:    strings.TrimSpace(in.Subject),
		Grade:      strings.TrimSpace(in.Grade),
		Year:       in.Year,
		Score:      in.Score,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.results.CreateResult(dbCtx, r); err != nil {
		return models.Result{}, storageError("create result", err)
	}

	s.logger.Info("result created",
		zap.String("result_id", r.ID),
		zap.String("school_id", schoolID),
		zap.String("created_by", session.UserID))

	return r, nil
}

// Delete removes a result and returns it so callers know which school it belonged to.
func (s *ResultService) Delete(ctx context.Context, session auth.Session, id string) (models.Result, error) {
	if !s.policy.CanWrite(session) {
		return models.Result{}, ErrForbidden
	}
	if id == "" {
		return models.Result{}, ErrInvalidInput
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	r, err := s.results.GetResult(dbCtx, id)
	if err != nil {
		return models.Result{}, storageError("get result", err)
	}
	if err := s.results.DeleteResult(dbCtx, id); err != nil {
		return models.Result{}, storageError("delete result", err)
	}

	s.logger.Info("result deleted",
		zap.String("result_id", id),
		zap.String("school_id", r.SchoolID),
		zap.String("deleted_by", session.UserID))
	return r, nil
}
