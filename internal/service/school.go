package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository/models"
)

// SchoolService manages schools and the logins that own them.
type SchoolService struct {
	schools SchoolRepository
	policy  auth.Policy
	logger  *zap.Logger
	now     func() time.Time
}

func NewSchoolService(schools SchoolRepository, policy auth.Policy, logger *zap.Logger) *SchoolService {
	if schools == nil {
		panic("storage must not be nil")
	}
	if policy == nil {
		panic("policy must not be nil")
	}
	return &SchoolService{
		schools: schools,
		policy:  policy,
		logger:  defaultLogger(logger),
		now:     time.Now,
	}
}

func (s *SchoolService) List(ctx context.Context) ([]models.School, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	schools, err := s.schools.ListSchools(dbCtx)
	if err != nil {
		return nil, storageError("list schools", err)
	}
	if schools == nil {
		schools = []models.School{}
	}
	return schools, nil
}

// Create registers a school together with a "school" login for it.
func (s *SchoolService) Create(ctx context.Context, session auth.Session, in CreateSchoolInput) (models.School, error) {
	if !s.policy.CanWrite(session) {
		return models.School{}, ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return models.School{}, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.School{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Kind:         models.UserKindSchool,
		CreatedAt:    now,
	}
	school := models.School{
		ID:        uuid.NewString(),
		Name:      name,
		INEPCode:  strings.TrimSpace(in.INEPCode),
		UserID:    user.ID,
		CreatedAt: now,
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.schools.CreateSchoolWithUser(dbCtx, user, school); err != nil {
		return models.School{}, storageError("create school", err)
	}

	s.logger.Info("school created",
		zap.String("school_id", school.ID),
		zap.String("created_by", session.UserID))

	return school, nil
}

func (s *SchoolService) Delete(ctx context.Context, session auth.Session, id string) error {
	if !s.policy.CanWrite(session) {
		return ErrForbidden
	}
	if id == "" {
		return ErrInvalidInput
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.schools.DeleteSchool(dbCtx, id); err != nil {
		return storageError("delete school", err)
	}

	s.logger.Info("school deleted",
		zap.String("school_id", id),
		zap.String("deleted_by", session.UserID))
	return nil
}
