package httpapi

import (
	"context"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository/models"
	"github.com/simre/results-server/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	Authenticate(token string) (auth.Session, error)
	CurrentUser(ctx context.Context, session auth.Session) (models.User, error)
}

type SchoolService interface {
	List(ctx context.Context) ([]models.School, error)
	Create(ctx context.Context, session auth.Session, in service.CreateSchoolInput) (models.School, error)
	Delete(ctx context.Context, session auth.Session, id string) error
}

type ResultService interface {
	ListBySchool(ctx context.Context, schoolID string) ([]models.Result, error)
	Create(ctx context.Context, session auth.Session, schoolID string, in service.CreateResultInput) (models.Result, error)
	Delete(ctx context.Context, session auth.Session, id string) (models.Result, error)
}

// Invalidator drops cached dashboard data after a write to schoolID.
type Invalidator interface {
	Invalidate(ctx context.Context, schoolID string)
}
