package service

import (
	"context"

	"github.com/simre/results-server/internal/repository/models"
)

// UserRepository defines the login storage used by the services.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// SchoolRepository defines the school storage used by the services.
type SchoolRepository interface {
	ListSchools(ctx context.Context) ([]models.School, error)
	LatestSchools(ctx context.Context, limit int) ([]models.School, error)
	CountSchools(ctx context.Context) (int, error)
	GetSchool(ctx context.Context, id string) (models.School, error)
	CreateSchoolWithUser(ctx context.Context, u models.User, sc models.School) error
	DeleteSchool(ctx context.Context, id string) error
}

// ResultRepository defines the result storage used by the services.
type ResultRepository interface {
	ListResults(ctx context.Context, filter models.ResultFilter) ([]models.Result, error)
	LatestResults(ctx context.Context, limit int) ([]models.ResultWithSchool, error)
	CreateResult(ctx context.Context, r models.Result) error
	DeleteResult(ctx context.Context, id string) error
	GetResult(ctx context.Context, id string) (models.Result, error)
}
