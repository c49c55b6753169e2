package mocks

import (
	"context"
	"errors"

	"github.com/simre/results-server/internal/repository/models"
)

// MockUserRepository is a mock implementation of the UserRepository interface
// for testing the service layer.
type MockUserRepository struct {
	GetUserByEmailFunc func(ctx context.Context, email string) (models.User, error)
	GetUserByIDFunc    func(ctx context.Context, id string) (models.User, error)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return models.User{}, errors.New("GetUserByEmailFunc not implemented")
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return models.User{}, errors.New("GetUserByIDFunc not implemented")
}

// MockSchoolRepository is a mock implementation of the SchoolRepository interface.
type MockSchoolRepository struct {
	ListSchoolsFunc          func(ctx context.Context) ([]models.School, error)
	LatestSchoolsFunc        func(ctx context.Context, limit int) ([]models.School, error)
	CountSchoolsFunc         func(ctx context.Context) (int, error)
	GetSchoolFunc            func(ctx context.Context, id string) (models.School, error)
	CreateSchoolWithUserFunc func(ctx context.Context, u models.User, sc models.School) error
	DeleteSchoolFunc         func(ctx context.Context, id string) error
}

func (m *MockSchoolRepository) ListSchools(ctx context.Context) ([]models.School, error) {
	if m.ListSchoolsFunc != nil {
		return m.ListSchoolsFunc(ctx)
	}
	return nil, errors.New("ListSchoolsFunc not implemented")
}

func (m *MockSchoolRepository) LatestSchools(ctx context.Context, limit int) ([]models.School, error) {
	if m.LatestSchoolsFunc != nil {
		return m.LatestSchoolsFunc(ctx, limit)
	}
	return nil, errors.New("LatestSchoolsFunc not implemented")
}

func (m *MockSchoolRepository) CountSchools(ctx context.Context) (int, error) {
	if m.CountSchoolsFunc != nil {
		return m.CountSchoolsFunc(ctx)
	}
	return 0, errors.New("CountSchoolsFunc not implemented")
}

func (m *MockSchoolRepository) GetSchool(ctx context.Context, id string) (models.School, error) {
	if m.GetSchoolFunc != nil {
		return m.GetSchoolFunc(ctx, id)
	}
	return models.School{}, errors.New("GetSchoolFunc not implemented")
}

func (m *MockSchoolRepository) CreateSchoolWithUser(ctx context.Context, u models.User, sc models.School) error {
	if m.CreateSchoolWithUserFunc != nil {
		return m.CreateSchoolWithUserFunc(ctx, u, sc)
	}
	return errors.New("CreateSchoolWithUserFunc not implemented")
}

func (m *MockSchoolRepository) DeleteSchool(ctx context.Context, id string) error {
	if m.DeleteSchoolFunc != nil {
		return m.DeleteSchoolFunc(ctx, id)
	}
	return errors.New("DeleteSchoolFunc not implemented")
}

// MockResultRepository is a mock implementation of the ResultRepository interface.
type MockResultRepository struct {
	ListResultsFunc   func(ctx context.Context, filter models.ResultFilter) ([]models.Result, error)
	LatestResultsFunc func(ctx context.Context, limit int) ([]models.ResultWithSchool, error)
	GetResultFunc     func(ctx context.Context, id string) (models.Result, error)
	CreateResultFunc  func(ctx context.Context, r models.Result) error
	DeleteResultFunc  func(ctx context.Context, id string) error
}

func (m *MockResultRepository) ListResults(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	if m.ListResultsFunc != nil {
		return m.ListResultsFunc(ctx, filter)
	}
	return nil, errors.New("ListResultsFunc not implemented")
}

func (m *MockResultRepository) LatestResults(ctx context.Context, limit int) ([]models.ResultWithSchool, error) {
	if m.LatestResultsFunc != nil {
		return m.LatestResultsFunc(ctx, limit)
	}
	return nil, errors.New("LatestResultsFunc not implemented")
}

func (m *MockResultRepository) GetResult(ctx context.Context, id string) (models.Result, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, id)
	}
	return models.Result{}, errors.New("GetResultFunc not implemented")
}

func (m *MockResultRepository) CreateResult(ctx context.Context, r models.Result) error {
	if m.CreateResultFunc != nil {
		return m.CreateResultFunc(ctx, r)
	}
	return errors.New("CreateResultFunc not implemented")
}

func (m *MockResultRepository) DeleteResult(ctx context.Context, id string) error {
	if m.DeleteResultFunc != nil {
		return m.DeleteResultFunc(ctx, id)
	}
	return errors.New("DeleteResultFunc not implemented")
}
