package mocks

import (
	"context"
	"errors"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository/models"
	"github.com/simre/results-server/internal/service"
)

// MockAuthService is a mock implementation of the AuthService interface
// for testing the HTTP layer.
type MockAuthService struct {
	LoginFunc        func(ctx context.Context, email, password string) (service.LoginResult, error)
	AuthenticateFunc func(token string) (auth.Session, error)
	CurrentUserFunc  func(ctx context.Context, session auth.Session) (models.User, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return service.LoginResult{}, errors.New("LoginFunc not implemented")
}

func (m *MockAuthService) Authenticate(token string) (auth.Session, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(token)
	}
	return auth.Session{}, auth.ErrInvalidToken
}

func (m *MockAuthService) CurrentUser(ctx context.Context, session auth.Session) (models.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, session)
	}
	return models.User{}, errors.New("CurrentUserFunc not implemented")
}

// MockSchoolService is a mock implementation of the SchoolService interface.
type MockSchoolService struct {
	ListFunc   func(ctx context.Context) ([]models.School, error)
	CreateFunc func(ctx context.Context, session auth.Session, in service.CreateSchoolInput) (models.School, error)
	DeleteFunc func(ctx context.Context, session auth.Session, id string) error
}

func (m *MockSchoolService) List(ctx context.Context) ([]models.School, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("ListFunc not implemented")
}

func (m *MockSchoolService) Create(ctx context.Context, session auth.Session, in service.CreateSchoolInput) (models.School, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session, in)
	}
	return models.School{}, errors.New("CreateFunc not implemented")
}

func (m *MockSchoolService) Delete(ctx context.Context, session auth.Session, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, session, id)
	}
	return errors.New("DeleteFunc not implemented")
}

// MockResultService is a mock implementation of the ResultService interface.
type MockResultService struct {
	ListBySchoolFunc func(ctx context.Context, schoolID string) ([]models.Result, error)
	CreateFunc       func(ctx context.Context, session auth.Session, schoolID string, in service.CreateResultInput) (models.Result, error)
	DeleteFunc       func(ctx context.Context, session auth.Session, id string) (models.Result, error)
}

func (m *MockResultService) ListBySchool(ctx context.Context, schoolID string) ([]models.Result, error) {
	if m.ListBySchoolFunc != nil {
		return m.ListBySchoolFunc(ctx, schoolID)
	}
	return nil, errors.New("ListBySchoolFunc not implemented")
}

func (m *MockResultService) Create(ctx context.Context, session auth.Session, schoolID string, in service.CreateResultInput) (models.Result, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session, schoolID, in)
	}
	return models.Result{}, errors.New("CreateFunc not implemented")
}

func (m *MockResultService) Delete(ctx context.Context, session auth.Session, id string) (models.Result, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, session, id)
	}
	return models.Result{}, errors.New("DeleteFunc not implemented")
}

// MockInvalidator records the school ids it was asked to invalidate.
type MockInvalidator struct {
	Invalidated []string
}

func (m *MockInvalidator) Invalidate(ctx context.Context, schoolID string) {
	m.Invalidated = append(m.Invalidated, schoolID)
}
