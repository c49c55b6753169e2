package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository"
	"github.com/simre/results-server/internal/repository/models"
	"github.com/simre/results-server/internal/service/mocks"
)

var (
	adminSession  = auth.Session{UserID: "admin-1", Kind: models.UserKindAdmin}
	schoolSession = auth.Session{UserID: "school-1", Kind: models.UserKindSchool}
)

func TestNewSchoolService(t *testing.T) {
	assert.Panics(t, func() { NewSchoolService(nil, auth.NewAdminPolicy(), zap.NewNop()) })
	assert.Panics(t, func() { NewSchoolService(&mocks.MockSchoolRepository{}, nil, zap.NewNop()) })
	assert.NotNil(t, NewSchoolService(&mocks.MockSchoolRepository{}, auth.NewAdminPolicy(), nil).logger)
}

func TestSchoolService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("empty is not nil", func(t *testing.T) {
		repo := &mocks.MockSchoolRepository{
			ListSchoolsFunc: func(ctx context.Context) ([]models.School, error) { return nil, nil },
		}
		schools, err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, schools)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := &mocks.MockSchoolRepository{
			ListSchoolsFunc: func(ctx context.Context) ([]models.School, error) { return nil, errors.New("boom") },
		}
		_, err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).List(ctx)

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestSchoolService_Create(t *testing.T) {
	ctx := context.Background()
	in := CreateSchoolInput{Name: "  Escola Municipal A ", INEPCode: "26123456", Email: " Diretoria@Escola.BR ", Password: "correct horse"}

	t.Run("creates school and login", func(t *testing.T) {
		var gotUser models.User
		var gotSchool models.School
		repo := &mocks.MockSchoolRepository{
			CreateSchoolWithUserFunc: func(ctx context.Context, u models.User, sc models.School) error {
				gotUser, gotSchool = u, sc
				return nil
			},
		}

		school, err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).Create(ctx, adminSession, in)

		require.NoError(t, err)
		assert.Equal(t, gotSchool, school)
		assert.Equal(t, "Escola Municipal A", school.Name)
		assert.Equal(t, "26123456", school.INEPCode)
		assert.NotEmpty(t, school.ID)
		assert.Equal(t, gotUser.ID, school.UserID)

		assert.Equal(t, "diretoria@escola.br", gotUser.Email)
		assert.Equal(t, models.UserKindSchool, gotUser.Kind)
		assert.NoError(t, auth.CheckPassword(gotUser.PasswordHash, "correct horse"))
	})

	t.Run("forbidden for school logins", func(t *testing.T) {
		repo := &mocks.MockSchoolRepository{}
		_, err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).Create(ctx, schoolSession, in)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("configured user id may write", func(t *testing.T) {
		repo := &mocks.MockSchoolRepository{
			CreateSchoolWithUserFunc: func(ctx context.Context, u models.User, sc models.School) error { return nil },
		}
		_, err := NewSchoolService(repo, auth.NewAdminPolicy("school-1"), zap.NewNop()).Create(ctx, schoolSession, in)

		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := NewSchoolService(&mocks.MockSchoolRepository{}, auth.NewAdminPolicy(), zap.NewNop()).
			Create(ctx, adminSession, CreateSchoolInput{Name: " ", Email: "a@b.c", Password: "12345678"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate e-mail", func(t *testing.T) {
		repo := &mocks.MockSchoolRepository{
			CreateSchoolWithUserFunc: func(ctx context.Context, u models.User, sc models.School) error {
				return repository.ErrDuplicate
			},
		}
		_, err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).Create(ctx, adminSession, in)

		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestSchoolService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		var deleted string
		repo := &mocks.MockSchoolRepository{
			DeleteSchoolFunc: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).Delete(ctx, adminSession, "s1")

		require.NoError(t, err)
		assert.Equal(t, "s1", deleted)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mocks.MockSchoolRepository{
			DeleteSchoolFunc: func(ctx context.Context, id string) error { return repository.ErrNotFound },
		}
		err := NewSchoolService(repo, auth.NewAdminPolicy(), zap.NewNop()).Delete(ctx, adminSession, "s1")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		err := NewSchoolService(&mocks.MockSchoolRepository{}, auth.NewAdminPolicy(), zap.NewNop()).Delete(ctx, auth.Session{}, "s1")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}
