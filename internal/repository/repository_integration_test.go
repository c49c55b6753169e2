package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/simre/results-server/internal/repository"
	"github.com/simre/results-server/internal/repository/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(context.Background(), db))
	require.NoError(t, repository.Migrate(context.Background(), db), "migration is repeatable")

	t.Cleanup(func() { db.Close() })
	return db
}

func score(v float64) *float64 { return &v }

func seedTestData(t *testing.T, db *sql.DB, baseTime time.Time) {
	t.Helper()
	ctx := context.Background()

	schools := repository.NewSchoolRepository(db)
	results := repository.NewResultRepository(db)

	for i, name := range []string{"Escola Beta", "Escola Alfa", "Escola Gama"} {
		id := []string{"s-beta", "s-alfa", "s-gama"}[i]
		createdAt := baseTime.Add(time.Duration(i) * time.Hour)
		owner := models.User{ID: "u-" + id, Email: id + "@escola.br", PasswordHash: []byte("hash"), Kind: models.UserKindSchool, CreatedAt: createdAt}
		require.NoError(t, schools.CreateSchoolWithUser(ctx, owner, models.School{
			ID:        id,
			Name:      name,
			CreatedAt: createdAt,
		}))
	}

	rows := []models.Result{
		{ID: "r1", SchoolID: "s-alfa", Assessment: "SAEB", Subject: "Matemática", Grade: "9º Ano", Year: 2022, Score: score(450)},
		{ID: "r2", SchoolID: "s-alfa", Assessment: "SAEB", Subject: "Matemática", Grade: "9º Ano", Year: 2023, Score: score(480)},
		{ID: "r3", SchoolID: "s-beta", Assessment: "IDEB", Subject: "Geral", Grade: "5º Ano", Year: 2023},
		{ID: "r4", SchoolID: "s-gama", Assessment: "IDEB", Subject: "Geral", Grade: "5º Ano", Score: score(6.2)},
	}
	for i, r := range rows {
		r.CreatedAt = baseTime.Add(time.Duration(10+i) * time.Hour)
		require.NoError(t, results.CreateResult(ctx, r))
	}
}

func TestSchoolRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	baseTime := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	seedTestData(t, db, baseTime)

	repo := repository.NewSchoolRepository(db)

	t.Run("ListSchools ordered by name", func(t *testing.T) {
		list, err := repo.ListSchools(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "Escola Alfa", list[0].Name)
		require.Equal(t, "Escola Gama", list[2].Name)
	})

	t.Run("LatestSchools newest first", func(t *testing.T) {
		list, err := repo.LatestSchools(ctx, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "s-gama", list[0].ID)
		require.True(t, list[0].CreatedAt.Equal(baseTime.Add(2*time.Hour)))
	})

	t.Run("CountSchools", func(t *testing.T) {
		count, err := repo.CountSchools(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, count)
	})

	t.Run("GetSchool not found", func(t *testing.T) {
		_, err := repo.GetSchool(ctx, "missing")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("CreateSchoolWithUser", func(t *testing.T) {
		u := models.User{ID: "u-delta", Email: "delta@escola.br", PasswordHash: []byte("hash"), Kind: models.UserKindSchool, CreatedAt: baseTime}
		sc := models.School{ID: "s-delta", Name: "Escola Delta", INEPCode: "26123456", CreatedAt: baseTime}

		require.NoError(t, repo.CreateSchoolWithUser(ctx, u, sc))

		got, err := repo.GetSchool(ctx, "s-delta")
		require.NoError(t, err)
		require.Equal(t, "u-delta", got.UserID)
		require.Equal(t, "26123456", got.INEPCode)
	})

	t.Run("CreateSchoolWithUser rolls back on duplicate e-mail", func(t *testing.T) {
		u := models.User{ID: "u-other", Email: "delta@escola.br", PasswordHash: []byte("hash"), Kind: models.UserKindSchool, CreatedAt: baseTime}
		sc := models.School{ID: "s-other", Name: "Escola Outra", CreatedAt: baseTime}

		err := repo.CreateSchoolWithUser(ctx, u, sc)
		require.ErrorIs(t, err, repository.ErrDuplicate)

		_, err = repo.GetSchool(ctx, "s-other")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("DeleteSchool removes its results", func(t *testing.T) {
		require.NoError(t, repo.DeleteSchool(ctx, "s-alfa"))

		results, err := repository.NewResultRepository(db).ListResults(ctx, models.ResultFilter{SchoolID: "s-alfa"})
		require.NoError(t, err)
		require.Empty(t, results)

		require.ErrorIs(t, repo.DeleteSchool(ctx, "s-alfa"), repository.ErrNotFound)
	})
}

func TestResultRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	baseTime := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	seedTestData(t, db, baseTime)

	repo := repository.NewResultRepository(db)

	t.Run("ListResults all", func(t *testing.T) {
		results, err := repo.ListResults(ctx, models.ResultFilter{})
		require.NoError(t, err)
		require.Len(t, results, 4)
		require.Equal(t, "r4", results[0].ID, "newest first")
	})

	t.Run("ListResults by school", func(t *testing.T) {
		results, err := repo.ListResults(ctx, models.ResultFilter{SchoolID: "s-alfa"})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			require.Equal(t, "s-alfa", r.SchoolID)
			require.NotNil(t, r.Score)
		}
	})

	t.Run("nullable columns", func(t *testing.T) {
		r3, err := repo.GetResult(ctx, "r3")
		require.NoError(t, err)
		require.Nil(t, r3.Score)
		require.Equal(t, 2023, r3.Year)

		r4, err := repo.GetResult(ctx, "r4")
		require.NoError(t, err)
		require.Equal(t, 0, r4.Year)
		require.InDelta(t, 6.2, *r4.Score, 1e-9)
	})

	t.Run("LatestResults joins school name", func(t *testing.T) {
		results, err := repo.LatestResults(ctx, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.Equal(t, "Escola Gama", results[0].SchoolName)
		require.Equal(t, "Escola Beta", results[1].SchoolName)
	})

	t.Run("CreateResult duplicate id", func(t *testing.T) {
		err := repo.CreateResult(ctx, models.Result{ID: "r1", SchoolID: "s-alfa", Assessment: "SAEB", Subject: "x", Grade: "x", CreatedAt: baseTime})
		require.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("DeleteResult", func(t *testing.T) {
		require.NoError(t, repo.DeleteResult(ctx, "r1"))
		require.ErrorIs(t, repo.DeleteResult(ctx, "r1"), repository.ErrNotFound)

		_, err := repo.GetResult(ctx, "r1")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	now := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	u := models.User{ID: "u1", Email: "admin@simre.br", PasswordHash: []byte("hash"), Kind: models.UserKindAdmin, CreatedAt: now}
	require.NoError(t, repo.CreateUser(ctx, u))

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "admin@simre.br")
		require.NoError(t, err)
		require.Equal(t, "u1", got.ID)
		require.Equal(t, []byte("hash"), got.PasswordHash)
		require.Equal(t, models.UserKindAdmin, got.Kind)
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "admin@simre.br", got.Email)
		require.True(t, got.CreatedAt.Equal(now))
	})

	t.Run("GetUserByID not found", func(t *testing.T) {
		_, err := repo.GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("duplicate e-mail", func(t *testing.T) {
		dup := u
		dup.ID = "u2"
		require.ErrorIs(t, repo.CreateUser(ctx, dup), repository.ErrDuplicate)
	})
}
