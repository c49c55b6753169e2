package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simre/results-server/internal/repository/models"
)

type SchoolRepository struct {
	db *sql.DB
}

func NewSchoolRepository(db *sql.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

const schoolColumns = `id, name, inep_code, COALESCE(user_id, ''), created_at`

// ListSchools returns every school ordered by name.
func (s *SchoolRepository) ListSchools(ctx context.Context) ([]models.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools ORDER BY name ASC`
	return s.querySchools(ctx, "ListSchools", query)
}

// LatestSchools returns the most recently created schools, newest first.
func (s *SchoolRepository) LatestSchools(ctx context.Context, limit int) ([]models.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools ORDER BY created_at DESC LIMIT ?`
	return s.querySchools(ctx, "LatestSchools", query, limit)
}

func (s *SchoolRepository) CountSchools(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schools`).Scan(&count); err != nil {
		return 0, fmt.Errorf("query CountSchools: %w", err)
	}
	return count, nil
}

func (s *SchoolRepository) GetSchool(ctx context.Context, id string) (models.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE id = ?`

	var sc models.School
	err := s.db.QueryRowContext(ctx, query, id).Scan(&sc.ID, &sc.Name, &sc.INEPCode, &sc.UserID, &sc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.School{}, ErrNotFound
		}
		return models.School{}, fmt.Errorf("query GetSchool: %w", err)
	}
	return sc, nil
}

// CreateSchoolWithUser stores a school together with the login that owns it.
// Either both rows are written or none.
func (s *SchoolRepository) CreateSchoolWithUser(ctx context.Context, u models.User, sc models.School) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin CreateSchoolWithUser: %w", err)
	}
	defer tx.Rollback()

	if err := insertUser(ctx, tx, u); err != nil {
		return err
	}
	sc.UserID = u.ID
	if err := insertSchool(ctx, tx, sc); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit CreateSchoolWithUser: %w", err)
	}
	return nil
}

// DeleteSchool removes a school and its results.
func (s *SchoolRepository) DeleteSchool(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin DeleteSchool: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE school_id = ?`, id); err != nil {
		return fmt.Errorf("delete school results: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM schools WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if err := expectAffected(res, "delete school"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit DeleteSchool: %w", err)
	}
	return nil
}

func insertSchool(ctx context.Context, db execer, sc models.School) error {
	const query = `
		INSERT INTO schools (id, name, inep_code, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	var userID sql.NullString
	if sc.UserID != "" {
		userID = sql.NullString{String: sc.UserID, Valid: true}
	}
	if _, err := db.ExecContext(ctx, query, sc.ID, sc.Name, sc.INEPCode, userID, sc.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

func (s *SchoolRepository) querySchools(ctx context.Context, op, query string, args ...any) ([]models.School, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", op, err)
	}
	defer rows.Close()

	var results []models.School
	for rows.Next() {
		var sc models.School
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.INEPCode, &sc.UserID, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", op, err)
		}
		results = append(results, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return results, nil
}
