package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simre/results-server/internal/repository/models"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

const resultColumns = `r.id, r.school_id, r.assessment, r.subject, r.grade, r.year, r.score, r.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanResult reads resultColumns, followed by any extra destinations.
func scanResult(row rowScanner, extra ...any) (models.Result, error) {
	var (
		r     models.Result
		year  sql.NullInt64
		score sql.NullFloat64
	)
	dest := append([]any{&r.ID, &r.SchoolID, &r.Assessment, &r.Subject, &r.Grade, &year, &score, &r.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Result{}, err
	}

	if year.Valid {
		r.Year = int(year.Int64)
	}
	if score.Valid {
		v := score.Float64
		r.Score = &v
	}
	return r, nil
}

// ListResults returns the results matching filter, newest first.
func (s *ResultRepository) ListResults(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results AS r`
	var args []any
	if filter.SchoolID != "" {
		query += ` WHERE r.school_id = ?`
		args = append(args, filter.SchoolID)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ListResults: %w", err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ListResults row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListResults: %w", err)
	}
	return results, nil
}

// LatestResults returns the most recently created results with their school name.
func (s *ResultRepository) LatestResults(ctx context.Context, limit int) ([]models.ResultWithSchool, error) {
	query := `
		SELECT ` + resultColumns + `, COALESCE(sc.name, '')
		FROM results AS r
		LEFT JOIN schools AS sc ON sc.id = r.school_id
		ORDER BY r.created_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query LatestResults: %w", err)
	}
	defer rows.Close()

	var results []models.ResultWithSchool
	for rows.Next() {
		var name string
		r, err := scanResult(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("scan LatestResults row: %w", err)
		}
		results = append(results, models.ResultWithSchool{Result: r, SchoolName: name})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LatestResults: %w", err)
	}
	return results, nil
}

func (s *ResultRepository) GetResult(ctx context.Context, id string) (models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results AS r WHERE r.id = ?`

	r, err := scanResult(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Result{}, ErrNotFound
		}
		return models.Result{}, fmt.Errorf("query GetResult: %w", err)
	}
	return r, nil
}

func (s *ResultRepository) CreateResult(ctx context.Context, r models.Result) error {
	const query = `
		INSERT INTO results (id, school_id, assessment, subject, grade, year, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	var score sql.NullFloat64
	if r.Score != nil {
		score = sql.NullFloat64{Float64: *r.Score, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query, r.ID, r.SchoolID, r.Assessment, r.Subject, r.Grade, r.Year, score, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *ResultRepository) DeleteResult(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return expectAffected(res, "delete result")
}
