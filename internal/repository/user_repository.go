package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simre/results-server/internal/repository/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a login. A taken e-mail yields ErrDuplicate.
func (s *UserRepository) CreateUser(ctx context.Context, u models.User) error {
	return insertUser(ctx, s.db, u)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertUser(ctx context.Context, db execer, u models.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, kind, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Kind, u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT id, email, password_hash, kind, created_at FROM users WHERE email = ?`
	return s.getUser(ctx, query, email)
}

func (s *UserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT id, email, password_hash, kind, created_at FROM users WHERE id = ?`
	return s.getUser(ctx, query, id)
}

func (s *UserRepository) getUser(ctx context.Context, query string, arg any) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Kind, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}
