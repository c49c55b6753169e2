package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash BLOB NOT NULL,
		kind TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS schools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		inep_code TEXT NOT NULL DEFAULT '',
		user_id TEXT REFERENCES users(id),
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL REFERENCES schools(id) ON DELETE CASCADE,
		assessment TEXT NOT NULL,
		subject TEXT NOT NULL,
		grade TEXT NOT NULL,
		year INTEGER,
		score REAL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_school_id ON results(school_id);
	CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at);
	CREATE INDEX IF NOT EXISTS idx_schools_created_at ON schools(created_at);
`

// Migrate creates the tables used by the repositories. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
