package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simre/results-server/internal/repository"
)

const (
	dbTimeout = 1 * time.Second
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageFailure     = errors.New("storage failure")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
)

// storageError translates a repository error into a service sentinel.
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	default:
		return fmt.Errorf("%w: %s: %v", ErrStorageFailure, op, err)
	}
}

func defaultLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		l, _ := zap.NewProduction()
		return l
	}
	return logger
}
