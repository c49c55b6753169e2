package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository"
	"github.com/simre/results-server/internal/repository/models"
)

// opener opens the database and applies the schema.
type opener func(ctx context.Context) (*sql.DB, error)

func newMigrateCommand(logger *zap.Logger, open opener) *ffcli.Command {
	return &ffcli.Command{
		Name:       "migrate",
		ShortUsage: "simre-admin migrate",
		ShortHelp:  "Create the database tables if they do not exist.",
		Exec: func(ctx context.Context, args []string) error {
			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			logger.Info("schema is up to date")
			return nil
		},
	}
}

func newAddUserCommand(logger *zap.Logger, open opener) *ffcli.Command {
	fs := flag.NewFlagSet("simre-admin adduser", flag.ExitOnError)
	email := fs.String("email", "", "login e-mail")
	password := fs.String("password", "", "login password (min 8 characters)")
	kind := fs.String("kind", models.UserKindAdmin, "login kind: admin or school")

	return &ffcli.Command{
		Name:       "adduser",
		ShortUsage: "simre-admin adduser -email <email> -password <password> [-kind admin|school]",
		ShortHelp:  "Create a login. Admin logins may create and delete schools and results.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec: func(ctx context.Context, args []string) error {
			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			u, err := addUser(ctx, repository.NewUserRepository(db), *email, *password, *kind, time.Now())
			if err != nil {
				return err
			}
			logger.Info("user created",
				zap.String("id", u.ID),
				zap.String("email", u.Email),
				zap.String("kind", u.Kind))
			return nil
		},
	}
}

type userCreator interface {
	CreateUser(ctx context.Context, u models.User) error
}

// addUser validates the flags and stores a new login.
func addUser(ctx context.Context, users userCreator, email, password, kind string, now time.Time) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, errors.New("a valid -email is required")
	}
	if len(password) < 8 {
		return models.User{}, errors.New("-password must have at least 8 characters")
	}
	if kind != models.UserKindAdmin && kind != models.UserKindSchool {
		return models.User{}, fmt.Errorf("unknown -kind %q", kind)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Kind:         kind,
		CreatedAt:    now.UTC(),
	}
	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, fmt.Errorf("a login for %s already exists", email)
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
