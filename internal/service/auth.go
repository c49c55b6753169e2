package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/repository"
	"github.com/simre/results-server/internal/repository/models"
)

// AuthService exchanges e-mail and password for a session token.
type AuthService struct {
	users  UserRepository
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

func NewAuthService(users UserRepository, tokens *auth.TokenIssuer, logger *zap.Logger) *AuthService {
	if users == nil {
		panic("storage must not be nil")
	}
	if tokens == nil {
		panic("token issuer must not be nil")
	}
	return &AuthService{users: users, tokens: tokens, logger: defaultLogger(logger)}
}

// Login verifies the credentials. Unknown e-mails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	user, err := s.users.GetUserByEmail(dbCtx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, storageError("get user", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Debug("password mismatch", zap.String("user_id", user.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	token, session, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("kind", user.Kind))
	return LoginResult{Token: token, Session: session, User: user}, nil
}

// CurrentUser loads the login behind a session. A session whose user was removed is no longer valid.
func (s *AuthService) CurrentUser(ctx context.Context, session auth.Session) (models.User, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	user, err := s.users.GetUserByID(dbCtx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("session user no longer exists", zap.String("user_id", session.UserID))
			return models.User{}, auth.ErrInvalidToken
		}
		return models.User{}, storageError("get user by id", err)
	}
	return user, nil
}

// Authenticate resolves a bearer token into a session.
func (s *AuthService) Authenticate(token string) (auth.Session, error) {
	return s.tokens.Verify(token)
}
