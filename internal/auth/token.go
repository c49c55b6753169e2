package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/simre/results-server/internal/repository/models"
)

const issuer = "simre"

var ErrInvalidToken = errors.New("invalid session token")

// Session is the authenticated identity carried by a token.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if secret == "" {
		panic("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for u.
func (ti *TokenIssuer) Issue(u models.User) (string, Session, error) {
	now := ti.now()
	expires := now.Add(ti.ttl)

	c := claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   u.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
		Email: u.Email,
		Kind:  u.Kind,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(ti.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}
	return token, sessionFrom(c), nil
}

// Verify checks the signature and expiry of token.
func (ti *TokenIssuer) Verify(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}
	if c.Issuer != issuer || c.Subject == "" {
		return Session{}, ErrInvalidToken
	}
	return sessionFrom(c), nil
}

func sessionFrom(c claims) Session {
	return Session{
		UserID:    c.Subject,
		Email:     c.Email,
		Kind:      c.Kind,
		ExpiresAt: time.Unix(c.ExpiresAt, 0).UTC(),
	}
}
