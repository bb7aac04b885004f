package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetroom/internal/models"
	"meetroom/internal/repo"
	"meetroom/pkg/crypto"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const sessionTTL = 7 * 24 * time.Hour

// AuthService resolves identity-provider sessions to a subject. Session
// issuance normally happens at the provider; Login is a local fallback for
// running without one, seeded from config.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, expires time.Time, err error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	sess repo.SessionRepo

	devEmail   string
	devHash    []byte
	devSubject string
}

// NewAuthService seeds the dev credential when both email and password are
// set; otherwise Login always fails and only provider-issued sessions work.
func NewAuthService(sess repo.SessionRepo, devEmail, devPassword string) (AuthService, error) {
	a := &authService{sess: sess}
	if devEmail != "" && devPassword != "" {
		hash, err := crypto.HashPassword(devPassword)
		if err != nil {
			return nil, err
		}
		a.devEmail = strings.ToLower(strings.TrimSpace(devEmail))
		a.devHash = hash
		a.devSubject = uuid.NewString()
	}
	return a, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if a.devEmail == "" || email != a.devEmail {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := crypto.CheckPassword(a.devHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	tok, err := randomToken(32)
	if err != nil {
		return "", time.Time{}, err
	}
	exp := time.Now().Add(sessionTTL).UTC()
	if err := a.sess.Create(ctx, tok, repo.Session{
		UserID:    a.devSubject,
		Email:     a.devEmail,
		ExpiresAt: exp,
	}); err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

func (a *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sess.Delete(ctx, token)
}

func (a *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errors.New("no token")
	}
	s, err := a.sess.Lookup(ctx, token)
	if err != nil {
		return nil, errors.New("invalid session")
	}
	if time.Now().After(s.ExpiresAt) {
		_ = a.sess.Delete(ctx, token)
		return nil, errors.New("expired session")
	}
	return &models.User{ID: s.UserID, Email: s.Email}, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
