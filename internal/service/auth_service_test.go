package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetroom/internal/repo"
)

func TestDevLogin(t *testing.T) {
	ctx := context.Background()
	svc, err := NewAuthService(repo.NewMemorySessionRepo(), "dev@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "dev@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "other@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tok, exp, err := svc.Login(ctx, "Dev@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.False(t, exp.IsZero())

	u, err := svc.CurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", u.Email)
	assert.NotEmpty(t, u.ID)

	require.NoError(t, svc.Logout(ctx, tok))
	_, err = svc.CurrentUser(ctx, tok)
	assert.Error(t, err)
}

func TestLoginDisabledWithoutSeed(t *testing.T) {
	ctx := context.Background()
	svc, err := NewAuthService(repo.NewMemorySessionRepo(), "", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "anyone@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUserNoToken(t *testing.T) {
	svc, err := NewAuthService(repo.NewMemorySessionRepo(), "", "")
	require.NoError(t, err)

	_, err = svc.CurrentUser(context.Background(), "")
	assert.Error(t, err)
}
