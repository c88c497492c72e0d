package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/repositories/metadata"
)

func TestAuthService_SaveAndUnlock(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewAuthService(newFakeClient(), db)

	require.NoError(t, svc.SaveCredentials(ctx, "key-1", "secret-1", []byte("correct horse")))

	key, secret, err := svc.UnlockCredentials(ctx, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, "key-1", key)
	assert.Equal(t, "secret-1", secret)

	stored, err := metadata.NewSQLiteRepository(db).Get(ctx, metadata.KeySecret)
	require.NoError(t, err)
	assert.NotContains(t, string(stored), "secret-1")
}

func TestAuthService_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeClient(), setupDB(t))
	require.NoError(t, svc.SaveCredentials(ctx, "key-1", "secret-1", []byte("right")))

	_, _, err := svc.UnlockCredentials(ctx, []byte("wrong"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestAuthService_SaveReplacesEarlierCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeClient(), setupDB(t))
	require.NoError(t, svc.SaveCredentials(ctx, "old", "old-secret", []byte("p1")))
	require.NoError(t, svc.SaveCredentials(ctx, "new", "new-secret", []byte("p2")))

	_, _, err := svc.UnlockCredentials(ctx, []byte("p1"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	key, secret, err := svc.UnlockCredentials(ctx, []byte("p2"))
	require.NoError(t, err)
	assert.Equal(t, "new", key)
	assert.Equal(t, "new-secret", secret)
}

func TestAuthService_NothingSaved(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeClient(), setupDB(t))

	ok, err := svc.HasSavedCredentials(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.UnlockCredentials(ctx, []byte("x"))
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestAuthService_Clear(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeClient(), setupDB(t))
	require.NoError(t, svc.SaveCredentials(ctx, "k", "s", []byte("p")))

	ok, err := svc.HasSavedCredentials(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.ClearCredentials(ctx))
	ok, err = svc.HasSavedCredentials(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	c := newFakeClient()
	svc := NewAuthService(c, setupDB(t))

	user, err := svc.Login(ctx, "k", "s")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user)
	assert.Equal(t, "k", c.apiKey)
	assert.Equal(t, "s", c.apiSecret)
}

func TestAuthService_LoginRejected(t *testing.T) {
	c := newFakeClient()
	c.userErr = errors.Join(client.ErrUnauthorized, errors.New("401"))
	svc := NewAuthService(c, setupDB(t))

	_, err := svc.Login(context.Background(), "k", "bad")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}
