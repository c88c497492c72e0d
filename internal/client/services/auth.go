// Package services contains the application services behind the CLI:
// API authentication with locally saved credentials, and the form session
// that opens documents, runs actions and applies their effects.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/repositories/metadata"
	"github.com/tenacious-integration/deskctl/internal/common"
	"github.com/tenacious-integration/deskctl/internal/cryptox"
	"github.com/tenacious-integration/deskctl/internal/dbx"
)

const saltSize = 32

// AuthService manages the API token used for every call.
//
// Credentials can be kept on disk: the key in clear, the secret sealed with
// a key derived from a passphrase. A verifier of the derived key lets a
// wrong passphrase be told apart from corrupt data.
type AuthService interface {
	// Login installs the token on the client and checks it against the
	// server. It returns the user the token belongs to.
	Login(ctx context.Context, apiKey, apiSecret string) (string, error)
	SaveCredentials(ctx context.Context, apiKey, apiSecret string, passphrase []byte) error
	UnlockCredentials(ctx context.Context, passphrase []byte) (apiKey, apiSecret string, err error)
	HasSavedCredentials(ctx context.Context) (bool, error)
	ClearCredentials(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService stores saved credentials in db's metadata table.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Login(ctx context.Context, apiKey, apiSecret string) (string, error) {
	a.client.SetCredentials(apiKey, apiSecret)

	user, err := a.client.LoggedUser(ctx)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	return user, nil
}

// SaveCredentials replaces any saved credentials in one transaction.
func (a *authService) SaveCredentials(ctx context.Context, apiKey, apiSecret string, passphrase []byte) error {
	salt := common.GenerateRandByteArray(saltSize)
	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	sealed, nonce, err := cryptox.Seal([]byte(apiSecret), key)
	if err != nil {
		return fmt.Errorf("seal secret: %w", err)
	}

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).SetMany(ctx, map[string][]byte{
			metadata.KeyAPIKey:      []byte(apiKey),
			metadata.KeySalt:        salt,
			metadata.KeyVerifier:    cryptox.MakeVerifier(key),
			metadata.KeySecret:      sealed,
			metadata.KeySecretNonce: nonce,
		})
	})
}

// UnlockCredentials returns client.ErrLocalDataNotAvailable when nothing
// is saved and client.ErrUnauthorized when passphrase is wrong.
func (a *authService) UnlockCredentials(ctx context.Context, passphrase []byte) (string, string, error) {
	saved, err := a.load(ctx)
	if err != nil {
		return "", "", err
	}

	key := cryptox.DeriveKey(passphrase, saved[metadata.KeySalt])
	defer common.WipeByteArray(key)

	if subtle.ConstantTimeCompare(saved[metadata.KeyVerifier], cryptox.MakeVerifier(key)) == 0 {
		return "", "", client.ErrUnauthorized
	}

	secret, err := cryptox.Open(saved[metadata.KeySecret], saved[metadata.KeySecretNonce], key)
	if err != nil {
		return "", "", fmt.Errorf("open secret: %w", err)
	}
	return string(saved[metadata.KeyAPIKey]), string(secret), nil
}

func (a *authService) load(ctx context.Context) (map[string][]byte, error) {
	saved, err := a.getMetadataRepo().GetMany(ctx, metadata.CredentialKeys...)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, client.ErrLocalDataNotAvailable
	}
	return saved, err
}

func (a *authService) HasSavedCredentials(ctx context.Context) (bool, error) {
	_, err := a.load(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return false, nil
	default:
		return false, err
	}
}

func (a *authService) ClearCredentials(ctx context.Context) error {
	return a.getMetadataRepo().DeleteMany(ctx, metadata.CredentialKeys...)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
