// Package metadata stores small local key/value settings, such as the
// encrypted API credentials.
package metadata

import (
	"context"
)

// Keys used by the credential store.
const (
	KeyAPIKey      = "api_key"
	KeySalt        = "salt"
	KeyVerifier    = "verifier"
	KeySecret      = "api_secret"
	KeySecretNonce = "api_secret_nonce"
)

// CredentialKeys lists every key written by a credential save.
var CredentialKeys = []string{KeyAPIKey, KeySalt, KeyVerifier, KeySecret, KeySecretNonce}

// Repository is a key/value store of small BLOB settings.
type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	DeleteMany(ctx context.Context, keys ...string) error
}
