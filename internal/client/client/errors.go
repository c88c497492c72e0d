package client

import "errors"

var (
	// ErrUnavailable means the site could not be reached; callers fall back
	// to the local cache.
	ErrUnavailable = errors.New("site unavailable")

	// ErrUnauthorized covers a rejected API token and a wrong passphrase.
	ErrUnauthorized = errors.New("unauthorized")

	ErrLocalDataNotAvailable = errors.New("no cached copy available")
)
