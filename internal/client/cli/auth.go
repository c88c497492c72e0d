package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/common"
)

// getSimpleText and getPassword are swapped out in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Authenticate installs an API token, trying in order the configured
// credentials, the saved ones (unlocked with a passphrase) and finally a
// prompt. A server that cannot be reached leaves the app in offline mode
// with the token installed.
func (a *App) Authenticate(ctx context.Context) error {
	if a.config.HasCredentials() {
		return a.login(ctx, a.config.APIKey, a.config.APISecret)
	}

	key, secret, err := a.unlockSaved(ctx)
	switch {
	case err == nil:
		return a.login(ctx, key, secret)
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Wrong passphrase.")
	case !errors.Is(err, client.ErrLocalDataNotAvailable):
		return err
	}

	return a.promptLogin(ctx)
}

func (a *App) unlockSaved(ctx context.Context) (string, string, error) {
	ok, err := a.authService.HasSavedCredentials(ctx)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", client.ErrLocalDataNotAvailable
	}

	passphrase, err := getPassword("Passphrase for saved credentials", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(passphrase)

	return a.authService.UnlockCredentials(ctx, passphrase)
}

func (a *App) promptLogin(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Enter API key", a.out)
	if err != nil {
		return err
	}
	secret, err := getPassword("API secret", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if err := a.login(ctx, key, string(secret)); err != nil {
		return err
	}

	if AskYesNo(a.reader, "Save these credentials on this machine?", a.out) {
		return a.save(ctx, key, string(secret))
	}
	return nil
}

func (a *App) save(ctx context.Context, key, secret string) error {
	passphrase, err := getPassword("Choose a passphrase", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	if len(passphrase) == 0 {
		fmt.Fprintln(a.out, "Empty passphrase, credentials not saved.")
		return nil
	}
	if err := a.authService.SaveCredentials(ctx, key, secret, passphrase); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Credentials saved.")
	return nil
}

func (a *App) login(ctx context.Context, key, secret string) error {
	user, err := a.authService.Login(ctx, key, secret)
	switch {
	case err == nil:
		a.setUser(user)
		a.setMode(ModeOnline)
		fmt.Fprintf(a.out, "Logged in as %s\n", user)
		return nil
	case errors.Is(err, client.ErrUnavailable):
		a.logger.Warn(ctx, "server unavailable at login", "error", err)
		a.setMode(ModeOffline)
		return nil
	default:
		return err
	}
}

// Forget removes saved credentials from this machine.
func (a *App) Forget(ctx context.Context) error {
	if err := a.authService.ClearCredentials(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved credentials removed.")
	return nil
}
