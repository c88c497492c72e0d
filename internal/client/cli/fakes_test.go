package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/tenacious-integration/deskctl/internal/client/config"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/repositories/snapshots"
	"github.com/tenacious-integration/deskctl/internal/client/services"
	"github.com/tenacious-integration/deskctl/internal/common"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

type fakeAuth struct {
	mu sync.Mutex

	loginKey, loginSecret string
	loginUser             string
	loginErr              error

	hasSaved   bool
	unlockPass string
	unlockKey  string
	unlockSec  string
	unlockErr  error

	savedKey, savedSecret, savedPass string

	clearCalled bool
	pingErr     error
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Login(_ context.Context, key, secret string) (string, error) {
	f.loginKey, f.loginSecret = key, secret
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) SaveCredentials(_ context.Context, key, secret string, passphrase []byte) error {
	f.savedKey, f.savedSecret, f.savedPass = key, secret, string(passphrase)
	return nil
}

func (f *fakeAuth) UnlockCredentials(_ context.Context, passphrase []byte) (string, string, error) {
	f.unlockPass = string(passphrase)
	return f.unlockKey, f.unlockSec, f.unlockErr
}

func (f *fakeAuth) HasSavedCredentials(context.Context) (bool, error) { return f.hasSaved, nil }

func (f *fakeAuth) ClearCredentials(context.Context) error {
	f.clearCalled = true
	return nil
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeForms struct {
	mu     sync.Mutex
	online bool

	form    services.Form
	openErr error
	runErr  error
	cached  []snapshots.Summary
	cleared bool

	opened []string
	ran    []string
	sets   []string
	waited bool
}

var _ services.FormService = (*fakeForms)(nil)

func (f *fakeForms) DocTypes() []string {
	return []string{
		models.DocAzampaySettings, models.DocAzamPayTransaction, models.DocMicrosoftSettings,
		models.DocOneDrive, models.DocTwilioSMSLog, models.DocTwilioSettings,
		models.DocWhatsAppMessageLog, models.DocWhatsAppSettings,
	}
}

func (f *fakeForms) Open(_ context.Context, doctype, name string) (services.Form, error) {
	f.opened = append(f.opened, doctype+"|"+name)
	return f.form, f.openErr
}

func (f *fakeForms) Current() (services.Form, error) {
	if f.form.Record.DocType == "" {
		return services.Form{}, common.ErrorNoOpenForm
	}
	return f.form, nil
}

func (f *fakeForms) Reload(context.Context) (services.Form, error) { return f.Current() }

func (f *fakeForms) SetField(_ context.Context, field string, value any) (services.Form, error) {
	f.sets = append(f.sets, field+"="+value.(string))
	return f.Current()
}

func (f *fakeForms) Run(_ context.Context, actionID string) error {
	f.ran = append(f.ran, actionID)
	return f.runErr
}

func (f *fakeForms) Wait() { f.waited = true }

func (f *fakeForms) Cached(context.Context) ([]snapshots.Summary, error) { return f.cached, nil }

func (f *fakeForms) ClearCache(context.Context) error {
	f.cleared = true
	f.cached = nil
	return nil
}

func (f *fakeForms) SetOnline(online bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online = online
}

func (f *fakeForms) Online() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

type testApp struct {
	*App
	auth  *fakeAuth
	forms *fakeForms
	out   *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	auth := &fakeAuth{loginUser: "admin@example.com"}
	fs := &fakeForms{}
	out := &bytes.Buffer{}
	app := &App{
		config:      cfg,
		logger:      logging.Discard(),
		authService: auth,
		formService: fs,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}
	return &testApp{App: app, auth: auth, forms: fs, out: out}
}

// stubPasswords answers successive password prompts from pws.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })

	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return nil, io.EOF
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
}
