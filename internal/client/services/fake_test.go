package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
)

// fakeClient keeps documents in memory. Procedures a test does not
// override fall through to the nil embedded interface and panic.
type fakeClient struct {
	client.Client

	mu        sync.Mutex
	docs      map[string]map[string]any
	getErr    error
	getErrAt  int // getErr applies from this GetDoc call on; 0 means every call
	updateErr error
	gets      int
	updates   []map[string]any

	user      string
	userErr   error
	apiKey    string
	apiSecret string

	webhook  string
	webhooks chan string // when set, each webhook call takes its URL from here
	send     client.SendResult
	sendErr  error
	sendGate chan struct{} // when set, SendSMS blocks until it is closed
}

func newFakeClient() *fakeClient {
	return &fakeClient{docs: map[string]map[string]any{}, user: "admin@example.com"}
}

func docKey(doctype, name string) string { return doctype + "/" + name }

func (f *fakeClient) put(doctype string, fields map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[docKey(doctype, fields["name"].(string))] = fields
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) SetCredentials(apiKey, apiSecret string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apiKey, f.apiSecret = apiKey, apiSecret
}

func (f *fakeClient) LoggedUser(context.Context) (string, error) {
	return f.user, f.userErr
}

func (f *fakeClient) GetDoc(_ context.Context, doctype, name string) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil && f.gets >= f.getErrAt {
		return models.Record{}, f.getErr
	}
	fields, ok := f.docs[docKey(doctype, name)]
	if !ok {
		return models.Record{}, &rpc.TransportError{Procedure: "get " + doctype, StatusCode: 404, Kind: rpc.ErrNotFound}
	}
	return models.NewRecord(doctype, fields), nil
}

func (f *fakeClient) UpdateDoc(_ context.Context, doctype, name string, fields map[string]any) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	if f.updateErr != nil {
		return models.Record{}, f.updateErr
	}
	doc := f.docs[docKey(doctype, name)]
	for k, v := range fields {
		doc[k] = v
	}
	return models.NewRecord(doctype, doc), nil
}

func (f *fakeClient) GenerateWebhookURL(context.Context, string) (string, error) {
	if f.webhooks != nil {
		return <-f.webhooks, nil
	}
	return f.webhook, nil
}

func (f *fakeClient) SendSMS(context.Context, string) (client.SendResult, error) {
	if f.sendGate != nil {
		<-f.sendGate
	}
	return f.send, f.sendErr
}

func (f *fakeClient) counts() (gets, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, len(f.updates)
}

type recordingPresenter struct {
	mu      sync.Mutex
	effects []render.Effect
}

func (p *recordingPresenter) Present(effects []render.Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.effects = append(p.effects, effects...)
}

func (p *recordingPresenter) shown() []render.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]render.Effect(nil), p.effects...)
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
