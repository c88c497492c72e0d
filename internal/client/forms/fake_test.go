package forms

import (
	"context"
	"encoding/json"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

// fakeClient answers every procedure with the canned value for it and
// records which procedures ran with which document name.
type fakeClient struct {
	err   error
	calls []string
	names []string

	checkout  client.CheckoutResult
	qr        client.QRCodeResult
	url       string
	files     json.RawMessage
	twilio    client.TwilioConnectionResult
	webhook   string
	send      client.SendResult
	token     string
	templates []models.MessageTemplate
	history   client.HistoryResult
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) called(proc, name string) error {
	f.calls = append(f.calls, proc)
	f.names = append(f.names, name)
	return f.err
}

func (f *fakeClient) Close() error                               { return nil }
func (f *fakeClient) SetCredentials(string, string)              {}
func (f *fakeClient) Ping(context.Context) error                 { return nil }
func (f *fakeClient) LoggedUser(context.Context) (string, error) { return "u", nil }

func (f *fakeClient) GetDoc(_ context.Context, doctype, name string) (models.Record, error) {
	return models.NewRecord(doctype, map[string]any{"name": name}), nil
}

func (f *fakeClient) UpdateDoc(_ context.Context, doctype, name string, fields map[string]any) (models.Record, error) {
	return models.NewRecord(doctype, map[string]any{"name": name}), nil
}

func (f *fakeClient) GenerateAzampayToken(context.Context) error {
	return f.called(client.ProcGenerateAzampayToken, "")
}

func (f *fakeClient) ProcessCheckout(_ context.Context, docname string) (client.CheckoutResult, error) {
	return f.checkout, f.called(client.ProcMNOCheckout, docname)
}

func (f *fakeClient) GeneratePaymentQRCode(_ context.Context, docname string) (client.QRCodeResult, error) {
	return f.qr, f.called(client.ProcGenerateQRCode, docname)
}

func (f *fakeClient) AuthorizeAccess(context.Context) (string, error) {
	return f.url, f.called(client.ProcAuthorizeAccess, "")
}

func (f *fakeClient) ListRemoteFiles(context.Context) (json.RawMessage, error) {
	return f.files, f.called(client.ProcListFilesInOneDrive, "")
}

func (f *fakeClient) RefreshAccessToken(context.Context) error {
	return f.called(client.ProcRefreshAccessToken, "")
}

func (f *fakeClient) TakeBackup(context.Context) error {
	return f.called(client.ProcTakeBackup, "")
}

func (f *fakeClient) TestTwilioConnection(context.Context) (client.TwilioConnectionResult, error) {
	return f.twilio, f.called(client.ProcTestTwilioConnection, "")
}

func (f *fakeClient) GenerateWebhookURL(_ context.Context, docName string) (string, error) {
	return f.webhook, f.called(client.ProcGenerateWebhookURL, docName)
}

func (f *fakeClient) SendSMS(_ context.Context, docName string) (client.SendResult, error) {
	return f.send, f.called(client.ProcSendTwilioSMS, docName)
}

func (f *fakeClient) TestConnection(context.Context) error {
	return f.called(client.ProcTestConnection, "")
}

func (f *fakeClient) GenerateAccessToken(_ context.Context, docName string) (string, error) {
	return f.token, f.called(client.ProcGenerateAccessToken, docName)
}

func (f *fakeClient) ListMessageTemplates(context.Context) ([]models.MessageTemplate, error) {
	return f.templates, f.called(client.ProcGetMessageTemplates, "")
}

func (f *fakeClient) SendMessage(_ context.Context, docName string) (client.SendResult, error) {
	return f.send, f.called(client.ProcSendWhatsAppMessage, docName)
}

func (f *fakeClient) ResendMessage(_ context.Context, name string) error {
	return f.called(client.MethodResend, name)
}

func (f *fakeClient) FetchMessageHistory(_ context.Context, name string) (client.HistoryResult, error) {
	return f.history, f.called(client.MethodGetMessageHistory, name)
}

func newTestRegistry(c *fakeClient) *Registry {
	return NewRegistry(c, logging.Discard())
}

func appFailure(reason string) error {
	return &rpc.ApplicationError{Procedure: "p", Reason: reason}
}

func transportFailure() error {
	return &rpc.TransportError{Procedure: "p", Kind: rpc.ErrUnavailable}
}

func actionIDs(v View) []string {
	ids := make([]string, 0, len(v.Actions))
	for _, a := range v.Actions {
		ids = append(ids, a.ID)
	}
	return ids
}
