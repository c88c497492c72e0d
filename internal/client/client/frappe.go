package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
)

// FrappeClient implements Client over an rpc.Gateway.
type FrappeClient struct {
	gw rpc.Gateway
}

// NewFrappeClient returns a client whose calls go through gw.
func NewFrappeClient(gw rpc.Gateway) *FrappeClient {
	return &FrappeClient{gw: gw}
}

func (c *FrappeClient) Close() error {
	if closer, ok := c.gw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *FrappeClient) SetCredentials(apiKey, apiSecret string) {
	c.gw.SetCredentials(apiKey, apiSecret)
}

func (c *FrappeClient) Ping(ctx context.Context) error {
	env, err := c.gw.Call(ctx, ProcPing, nil)
	if err != nil {
		return mapError(err)
	}
	if s, ok := env.Text(); !ok || s != "pong" {
		return fmt.Errorf("%w: unexpected ping reply", ErrUnavailable)
	}
	return nil
}

func (c *FrappeClient) LoggedUser(ctx context.Context) (string, error) {
	env, err := c.gw.Call(ctx, ProcGetLoggedUser, nil)
	if err != nil {
		return "", mapError(err)
	}
	user, ok := env.Text()
	if !ok || user == "Guest" {
		return "", ErrUnauthorized
	}
	return user, nil
}

func (c *FrappeClient) GetDoc(ctx context.Context, doctype, name string) (models.Record, error) {
	fields, err := c.gw.GetDoc(ctx, doctype, name)
	if err != nil {
		return models.Record{}, mapError(err)
	}
	return models.NewRecord(doctype, fields), nil
}

func (c *FrappeClient) UpdateDoc(ctx context.Context, doctype, name string, fields map[string]any) (models.Record, error) {
	saved, err := c.gw.UpdateDoc(ctx, doctype, name, fields)
	if err != nil {
		return models.Record{}, mapError(err)
	}
	return models.NewRecord(doctype, saved), nil
}

// GenerateAzampayToken succeeds whenever the server did not raise.
func (c *FrappeClient) GenerateAzampayToken(ctx context.Context) error {
	_, err := c.gw.Call(ctx, ProcGenerateAzampayToken, nil)
	return mapError(err)
}

func (c *FrappeClient) ProcessCheckout(ctx context.Context, docname string) (CheckoutResult, error) {
	return call[CheckoutResult](ctx, c.gw, ProcMNOCheckout, rpc.Args{"docname": docname})
}

func (c *FrappeClient) GeneratePaymentQRCode(ctx context.Context, docname string) (QRCodeResult, error) {
	return call[QRCodeResult](ctx, c.gw, ProcGenerateQRCode, rpc.Args{"docname": docname})
}

// AuthorizeAccess returns the OAuth consent URL.
func (c *FrappeClient) AuthorizeAccess(ctx context.Context) (string, error) {
	env, err := c.gw.Call(ctx, ProcAuthorizeAccess, nil)
	if err != nil {
		return "", mapError(err)
	}

	var reply authorizeReply
	if env.Truthy() {
		if err := json.Unmarshal(env.Message, &reply); err != nil {
			return "", &rpc.TransportError{Procedure: ProcAuthorizeAccess, Kind: rpc.ErrBadResponse, Err: err}
		}
	}
	if reply.URL == "" {
		return "", &rpc.ApplicationError{Procedure: ProcAuthorizeAccess}
	}
	return reply.URL, nil
}

// ListRemoteFiles returns the listing as the server sent it.
func (c *FrappeClient) ListRemoteFiles(ctx context.Context) (json.RawMessage, error) {
	env, err := c.gw.Call(ctx, ProcListFilesInOneDrive, nil)
	if err != nil {
		return nil, mapError(err)
	}
	if !env.Truthy() {
		return nil, &rpc.ApplicationError{Procedure: ProcListFilesInOneDrive}
	}
	return env.Message, nil
}

func (c *FrappeClient) RefreshAccessToken(ctx context.Context) error {
	env, err := c.gw.Call(ctx, ProcRefreshAccessToken, nil)
	if err != nil {
		return mapError(err)
	}
	if !env.Truthy() {
		return &rpc.ApplicationError{Procedure: ProcRefreshAccessToken}
	}
	return nil
}

// TakeBackup only queues the backup; it has no payload.
func (c *FrappeClient) TakeBackup(ctx context.Context) error {
	_, err := c.gw.Call(ctx, ProcTakeBackup, nil)
	return mapError(err)
}

func (c *FrappeClient) TestTwilioConnection(ctx context.Context) (TwilioConnectionResult, error) {
	return call[TwilioConnectionResult](ctx, c.gw, ProcTestTwilioConnection, nil)
}

// GenerateWebhookURL accepts both reply shapes in use: a bare URL string
// and a {success, webhook_url} object.
func (c *FrappeClient) GenerateWebhookURL(ctx context.Context, docName string) (string, error) {
	env, err := c.gw.Call(ctx, ProcGenerateWebhookURL, rpc.Args{"doc_name": docName})
	if err != nil {
		return "", mapError(err)
	}
	if s, ok := env.Text(); ok {
		return s, nil
	}

	reply, err := rpc.Decode[webhookReply](env)
	if err != nil {
		return "", err
	}
	if reply.WebhookURL == "" {
		return "", &rpc.ApplicationError{Procedure: ProcGenerateWebhookURL}
	}
	return reply.WebhookURL, nil
}

func (c *FrappeClient) SendSMS(ctx context.Context, docName string) (SendResult, error) {
	return call[SendResult](ctx, c.gw, ProcSendTwilioSMS, rpc.Args{"doc_name": docName})
}

func (c *FrappeClient) TestConnection(ctx context.Context) error {
	_, err := call[rpc.SuccessReply](ctx, c.gw, ProcTestConnection, nil)
	return err
}

func (c *FrappeClient) GenerateAccessToken(ctx context.Context, docName string) (string, error) {
	env, err := c.gw.Call(ctx, ProcGenerateAccessToken, rpc.Args{"doc_name": docName})
	if err != nil {
		return "", mapError(err)
	}
	token, ok := env.Text()
	if !ok {
		return "", &rpc.ApplicationError{Procedure: ProcGenerateAccessToken}
	}
	return token, nil
}

func (c *FrappeClient) ListMessageTemplates(ctx context.Context) ([]models.MessageTemplate, error) {
	res, err := call[TemplatesResult](ctx, c.gw, ProcGetMessageTemplates, nil)
	if err != nil {
		return nil, err
	}
	if res.Templates == nil {
		return nil, &rpc.ApplicationError{Procedure: ProcGetMessageTemplates, Reason: res.Error}
	}
	return res.Templates, nil
}

func (c *FrappeClient) SendMessage(ctx context.Context, docName string) (SendResult, error) {
	return call[SendResult](ctx, c.gw, ProcSendWhatsAppMessage, rpc.Args{"doc_name": docName})
}

func (c *FrappeClient) ResendMessage(ctx context.Context, name string) error {
	env, err := c.gw.CallDoc(ctx, models.DocWhatsAppMessageLog, name, MethodResend, nil)
	if err != nil {
		return mapError(err)
	}
	_, err = rpc.Decode[rpc.SuccessReply](env)
	return err
}

func (c *FrappeClient) FetchMessageHistory(ctx context.Context, name string) (HistoryResult, error) {
	env, err := c.gw.CallDoc(ctx, models.DocWhatsAppMessageLog, name, MethodGetMessageHistory, nil)
	if err != nil {
		return HistoryResult{}, mapError(err)
	}
	return rpc.Decode[HistoryResult](env)
}

func call[T rpc.Outcome](ctx context.Context, gw rpc.Gateway, procedure string, args rpc.Args) (T, error) {
	env, err := gw.Call(ctx, procedure, args)
	if err != nil {
		var zero T
		return zero, mapError(err)
	}
	return rpc.Decode[T](env)
}

// mapError tags transport failures with the package sentinels while
// keeping the original error in the chain.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rpc.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.Is(err, rpc.ErrUnavailable):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}
