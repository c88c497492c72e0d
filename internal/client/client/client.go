package client

import (
	"context"
	"encoding/json"

	"github.com/tenacious-integration/deskctl/internal/client/models"
)

// Client is the typed surface of the site: one method per whitelisted
// procedure plus document reads and writes. Errors wrap ErrUnavailable or
// ErrUnauthorized when the transport says so; rpc.Reason extracts the
// server's text from application failures.
type Client interface {
	Close() error
	SetCredentials(apiKey, apiSecret string)
	Ping(ctx context.Context) error
	LoggedUser(ctx context.Context) (string, error)

	GetDoc(ctx context.Context, doctype, name string) (models.Record, error)
	UpdateDoc(ctx context.Context, doctype, name string, fields map[string]any) (models.Record, error)

	GenerateAzampayToken(ctx context.Context) error
	ProcessCheckout(ctx context.Context, docname string) (CheckoutResult, error)
	GeneratePaymentQRCode(ctx context.Context, docname string) (QRCodeResult, error)

	AuthorizeAccess(ctx context.Context) (string, error)
	ListRemoteFiles(ctx context.Context) (json.RawMessage, error)
	RefreshAccessToken(ctx context.Context) error
	TakeBackup(ctx context.Context) error

	TestTwilioConnection(ctx context.Context) (TwilioConnectionResult, error)
	GenerateWebhookURL(ctx context.Context, docName string) (string, error)
	SendSMS(ctx context.Context, docName string) (SendResult, error)

	TestConnection(ctx context.Context) error
	GenerateAccessToken(ctx context.Context, docName string) (string, error)
	ListMessageTemplates(ctx context.Context) ([]models.MessageTemplate, error)
	SendMessage(ctx context.Context, docName string) (SendResult, error)
	ResendMessage(ctx context.Context, name string) error
	FetchMessageHistory(ctx context.Context, name string) (HistoryResult, error)
}
