package client

import (
	"encoding/json"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
)

type CheckoutResult struct {
	rpc.StatusReply
	TransactionID string `json:"transaction_id"`
}

type QRCodeResult struct {
	rpc.StatusReply
	QRImage     string `json:"qr_image"`
	RedirectURL string `json:"redirect_url"`
}

type TwilioConnectionResult struct {
	rpc.SuccessReply
	AccountName string `json:"account_name"`
}

// SendResult is returned by both the SMS and the WhatsApp send procedures.
type SendResult struct {
	rpc.SuccessReply
	MessageID string `json:"message_id"`
}

type TemplatesResult struct {
	rpc.SuccessReply
	Templates []models.MessageTemplate `json:"templates"`
}

type HistoryResult struct {
	rpc.SuccessReply
	Data json.RawMessage `json:"data"`
}

type webhookReply struct {
	rpc.SuccessReply
	WebhookURL string `json:"webhook_url"`
}

type authorizeReply struct {
	URL string `json:"url"`
}
