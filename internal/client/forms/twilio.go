package forms

import (
	"context"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/common"
)

const (
	ActionTestTwilioConnection = "test_twilio_connection"
	ActionGenerateWebhookURL   = "generate_webhook_url"
	ActionSendSMS              = "send_sms"
)

// TwilioSettingsForm tests the account and generates the inbound webhook.
type TwilioSettingsForm struct {
	base
}

func (f *TwilioSettingsForm) DocType() string { return models.DocTwilioSettings }

func (f *TwilioSettingsForm) Refresh(rec models.Record) (View, error) {
	return View{
		DocType: rec.DocType,
		Name:    rec.Name,
		Actions: []Action{
			{ID: ActionTestTwilioConnection, Label: "Test Twilio Connection", Group: "Actions", Primary: true},
			{ID: ActionGenerateWebhookURL, Label: "Generate Webhook URL", Group: "Actions", Primary: true},
		},
	}, nil
}

func (f *TwilioSettingsForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	switch actionID {
	case ActionTestTwilioConnection:
		res, err := f.client.TestTwilioConnection(ctx)
		if err != nil {
			return f.fail(ctx, "Error: ", err), nil
		}
		return []render.Effect{render.Message("Twilio Connection Successful: " + res.AccountName)}, nil

	case ActionGenerateWebhookURL:
		url, err := f.client.GenerateWebhookURL(ctx, rec.Name)
		if err != nil {
			return f.fail(ctx, "Error Generating Webhook: ", err), nil
		}
		return []render.Effect{
			render.Message("Webhook URL Generated: " + url),
			render.SetField{Field: "webhook_url", Value: url},
			render.Save{},
		}, nil

	default:
		return nil, common.ErrorUnknownAction
	}
}

// TwilioSMSLogForm sends a saved SMS log.
type TwilioSMSLogForm struct {
	base
}

func (f *TwilioSMSLogForm) DocType() string { return models.DocTwilioSMSLog }

func (f *TwilioSMSLogForm) Refresh(rec models.Record) (View, error) {
	v := View{DocType: rec.DocType, Name: rec.Name}
	if !rec.IsNew {
		v.Actions = []Action{{ID: ActionSendSMS, Label: "Send SMS", Primary: true}}
	}
	return v, nil
}

func (f *TwilioSMSLogForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	if actionID != ActionSendSMS {
		return nil, common.ErrorUnknownAction
	}
	res, err := f.client.SendSMS(ctx, rec.Name)
	if err != nil {
		return f.fail(ctx, "Error Sending SMS: ", err), nil
	}
	return []render.Effect{
		render.Message("SMS Sent Successfully! Message ID: " + res.MessageID),
		render.SetField{Field: "status", Value: string(models.StatusQueued)},
		render.Reload{},
	}, nil
}
