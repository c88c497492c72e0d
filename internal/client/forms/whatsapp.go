package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/common"
)

const (
	ActionTestConnection       = "test_connection"
	ActionGenerateAccessToken  = "generate_access_token"
	ActionViewMessageTemplates = "view_message_templates"
	ActionSendMessage          = "send_message"
	ActionResendMessage        = "resend_message"
	ActionCheckMessageStatus   = "check_message_status"
)

// WhatsAppRequiredFields become mandatory while the integration is enabled.
var WhatsAppRequiredFields = []string{"api_key", "phone_number_id", "whatsapp_business_account_id", "phone_number"}

const webhookInstructions = "Important: You need to configure this webhook URL in your Meta Developer Portal. " +
	"Go to your WhatsApp app settings, navigate to Webhooks, and add this URL. " +
	`Set the webhook fields to include "messages".`

const templateHint = "For templates, use format: template_name:language_code (e.g., hello_world:en_US)"

// WhatsAppSettingsForm manages the Cloud API credentials and templates.
// Its credential fields become mandatory while the integration is enabled.
type WhatsAppSettingsForm struct {
	base
}

func (f *WhatsAppSettingsForm) DocType() string { return models.DocWhatsAppSettings }

func (f *WhatsAppSettingsForm) Refresh(rec models.Record) (View, error) {
	s, err := models.Decode[models.WhatsAppSettings](rec)
	if err != nil {
		return View{}, err
	}

	v := View{
		DocType: rec.DocType,
		Name:    rec.Name,
		Actions: []Action{
			{ID: ActionTestConnection, Label: "Test Connection"},
			{ID: ActionGenerateAccessToken, Label: "Generate Access Token"},
			{ID: ActionGenerateWebhookURL, Label: "Generate Webhook URL"},
		},
	}
	if s.Enabled {
		v.Actions = append(v.Actions, Action{ID: ActionViewMessageTemplates, Label: "View Message Templates"})
	}
	return v, nil
}

func (f *WhatsAppSettingsForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	switch actionID {
	case ActionTestConnection:
		if err := f.client.TestConnection(ctx); err != nil {
			return f.fail(ctx, "Connection failed: ", err), nil
		}
		return []render.Effect{render.Message("Connection successful!")}, nil

	case ActionGenerateAccessToken:
		token, err := f.client.GenerateAccessToken(ctx, rec.Name)
		if err != nil {
			return f.fail(ctx, "Failed to generate Access Token: ", err), nil
		}
		return []render.Effect{
			render.SetField{Field: "api_key", Value: token},
			render.Save{},
			render.Message("Access Token generated successfully!"),
		}, nil

	case ActionGenerateWebhookURL:
		url, err := f.client.GenerateWebhookURL(ctx, rec.Name)
		if err != nil {
			return f.fail(ctx, "Failed to generate Webhook URL: ", err), nil
		}
		return []render.Effect{
			render.SetField{Field: "webhook_url", Value: url},
			render.Save{},
			render.Message("Webhook URL generated: " + url),
			render.Dialog{Title: "Webhook Configuration Instructions", Body: webhookInstructions},
		}, nil

	case ActionViewMessageTemplates:
		return f.viewTemplates(ctx, rec)

	default:
		return nil, common.ErrorUnknownAction
	}
}

func (f *WhatsAppSettingsForm) viewTemplates(ctx context.Context, rec models.Record) ([]render.Effect, error) {
	s, err := models.Decode[models.WhatsAppSettings](rec)
	if err != nil {
		return nil, err
	}
	if !s.CanListTemplates() {
		return []render.Effect{render.Message(
			"Please enable integration and provide access token and WhatsApp Business Account ID first.",
		)}, nil
	}

	templates, err := f.client.ListMessageTemplates(ctx)
	if err != nil {
		return f.fail(ctx, "Failed to fetch templates: ", err), nil
	}

	var b strings.Builder
	b.WriteString("Available Templates:\n")
	for _, t := range templates {
		fmt.Fprintf(&b, "\n%s (%s)\nCategory: %s\nStatus: %s\n", t.Name, t.Language, t.Category, t.Status)
	}
	return []render.Effect{render.Dialog{
		Title: "WhatsApp Message Templates",
		Body:  strings.TrimRight(b.String(), "\n"),
		Wide:  true,
	}}, nil
}

// OnChange makes the connection fields mandatory while enabled is set.
func (f *WhatsAppSettingsForm) OnChange(field string, rec models.Record) ([]render.Effect, error) {
	if field != "enabled" {
		return nil, nil
	}
	s, err := models.Decode[models.WhatsAppSettings](rec)
	if err != nil {
		return nil, err
	}
	return []render.Effect{render.ToggleRequired{Fields: WhatsAppRequiredFields, Required: bool(s.Enabled)}}, nil
}

// WhatsAppMessageLogForm sends, resends and tracks one WhatsApp message.
type WhatsAppMessageLogForm struct {
	base
}

func (f *WhatsAppMessageLogForm) DocType() string { return models.DocWhatsAppMessageLog }

func (f *WhatsAppMessageLogForm) Refresh(rec models.Record) (View, error) {
	l, err := models.Decode[models.WhatsAppMessageLog](rec)
	if err != nil {
		return View{}, err
	}

	v := View{DocType: rec.DocType, Name: rec.Name}
	if l.Status != "" {
		v.Indicator = &Indicator{Label: string(l.Status), Color: models.StatusColor(l.Status)}
	}

	if l.Status == models.StatusQueued || (l.MessageID == "" && l.Status != models.StatusSent) {
		v.Actions = append(v.Actions, Action{ID: ActionSendMessage, Label: "Send Message", Primary: true})
	}
	if l.Status == models.StatusFailed {
		v.Actions = append(v.Actions, Action{
			ID:      ActionResendMessage,
			Label:   "Resend Message",
			Confirm: "Are you sure you want to resend this message?",
		})
	}
	if l.Status != models.StatusQueued && l.Status != models.StatusFailed && l.MessageID != "" {
		v.Actions = append(v.Actions, Action{ID: ActionCheckMessageStatus, Label: "Check Message Status"})
	}
	return v, nil
}

func (f *WhatsAppMessageLogForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	switch actionID {
	case ActionSendMessage:
		if _, err := f.client.SendMessage(ctx, rec.Name); err != nil {
			return f.fail(ctx, "Failed to send message: ", err), nil
		}
		return []render.Effect{
			render.Message("Message sent successfully!"),
			render.SetField{Field: "status", Value: string(models.StatusQueued)},
			render.Reload{},
		}, nil

	case ActionResendMessage:
		if err := f.client.ResendMessage(ctx, rec.Name); err != nil {
			return f.fail(ctx, "Failed to resend message: ", err), nil
		}
		return []render.Effect{
			render.Message("Message resent successfully!"),
			render.Reload{},
		}, nil

	case ActionCheckMessageStatus:
		if _, err := f.client.FetchMessageHistory(ctx, rec.Name); err != nil {
			return f.fail(ctx, "Failed to check message status: ", err), nil
		}
		l, err := models.Decode[models.WhatsAppMessageLog](rec)
		if err != nil {
			return nil, err
		}
		return []render.Effect{
			render.Dialog{
				Title:     "Message Status",
				Body:      statusReport(l),
				Indicator: models.StatusColor(l.Status),
			},
			render.Reload{},
		}, nil

	default:
		return nil, common.ErrorUnknownAction
	}
}

// OnLoad hints at the template syntax on draft template messages.
func (f *WhatsAppMessageLogForm) OnLoad(rec models.Record) ([]render.Effect, error) {
	l, err := models.Decode[models.WhatsAppMessageLog](rec)
	if err != nil {
		return nil, err
	}
	if l.MessageType == models.MessageTypeTemplate && l.IsDraft() {
		return []render.Effect{render.SetDescription{Field: "message_content", Text: templateHint}}, nil
	}
	return nil, nil
}

func statusReport(l models.WhatsAppMessageLog) string {
	lines := []string{"Current Status: " + string(l.Status)}
	if l.SentAt != "" {
		lines = append(lines, "Sent: "+models.FormatUserTime(l.SentAt))
	}
	if l.DeliveredAt != "" {
		lines = append(lines, "Delivered: "+models.FormatUserTime(l.DeliveredAt))
	}
	if l.ReadAt != "" {
		lines = append(lines, "Read: "+models.FormatUserTime(l.ReadAt))
	}
	return strings.Join(lines, "\n")
}
