package forms

import (
	"context"
	"fmt"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/common"
)

const (
	ActionGenerateToken  = "generate_token"
	ActionProcessPayment = "process_payment"
	ActionGenerateQRCode = "generate_qr_code"
)

// AzampaySettingsForm offers token generation for the payment gateway.
type AzampaySettingsForm struct {
	base
}

func (f *AzampaySettingsForm) DocType() string { return models.DocAzampaySettings }

func (f *AzampaySettingsForm) Refresh(rec models.Record) (View, error) {
	return View{
		DocType: rec.DocType,
		Name:    rec.Name,
		Actions: []Action{{ID: ActionGenerateToken, Label: "Generate Token"}},
	}, nil
}

func (f *AzampaySettingsForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	if actionID != ActionGenerateToken {
		return nil, common.ErrorUnknownAction
	}
	if err := f.client.GenerateAzampayToken(ctx); err != nil {
		return f.fail(ctx, "Failed to generate token: ", err), nil
	}
	return []render.Effect{
		render.Alert{Message: "Azampay token generated", Indicator: models.ColorGreen},
		render.Reload{},
	}, nil
}

// AzamPayTransactionForm takes a transaction through checkout. Payment is
// offered until the status reads Success; a QR code is always available.
type AzamPayTransactionForm struct {
	base
}

func (f *AzamPayTransactionForm) DocType() string { return models.DocAzamPayTransaction }

func (f *AzamPayTransactionForm) Refresh(rec models.Record) (View, error) {
	tx, err := models.Decode[models.AzamPayTransaction](rec)
	if err != nil {
		return View{}, err
	}

	v := View{DocType: rec.DocType, Name: rec.Name}
	if rec.IsNew {
		return v, nil
	}
	if tx.Status != "Success" {
		v.Actions = append(v.Actions, Action{ID: ActionProcessPayment, Label: "Process Payment", Primary: true})
	}
	v.Actions = append(v.Actions, Action{ID: ActionGenerateQRCode, Label: "Generate QR Code", Primary: true})
	return v, nil
}

func (f *AzamPayTransactionForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	switch actionID {
	case ActionProcessPayment:
		res, err := f.client.ProcessCheckout(ctx, rec.Name)
		if err != nil {
			return f.fail(ctx, "Payment failed: ", err), nil
		}
		return []render.Effect{
			render.Message("Payment processed! Transaction ID: " + res.TransactionID),
			render.Reload{},
		}, nil

	case ActionGenerateQRCode:
		res, err := f.client.GeneratePaymentQRCode(ctx, rec.Name)
		if err != nil {
			return f.fail(ctx, "Failed to generate QR Code: ", err), nil
		}
		return []render.Effect{render.Dialog{
			Title: "Scan QR Code",
			Body:  fmt.Sprintf("QR code: %s\nGo to Payment: %s", res.QRImage, res.RedirectURL),
			Wide:  true,
		}}, nil

	default:
		return nil, common.ErrorUnknownAction
	}
}
