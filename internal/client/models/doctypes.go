package models

// Document types handled by the forms.
const (
	DocAzampaySettings    = "Azampay Settings"
	DocAzamPayTransaction = "AzamPay Transaction"
	DocMicrosoftSettings  = "Microsoft Settings"
	DocOneDrive           = "One Drive"
	DocTwilioSettings     = "Twilio Settings"
	DocTwilioSMSLog       = "Twilio SMS Log"
	DocWhatsAppSettings   = "WhatsApp Settings"
	DocWhatsAppMessageLog = "WhatsApp Message Log"
)

var singles = map[string]bool{
	DocAzampaySettings:   true,
	DocMicrosoftSettings: true,
	DocOneDrive:          true,
	DocTwilioSettings:    true,
	DocWhatsAppSettings:  true,
}

// IsSingle reports whether doctype has exactly one document, named after
// the doctype itself.
func IsSingle(doctype string) bool {
	return singles[doctype]
}

type AzamPayTransaction struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type MicrosoftSettings struct {
	Name              string `json:"name"`
	Enable            Check  `json:"enable"`
	RefreshToken      string `json:"refresh_token"`
	AuthorizationCode string `json:"authorization_code"`
}

// Authorized reports whether both OAuth artefacts are present.
func (s MicrosoftSettings) Authorized() bool {
	return s.RefreshToken != "" && s.AuthorizationCode != ""
}

type OneDrive struct {
	Name              string `json:"name"`
	Enable            Check  `json:"enable"`
	RefreshToken      string `json:"refresh_token"`
	AuthorizationCode string `json:"authorization_code"`
}

func (d OneDrive) Authorized() bool {
	return d.RefreshToken != "" && d.AuthorizationCode != ""
}

type WhatsAppSettings struct {
	Name                      string `json:"name"`
	Enabled                   Check  `json:"enabled"`
	APIKey                    string `json:"api_key"`
	PhoneNumberID             string `json:"phone_number_id"`
	WhatsAppBusinessAccountID string `json:"whatsapp_business_account_id"`
	PhoneNumber               string `json:"phone_number"`
	WebhookURL                string `json:"webhook_url"`
}

// CanListTemplates reports whether the account is configured enough for
// the template listing to succeed.
func (s WhatsAppSettings) CanListTemplates() bool {
	return bool(s.Enabled) && s.APIKey != "" && s.WhatsAppBusinessAccountID != ""
}

// MessageTypeTemplate marks a WhatsApp Message Log sent from a template.
const MessageTypeTemplate = "Template"

type WhatsAppMessageLog struct {
	Name        string        `json:"name"`
	Status      MessageStatus `json:"status"`
	MessageID   string        `json:"message_id"`
	MessageType string        `json:"message_type"`
	DocStatus   int           `json:"docstatus"`
	SentAt      string        `json:"sent_at"`
	DeliveredAt string        `json:"delivered_at"`
	ReadAt      string        `json:"read_at"`
}

// IsDraft reports whether the log has not been submitted.
func (l WhatsAppMessageLog) IsDraft() bool {
	return l.DocStatus == 0
}
