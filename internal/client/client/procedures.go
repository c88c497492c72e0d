package client

// ProcedurePrefix is the module path of the app's whitelisted methods.
const ProcedurePrefix = "tenacious_integration.tenacious_integration."

const (
	ProcGenerateAzampayToken = ProcedurePrefix + "doctype.azampay_settings.azampay_settings.generate_azampay_token"
	ProcMNOCheckout          = ProcedurePrefix + "doctype.azampay_transaction.azampay_transaction.mno_checkout"
	ProcGenerateQRCode       = ProcedurePrefix + "doctype.azampay_transaction.azampay_transaction.generate_qr_code"
	ProcAuthorizeAccess      = ProcedurePrefix + "doctype.microsoft_settings.microsoft_settings.authorize_access"
	ProcListFilesInOneDrive  = ProcedurePrefix + "doctype.microsoft_settings.microsoft_settings.list_files_in_onedrive"
	ProcRefreshAccessToken   = ProcedurePrefix + "doctype.microsoft_settings.microsoft_settings.refresh_access_token"
	ProcTakeBackup           = ProcedurePrefix + "doctype.one_drive.one_drive.take_backup"
	ProcTestTwilioConnection = ProcedurePrefix + "api.test_twilio_connection"
	ProcGenerateWebhookURL   = ProcedurePrefix + "api.generate_webhook_url"
	ProcSendTwilioSMS        = ProcedurePrefix + "api.send_twilio_sms"
	ProcTestConnection       = ProcedurePrefix + "api.test_connection"
	ProcGenerateAccessToken  = ProcedurePrefix + "api.generate_access_token"
	ProcGetMessageTemplates  = ProcedurePrefix + "api.get_message_templates"
	ProcSendWhatsAppMessage  = ProcedurePrefix + "api.send_whatsapp_message"
	ProcPing                 = "ping"
	ProcGetLoggedUser        = "frappe.auth.get_logged_user"
	MethodResend             = "resend"
	MethodGetMessageHistory  = "get_message_history"
)
