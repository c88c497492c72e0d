package models

// MessageTemplate is an approved WhatsApp message template.
type MessageTemplate struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Category string `json:"category"`
	Status   string `json:"status"`
}
