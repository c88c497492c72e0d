// Package models defines the document snapshots the forms work on.
//
// A Record is an immutable copy of a document as the server returned it.
// Forms never read fields out of a Record directly; they decode it into one
// of the typed views (MicrosoftSettings, WhatsAppMessageLog, ...) and feed
// that to pure predicates.
package models
