// Package common defines sentinel errors and small helpers shared by the
// deskctl packages. Callers should match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
	ErrorOffline  = errors.New("server unavailable, working from cache")

	// Form-level errors.
	ErrorUnknownDocType = errors.New("unknown document type")
	ErrorUnknownAction  = errors.New("unknown action")
	ErrorNoOpenForm     = errors.New("no form is open")
	ErrorUnsaved        = errors.New("document has not been saved")
)
