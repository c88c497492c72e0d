// Package render turns call outcomes into effects: what the user sees and
// what happens to the open document afterwards.
package render

import (
	"errors"
	"fmt"

	"github.com/tenacious-integration/deskctl/internal/client/models"
)

// Effect is one step of a form's reaction to an event.
type Effect interface {
	isEffect()
}

// Dialog is a modal message.
type Dialog struct {
	Title     string
	Body      string
	Indicator models.Color
	Wide      bool
}

// Alert is a transient notification.
type Alert struct {
	Message   string
	Indicator models.Color
}

// SetField writes a value into the open document. It is never final: a
// Save or Reload must follow it.
type SetField struct {
	Field string
	Value any
}

// Save persists the pending SetField values.
type Save struct{}

// Reload replaces the open document with the server's copy.
type Reload struct{}

// OpenURL sends the user to an external page.
type OpenURL struct {
	URL string
}

// SetDescription changes the help text of a field.
type SetDescription struct {
	Field string
	Text  string
}

// ToggleRequired marks fields as mandatory or optional.
type ToggleRequired struct {
	Fields   []string
	Required bool
}

func (Dialog) isEffect()         {}
func (Alert) isEffect()          {}
func (SetField) isEffect()       {}
func (Save) isEffect()           {}
func (Reload) isEffect()         {}
func (OpenURL) isEffect()        {}
func (SetDescription) isEffect() {}
func (ToggleRequired) isEffect() {}

// ErrUnsettledWrite is returned by Validate for a SetField that no Save or
// Reload follows.
var ErrUnsettledWrite = errors.New("field write is not followed by save or reload")

// Validate checks that every SetField in effects is settled by a later Save
// or Reload.
func Validate(effects []Effect) error {
	pending := ""
	for _, e := range effects {
		switch x := e.(type) {
		case SetField:
			if pending == "" {
				pending = x.Field
			}
		case Save, Reload:
			pending = ""
		}
	}
	if pending != "" {
		return fmt.Errorf("%w: %s", ErrUnsettledWrite, pending)
	}
	return nil
}
