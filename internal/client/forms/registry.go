package forms

import (
	"context"
	"fmt"
	"sort"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
	"github.com/tenacious-integration/deskctl/internal/common"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

// Registry dispatches form events to the controller of the record's
// document type.
type Registry struct {
	controllers map[string]Controller
}

// NewRegistry registers the controllers of every supported document type.
func NewRegistry(c client.Client, logger logging.Logger) *Registry {
	b := base{client: c, logger: logger}
	r := &Registry{controllers: map[string]Controller{}}
	for _, ctrl := range []Controller{
		&AzampaySettingsForm{base: b},
		&AzamPayTransactionForm{base: b},
		&MicrosoftSettingsForm{base: b},
		&OneDriveForm{base: b},
		&TwilioSettingsForm{base: b},
		&TwilioSMSLogForm{base: b},
		&WhatsAppSettingsForm{base: b},
		&WhatsAppMessageLogForm{base: b},
	} {
		r.controllers[ctrl.DocType()] = ctrl
	}
	return r
}

// Lookup returns the controller for doctype or common.ErrorUnknownDocType.
func (r *Registry) Lookup(doctype string) (Controller, error) {
	ctrl, ok := r.controllers[doctype]
	if !ok {
		return nil, fmt.Errorf("%q: %w", doctype, common.ErrorUnknownDocType)
	}
	return ctrl, nil
}

// DocTypes lists the supported document types in name order.
func (r *Registry) DocTypes() []string {
	out := make([]string, 0, len(r.controllers))
	for dt := range r.controllers {
		out = append(out, dt)
	}
	sort.Strings(out)
	return out
}

// Refresh computes the view of rec.
func (r *Registry) Refresh(rec models.Record) (View, error) {
	ctrl, err := r.Lookup(rec.DocType)
	if err != nil {
		return View{}, err
	}
	return ctrl.Refresh(rec)
}

// Run performs actionID on rec. The action must be visible on the current
// snapshot. Messages the server sent along with its replies come first.
func (r *Registry) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	ctrl, err := r.Lookup(rec.DocType)
	if err != nil {
		return nil, err
	}

	view, err := ctrl.Refresh(rec)
	if err != nil {
		return nil, err
	}
	if _, ok := view.Action(actionID); !ok {
		return nil, fmt.Errorf("%s: %q: %w", rec.DocType, actionID, common.ErrorUnknownAction)
	}
	if rec.IsNew {
		return nil, fmt.Errorf("%s: %w", rec.DocType, common.ErrorUnsaved)
	}

	ctx, notices := rpc.WithNotices(ctx)
	effects, err := ctrl.Run(ctx, actionID, rec)
	if err != nil {
		return nil, err
	}
	effects = append(render.Notices(notices.Items()), effects...)
	if err := render.Validate(effects); err != nil {
		return nil, fmt.Errorf("%s %s: %w", rec.DocType, actionID, err)
	}
	return effects, nil
}

// OnLoad returns the effects of opening rec; most doctypes have none.
func (r *Registry) OnLoad(rec models.Record) ([]render.Effect, error) {
	ctrl, err := r.Lookup(rec.DocType)
	if err != nil {
		return nil, err
	}
	if l, ok := ctrl.(Loader); ok {
		return l.OnLoad(rec)
	}
	return nil, nil
}

// OnChange returns the effects of a saved edit to field.
func (r *Registry) OnChange(field string, rec models.Record) ([]render.Effect, error) {
	ctrl, err := r.Lookup(rec.DocType)
	if err != nil {
		return nil, err
	}
	if h, ok := ctrl.(ChangeHandler); ok {
		return h.OnChange(field, rec)
	}
	return nil, nil
}
