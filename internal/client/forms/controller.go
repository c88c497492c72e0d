package forms

import (
	"context"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

// Action is a button offered on a form.
type Action struct {
	ID      string
	Label   string
	Group   string
	Primary bool
	// Confirm, when set, is asked before the action runs.
	Confirm string
}

// Indicator is the status badge shown next to the form title.
type Indicator struct {
	Label string
	Color models.Color
}

// View is what a refresh shows for one snapshot.
type View struct {
	DocType   string
	Name      string
	Indicator *Indicator
	Headline  string
	Actions   []Action
}

// Action looks up a visible action by id.
func (v View) Action(id string) (Action, bool) {
	for _, a := range v.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Controller computes the view of one document type and runs its actions.
// Refresh must not touch the network.
type Controller interface {
	DocType() string
	Refresh(rec models.Record) (View, error)
	Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error)
}

// Loader is implemented by controllers that react to a document being
// opened.
type Loader interface {
	OnLoad(rec models.Record) ([]render.Effect, error)
}

// ChangeHandler is implemented by controllers that react to field edits.
type ChangeHandler interface {
	OnChange(field string, rec models.Record) ([]render.Effect, error)
}

type base struct {
	client client.Client
	logger logging.Logger
}

// fail renders err for the user and logs it. Transport detail only ever
// reaches the log.
func (b base) fail(ctx context.Context, prefix string, err error) []render.Effect {
	if rpc.IsTransport(err) {
		b.logger.Warn(ctx, "action failed in transport", "error", err)
	} else {
		b.logger.Info(ctx, "action reported failure", "error", err)
	}
	return []render.Effect{render.Failure(prefix, err)}
}

func authIndicator(authorized bool) *Indicator {
	if authorized {
		return &Indicator{Label: "Authorized", Color: models.ColorGreen}
	}
	return &Indicator{Label: "Unauthorized", Color: models.ColorRed}
}
