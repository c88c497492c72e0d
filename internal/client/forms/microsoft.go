package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
	"github.com/tenacious-integration/deskctl/internal/common"
)

const (
	ActionAuthorizeAccess    = "authorize_access"
	ActionListFiles          = "list_files"
	ActionRefreshAccessToken = "refresh_access_token"
	ActionTakeBackup         = "take_backup"
)

// MicrosoftSettingsForm drives the OAuth consent flow and the OneDrive
// file listing.
type MicrosoftSettingsForm struct {
	base
}

func (f *MicrosoftSettingsForm) DocType() string { return models.DocMicrosoftSettings }

func (f *MicrosoftSettingsForm) Refresh(rec models.Record) (View, error) {
	s, err := models.Decode[models.MicrosoftSettings](rec)
	if err != nil {
		return View{}, err
	}

	v := View{DocType: rec.DocType, Name: rec.Name, Indicator: authIndicator(s.Authorized())}
	if !s.Enable {
		v.Headline = "Enable Microsoft Integration to use this feature."
		return v, nil
	}

	if s.RefreshToken == "" && s.AuthorizationCode == "" {
		v.Actions = append(v.Actions, Action{ID: ActionAuthorizeAccess, Label: "Authorize Access", Primary: true})
	}
	if s.Authorized() {
		v.Actions = append(v.Actions, Action{ID: ActionListFiles, Label: "List Files in OneDrive"})
	}
	if s.RefreshToken != "" {
		v.Actions = append(v.Actions, Action{ID: ActionRefreshAccessToken, Label: "Refresh Access Token"})
	}
	return v, nil
}

func (f *MicrosoftSettingsForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	switch actionID {
	case ActionAuthorizeAccess:
		url, err := f.client.AuthorizeAccess(ctx)
		if err != nil {
			return f.fail(ctx, "Failed to generate authorization URL: ", err), nil
		}
		return []render.Effect{render.OpenURL{URL: url}}, nil

	case ActionListFiles:
		files, err := f.client.ListRemoteFiles(ctx)
		if errors.Is(err, rpc.ErrApplication) {
			return []render.Effect{render.Message("No files found in OneDrive.")}, nil
		}
		if err != nil {
			return f.fail(ctx, "Failed to list files: ", err), nil
		}
		return []render.Effect{render.Dialog{
			Title:     "Files in OneDrive",
			Body:      indentJSON(files),
			Indicator: models.ColorBlue,
		}}, nil

	case ActionRefreshAccessToken:
		if err := f.client.RefreshAccessToken(ctx); err != nil {
			return f.fail(ctx, "Failed to refresh access token: ", err), nil
		}
		return []render.Effect{
			render.Message("Access token refreshed successfully."),
			render.Reload{},
		}, nil

	default:
		return nil, common.ErrorUnknownAction
	}
}

// OneDriveForm queues backups once the account holds a refresh token.
type OneDriveForm struct {
	base
}

func (f *OneDriveForm) DocType() string { return models.DocOneDrive }

func (f *OneDriveForm) Refresh(rec models.Record) (View, error) {
	d, err := models.Decode[models.OneDrive](rec)
	if err != nil {
		return View{}, err
	}

	v := View{DocType: rec.DocType, Name: rec.Name, Indicator: authIndicator(d.Authorized())}
	if !d.Enable {
		v.Headline = "Enable Microsoft Integration in Microsoft Settings."
		return v, nil
	}
	if d.RefreshToken != "" {
		v.Actions = append(v.Actions, Action{ID: ActionTakeBackup, Label: "Take Backup Now"})
	}
	return v, nil
}

func (f *OneDriveForm) Run(ctx context.Context, actionID string, rec models.Record) ([]render.Effect, error) {
	if actionID != ActionTakeBackup {
		return nil, common.ErrorUnknownAction
	}
	if err := f.client.TakeBackup(ctx); err != nil {
		return f.fail(ctx, "Failed to start backup: ", err), nil
	}
	return []render.Effect{render.Alert{
		Message:   "Backup has started. Check logs for progress.",
		Indicator: models.ColorGreen,
	}}, nil
}

func indentJSON(raw json.RawMessage) string {
	var b bytes.Buffer
	if err := json.Indent(&b, raw, "", "    "); err != nil {
		return string(raw)
	}
	return b.String()
}
