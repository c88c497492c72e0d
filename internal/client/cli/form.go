package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tenacious-integration/deskctl/internal/client/forms"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/services"
	"github.com/tenacious-integration/deskctl/internal/common"
)

const timeLayout = "2006-01-02 15:04:05"

// splitDocRef splits "<doctype> [name]" where the doctype may contain
// spaces. The longest doctype that prefixes input wins; matching ignores
// case and accepts underscores for spaces.
func splitDocRef(input string, doctypes []string) (doctype, name string, ok bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), "_", " "))
	raw := strings.TrimSpace(input)

	for _, dt := range doctypes {
		want := strings.ToLower(dt)
		if !strings.HasPrefix(norm, want) || len(want) <= len(doctype) {
			continue
		}
		if len(norm) > len(want) && norm[len(want)] != ' ' {
			continue
		}
		doctype, name, ok = dt, strings.TrimSpace(raw[len(want):]), true
	}
	return doctype, name, ok
}

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: open <doctype> [name]")
	}
	doctype, name, ok := splitDocRef(strings.Join(args, " "), a.formService.DocTypes())
	if !ok {
		return fmt.Errorf("%q: %w", strings.Join(args, " "), common.ErrorUnknownDocType)
	}

	form, err := a.formService.Open(ctx, doctype, name)
	if err != nil {
		return err
	}
	a.printForm(form)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	form, err := a.formService.Current()
	if err != nil {
		return err
	}
	a.printForm(form)
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	form, err := a.formService.Reload(ctx)
	if err != nil {
		return err
	}
	a.printForm(form)
	return nil
}

func (a *App) Actions(ctx context.Context) error {
	form, err := a.formService.Current()
	if err != nil {
		return err
	}
	a.printActions(form.View)
	return nil
}

// RunAction resolves an action by its number in the actions list or by
// id, asks for confirmation where the action wants it and dispatches it.
func (a *App) RunAction(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: run <number|action-id>")
	}
	form, err := a.formService.Current()
	if err != nil {
		return err
	}
	action, err := pickAction(form.View, args[0])
	if err != nil {
		return err
	}

	if action.Confirm != "" && !AskYesNo(a.reader, action.Confirm, a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.formService.Run(ctx, action.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: running in background (type 'wait' to block until done)\n", action.Label)
	return nil
}

func pickAction(v forms.View, ref string) (forms.Action, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(v.Actions) {
			return forms.Action{}, fmt.Errorf("action %d: %w", n, common.ErrorUnknownAction)
		}
		return v.Actions[n-1], nil
	}
	if action, ok := v.Action(ref); ok {
		return action, nil
	}
	return forms.Action{}, fmt.Errorf("%q: %w", ref, common.ErrorUnknownAction)
}

// Set writes one field. The value is sent as typed; the server coerces it
// to the field's type.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set <field> <value>")
	}
	form, err := a.formService.SetField(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.printForm(form)
	return nil
}

func (a *App) Wait(ctx context.Context) error {
	a.formService.Wait()
	fmt.Fprintln(a.out, "All actions finished.")
	return nil
}

func (a *App) Cached(ctx context.Context) error {
	list, err := a.formService.Cached(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Nothing cached yet.")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(a.out, "%s  %s %s\n", s.FetchedAt.Local().Format(timeLayout), s.DocType, s.Name)
	}
	return nil
}

// ClearCache drops every offline copy.
func (a *App) ClearCache(ctx context.Context) error {
	if err := a.formService.ClearCache(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Offline cache cleared.")
	return nil
}

func (a *App) DocTypes(ctx context.Context) error {
	for _, dt := range a.formService.DocTypes() {
		single := ""
		if models.IsSingle(dt) {
			single = " (single)"
		}
		fmt.Fprintf(a.out, "  %s%s\n", dt, single)
	}
	return nil
}

func (a *App) printForm(f services.Form) {
	title := f.Record.DocType
	if f.Record.Name != "" && f.Record.Name != f.Record.DocType {
		title += " " + f.Record.Name
	}
	if ind := f.View.Indicator; ind != nil {
		title += fmt.Sprintf(" [%s]", ind.Label)
		if ind.Color != models.ColorNone {
			title += fmt.Sprintf(" (%s)", ind.Color)
		}
	}
	fmt.Fprintln(a.out, title)
	if f.Offline {
		fmt.Fprintf(a.out, "  offline copy fetched %s; actions are disabled\n", f.FetchedAt.Local().Format(timeLayout))
	}
	if f.View.Headline != "" {
		fmt.Fprintf(a.out, "  %s\n", f.View.Headline)
	}

	keys := make([]string, 0, len(f.Record.Fields))
	for k, v := range f.Record.Fields {
		if v == nil || strings.HasPrefix(k, "_") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %-28s %s\n", k, f.Record.Text(k))
	}

	a.printActions(f.View)
}

func (a *App) printActions(v forms.View) {
	if len(v.Actions) == 0 {
		fmt.Fprintln(a.out, "No actions available.")
		return
	}
	fmt.Fprintln(a.out, "Actions:")
	for i, action := range v.Actions {
		label := action.Label
		if action.Group != "" {
			label = action.Group + " > " + label
		}
		fmt.Fprintf(a.out, "  %d. %s (%s)\n", i+1, label, action.ID)
	}
}
