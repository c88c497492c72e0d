package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tenacious-integration/deskctl/internal/client/client"
	"github.com/tenacious-integration/deskctl/internal/client/forms"
	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/render"
	"github.com/tenacious-integration/deskctl/internal/client/repositories/snapshots"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
	"github.com/tenacious-integration/deskctl/internal/common"
	"github.com/tenacious-integration/deskctl/internal/logging"
)

// Form is the open document together with its current view.
type Form struct {
	Record    models.Record
	View      forms.View
	Offline   bool
	FetchedAt time.Time
}

// FormService holds the one open form. Actions run in the background;
// their effects are applied to the form when the call returns.
type FormService interface {
	DocTypes() []string
	Open(ctx context.Context, doctype, name string) (Form, error)
	Current() (Form, error)
	Reload(ctx context.Context) (Form, error)
	SetField(ctx context.Context, field string, value any) (Form, error)
	Run(ctx context.Context, actionID string) error
	Wait()
	Cached(ctx context.Context) ([]snapshots.Summary, error)
	ClearCache(ctx context.Context) error
	SetOnline(online bool)
	Online() bool
}

type formService struct {
	client     client.Client
	registry   *forms.Registry
	cache      snapshots.Repository
	presenter  render.Presenter
	logger     logging.Logger
	dispatcher *rpc.Dispatcher
	now        func() time.Time

	online atomic.Bool

	// applyMu serializes the application of action results.
	applyMu sync.Mutex

	mu        sync.Mutex
	rec       *models.Record
	offline   bool
	fetchedAt time.Time
}

// NewFormService starts with no open form and assumes the site is online.
func NewFormService(c client.Client, registry *forms.Registry, cache snapshots.Repository,
	presenter render.Presenter, logger logging.Logger) FormService {
	s := &formService{
		client:     c,
		registry:   registry,
		cache:      cache,
		presenter:  presenter,
		logger:     logger,
		dispatcher: rpc.NewDispatcher(),
		now:        time.Now,
	}
	s.online.Store(true)
	return s
}

func (s *formService) DocTypes() []string {
	return s.registry.DocTypes()
}

func (s *formService) SetOnline(online bool) {
	s.online.Store(online)
}

func (s *formService) Online() bool {
	return s.online.Load()
}

// Open loads doctype/name and makes it the current form. Single doctypes
// may omit the name. When the server is unreachable the last cached copy
// is opened read-only.
func (s *formService) Open(ctx context.Context, doctype, name string) (Form, error) {
	if _, err := s.registry.Lookup(doctype); err != nil {
		return Form{}, err
	}
	if name == "" {
		if !models.IsSingle(doctype) {
			return Form{}, fmt.Errorf("%s: document name is required", doctype)
		}
		name = doctype
	}

	form, err := s.load(ctx, doctype, name)
	if err != nil {
		return Form{}, err
	}

	effects, err := s.registry.OnLoad(form.Record)
	if err != nil {
		s.logger.Warn(ctx, "onload failed", "doctype", doctype, "name", name, "error", err)
	} else {
		s.presenter.Present(effects)
	}
	return form, nil
}

func (s *formService) Reload(ctx context.Context) (Form, error) {
	cur, err := s.Current()
	if err != nil {
		return Form{}, err
	}
	return s.load(ctx, cur.Record.DocType, cur.Record.Name)
}

func (s *formService) load(ctx context.Context, doctype, name string) (Form, error) {
	rec, fetchedAt, offline, err := s.fetch(ctx, doctype, name)
	if err != nil {
		return Form{}, err
	}
	view, err := s.registry.Refresh(rec)
	if err != nil {
		return Form{}, err
	}

	s.mu.Lock()
	s.rec = &rec
	s.offline = offline
	s.fetchedAt = fetchedAt
	s.mu.Unlock()

	return Form{Record: rec, View: view, Offline: offline, FetchedAt: fetchedAt}, nil
}

func (s *formService) fetch(ctx context.Context, doctype, name string) (models.Record, time.Time, bool, error) {
	if s.online.Load() {
		rec, err := s.client.GetDoc(ctx, doctype, name)
		if err == nil {
			now := s.now()
			s.remember(ctx, rec, now)
			return rec, now, false, nil
		}
		if errors.Is(err, rpc.ErrNotFound) {
			s.forget(ctx, doctype, name)
		}
		if !errors.Is(err, client.ErrUnavailable) {
			return models.Record{}, time.Time{}, false, err
		}
		s.logger.Warn(ctx, "server unavailable, using cached copy", "doctype", doctype, "name", name, "error", err)
	}

	snap, err := s.cache.Get(ctx, doctype, name)
	if errors.Is(err, common.ErrorNotFound) {
		return models.Record{}, time.Time{}, false, fmt.Errorf("%s %q: %w", doctype, name, client.ErrLocalDataNotAvailable)
	}
	if err != nil {
		return models.Record{}, time.Time{}, false, err
	}
	return snap.Record, snap.FetchedAt, true, nil
}

// forget drops the cached copy of a document the server no longer has.
func (s *formService) forget(ctx context.Context, doctype, name string) {
	if err := s.cache.Delete(ctx, doctype, name); err != nil {
		s.logger.Warn(ctx, "cache delete failed", "doctype", doctype, "name", name, "error", err)
	}
}

func (s *formService) remember(ctx context.Context, rec models.Record, at time.Time) {
	if err := s.cache.Put(ctx, rec, at); err != nil {
		s.logger.Warn(ctx, "cache write failed", "doctype", rec.DocType, "name", rec.Name, "error", err)
	}
}

// Current recomputes the view of the open form.
func (s *formService) Current() (Form, error) {
	s.mu.Lock()
	if s.rec == nil {
		s.mu.Unlock()
		return Form{}, common.ErrorNoOpenForm
	}
	form := Form{Record: *s.rec, Offline: s.offline, FetchedAt: s.fetchedAt}
	s.mu.Unlock()

	view, err := s.registry.Refresh(form.Record)
	if err != nil {
		return Form{}, err
	}
	form.View = view
	return form, nil
}

func (s *formService) writable() (Form, error) {
	form, err := s.Current()
	if err != nil {
		return Form{}, err
	}
	if form.Offline || !s.online.Load() {
		return Form{}, common.ErrorOffline
	}
	return form, nil
}

// SetField saves one field edit and runs the form's change handler.
func (s *formService) SetField(ctx context.Context, field string, value any) (Form, error) {
	form, err := s.writable()
	if err != nil {
		return Form{}, err
	}
	if form.Record.IsNew {
		return Form{}, common.ErrorUnsaved
	}

	saved, err := s.client.UpdateDoc(ctx, form.Record.DocType, form.Record.Name, map[string]any{field: value})
	if err != nil {
		return Form{}, err
	}
	s.commit(ctx, saved)

	effects, err := s.registry.OnChange(field, saved)
	if err != nil {
		s.logger.Warn(ctx, "change handler failed", "doctype", saved.DocType, "field", field, "error", err)
	} else {
		s.presenter.Present(effects)
	}
	return s.Current()
}

// Run dispatches actionID on the open form and returns at once. The
// action must be visible in the current view.
func (s *formService) Run(ctx context.Context, actionID string) error {
	form, err := s.writable()
	if err != nil {
		return err
	}
	if _, ok := form.View.Action(actionID); !ok {
		return fmt.Errorf("%s: %q: %w", form.Record.DocType, actionID, common.ErrorUnknownAction)
	}

	rec := form.Record
	s.logger.Debug(ctx, "dispatching action", "doctype", rec.DocType, "name", rec.Name, "action", actionID)
	rpc.Dispatch(s.dispatcher, ctx,
		func(ctx context.Context) ([]render.Effect, error) {
			return s.registry.Run(ctx, actionID, rec)
		},
		func(effects []render.Effect, err error) {
			s.apply(ctx, rec, actionID, effects, err)
		})
	return nil
}

// Wait blocks until every dispatched action has been applied.
func (s *formService) Wait() {
	s.dispatcher.Wait()
}

// apply runs effects in order against origin. Field writes stay local
// until the next Save; Reload replaces the record with the server copy.
func (s *formService) apply(ctx context.Context, origin models.Record, actionID string, effects []render.Effect, err error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	log := s.logger.With("doctype", origin.DocType, "name", origin.Name, "action", actionID)
	if err != nil {
		log.Error(ctx, "action failed", "error", err)
		s.presenter.Present([]render.Effect{render.Failure("Could not complete the action: ", err)})
		return
	}

	target := origin
	pending := map[string]any{}
	var screen []render.Effect
	flush := func() {
		s.presenter.Present(screen)
		screen = nil
	}

	for _, e := range effects {
		switch x := e.(type) {
		case render.SetField:
			pending[x.Field] = x.Value
			target = target.With(x.Field, x.Value)
			s.replace(target)
		case render.Save:
			flush()
			target = s.save(ctx, log, origin, target, pending)
			pending = map[string]any{}
		case render.Reload:
			flush()
			target = s.reload(ctx, log, origin, target)
			pending = map[string]any{}
		default:
			screen = append(screen, e)
		}
	}
	flush()
	log.Debug(ctx, "action applied", "effects", len(effects))
}

func (s *formService) save(ctx context.Context, log logging.Logger, origin, target models.Record, pending map[string]any) models.Record {
	if len(pending) == 0 {
		return target
	}
	saved, err := s.client.UpdateDoc(ctx, target.DocType, target.Name, pending)
	if err != nil {
		log.Warn(ctx, "save failed", "error", err)
		s.presenter.Present([]render.Effect{render.Failure("Failed to save: ", err)})
		return s.reload(ctx, log, origin, target)
	}
	s.commit(ctx, saved)
	return saved
}

func (s *formService) reload(ctx context.Context, log logging.Logger, origin, target models.Record) models.Record {
	fresh, err := s.client.GetDoc(ctx, target.DocType, target.Name)
	if err != nil {
		log.Warn(ctx, "reload failed", "error", err)
		s.presenter.Present([]render.Effect{render.Failure("Failed to reload: ", err)})
		s.replace(origin)
		return origin
	}
	s.commit(ctx, fresh)
	return fresh
}

func (s *formService) commit(ctx context.Context, rec models.Record) {
	now := s.now()
	s.remember(ctx, rec, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen(rec) {
		return
	}
	s.rec = &rec
	s.offline = false
	s.fetchedAt = now
}

// replace swaps in a locally edited copy if rec is still the open form.
func (s *formService) replace(rec models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isOpen(rec) {
		s.rec = &rec
	}
}

func (s *formService) isOpen(rec models.Record) bool {
	return s.rec != nil && s.rec.DocType == rec.DocType && s.rec.Name == rec.Name
}

func (s *formService) Cached(ctx context.Context) ([]snapshots.Summary, error) {
	return s.cache.List(ctx)
}

// ClearCache drops every cached document. The open form is kept.
func (s *formService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
