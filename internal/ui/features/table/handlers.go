// Package table provides the filterable table page of the UI.
package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	"github.com/leapstack-labs/gridview/internal/ui/features/table/components"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
	"github.com/leapstack-labs/gridview/pkg/grid"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName  = "gridview"
	sessionIDKey = "id"

	// waitTimeout bounds how long a page request waits for the first dataset.
	waitTimeout = 10 * time.Second
)

// ActionSignals are the datastar signals posted by the table controls.
type ActionSignals struct {
	Op      string `json:"op"`
	Column  int    `json:"column"`
	Key     string `json:"key"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
	Mode    string `json:"mode"`
	Page    string `json:"page"`
}

// Command converts the signals into a widget command.
func (s ActionSignals) Command() (grid.Command, error) {
	cmd := grid.Command{
		Op:      grid.Op(s.Op),
		Column:  s.Column,
		Key:     s.Key,
		Text:    s.Text,
		Checked: s.Checked,
		Page:    s.Page,
	}
	if cmd.Op == grid.OpSetMode {
		mode, err := grid.ParseFilterMode(s.Mode)
		if err != nil {
			return grid.Command{}, err
		}
		cmd.Mode = mode
	}
	return cmd, nil
}

// Handlers provides HTTP handlers for the table feature.
type Handlers struct {
	store        *dataset.Store
	registry     *Registry
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	title        string
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *dataset.Store, registry *Registry, sessionStore sessions.Store, notify *notifier.Notifier, title string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:        store,
		registry:     registry,
		sessionStore: sessionStore,
		notifier:     notify,
		title:        title,
		logger:       logger,
	}
}

// sessionID returns the browser's session ID, issuing one when the request
// carries none. It must run before any response body is written.
func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		// An undecodable cookie gets a fresh session.
		h.logger.Debug("discarding invalid session", "error", err)
	}
	if sess == nil {
		sess = sessions.NewSession(h.sessionStore, sessionName)
	}
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

// TablePage renders the full page with the session's widget.
func (h *Handlers) TablePage(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), waitTimeout)
	defer cancel()
	snap, err := h.store.Wait(ctx)
	if err != nil {
		http.Error(w, "dataset not loaded yet", http.StatusServiceUnavailable)
		return
	}

	view := h.registry.Acquire(id, snap).View()
	if err := components.Page(h.title, view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// TableUpdates is the long-lived SSE endpoint of a page. It re-renders the
// table whenever the dataset is reloaded and ends when the request ends or
// the session's widget is torn down.
func (h *Handlers) TableUpdates(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snap, ok := h.store.Current()
	if !ok {
		http.Error(w, "dataset not loaded yet", http.StatusServiceUnavailable)
		return
	}
	in := h.registry.Acquire(id, snap)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	defer in.Subs.Add(cancel)()

	updates, unsubscribe := h.notifier.Subscribe()
	defer unsubscribe()

	sse := datastar.NewSSE(w, r)

	// No initial send: the page already rendered the current state.
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-updates:
			if !ok {
				return
			}
			snap, _ := h.store.Current()
			view := h.registry.Acquire(id, snap).View()
			h.logger.Debug("pushing reloaded dataset", "session", id, "version", ev.Version, "rows", ev.Rows)
			if err := sse.PatchElementTempl(components.Table(view)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// TableActions applies one posted command and patches the table.
func (h *Handlers) TableActions(w http.ResponseWriter, r *http.Request) {
	var signals ActionSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	id, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snap, ok := h.store.Current()
	if !ok {
		http.Error(w, "dataset not loaded yet", http.StatusServiceUnavailable)
		return
	}
	in := h.registry.Acquire(id, snap)

	var view grid.View
	applyErr := in.Do(func(wg *grid.Widget) error {
		cmd, err := signals.Command()
		if err != nil {
			return err
		}
		if err := wg.Apply(cmd); err != nil {
			return err
		}
		view = wg.View()
		return nil
	})

	sse := datastar.NewSSE(w, r)
	if applyErr != nil {
		var cmdErr *grid.CommandError
		if errors.As(applyErr, &cmdErr) {
			h.logger.Warn("command rejected", "session", id, "op", cmdErr.Op, "error", cmdErr.Err)
		}
		_ = sse.ConsoleError(applyErr)
		return
	}
	if err := sse.PatchElementTempl(components.Table(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// TableReset tears the session's widget down and reloads the page, which
// mounts a fresh widget in its initial state.
func (h *Handlers) TableReset(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.registry.Reset(id)

	sse := datastar.NewSSE(w, r)
	_ = sse.ExecuteScript("window.location.reload()")
}
