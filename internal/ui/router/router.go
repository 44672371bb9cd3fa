// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	tableFeature "github.com/leapstack-labs/gridview/internal/ui/features/table"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
	"github.com/leapstack-labs/gridview/internal/ui/resources"
	"github.com/starfederation/datastar-go/datastar"
)

// Deps are the shared services the feature routes are built from.
type Deps struct {
	Store        *dataset.Store
	Registry     *tableFeature.Registry
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Title        string
	Logger       *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps, isDev bool) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle(resources.StaticPath("*"), resources.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if _, ok := deps.Store.Current(); !ok {
			http.Error(w, "loading", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("OK"))
	})

	// Feature routes
	return tableFeature.SetupRoutes(router, deps.Store, deps.Registry, deps.SessionStore, deps.Notifier, deps.Title, deps.Logger)
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
