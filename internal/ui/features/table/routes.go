package table

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
)

// SetupRoutes configures routes for the table feature.
func SetupRoutes(
	router chi.Router,
	store *dataset.Store,
	registry *Registry,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	title string,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(store, registry, sessionStore, notify, title, logger)

	router.Get("/", handlers.TablePage)
	router.Route("/table", func(r chi.Router) {
		r.Get("/updates", handlers.TableUpdates)
		r.Post("/actions", handlers.TableActions)
		r.Post("/reset", handlers.TableReset)
	})

	return nil
}
