// Package ui provides the browser host for the gridview widget.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	tableFeature "github.com/leapstack-labs/gridview/internal/ui/features/table"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
	"github.com/leapstack-labs/gridview/internal/ui/router"
	"github.com/leapstack-labs/gridview/pkg/grid"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Config holds configuration for the UI server.
type Config struct {
	Source        source.Config
	Columns       []grid.ColumnDef
	Options       grid.Options
	Host          string
	Port          int
	Watch         bool
	Dev           bool
	SessionSecret string
	Title         string
	Logger        *slog.Logger
}

// Server is the main UI server.
type Server struct {
	cfg          Config
	store        *dataset.Store
	registry     *tableFeature.Registry
	sessionStore *sessions.CookieStore
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Title == "" {
		cfg.Title = "Projects"
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	notify := notifier.New()
	load := dataset.SourceLoader(cfg.Source, cfg.Columns, cfg.Logger)

	return &Server{
		cfg:          cfg,
		store:        dataset.NewStore(load, cfg.Columns, notify, cfg.Logger),
		registry:     tableFeature.NewRegistry(cfg.Options, cfg.Logger),
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       cfg.Logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := router.Deps{
		Store:        s.store,
		Registry:     s.registry,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Title:        s.cfg.Title,
		Logger:       s.logger,
	}
	if err := router.SetupRoutes(r, deps, s.cfg.Dev); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Store returns the server's dataset store.
func (s *Server) Store() *dataset.Store {
	return s.store
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Serve loads the dataset, starts the UI server and blocks until the
// context is cancelled. ready, when non-nil, receives the bound listener
// address once the server accepts connections.
func (s *Server) Serve(ctx context.Context, ready func(addr string)) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	url := "http://" + ln.Addr().String()
	s.logger.Info("starting UI server", "addr", url)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// A failed load is logged by the store and leaves an empty table.
	eg.Go(func() error {
		_ = s.store.Reload(egctx)
		return nil
	})

	if path, ok := s.watchPath(); ok {
		eg.Go(func() error {
			if err := s.store.Watch(egctx, path, dataset.DefaultDebounce); err != nil {
				s.logger.Error("failed to watch dataset", "path", path, "error", err)
			}
			return nil
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		s.registry.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	if ready != nil {
		ready(url)
	}
	return eg.Wait()
}

// watchPath returns the file to watch for changes, if the source is a
// local file and watching is enabled.
func (s *Server) watchPath() (string, bool) {
	if !s.cfg.Watch || s.cfg.Source.Path == "" {
		return "", false
	}
	switch s.cfg.Source.Type {
	case "json", "sqlite", "duckdb":
		return s.cfg.Source.Path, true
	}
	return "", false
}
