package table

import (
	"log/slog"
	"sync"

	"github.com/leapstack-labs/gridview/internal/host"
	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

// Instance is the widget mounted for one browser session.
type Instance struct {
	mu      sync.Mutex
	widget  *grid.Widget
	version int

	// Subs holds the cancel functions of the session's open update streams.
	Subs host.Subscriptions
}

// Do runs fn with exclusive access to the widget.
func (in *Instance) Do(fn func(w *grid.Widget) error) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return fn(in.widget)
}

// View snapshots the widget.
func (in *Instance) View() grid.View {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.widget.View()
}

// Registry maps session IDs onto widget instances.
type Registry struct {
	opts   grid.Options
	logger *slog.Logger

	mu        sync.Mutex
	instances map[string]*Instance
}

// NewRegistry creates an empty registry. Widgets are built with opts.
func NewRegistry(opts grid.Options, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		opts:      opts,
		logger:    logger,
		instances: make(map[string]*Instance),
	}
}

// Acquire returns the session's instance, mounting a fresh widget when the
// session is new or its widget was built from an older dataset version.
func (r *Registry) Acquire(id string, snap dataset.Snapshot) *Instance {
	r.mu.Lock()
	in, ok := r.instances[id]
	if !ok {
		in = &Instance{}
		r.instances[id] = in
	}
	r.mu.Unlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.widget == nil || in.version != snap.Version {
		in.widget = grid.New(snap.Dataset, r.opts, r.logger.With("session", id))
		in.version = snap.Version
		r.logger.Debug("widget mounted", "session", id, "version", snap.Version)
	}
	return in
}

// Lookup returns the session's instance without mounting one.
func (r *Registry) Lookup(id string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.instances[id]
	return in, ok
}

// Reset tears the session's widget down and forgets it.
func (r *Registry) Reset(id string) {
	r.mu.Lock()
	in, ok := r.instances[id]
	delete(r.instances, id)
	r.mu.Unlock()

	if ok {
		in.Subs.Teardown()
		r.logger.Debug("widget torn down", "session", id)
	}
}

// Close tears every widget down.
func (r *Registry) Close() {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[string]*Instance)
	r.mu.Unlock()

	for _, in := range instances {
		in.Subs.Teardown()
	}
}

// Len returns the number of mounted widgets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
