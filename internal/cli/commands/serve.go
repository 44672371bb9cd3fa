package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"github.com/leapstack-labs/gridview/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	Host      string
	NoBrowser bool
	Watch     bool
	Dev       bool
	Title     string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Serve the table in the browser",
		Long: `Start a local web server hosting the table widget.

Every browser session gets its own widget. Filters, sorting and paging are
applied on the server and patched into the page over server-sent events.
When the dataset is a local file it is reloaded whenever it changes.`,
		Example: `  # Start on the default port
  gridview serve

  # Serve a different dataset on a custom port
  gridview serve --data ./exports/projects.json --port 3000

  # Serve a remote dataset without opening a browser
  gridview serve --source-type http --url https://example.com/data.json --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to bind (default: localhost)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the dataset when its file changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable the hot reload endpoints")
	cmd.Flags().StringVar(&opts.Title, "title", "Projects", "Page title")
	_ = cmd.Flags().MarkHidden("dev")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	// Get UI config with defaults
	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	host := uiCfg.Host
	if opts.Host != "" {
		host = opts.Host
	}
	autoOpen := uiCfg.AutoOpen && !opts.NoBrowser
	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	if err := cfg.ValidateDataPath(); err != nil {
		return err
	}

	server := ui.NewServer(ui.Config{
		Source:        cfg.Source,
		Columns:       cfg.Columns,
		Options:       cfg.GridOptions(),
		Host:          host,
		Port:          port,
		Watch:         watch,
		Dev:           opts.Dev,
		SessionSecret: sessionSecret(uiCfg.SessionSecret),
		Title:         opts.Title,
		Logger:        cc.Logger,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx, func(url string) {
		cc.Renderer.Success("Serving " + cfg.Source.Location() + " on " + url)
		cc.Renderer.Muted("Press Ctrl+C to stop")
		if autoOpen {
			go openBrowser(url)
		}
	})
}

// sessionSecret returns the configured cookie secret, or a random one.
// A random secret invalidates sessions on restart.
func sessionSecret(configured string) string {
	if configured != "" {
		return configured
	}
	return uuid.NewString() + uuid.NewString()
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	if err := cmd.Start(); err != nil {
		fmt.Printf("Open %s in your browser\n", url)
	}
}
