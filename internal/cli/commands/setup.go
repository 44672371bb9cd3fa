package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/gridview/internal/cli/config"
	"github.com/leapstack-labs/gridview/internal/cli/output"
	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/pkg/grid"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// LoadWidget reads the configured dataset and mounts a widget on it.
func (c *CommandContext) LoadWidget(ctx context.Context) (*grid.Widget, error) {
	return loadWidget(ctx, c.Cfg, c.Logger)
}

// getConfig returns the current configuration, loading defaults, the
// config file and environment when no command has loaded it yet.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		return &config.Config{
			Source:       config.SourceConfig{Type: config.DefaultSourceType, Path: config.DefaultDataPath},
			Columns:      grid.DefaultColumns(),
			DateBlanks:   config.DateBlanksAuto,
			LogLevel:     config.DefaultLogLevel,
			OutputFormat: config.DefaultOutput,
			UI:           config.DefaultUIConfig(),
		}
	}
	return cfg
}

func loadWidget(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*grid.Widget, error) {
	if err := cfg.ValidateDataPath(); err != nil {
		return nil, err
	}
	records, err := source.Load(ctx, cfg.Source, cfg.Fields(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	ds := grid.NewDataset(cfg.Columns, records)
	logger.Debug("dataset loaded", "rows", len(ds.Rows), "source", cfg.Source.Type)
	return grid.New(ds, cfg.GridOptions(), logger), nil
}
