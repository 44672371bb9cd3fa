package commands

import (
	"fmt"

	"github.com/leapstack-labs/gridview/internal/cli/output"
	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/spf13/cobra"
)

// SeedOptions holds options for the seed command.
type SeedOptions struct {
	From    string
	Replace bool
}

// SeedOutput is the JSON form of a seed run.
type SeedOutput struct {
	Target string `json:"target" yaml:"target"`
	From   string `json:"from" yaml:"from"`
	Import string `json:"import" yaml:"import"`
	Rows   int    `json:"rows" yaml:"rows"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed <target.db>",
		Short: "Import a JSON dataset into a SQLite file",
		Long: `Read a JSON dataset and write it into the records table of a SQLite file,
creating the file and its schema when needed. The result can be served with
--source-type sqlite.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Import the configured dataset
  gridview seed data/projects.db

  # Replace the rows with another export
  gridview seed data/projects.db --from exports/2024.json --replace

  # Serve the result
  gridview serve --source-type sqlite --data data/projects.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "JSON dataset to import (default: the configured dataset)")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "Delete existing rows first")

	return cmd
}

func runSeed(cmd *cobra.Command, target string, opts *SeedOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	from := opts.From
	if from == "" {
		if cc.Cfg.Source.Type != "json" {
			return fmt.Errorf("the configured source is %s; use --from to name a JSON dataset", cc.Cfg.Source.Type)
		}
		from = cc.Cfg.Source.Path
	}

	records, err := source.Load(cmd.Context(), source.Config{Type: "json", Path: from}, nil, cc.Logger)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", from, err)
	}

	res, err := source.Seed(cmd.Context(), target, from, records, opts.Replace, cc.Logger)
	if err != nil {
		return err
	}

	out := SeedOutput{Target: target, From: from, Import: res.ID, Rows: res.Rows}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Seed"))
		r.Println("")
		r.Println(output.FormatKeyValue("Target", target))
		r.Println(output.FormatKeyValue("From", from))
		r.Println(output.FormatKeyValue("Rows", fmt.Sprint(res.Rows)))
		r.Println(output.FormatKeyValue("Import", res.ID))
	default:
		r.Header(1, "Seed")
		r.StatusLine(from, "success", fmt.Sprintf("%d rows", res.Rows))
		r.Success(fmt.Sprintf("Seeded %s", target))
	}
	return nil
}
