package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/gridview/internal/cli/config"
	"github.com/leapstack-labs/gridview/internal/cli/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"version", "serve", "show", "repl", "browse", "seed", "completion"}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "source-type", "data", "url", "dsn", "table", "timeout", "date-blanks", "log-level", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestGetConfig_Default(t *testing.T) {
	cfg := GetConfig(context.Background())

	assert.Equal(t, config.DefaultSourceType, cfg.Source.Type)
	assert.Equal(t, config.DefaultDataPath, cfg.Source.Path)
	assert.Equal(t, config.DefaultOutput, cfg.OutputFormat)
}

func TestGetRenderer_FromContext(t *testing.T) {
	r := output.NewRenderer(new(bytes.Buffer), new(bytes.Buffer), output.ModeJSON)
	ctx := context.WithValue(context.Background(), rendererKey{}, r)

	assert.Same(t, r, GetRenderer(ctx))
	assert.NotNil(t, GetRenderer(context.Background()))
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "gridview"},
		{"zsh", "#compdef gridview"},
		{"fish", "complete -c gridview"},
		{"powershell", "gridview"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs([]string{"completion", tt.shell})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"completion", "tcsh"})
	assert.Error(t, cmd.Execute())
}
