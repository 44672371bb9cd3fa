package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidget_Parse(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{line: "sort price desc", want: Command{Op: OpSortDesc, Column: colPrice}},
		{line: "sort 0", want: Command{Op: OpSortAsc, Column: colProject}},
		{line: `sort "Project Name" asc`, want: Command{Op: OpSortAsc, Column: colProject}},
		{line: "mode country nc", want: Command{Op: OpSetMode, Column: colCountry, Mode: ModeNotContains}},
		{line: "find date jan", want: Command{Op: OpSetColumnSearch, Column: colDate, Text: "jan"}},
		{line: "find date", want: Command{Op: OpSetColumnSearch, Column: colDate}},
		{line: "uncheck country UK", want: Command{Op: OpToggle, Column: colCountry, Key: "UK"}},
		{line: `check project_name "Project A"`, want: Command{Op: OpToggle, Column: colProject, Key: "Project A", Checked: true}},
		{line: "check country (Blanks)", want: Command{Op: OpToggle, Column: colCountry, Key: "", Checked: true}},
		{line: "all price off", want: Command{Op: OpToggleAll, Column: colPrice}},
		{line: "expand date 2023", want: Command{Op: OpExpand, Column: colDate, Key: "2023"}},
		{line: "search hello world", want: Command{Op: OpSetSearch, Column: -1, Text: "hello world"}},
		{line: "search", want: Command{Op: OpSetSearch, Column: -1}},
		{line: "clear 1", want: Command{Op: OpClearFilter, Column: colCountry}},
		{line: "reset", want: Command{Op: OpClearAll, Column: -1}},
		{line: "page last", want: Command{Op: OpPage, Column: -1, Page: "last"}},
		{line: "", wantErr: true},
		{line: "explode", wantErr: true},
		{line: "sort", wantErr: true},
		{line: "sort nowhere", wantErr: true},
		{line: "sort price sideways", wantErr: true},
		{line: "mode price fuzzy", wantErr: true},
		{line: "all price maybe", wantErr: true},
		{line: "page -1", wantErr: true},
		{line: `find project "unterminated`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := w.Parse(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWidget_ParseAndApply(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	for _, line := range []string{"uncheck country UK", "uncheck project B"} {
		cmd, err := w.Parse(line)
		require.NoError(t, err)
		require.NoError(t, w.Apply(cmd))
	}
	assert.Equal(t, []int{0}, visibleIDs(w))

	cmd, err := w.Parse("reset")
	require.NoError(t, err)
	require.NoError(t, w.Apply(cmd))
	assert.Equal(t, 3, w.VisibleCount())
}

func TestColumnIndex(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	i, err := w.ColumnIndex("DATE")
	require.NoError(t, err)
	assert.Equal(t, colDate, i)

	i, err = w.ColumnIndex("Project_Name")
	require.NoError(t, err)
	assert.Equal(t, colProject, i)

	_, err = w.ColumnIndex("4")
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
	_, err = w.ColumnIndex("owner")
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
}
