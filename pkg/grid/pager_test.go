package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(p Pager) []int {
	var out []int
	for _, b := range p.Buttons {
		if b.Kind == ButtonNumber {
			out = append(out, b.Number)
		}
	}
	return out
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		visible int
		want    int
	}{
		{0, 1},
		{1, 1},
		{25, 1},
		{26, 2},
		{30, 2},
		{500, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.visible), "visible=%d", tt.visible)
	}
}

func TestPaginate_ButtonWindow(t *testing.T) {
	tests := []struct {
		name    string
		visible int
		current int
		want    []int
	}{
		{"single page", 3, 1, []int{1}},
		{"all pages up to seven", 7 * PageSize, 4, []int{1, 2, 3, 4, 5, 6, 7}},
		{"pinned to start", 20 * PageSize, 4, []int{1, 2, 3, 4, 5, 6, 7}},
		{"centred", 20 * PageSize, 10, []int{7, 8, 9, 10, 11, 12, 13}},
		{"centred at five", 20 * PageSize, 5, []int{2, 3, 4, 5, 6, 7, 8}},
		{"pinned to end", 20 * PageSize, 17, []int{14, 15, 16, 17, 18, 19, 20}},
		{"last page", 20 * PageSize, 20, []int{14, 15, 16, 17, 18, 19, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.visible, tt.current)
			assert.Equal(t, tt.want, numbers(p))
		})
	}
}

func TestPaginate_Buttons(t *testing.T) {
	p := Paginate(500, 10)
	require.Len(t, p.Buttons, 11)

	assert.Equal(t, ButtonFirst, p.Buttons[0].Kind)
	assert.Equal(t, ButtonPrev, p.Buttons[1].Kind)
	assert.Equal(t, ButtonNext, p.Buttons[9].Kind)
	assert.Equal(t, ButtonLast, p.Buttons[10].Kind)
	for _, b := range p.Buttons {
		if b.Kind == ButtonNumber {
			assert.Equal(t, b.Number == 10, b.Active)
			assert.Equal(t, b.Number == 10, b.Disabled)
		} else {
			assert.False(t, b.Disabled, b.Kind)
		}
	}
	assert.Equal(t, "Page 10 of 20", p.Label)
	assert.Equal(t, 225, p.Start)
	assert.Equal(t, 250, p.End)

	first := Paginate(500, 1)
	assert.True(t, first.Buttons[0].Disabled)
	assert.True(t, first.Buttons[1].Disabled)

	last := Paginate(500, 20)
	assert.True(t, last.Buttons[len(last.Buttons)-1].Disabled)
	assert.True(t, last.Buttons[len(last.Buttons)-2].Disabled)

	empty := Paginate(0, 3)
	assert.Equal(t, 1, empty.Current)
	assert.Equal(t, "Page 1 of 1", empty.Label)
	assert.Equal(t, 0, empty.Start)
	assert.Equal(t, 0, empty.End)
	for _, b := range empty.Buttons {
		assert.True(t, b.Disabled, b.Kind)
	}
}

func TestPaginate_WidthTier(t *testing.T) {
	tests := []struct {
		current, count, want int
	}{
		{1, 1, 1},
		{6, 20, 1},
		{7, 9, 1},
		{7, 10, 2},
		{96, 100, 2},
		{97, 100, 3},
		{120, 120, 3},
	}
	for _, tt := range tests {
		p := Paginate(tt.count*PageSize, tt.current)
		assert.Equal(t, tt.want, p.WidthTier, "current=%d count=%d", tt.current, tt.count)
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
		target  PageTarget
		want    int
	}{
		{"first", 5, 10, PageTarget{Kind: ButtonFirst}, 1},
		{"prev", 5, 10, PageTarget{Kind: ButtonPrev}, 4},
		{"prev clamps", 1, 10, PageTarget{Kind: ButtonPrev}, 1},
		{"next", 5, 10, PageTarget{Kind: ButtonNext}, 6},
		{"next clamps", 10, 10, PageTarget{Kind: ButtonNext}, 10},
		{"last", 5, 10, PageTarget{Kind: ButtonLast}, 10},
		{"number", 5, 10, PageTarget{Kind: ButtonNumber, Number: 8}, 8},
		{"number clamps", 5, 10, PageTarget{Kind: ButtonNumber, Number: 80}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.current, tt.count, tt.target))
		})
	}
}

func TestParsePageTarget(t *testing.T) {
	got, err := ParsePageTarget("next")
	require.NoError(t, err)
	assert.Equal(t, PageTarget{Kind: ButtonNext}, got)

	got, err = ParsePageTarget("12")
	require.NoError(t, err)
	assert.Equal(t, PageTarget{Kind: ButtonNumber, Number: 12}, got)

	_, err = ParsePageTarget("0")
	assert.Error(t, err)
	_, err = ParsePageTarget("number")
	assert.Error(t, err)

	assert.Equal(t, PageTarget{Kind: ButtonNumber, Number: 3}, PageButton{Kind: ButtonNumber, Number: 3}.Target())
	assert.Equal(t, PageTarget{Kind: ButtonLast}, PageButton{Kind: ButtonLast}.Target())
}
