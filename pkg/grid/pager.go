package grid

import (
	"fmt"
	"strconv"
)

// PageSize is the number of rows shown per page.
const PageSize = 25

// maxPageButtons is the width of the numbered button window.
const maxPageButtons = 7

// ButtonKind identifies a pager button.
type ButtonKind string

// Pager button kinds, in render order.
const (
	ButtonFirst  ButtonKind = "first"
	ButtonPrev   ButtonKind = "prev"
	ButtonNumber ButtonKind = "number"
	ButtonNext   ButtonKind = "next"
	ButtonLast   ButtonKind = "last"
)

// PageButton is one rendered pager button.
type PageButton struct {
	Kind     ButtonKind `json:"kind"`
	Number   int        `json:"number,omitempty"`
	Active   bool       `json:"active,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`
}

// Target returns the navigation target the button triggers.
func (b PageButton) Target() PageTarget {
	if b.Kind == ButtonNumber {
		return PageTarget{Kind: ButtonNumber, Number: b.Number}
	}
	return PageTarget{Kind: b.Kind}
}

// PageTarget is a go-to-page request relative to the current page.
type PageTarget struct {
	Kind   ButtonKind
	Number int
}

// ParsePageTarget reads "first", "prev", "next", "last" or a page number.
func ParsePageTarget(s string) (PageTarget, error) {
	switch ButtonKind(s) {
	case ButtonFirst, ButtonPrev, ButtonNext, ButtonLast:
		return PageTarget{Kind: ButtonKind(s)}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return PageTarget{}, fmt.Errorf("invalid page %q", s)
	}
	return PageTarget{Kind: ButtonNumber, Number: n}, nil
}

// Pager is the pagination state for the current set of visible rows.
type Pager struct {
	Current int          `json:"current"`
	Count   int          `json:"count"`
	Start   int          `json:"start"`
	End     int          `json:"end"`
	Buttons []PageButton `json:"buttons"`
	Label   string       `json:"label"`
	// WidthTier is the pager width class: 1, 2 or 3.
	WidthTier int `json:"width_tier"`
}

// PageCount returns max(1, ceil(visible/PageSize)).
func PageCount(visible int) int {
	n := (visible + PageSize - 1) / PageSize
	if n < 1 {
		return 1
	}
	return n
}

// Navigate resolves a target against the current page, clamped to
// [1, count].
func Navigate(current, count int, target PageTarget) int {
	var page int
	switch target.Kind {
	case ButtonFirst:
		page = 1
	case ButtonPrev:
		page = current - 1
	case ButtonNext:
		page = current + 1
	case ButtonLast:
		page = count
	default:
		page = target.Number
	}
	return clamp(page, 1, count)
}

// Paginate builds the pager for a visible row count and a requested page.
func Paginate(visible, current int) Pager {
	count := PageCount(visible)
	current = clamp(current, 1, count)

	p := Pager{
		Current:   current,
		Count:     count,
		Start:     (current - 1) * PageSize,
		Label:     fmt.Sprintf("Page %d of %d", current, count),
		WidthTier: widthTier(current, count),
	}
	p.End = min(p.Start+PageSize, visible)
	if p.Start > visible {
		p.Start = visible
	}

	atFirst, atLast := current == 1, current == count
	p.Buttons = append(p.Buttons,
		PageButton{Kind: ButtonFirst, Disabled: atFirst},
		PageButton{Kind: ButtonPrev, Disabled: atFirst},
	)
	for _, n := range buttonWindow(current, count) {
		p.Buttons = append(p.Buttons, PageButton{
			Kind:     ButtonNumber,
			Number:   n,
			Active:   n == current,
			Disabled: n == current,
		})
	}
	p.Buttons = append(p.Buttons,
		PageButton{Kind: ButtonNext, Disabled: atLast},
		PageButton{Kind: ButtonLast, Disabled: atLast},
	)
	return p
}

// buttonWindow returns the page numbers to render: all pages up to seven,
// otherwise a seven-wide window pinned to either end or centred on current.
func buttonWindow(current, count int) []int {
	first := 1
	switch {
	case count <= maxPageButtons:
		nums := make([]int, count)
		for i := range nums {
			nums[i] = i + 1
		}
		return nums
	case current < 5:
		first = 1
	case current > count-4:
		first = count - maxPageButtons + 1
	default:
		first = current - 3
	}
	nums := make([]int, maxPageButtons)
	for i := range nums {
		nums[i] = first + i
	}
	return nums
}

func widthTier(current, count int) int {
	switch {
	case current >= 97:
		return 3
	case current >= 7 && count >= 10:
		return 2
	default:
		return 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
