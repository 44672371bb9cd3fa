// Package grid implements the filter, sort and pagination state engine behind
// the spreadsheet-style table widget.
//
// A Widget owns an immutable Dataset plus the mutable selection state of every
// column. Each command mutates that state and then recomputes, in order, the
// option search flags, the cross-column approved values, the checkbox
// hierarchy, row visibility and the pager. Hosts read the result through View
// and never touch the state directly.
package grid

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects how a column's distinct values are indexed.
type Kind string

// Column kinds.
const (
	KindCategorical Kind = "categorical"
	KindDate        Kind = "date"
)

// ColumnDef describes one table column.
type ColumnDef struct {
	// Name is the header label.
	Name string `koanf:"name" json:"name" yaml:"name"`
	// Field is the record key the cell is read from.
	Field string `koanf:"field" json:"field" yaml:"field"`
	Kind  Kind   `koanf:"kind" json:"kind" yaml:"kind"`
	// Prefix is prepended to non-empty numeric values, e.g. "$" for prices.
	Prefix string `koanf:"prefix" json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// DefaultColumns is the schema of the placeholder project dataset.
func DefaultColumns() []ColumnDef {
	return []ColumnDef{
		{Name: "Project Name", Field: "Project_Name", Kind: KindCategorical},
		{Name: "Country", Field: "Country", Kind: KindCategorical},
		{Name: "Price", Field: "Price", Kind: KindCategorical, Prefix: "$"},
		{Name: "Date", Field: "Date", Kind: KindDate},
	}
}

// Record is one decoded dataset entry keyed by field name.
type Record map[string]any

// Row is a formatted dataset row. ID is its position in the original dataset.
type Row struct {
	ID    int
	Cells []string

	// text is the folded concatenation of Cells used by the global search.
	text string
}

// Dataset is the immutable input of a widget.
type Dataset struct {
	Columns []ColumnDef
	Rows    []Row
}

// NewDataset formats records into display rows.
func NewDataset(defs []ColumnDef, records []Record) *Dataset {
	ds := &Dataset{
		Columns: append([]ColumnDef(nil), defs...),
		Rows:    make([]Row, len(records)),
	}
	for i, rec := range records {
		cells := make([]string, len(defs))
		for j, def := range defs {
			cells[j] = FormatValue(rec[def.Field], def.Prefix)
		}
		ds.Rows[i] = newRow(i, cells)
	}
	return ds
}

// NewDatasetFromCells builds a dataset from already formatted cells.
func NewDatasetFromCells(defs []ColumnDef, cells [][]string) *Dataset {
	ds := &Dataset{
		Columns: append([]ColumnDef(nil), defs...),
		Rows:    make([]Row, len(cells)),
	}
	for i, c := range cells {
		row := make([]string, len(defs))
		copy(row, c)
		ds.Rows[i] = newRow(i, row)
	}
	return ds
}

func newRow(id int, cells []string) Row {
	return Row{ID: id, Cells: cells, text: fold(strings.Join(cells, "\t"))}
}

// FormatValue renders a decoded field as display text. Numbers go through
// decimal so 10 renders as "10" and 10.50 as "10.5"; the prefix is only
// applied to numbers and numeric strings. nil renders blank.
func FormatValue(v any, prefix string) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if prefix == "" || val == "" {
			return val
		}
		d, err := decimal.NewFromString(val)
		if err != nil {
			return val
		}
		s = d.String()
	case time.Time:
		return val.Format(dateLayout)
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			s = val.String()
		} else {
			s = d.String()
		}
	case float64:
		s = decimal.NewFromFloat(val).String()
	case float32:
		s = decimal.NewFromFloat32(val).String()
	case int:
		s = strconv.Itoa(val)
	case int32:
		s = strconv.FormatInt(int64(val), 10)
	case int64:
		s = strconv.FormatInt(val, 10)
	case decimal.Decimal:
		s = val.String()
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
	return prefix + s
}
