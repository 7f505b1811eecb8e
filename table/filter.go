package table

import (
	"math"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/housing/pkg/errors"
)

// Row is one visible row seen by a RowPredicate.
type Row struct {
	key   int
	cells *cellCache
}

// Key returns the row key.
func (r Row) Key() int { return r.key }

// Float returns the numeric cell in column name. Missing or non-numeric
// columns read as NaN, which fails every ordered comparison.
func (r Row) Float(name string) float64 {
	values, ok := r.cells.column(name)
	if !ok {
		return math.NaN()
	}
	return values[r.key]
}

// RowPredicate decides whether a row stays visible.
type RowPredicate func(Row) bool

// Less keeps rows whose value in column name is strictly below limit.
func Less(name string, limit float64) RowPredicate {
	return func(r Row) bool {
		return r.Float(name) < limit
	}
}

// cellCache materializes each column once per Filter call.
type cellCache struct {
	t    *Table
	cols map[string][]float64
}

func (c *cellCache) column(name string) ([]float64, bool) {
	if values, ok := c.cols[name]; ok {
		return values, values != nil
	}
	typ, err := c.t.Type(name)
	if err != nil || !isNumeric(typ) {
		c.cols[name] = nil
		return nil, false
	}
	values := c.t.df.Col(name).Float()
	c.cols[name] = values
	return values, true
}

// Filter returns a view keeping the visible rows for which pred holds. The
// receiver is not modified.
func (t *Table) Filter(pred RowPredicate) *Table {
	cells := &cellCache{t: t, cols: make(map[string][]float64)}
	kept := make([]int, 0, len(t.rows))
	for _, r := range t.rows {
		if pred(Row{key: r, cells: cells}) {
			kept = append(kept, r)
		}
	}
	return &Table{df: t.df, rows: kept}
}

// Where returns a view keeping the visible rows whose value in column name
// satisfies comparator against comparando. Int columns are compared as
// floats so a fractional comparando keeps its value, e.g.
//
//	t.Where("median_house_value", series.Less, 500000)
func (t *Table) Where(name string, comparator series.Comparator, comparando interface{}) (*Table, error) {
	if t.index(name) < 0 {
		return nil, errors.NewColumnError("Table.Where", name, "not found")
	}
	col := t.df.Col(name)
	if col.Type() == series.Int {
		// gota は comparando を列の型に変換するので、2.5 が 2 に切り捨てられる
		col = series.New(col.Float(), series.Float, name)
	}
	mask := col.Compare(comparator, comparando)
	if mask.Err != nil {
		return nil, errors.Wrapf(mask.Err, "Table.Where %s %s", name, comparator)
	}
	keep, err := mask.Bool()
	if err != nil {
		return nil, errors.Wrapf(err, "Table.Where %s %s", name, comparator)
	}
	kept := make([]int, 0, len(t.rows))
	for _, r := range t.rows {
		if keep[r] {
			kept = append(kept, r)
		}
	}
	return &Table{df: t.df, rows: kept}, nil
}
