// Package table holds the in-memory labeled table the analysis runs on.
//
// A Table is backed by a gota DataFrame and exposes a visible set of row
// keys. Row keys are the 0-based positions of the data rows in the file that
// was loaded, so they stay stable across filters. Filtering produces a new
// Table that shares storage with its parent; scaling a column rewrites that
// column in the Table it is called on only.
package table

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/preprocessing"
)

// Table is an ordered collection of named columns with a shared row-key set.
type Table struct {
	df   dataframe.DataFrame
	rows []int
}

func newTable(df dataframe.DataFrame) *Table {
	rows := make([]int, df.Nrow())
	for i := range rows {
		rows[i] = i
	}
	return &Table{df: df, rows: rows}
}

// FromDataFrame wraps an already loaded DataFrame. All of its rows are visible.
func FromDataFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "table.FromDataFrame")
	}
	return newTable(df), nil
}

// Nrow returns the number of visible rows.
func (t *Table) Nrow() int { return len(t.rows) }

// Ncol returns the number of columns.
func (t *Table) Ncol() int { return t.df.Ncol() }

// Names returns the column names in file order.
func (t *Table) Names() []string { return t.df.Names() }

// Keys returns a copy of the visible row keys in ascending order.
func (t *Table) Keys() []int {
	return append([]int(nil), t.rows...)
}

// Type returns the inferred type of a column.
func (t *Table) Type(name string) (series.Type, error) {
	idx := t.index(name)
	if idx < 0 {
		return "", errors.NewColumnError("Table.Type", name, "not found")
	}
	return t.df.Types()[idx], nil
}

func (t *Table) index(name string) int {
	for i, n := range t.df.Names() {
		if n == name {
			return i
		}
	}
	return -1
}

func isNumeric(typ series.Type) bool {
	return typ == series.Float || typ == series.Int
}

// numeric returns all values of a numeric column, hidden rows included.
func (t *Table) numeric(op, name string) ([]float64, error) {
	typ, err := t.Type(name)
	if err != nil {
		return nil, errors.NewColumnError(op, name, "not found")
	}
	if !isNumeric(typ) {
		return nil, errors.NewColumnError(op, name, fmt.Sprintf("is not numeric (type %s)", typ))
	}
	if typ == series.Int {
		errors.Warn(errors.NewDataConversionWarning(name, string(series.Int), string(series.Float), "numeric column read as float64"))
	}
	return t.df.Col(name).Float(), nil
}

// Require checks that every named column exists and is numeric.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		typ, err := t.Type(name)
		if err != nil {
			return errors.NewColumnError("Table.Require", name, "not found")
		}
		if !isNumeric(typ) {
			return errors.NewColumnError("Table.Require", name, fmt.Sprintf("is not numeric (type %s)", typ))
		}
	}
	return nil
}

// Column returns the visible values of a numeric column.
func (t *Table) Column(name string) (*Series, error) {
	all, err := t.numeric("Table.Column", name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(t.rows))
	for i, r := range t.rows {
		values[i] = all[r]
	}
	return &Series{name: name, keys: t.Keys(), values: values}, nil
}

// Scale divides every value of a numeric column by divisor. Other columns,
// and tables this one was filtered from, are unaffected. A zero divisor
// fails with ErrDivideByZero.
func (t *Table) Scale(name string, divisor float64) error {
	scaler, err := preprocessing.NewConstantScaler(divisor)
	if err != nil {
		return errors.Wrapf(err, "Table.Scale %s", name)
	}
	values, err := t.numeric("Table.Scale", name)
	if err != nil {
		return err
	}
	scaler.Transform(values)
	df := t.df.Mutate(series.New(values, series.Float, name))
	if df.Err != nil {
		return errors.Wrapf(df.Err, "Table.Scale %s", name)
	}
	t.df = df
	return nil
}

// Series is one named numeric column aligned to a Table's visible row keys.
type Series struct {
	name   string
	keys   []int
	values []float64
}

// NewSeries builds a Series. keys may be nil, in which case 0..n-1 is used.
func NewSeries(name string, keys []int, values []float64) (*Series, error) {
	if keys == nil {
		keys = make([]int, len(values))
		for i := range keys {
			keys[i] = i
		}
	}
	if len(keys) != len(values) {
		return nil, errors.NewDimensionError("NewSeries", len(keys), len(values), 0)
	}
	return &Series{name: name, keys: keys, values: values}, nil
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Len returns the number of values.
func (s *Series) Len() int { return len(s.values) }

// Keys returns the row keys the values are aligned to.
func (s *Series) Keys() []int { return append([]int(nil), s.keys...) }

// Values returns a copy of the values.
func (s *Series) Values() []float64 { return append([]float64(nil), s.values...) }

// At returns the i-th value.
func (s *Series) At(i int) float64 { return s.values[i] }

// Div divides every value by divisor in place.
func (s *Series) Div(divisor float64) error {
	scaler, err := preprocessing.NewConstantScaler(divisor)
	if err != nil {
		return errors.Wrapf(err, "Series.Div %s", s.name)
	}
	scaler.Transform(s.values)
	return nil
}

// HasNaN reports whether any value is NaN (a missing cell).
func (s *Series) HasNaN() bool {
	for _, v := range s.values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
