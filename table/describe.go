package table

import (
	"math"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes one column over the visible rows. Min, Max, Mean
// and StdDev are NaN for non-numeric columns and for columns without any
// non-missing value.
type ColumnSummary struct {
	Name   string
	Type   series.Type
	Count  int // non-missing values
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Describe summarizes every column of t in file order.
func (t *Table) Describe() []ColumnSummary {
	names := t.df.Names()
	types := t.df.Types()
	out := make([]ColumnSummary, len(names))
	for i, name := range names {
		s := ColumnSummary{
			Name:   name,
			Type:   types[i],
			Min:    math.NaN(),
			Max:    math.NaN(),
			Mean:   math.NaN(),
			StdDev: math.NaN(),
		}
		if !isNumeric(types[i]) {
			col := t.df.Col(name)
			for _, r := range t.rows {
				if !col.Elem(r).IsNA() {
					s.Count++
				}
			}
			out[i] = s
			continue
		}
		all := t.df.Col(name).Float()
		present := make([]float64, 0, len(t.rows))
		for _, r := range t.rows {
			if !math.IsNaN(all[r]) {
				present = append(present, all[r])
			}
		}
		s.Count = len(present)
		if len(present) > 0 {
			s.Min = floats.Min(present)
			s.Max = floats.Max(present)
			s.Mean, s.StdDev = stat.MeanStdDev(present, nil)
		}
		out[i] = s
	}
	return out
}
