// Package visualize renders predictions and labels as a two-series scatterplot.
package visualize

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/housing/pkg/errors"
)

// Groups used by BuildScatter.
const (
	GroupPredictions = 1
	GroupLabels      = 2
)

var groupNames = map[int]string{
	GroupPredictions: "predictions",
	GroupLabels:      "labels",
}

// GroupName returns the legend entry for group g.
func GroupName(g int) string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return fmt.Sprintf("group %d", g)
}

// Scatter is a set of points on a shared x-axis. Groups[i] selects the
// series point i belongs to.
type Scatter struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	Groups []int
}

// Len returns the number of points.
func (s Scatter) Len() int { return len(s.X) }

// Validate checks that X, Y and Groups have the same non-zero length.
func (s Scatter) Validate() error {
	if len(s.X) == 0 {
		return errors.NewValueError("Scatter", "no points")
	}
	if len(s.Y) != len(s.X) {
		return errors.NewDimensionError("Scatter", len(s.X), len(s.Y), 0)
	}
	if len(s.Groups) != len(s.X) {
		return errors.NewDimensionError("Scatter", len(s.X), len(s.Groups), 0)
	}
	return nil
}

// BuildScatter plots each feature value twice: once against its prediction
// (group 1) and once against its label (group 2).
//
//	X      = feature ++ feature
//	Y      = preds ++ labels
//	Groups = 1×n ++ 2×n
func BuildScatter(title, xLabel, yLabel string, feature, preds, labels []float64) (Scatter, error) {
	n := len(feature)
	if n == 0 {
		return Scatter{}, errors.NewValueError("BuildScatter", "empty feature")
	}
	if len(preds) != n {
		return Scatter{}, errors.NewDimensionError("BuildScatter", n, len(preds), 0)
	}
	if len(labels) != n {
		return Scatter{}, errors.NewDimensionError("BuildScatter", n, len(labels), 0)
	}

	x := make([]float64, 0, 2*n)
	x = append(append(x, feature...), feature...)
	y := make([]float64, 0, 2*n)
	y = append(append(y, preds...), labels...)

	groups := append(
		lo.Times(n, func(int) int { return GroupPredictions }),
		lo.Times(n, func(int) int { return GroupLabels })...,
	)

	return Scatter{
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		X:      x,
		Y:      y,
		Groups: groups,
	}, nil
}
