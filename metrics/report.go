package metrics

import (
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/housing/core/model"
	"github.com/YuminosukeSato/housing/pkg/errors"
)

// Report は学習結果の診断情報
type Report struct {
	Slope      float64
	Intercept  float64
	N          int
	LabelRange float64
	RMSE       float64
	// RMSEPercent は RMSE / LabelRange * 100。LabelRange が0の場合は NaN
	RMSEPercent float64
	MAE         float64
	// R2 はラベルの分散が0の場合は NaN
	R2 float64
}

// Evaluate は予測値とラベルから Report を作成する。
// 合否の閾値は設けない。
func Evaluate(m model.LinearModel, labels, preds []float64) (Report, error) {
	yTrue, yPred := NewVector(labels), NewVector(preds)

	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return Report{}, errors.Wrap(err, "Evaluate")
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Report{}, errors.Wrap(err, "Evaluate")
	}
	labelRange, err := LabelRange(labels)
	if err != nil {
		return Report{}, errors.Wrap(err, "Evaluate")
	}

	r := Report{
		Slope:       m.Slope(),
		Intercept:   m.Intercept(),
		N:           len(labels),
		LabelRange:  labelRange,
		RMSE:        rmse,
		RMSEPercent: math.NaN(),
		MAE:         mae,
		R2:          math.NaN(),
	}
	if labelRange != 0 {
		r.RMSEPercent = rmse / labelRange * 100
	}

	r2, err := R2Score(yTrue, yPred)
	switch {
	case err == nil:
		r.R2 = r2
	case errors.Is(err, errors.ErrZeroVariance):
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "labels with no variance", math.NaN()))
	default:
		return Report{}, errors.Wrap(err, "Evaluate")
	}
	return r, nil
}

// Write は診断情報を出力する
func (r Report) Write(w io.Writer) error {
	percent := "n/a"
	if !math.IsNaN(r.RMSEPercent) {
		percent = fmt.Sprintf("%.2f%%", r.RMSEPercent)
	}

	lines := []string{
		fmt.Sprintf("Slope:          %v", r.Slope),
		fmt.Sprintf("Intercept:      %v", r.Intercept),
		fmt.Sprintf("Label range:    %v", r.LabelRange),
		fmt.Sprintf("RMSE:           %v %s", r.RMSE, percent),
		fmt.Sprintf("MAE:            %v", r.MAE),
	}
	if !math.IsNaN(r.R2) {
		lines = append(lines, fmt.Sprintf("R²:             %v", r.R2))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("slope", r.Slope).
		Float64("intercept", r.Intercept).
		Int("n", r.N).
		Float64("label_range", r.LabelRange).
		Float64("rmse", r.RMSE).
		Float64("rmse_percent", r.RMSEPercent).
		Float64("mae", r.MAE).
		Float64("r2", r.R2)
}
