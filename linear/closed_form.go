// Package linear fits single-feature ordinary least squares models.
package linear

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/housing/core/model"
	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
)

// ClosedForm は和の公式で最小二乗解を求める
//
//	slope     = (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²)
//	intercept = (Σy − slope·Σx) / n
//
// 桁落ちを避けるため、平均を引いた偏差の積和 Sxy / Sxx で計算する。
type ClosedForm struct {
	opts options
}

var _ model.LinearFitter = (*ClosedForm)(nil)

// NewClosedForm は新しい ClosedForm を作成する
func NewClosedForm(opts ...Option) *ClosedForm {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ClosedForm{opts: o}
}

// Fit はモデルを訓練データで学習させる
func (c *ClosedForm) Fit(x, y []float64) (model.LinearModel, error) {
	const op = "ClosedForm.Fit"
	start := time.Now()

	if err := checkInputs(op, x, y); err != nil {
		return model.LinearModel{}, err
	}

	sums, err := center(op, x, y, c.opts.tol)
	if err != nil {
		return model.LinearModel{}, err
	}

	slope := sums.sxy / sums.sxx
	intercept := sums.meanY - slope*sums.meanX

	if err := errors.CheckScalar(op+" slope", slope); err != nil {
		return model.LinearModel{}, err
	}
	if err := errors.CheckScalar(op+" intercept", intercept); err != nil {
		return model.LinearModel{}, err
	}

	m := model.NewLinearModel(slope, intercept)
	logFit(c.opts.log(), "ClosedForm", m, len(x), start)
	return m, nil
}

// checkInputs は両方の学習器に共通する前提条件を検証する
func checkInputs(op string, x, y []float64) error {
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y), 0)
	}
	if len(x) < 2 {
		return errors.NewValueError(op, fmt.Sprintf("at least 2 samples are required, got %d", len(x)))
	}
	if err := errors.CheckNumericalStability(op+" x", x); err != nil {
		return err
	}
	return errors.CheckNumericalStability(op+" y", y)
}

// centered は平均と偏差の積和
type centered struct {
	meanX, meanY float64
	sxx, sxy     float64
}

// center は x, y の平均と Sxx = Σ(x−x̄)², Sxy = Σ(x−x̄)(y−ȳ) を二段階で求める。
// x がすべて等しい場合、または標準偏差が tol·|x̄| 以下の場合は
// ErrZeroVariance を返す。tol が負なら相対判定は行わない。
func center(op string, x, y []float64, tol float64) (centered, error) {
	if floats.Min(x) == floats.Max(x) {
		return centered{}, errors.NewModelError(op, "feature has zero variance", errors.ErrZeroVariance)
	}

	c := centered{meanX: stat.Mean(x, nil), meanY: stat.Mean(y, nil)}
	for i, v := range x {
		dx := v - c.meanX
		c.sxx += dx * dx
		c.sxy += dx * (y[i] - c.meanY)
	}

	n := float64(len(x))
	limit := tol * c.meanX
	if c.sxx == 0 || (tol >= 0 && c.sxx <= n*limit*limit) {
		return centered{}, errors.NewModelError(op, "feature has zero variance", errors.ErrZeroVariance)
	}
	return c, nil
}

func logFit(logger log.Logger, name string, m model.LinearModel, n int, start time.Time) {
	logger.Debug("fit finished",
		log.ModelNameKey, name,
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.SlopeKey, m.Slope(),
		log.InterceptKey, m.Intercept(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
}
