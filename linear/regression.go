package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housing/core/model"
	"github.com/YuminosukeSato/housing/pkg/errors"
)

// NormalEquations は正規方程式 β = (XᵀX)⁻¹·Xᵀy で最小二乗解を求める。
// X は切片項の 1 の列と、平均を引いた特徴量の列からなる n×2 行列。
// 特徴量を中心化するので XᵀX は対角に近く、x の平均が大きくても条件数が悪化しない。
type NormalEquations struct {
	opts options
}

var _ model.LinearFitter = (*NormalEquations)(nil)

// NewNormalEquations は新しい NormalEquations を作成する
func NewNormalEquations(opts ...Option) *NormalEquations {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &NormalEquations{opts: o}
}

// Fit はモデルを訓練データで学習させる
func (ne *NormalEquations) Fit(x, y []float64) (model.LinearModel, error) {
	const op = "NormalEquations.Fit"
	start := time.Now()

	if err := checkInputs(op, x, y); err != nil {
		return model.LinearModel{}, err
	}

	c, err := center(op, x, y, ne.opts.tol)
	if err != nil {
		return model.LinearModel{}, err
	}

	// 切片項のために X に 1 の列を追加
	// X_with_intercept = [1, x − x̄]
	r := len(x)
	design := mat.NewDense(r, 2, nil)
	for i, v := range x {
		design.Set(i, 0, 1.0)
		design.Set(i, 1, v-c.meanX)
	}

	var xtx mat.Dense
	xtx.Mul(design.T(), design)

	// 逆行列を計算
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return model.LinearModel{}, errors.NewModelError(op, "singular matrix", errors.ErrSingularMatrix)
	}

	// X^T * y を計算
	yVec := mat.NewVecDense(r, append([]float64(nil), y...))
	var xty mat.VecDense
	xty.MulVec(design.T(), yVec)

	// β = (X^T * X)^(-1) * X^T * y
	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// 中心化した切片を元の座標に戻す
	slope := beta.AtVec(1)
	intercept := beta.AtVec(0) - slope*c.meanX
	if err := errors.CheckNumericalStability(op+" coefficients", []float64{slope, intercept}); err != nil {
		return model.LinearModel{}, err
	}

	m := model.NewLinearModel(slope, intercept)
	logFit(ne.opts.log(), "NormalEquations", m, r, start)
	return m, nil
}

// Fitter names accepted by New.
const (
	FitterClosedForm      = "closed-form"
	FitterNormalEquations = "normal-equations"
)

// New returns the fitter registered under name.
func New(name string, opts ...Option) (model.LinearFitter, error) {
	switch name {
	case FitterClosedForm, "":
		return NewClosedForm(opts...), nil
	case FitterNormalEquations:
		return NewNormalEquations(opts...), nil
	default:
		return nil, errors.NewValidationError("fitter", "unknown fitter", name)
	}
}
