// Package model defines the fitted single-feature linear model and the
// interfaces the fitters implement.
package model

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LinearFitter は一変数の線形モデルを学習するインターフェース
type LinearFitter interface {
	// Fit は x（特徴量）と y（ラベル）から傾きと切片を推定する
	Fit(x, y []float64) (LinearModel, error)
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は一つの特徴量値に対する予測を返す
	Predict(x float64) float64
	// Transform は各特徴量値に対する予測を返す
	Transform(xs []float64) []float64
}

// LinearModel は y = slope·x + intercept で表される学習済みモデル。
// 値型であり、生成後に変更されない。
type LinearModel struct {
	slope     float64
	intercept float64
}

var _ Predictor = LinearModel{}

// NewLinearModel は傾きと切片からモデルを作成する
func NewLinearModel(slope, intercept float64) LinearModel {
	return LinearModel{slope: slope, intercept: intercept}
}

// Slope は学習された傾きを返す
func (m LinearModel) Slope() float64 { return m.slope }

// Intercept は学習された切片を返す
func (m LinearModel) Intercept() float64 { return m.intercept }

// Predict は slope·x + intercept を返す
func (m LinearModel) Predict(x float64) float64 {
	return m.slope*x + m.intercept
}

// Transform は xs の各要素に Predict を適用した新しいスライスを返す
func (m LinearModel) Transform(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.Predict(x)
	}
	return out
}

func (m LinearModel) String() string {
	return fmt.Sprintf("y = %g·x + %g", m.slope, m.intercept)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m LinearModel) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("slope", m.slope).Float64("intercept", m.intercept)
}
