package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/housing/pkg/errors"
)

// ConstantScaler は全ての値を定数で割るスケーラー
// 例えば住宅価格 (0〜500,000) を 1,000 で割って扱いやすい範囲にする
type ConstantScaler struct {
	// Divisor は各値を割る定数
	Divisor float64
}

// NewConstantScaler は新しいConstantScalerを作成する
//
// パラメータ:
//   - divisor: 割る数（0 は不可）
//
// 戻り値:
//   - *ConstantScaler: 新しいConstantScalerインスタンス
//   - error: divisor が 0 または有限でない場合
//
// 使用例:
//
//	scaler, err := preprocessing.NewConstantScaler(1000)
//	scaler.Transform(values) // values は in-place で変換される
func NewConstantScaler(divisor float64) (*ConstantScaler, error) {
	if divisor == 0 {
		return nil, errors.Mark(
			errors.NewValidationError("divisor", "must not be zero", divisor),
			errors.ErrDivideByZero,
		)
	}
	if math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return nil, errors.NewValidationError("divisor", "must be finite", divisor)
	}
	return &ConstantScaler{Divisor: divisor}, nil
}

// Transform は values の各要素を v / Divisor で置き換える（in-place）
func (s *ConstantScaler) Transform(values []float64) {
	for i := range values {
		values[i] /= s.Divisor
	}
}

// InverseTransform は Transform を元に戻す（v * Divisor, in-place）
func (s *ConstantScaler) InverseTransform(values []float64) {
	for i := range values {
		values[i] *= s.Divisor
	}
}

// GetParams はスケーラーのパラメータを取得する
func (s *ConstantScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"divisor": s.Divisor,
	}
}
