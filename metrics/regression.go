// Package metrics evaluates regression predictions against labels.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housing/pkg/errors"
)

// NewVector は スライスをコピーして VecDense を作成する。空のスライスは長さ0のベクトルになる。
func NewVector(values []float64) *mat.VecDense {
	if len(values) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(values), append([]float64(nil), values...))
}

func checkVectors(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する。
// yTrue の分散が0の場合は ErrZeroVariance を返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := mat.Sum(yTrue) / float64(n)

	// 全変動（TSS）と残差変動（RSS）を計算
	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		return 0, errors.Mark(
			errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)"),
			errors.ErrZeroVariance,
		)
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// LabelRange は |max(y) − min(y)| を返す
func LabelRange(y []float64) (float64, error) {
	if len(y) == 0 {
		return 0, errors.NewValueError("LabelRange", "empty labels")
	}
	return math.Abs(floats.Max(y) - floats.Min(y)), nil
}
