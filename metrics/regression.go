package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// MSEMatrix は行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	// 入力検証
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}

	if rTrue != rPred || cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}

	if cTrue != 1 {
		return 0, errors.NewValueError("MSEMatrix", "must be a column vector (n×1 matrix)")
	}

	// VecDenseに変換してMSEを計算
	yTrueVec := mat.NewVecDense(rTrue, nil)
	yPredVec := mat.NewVecDense(rPred, nil)

	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return MSE(yTrueVec, yPredVec)
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
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += math.Abs(diff)
	}

	return sum / float64(n), nil
}

// MedianAE は絶対誤差の中央値（Median Absolute Error）を計算する
// 外れ値に対してMAEより頑健な指標
func MedianAE(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MedianAE", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MedianAE", n, yPred.Len(), 0)
	}

	absErrors := make([]float64, n)
	for i := 0; i < n; i++ {
		absErrors[i] = math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	sort.Float64s(absErrors)

	// 偶数個の場合は中央2値の平均
	mid := n / 2
	if n%2 == 0 {
		return (absErrors[mid-1] + absErrors[mid]) / 2, nil
	}
	return absErrors[mid], nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	// yTrueの平均を計算
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

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
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAPE", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAPE", n, yPred.Len(), 0)
	}

	// MAPE = (100/n) * Σ|yTrue - yPred|/|yTrue|
	var sum float64
	validCount := 0

	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		if yTrueVal != 0 { // ゼロ除算を避ける
			diff := math.Abs(yTrueVal - yPred.AtVec(i))
			sum += diff / math.Abs(yTrueVal)
			validCount++
		}
	}

	if validCount == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}

	return (sum / float64(validCount)) * 100, nil
}

// FRegression は各独立変数の単変量F検定のFスコアとp値を計算する
//
// scikit-learnのfeature_selection.f_regressionと同じ定義:
// 各列について中心化した相関係数rから F = r²/(1-r²) * (n-2) を計算し、
// p値は自由度(1, n-2)のF分布の上側確率
//
// パラメータ:
//   - X: 独立変数行列 (n_samples × n_features)
//   - y: 従属変数ベクトル (n_samples)
//
// 戻り値:
//   - []float64: 各特徴量のFスコア
//   - []float64: 各特徴量のp値
//   - error: 行数の不一致、サンプル数不足（n < 3）の場合
func FRegression(X mat.Matrix, y *mat.VecDense) ([]float64, []float64, error) {
	r, c := X.Dims()
	n := y.Len()
	if r == 0 || c == 0 {
		return nil, nil, errors.NewValueError("FRegression", "empty matrix")
	}
	if r != n {
		return nil, nil, errors.NewDimensionError("FRegression", n, r, 0)
	}
	// 自由度 n-2 が必要
	if n < 3 {
		return nil, nil, errors.NewValueError("FRegression", "at least 3 samples are required")
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += y.AtVec(i)
	}
	yMean /= float64(n)

	var yVar float64
	for i := 0; i < n; i++ {
		d := y.AtVec(i) - yMean
		yVar += d * d
	}
	if yVar == 0 {
		return nil, nil, errors.Newf("FRegression: no variance in y")
	}

	dof := float64(n - 2)
	fDist := distuv.F{D1: 1, D2: dof}

	fScores := make([]float64, c)
	pValues := make([]float64, c)
	for j := 0; j < c; j++ {
		var xMean float64
		for i := 0; i < r; i++ {
			xMean += X.At(i, j)
		}
		xMean /= float64(r)

		var xVar, cov float64
		for i := 0; i < r; i++ {
			dx := X.At(i, j) - xMean
			dy := y.AtVec(i) - yMean
			xVar += dx * dx
			cov += dx * dy
		}

		// 分散ゼロの列は相関ゼロ（F=0, p=1）として扱う
		if xVar == 0 {
			fScores[j] = 0
			pValues[j] = 1
			continue
		}

		r2 := (cov * cov) / (xVar * yVar)
		if r2 >= 1 {
			// 完全相関: Fは無限大に発散するためp値は0
			fScores[j] = math.Inf(1)
			pValues[j] = 0
			continue
		}

		f := r2 / (1 - r2) * dof
		fScores[j] = f
		pValues[j] = fDist.Survival(f)
	}

	return fScores, pValues, nil
}
