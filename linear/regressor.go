// Package linear provides the linear-family regression estimators used by
// GeoLearn: ordinary least squares, ridge, lasso and elastic net. All
// estimators share the same Fit/Predict contract over gonum matrices and are
// constructed through the closed registry in registry.go.
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/core/model"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
	"github.com/Holisticnature/GeoLearn/preprocessing"
)

// Regressor is the common interface of all estimators in this package.
// The report builder and the orchestrator depend on this interface only.
type Regressor interface {
	model.Fitter
	model.Predictor
	model.Scorer
	model.LinearModel

	// IsFitted returns whether the model has been fitted.
	IsFitted() bool

	fmt.Stringer
}

// alphaSetter is implemented by estimators that accept a regularization
// strength. LinearRegression deliberately does not implement it.
type alphaSetter interface {
	setAlpha(alpha float64)
}

// normalizeSetter is implemented by estimators that accept the feature
// standardization flag.
type normalizeSetter interface {
	setNormalize(normalize bool)
}

// maybeStandardize applies a StandardScaler to X when normalize is set.
// It returns the (possibly transformed) matrix and the fitted scaler, or
// nil when no scaling was requested.
func maybeStandardize(X mat.Matrix, normalize bool) (mat.Matrix, *preprocessing.StandardScaler, error) {
	if !normalize {
		return X, nil, nil
	}
	scaler := preprocessing.NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}
	return Xs, scaler, nil
}

// foldScaler rewrites coefficients learned on standardized features back
// into the units of the original features, so reported coefficients never
// depend on the normalize flag:
//
//	y = Σ w_j (x_j - m_j)/s_j + b  =  Σ (w_j/s_j) x_j + (b - Σ w_j m_j/s_j)
func foldScaler(coef []float64, intercept float64, scaler *preprocessing.StandardScaler) ([]float64, float64) {
	if scaler == nil {
		return coef, intercept
	}
	folded := make([]float64, len(coef))
	for j, w := range coef {
		folded[j] = w / scaler.Scale[j]
		intercept -= w * scaler.Mean[j] / scaler.Scale[j]
	}
	return folded, intercept
}

// centerColumns centers X and y on their means and returns the centered
// copies together with the column means of X and the mean of y. Ridge and
// the coordinate-descent estimators fit on centered data so that the
// penalty never applies to the intercept.
func centerColumns(X mat.Matrix, y *mat.VecDense) (Xc *mat.Dense, yc *mat.VecDense, xMeans []float64, yMean float64) {
	r, c := X.Dims()

	xMeans = make([]float64, c)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		xMeans[j] = sum / float64(r)
	}

	for i := 0; i < r; i++ {
		yMean += y.AtVec(i)
	}
	yMean /= float64(r)

	Xc = mat.NewDense(r, c, nil)
	yc = mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yc.SetVec(i, y.AtVec(i)-yMean)
		for j := 0; j < c; j++ {
			Xc.Set(i, j, X.At(i, j)-xMeans[j])
		}
	}
	return Xc, yc, xMeans, yMean
}

// columnVector converts a n×1 matrix into a VecDense.
func columnVector(y mat.Matrix) *mat.VecDense {
	r, _ := y.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, y.At(i, 0))
	}
	return v
}

// predictLinear computes X*coef + intercept row by row.
func predictLinear(X mat.Matrix, coef []float64, intercept float64) *mat.Dense {
	r, c := X.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * coef[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions
}

// scoreLinear is the shared R² implementation behind every estimator's Score.
func scoreLinear(reg Regressor, op string, X, y mat.Matrix) (float64, error) {
	predictions, err := reg.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()

	var yMean float64
	for i := 0; i < rows; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(rows)

	var ssTot, ssRes float64
	for i := 0; i < rows; i++ {
		yi := y.At(i, 0)
		predi := predictions.At(i, 0)

		ssTot += (yi - yMean) * (yi - yMean)
		ssRes += (yi - predi) * (yi - predi)
	}

	if ssTot == 0 {
		return 0, errors.NewValueError(op, "Cannot compute score with zero variance in y_true")
	}

	return 1.0 - (ssRes / ssTot), nil
}
