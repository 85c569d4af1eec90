package linear

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/core/model"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// Lasso fits a linear model with an L1 penalty, which drives weak
// coefficients to exactly zero. Fitting uses cyclic coordinate descent
// on mean-centered data, the same algorithm scikit-learn uses.
type Lasso struct {
	state *model.StateManager

	alpha     float64
	maxIter   int
	tol       float64
	normalize bool

	coef_      []float64
	intercept_ float64
	nIter_     int

	nFeatures_ int
	nSamples_  int
}

// NewLasso creates a Lasso model with the defaults alpha=1.0,
// max_iter=1000 and tol=1e-4.
func NewLasso(opts ...LassoOption) *Lasso {
	l := &Lasso{
		state:   model.NewStateManager(),
		alpha:   1.0,
		maxIter: 1000,
		tol:     1e-4,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lasso) setAlpha(alpha float64)      { l.alpha = alpha }
func (l *Lasso) setNormalize(normalize bool) { l.normalize = normalize }

// Alpha returns the regularization strength.
func (l *Lasso) Alpha() float64 { return l.alpha }

// NIter returns the number of coordinate descent passes used by the
// last Fit call.
func (l *Lasso) NIter() int { return l.nIter_ }

// Fit learns coefficients and intercept from the training data.
// A ConvergenceWarning is emitted when the solver exhausts max_iter
// without reaching the tolerance.
func (l *Lasso) Fit(X, y mat.Matrix) error {
	coef, intercept, nIter, converged, err := fitCoordinateDescent(
		"Lasso.Fit", X, y, l.alpha, 1.0, l.maxIter, l.tol, l.normalize)
	if err != nil {
		return err
	}
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("Lasso", l.maxIter,
			"coordinate descent did not converge; consider increasing max_iter or alpha"))
	}

	rows, cols := X.Dims()
	l.coef_ = coef
	l.intercept_ = intercept
	l.nIter_ = nIter
	l.nFeatures_ = cols
	l.nSamples_ = rows
	l.state.SetDimensions(cols, rows)
	l.state.SetFitted()
	return nil
}

// Predict returns an n×1 matrix of predictions for X.
func (l *Lasso) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !l.state.IsFitted() {
		return nil, errors.NewNotFittedError("Lasso", "Predict")
	}

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError("Lasso.Predict", "empty data", errors.ErrEmptyData)
	}
	if cols != l.nFeatures_ {
		return nil, errors.NewDimensionError("Lasso.Predict", l.nFeatures_, cols, 1)
	}

	return predictLinear(X, l.coef_, l.intercept_), nil
}

// Score returns the coefficient of determination R² on the given data.
func (l *Lasso) Score(X, y mat.Matrix) (float64, error) {
	if !l.state.IsFitted() {
		return 0, errors.NewNotFittedError("Lasso", "Score")
	}
	return scoreLinear(l, "Lasso.Score", X, y)
}

// Coef returns the learned coefficients in input feature order.
func (l *Lasso) Coef() []float64 {
	out := make([]float64, len(l.coef_))
	copy(out, l.coef_)
	return out
}

// Intercept returns the learned intercept.
func (l *Lasso) Intercept() float64 { return l.intercept_ }

// IsFitted returns whether the model has been fitted.
func (l *Lasso) IsFitted() bool { return l.state.IsFitted() }

// String returns a scikit-learn style description of the model.
func (l *Lasso) String() string {
	return fmt.Sprintf("Lasso(alpha=%g, max_iter=%d, tol=%g, normalize=%t)",
		l.alpha, l.maxIter, l.tol, l.normalize)
}

type lassoState struct {
	Alpha     float64
	MaxIter   int
	Tol       float64
	Normalize bool
	Coef      []float64
	Intercept float64
	NIter     int
	NFeatures int
	NSamples  int
	Fitted    bool
}

// GobEncode implements gob.GobEncoder.
func (l *Lasso) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := lassoState{
		Alpha:     l.alpha,
		MaxIter:   l.maxIter,
		Tol:       l.tol,
		Normalize: l.normalize,
		Coef:      l.coef_,
		Intercept: l.intercept_,
		NIter:     l.nIter_,
		NFeatures: l.nFeatures_,
		NSamples:  l.nSamples_,
		Fitted:    l.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, errors.Wrap(err, "geolearn: failed to encode Lasso")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (l *Lasso) GobDecode(data []byte) error {
	var state lassoState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Wrap(err, "geolearn: failed to decode Lasso")
	}
	l.state = model.NewStateManager()
	l.alpha = state.Alpha
	l.maxIter = state.MaxIter
	l.tol = state.Tol
	l.normalize = state.Normalize
	l.coef_ = state.Coef
	l.intercept_ = state.Intercept
	l.nIter_ = state.NIter
	l.nFeatures_ = state.NFeatures
	l.nSamples_ = state.NSamples
	l.state.SetDimensions(state.NFeatures, state.NSamples)
	if state.Fitted {
		l.state.SetFitted()
	}
	return nil
}

// softThreshold is the proximal operator of the L1 penalty.
func softThreshold(value, threshold float64) float64 {
	switch {
	case value > threshold:
		return value - threshold
	case value < -threshold:
		return value + threshold
	default:
		return 0
	}
}

// fitCoordinateDescent solves the elastic net objective
//
//	(1/2n)‖y − Xw − b‖² + α·l1Ratio‖w‖₁ + (α(1−l1Ratio)/2)‖w‖²
//
// by cyclic coordinate descent on mean-centered data. Lasso uses
// l1Ratio=1. Returned coefficients are folded back into the units of
// the original features when normalize is set.
func fitCoordinateDescent(op string, X, y mat.Matrix, alpha, l1Ratio float64, maxIter int, tol float64, normalize bool) (coef []float64, intercept float64, nIter int, converged bool, err error) {
	rows, cols := X.Dims()
	ry, cy := y.Dims()

	if rows == 0 || cols == 0 {
		return nil, 0, 0, false, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != rows {
		return nil, 0, 0, false, errors.NewDimensionError(op, rows, ry, 0)
	}
	if cy != 1 {
		return nil, 0, 0, false, errors.NewValueError(op, "y must be a column vector")
	}
	if alpha < 0 {
		return nil, 0, 0, false, errors.NewValueError(op, "alpha must be non-negative")
	}
	if l1Ratio < 0 || l1Ratio > 1 {
		return nil, 0, 0, false, errors.NewValueError(op, "l1_ratio must be in [0, 1]")
	}

	XWork, scaler, err := maybeStandardize(X, normalize)
	if err != nil {
		return nil, 0, 0, false, err
	}

	yVec := columnVector(y)
	Xc, yc, xMeans, yMean := centerColumns(XWork, yVec)

	n := float64(rows)
	l1Penalty := n * alpha * l1Ratio
	l2Penalty := n * alpha * (1 - l1Ratio)

	// Per-column sum of squares of the centered features.
	colNorms := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			v := Xc.At(i, j)
			sum += v * v
		}
		colNorms[j] = sum
	}

	w := make([]float64, cols)
	residual := make([]float64, rows)
	for i := 0; i < rows; i++ {
		residual[i] = yc.AtVec(i)
	}

	for nIter = 0; nIter < maxIter; nIter++ {
		var maxDelta float64

		for j := 0; j < cols; j++ {
			if colNorms[j] == 0 {
				continue
			}

			// rho = x_jᵀ(residual + x_j w_j), the partial fit of
			// column j with its own contribution restored.
			rho := colNorms[j] * w[j]
			for i := 0; i < rows; i++ {
				rho += Xc.At(i, j) * residual[i]
			}

			newW := softThreshold(rho, l1Penalty) / (colNorms[j] + l2Penalty)
			if delta := newW - w[j]; delta != 0 {
				for i := 0; i < rows; i++ {
					residual[i] -= Xc.At(i, j) * delta
				}
				if ad := math.Abs(delta); ad > maxDelta {
					maxDelta = ad
				}
				w[j] = newW
			}
		}

		if maxDelta < tol {
			nIter++
			converged = true
			break
		}
	}

	if err := errors.CheckNumericalStability(op, w, nIter); err != nil {
		return nil, 0, 0, false, err
	}

	intercept = yMean
	for j := 0; j < cols; j++ {
		intercept -= w[j] * xMeans[j]
	}

	coef, intercept = foldScaler(w, intercept, scaler)
	return coef, intercept, nIter, converged, nil
}
