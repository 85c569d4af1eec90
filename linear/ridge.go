package linear

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/core/model"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// Ridge fits a linear model with an L2 penalty on the coefficients.
// The solution is closed form: on mean-centered data it solves
//
//	(XcᵀXc + αI) w = Xcᵀ yc
//
// and recovers the intercept from the means, so the penalty never
// applies to the intercept.
type Ridge struct {
	state *model.StateManager

	alpha     float64
	normalize bool

	coef_      []float64
	intercept_ float64

	nFeatures_ int
	nSamples_  int
}

// NewRidge creates a Ridge model with the default regularization
// strength alpha=1.0.
func NewRidge(opts ...RidgeOption) *Ridge {
	r := &Ridge{
		state: model.NewStateManager(),
		alpha: 1.0,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Ridge) setAlpha(alpha float64)      { r.alpha = alpha }
func (r *Ridge) setNormalize(normalize bool) { r.normalize = normalize }

// Alpha returns the regularization strength.
func (r *Ridge) Alpha() float64 { return r.alpha }

// Fit learns coefficients and intercept from the training data.
func (r *Ridge) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	ry, cy := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("Ridge.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != rows {
		return errors.NewDimensionError("Ridge.Fit", rows, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("Ridge.Fit", "y must be a column vector")
	}
	if r.alpha < 0 {
		return errors.NewValueError("Ridge.Fit", "alpha must be non-negative")
	}

	XWork, scaler, err := maybeStandardize(X, r.normalize)
	if err != nil {
		return err
	}

	yVec := columnVector(y)
	Xc, yc, xMeans, yMean := centerColumns(XWork, yVec)

	// A = XcᵀXc + αI, b = Xcᵀyc
	A := mat.NewDense(cols, cols, nil)
	A.Mul(Xc.T(), Xc)
	for j := 0; j < cols; j++ {
		A.Set(j, j, A.At(j, j)+r.alpha)
	}

	b := mat.NewVecDense(cols, nil)
	b.MulVec(Xc.T(), yc)

	var w mat.VecDense
	if err := w.SolveVec(A, b); err != nil {
		return errors.NewModelError("Ridge.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	coef := make([]float64, cols)
	intercept := yMean
	for j := 0; j < cols; j++ {
		coef[j] = w.AtVec(j)
		intercept -= coef[j] * xMeans[j]
	}

	r.coef_, r.intercept_ = foldScaler(coef, intercept, scaler)
	r.nFeatures_ = cols
	r.nSamples_ = rows
	r.state.SetDimensions(cols, rows)
	r.state.SetFitted()
	return nil
}

// Predict returns an n×1 matrix of predictions for X.
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("Ridge", "Predict")
	}

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError("Ridge.Predict", "empty data", errors.ErrEmptyData)
	}
	if cols != r.nFeatures_ {
		return nil, errors.NewDimensionError("Ridge.Predict", r.nFeatures_, cols, 1)
	}

	return predictLinear(X, r.coef_, r.intercept_), nil
}

// Score returns the coefficient of determination R² on the given data.
func (r *Ridge) Score(X, y mat.Matrix) (float64, error) {
	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("Ridge", "Score")
	}
	return scoreLinear(r, "Ridge.Score", X, y)
}

// Coef returns the learned coefficients in input feature order.
func (r *Ridge) Coef() []float64 {
	out := make([]float64, len(r.coef_))
	copy(out, r.coef_)
	return out
}

// Intercept returns the learned intercept.
func (r *Ridge) Intercept() float64 { return r.intercept_ }

// IsFitted returns whether the model has been fitted.
func (r *Ridge) IsFitted() bool { return r.state.IsFitted() }

// String returns a scikit-learn style description of the model.
func (r *Ridge) String() string {
	return fmt.Sprintf("Ridge(alpha=%g, normalize=%t)", r.alpha, r.normalize)
}

type ridgeState struct {
	Alpha     float64
	Normalize bool
	Coef      []float64
	Intercept float64
	NFeatures int
	NSamples  int
	Fitted    bool
}

// GobEncode implements gob.GobEncoder.
func (r *Ridge) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := ridgeState{
		Alpha:     r.alpha,
		Normalize: r.normalize,
		Coef:      r.coef_,
		Intercept: r.intercept_,
		NFeatures: r.nFeatures_,
		NSamples:  r.nSamples_,
		Fitted:    r.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, errors.Wrap(err, "geolearn: failed to encode Ridge")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (r *Ridge) GobDecode(data []byte) error {
	var state ridgeState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Wrap(err, "geolearn: failed to decode Ridge")
	}
	r.state = model.NewStateManager()
	r.alpha = state.Alpha
	r.normalize = state.Normalize
	r.coef_ = state.Coef
	r.intercept_ = state.Intercept
	r.nFeatures_ = state.NFeatures
	r.nSamples_ = state.NSamples
	r.state.SetDimensions(state.NFeatures, state.NSamples)
	if state.Fitted {
		r.state.SetFitted()
	}
	return nil
}
