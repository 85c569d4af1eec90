package linear

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/core/model"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// ElasticNet fits a linear model with a mix of L1 and L2 penalties.
// l1_ratio=1 is equivalent to Lasso, l1_ratio=0 to a Ridge-like
// penalty solved by the same coordinate descent.
type ElasticNet struct {
	state *model.StateManager

	alpha     float64
	l1Ratio   float64
	maxIter   int
	tol       float64
	normalize bool

	coef_      []float64
	intercept_ float64
	nIter_     int

	nFeatures_ int
	nSamples_  int
}

// NewElasticNet creates an ElasticNet model with the defaults
// alpha=1.0, l1_ratio=0.5, max_iter=1000 and tol=1e-4.
func NewElasticNet(opts ...ElasticNetOption) *ElasticNet {
	e := &ElasticNet{
		state:   model.NewStateManager(),
		alpha:   1.0,
		l1Ratio: 0.5,
		maxIter: 1000,
		tol:     1e-4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *ElasticNet) setAlpha(alpha float64)      { e.alpha = alpha }
func (e *ElasticNet) setNormalize(normalize bool) { e.normalize = normalize }

// Alpha returns the regularization strength.
func (e *ElasticNet) Alpha() float64 { return e.alpha }

// L1Ratio returns the mixing parameter between L1 and L2 penalties.
func (e *ElasticNet) L1Ratio() float64 { return e.l1Ratio }

// NIter returns the number of coordinate descent passes used by the
// last Fit call.
func (e *ElasticNet) NIter() int { return e.nIter_ }

// Fit learns coefficients and intercept from the training data.
func (e *ElasticNet) Fit(X, y mat.Matrix) error {
	coef, intercept, nIter, converged, err := fitCoordinateDescent(
		"ElasticNet.Fit", X, y, e.alpha, e.l1Ratio, e.maxIter, e.tol, e.normalize)
	if err != nil {
		return err
	}
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("ElasticNet", e.maxIter,
			"coordinate descent did not converge; consider increasing max_iter or alpha"))
	}

	rows, cols := X.Dims()
	e.coef_ = coef
	e.intercept_ = intercept
	e.nIter_ = nIter
	e.nFeatures_ = cols
	e.nSamples_ = rows
	e.state.SetDimensions(cols, rows)
	e.state.SetFitted()
	return nil
}

// Predict returns an n×1 matrix of predictions for X.
func (e *ElasticNet) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !e.state.IsFitted() {
		return nil, errors.NewNotFittedError("ElasticNet", "Predict")
	}

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError("ElasticNet.Predict", "empty data", errors.ErrEmptyData)
	}
	if cols != e.nFeatures_ {
		return nil, errors.NewDimensionError("ElasticNet.Predict", e.nFeatures_, cols, 1)
	}

	return predictLinear(X, e.coef_, e.intercept_), nil
}

// Score returns the coefficient of determination R² on the given data.
func (e *ElasticNet) Score(X, y mat.Matrix) (float64, error) {
	if !e.state.IsFitted() {
		return 0, errors.NewNotFittedError("ElasticNet", "Score")
	}
	return scoreLinear(e, "ElasticNet.Score", X, y)
}

// Coef returns the learned coefficients in input feature order.
func (e *ElasticNet) Coef() []float64 {
	out := make([]float64, len(e.coef_))
	copy(out, e.coef_)
	return out
}

// Intercept returns the learned intercept.
func (e *ElasticNet) Intercept() float64 { return e.intercept_ }

// IsFitted returns whether the model has been fitted.
func (e *ElasticNet) IsFitted() bool { return e.state.IsFitted() }

// String returns a scikit-learn style description of the model.
func (e *ElasticNet) String() string {
	return fmt.Sprintf("ElasticNet(alpha=%g, l1_ratio=%g, max_iter=%d, tol=%g, normalize=%t)",
		e.alpha, e.l1Ratio, e.maxIter, e.tol, e.normalize)
}

type elasticNetState struct {
	Alpha     float64
	L1Ratio   float64
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
func (e *ElasticNet) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := elasticNetState{
		Alpha:     e.alpha,
		L1Ratio:   e.l1Ratio,
		MaxIter:   e.maxIter,
		Tol:       e.tol,
		Normalize: e.normalize,
		Coef:      e.coef_,
		Intercept: e.intercept_,
		NIter:     e.nIter_,
		NFeatures: e.nFeatures_,
		NSamples:  e.nSamples_,
		Fitted:    e.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, errors.Wrap(err, "geolearn: failed to encode ElasticNet")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (e *ElasticNet) GobDecode(data []byte) error {
	var state elasticNetState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Wrap(err, "geolearn: failed to decode ElasticNet")
	}
	e.state = model.NewStateManager()
	e.alpha = state.Alpha
	e.l1Ratio = state.L1Ratio
	e.maxIter = state.MaxIter
	e.tol = state.Tol
	e.normalize = state.Normalize
	e.coef_ = state.Coef
	e.intercept_ = state.Intercept
	e.nIter_ = state.NIter
	e.nFeatures_ = state.NFeatures
	e.nSamples_ = state.NSamples
	e.state.SetDimensions(state.NFeatures, state.NSamples)
	if state.Fitted {
		e.state.SetFitted()
	}
	return nil
}
