package linear

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/core/model"
	"github.com/Holisticnature/GeoLearn/core/parallel"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// LinearRegression fits an ordinary least squares model. The normal
// equations are solved through a QR decomposition of the design matrix,
// which tolerates mild collinearity better than forming XᵀX explicitly.
type LinearRegression struct {
	state *model.StateManager

	// Hyperparameters
	fitIntercept bool
	normalize    bool

	// Learned parameters
	coef_      []float64
	intercept_ float64

	nFeatures_ int
	nSamples_  int
}

// NewLinearRegression creates a LinearRegression with the default
// settings (fit_intercept=true, normalize=false).
func NewLinearRegression(opts ...LinearRegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

func (lr *LinearRegression) setNormalize(normalize bool) { lr.normalize = normalize }

// Fit learns coefficients and intercept from the training data.
// y must be an n×1 column matrix with the same row count as X.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	XWork, scaler, err := maybeStandardize(X, lr.normalize)
	if err != nil {
		return err
	}

	cols := c
	offset := 0
	if lr.fitIntercept {
		cols++
		offset = 1
	}

	// Build the design matrix, prepending a ones column when the
	// intercept is learned. Row filling parallelizes for large tables.
	design := mat.NewDense(r, cols, nil)
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if lr.fitIntercept {
				design.Set(i, 0, 1.0)
			}
			for j := 0; j < c; j++ {
				design.Set(i, j+offset, XWork.At(i, j))
			}
		}
	})

	var qr mat.QR
	qr.Factorize(design)

	yDense := mat.NewDense(ry, 1, nil)
	for i := 0; i < ry; i++ {
		yDense.Set(i, 0, y.At(i, 0))
	}

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, yDense); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	coef := make([]float64, c)
	for j := 0; j < c; j++ {
		coef[j] = solution.At(j+offset, 0)
	}
	intercept := 0.0
	if lr.fitIntercept {
		intercept = solution.At(0, 0)
	}

	lr.coef_, lr.intercept_ = foldScaler(coef, intercept, scaler)
	lr.nFeatures_ = c
	lr.nSamples_ = r
	lr.state.SetDimensions(c, r)
	lr.state.SetFitted()
	return nil
}

// Predict returns an n×1 matrix of predictions for X.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("LinearRegression.Predict", "empty data", errors.ErrEmptyData)
	}
	if c != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures_, c, 1)
	}

	return predictLinear(X, lr.coef_, lr.intercept_), nil
}

// Score returns the coefficient of determination R² on the given data.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.state.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}
	return scoreLinear(lr, "LinearRegression.Score", X, y)
}

// Coef returns the learned coefficients in input feature order.
// Coefficients are always reported in the units of the original
// features, regardless of the normalize flag.
func (lr *LinearRegression) Coef() []float64 {
	out := make([]float64, len(lr.coef_))
	copy(out, lr.coef_)
	return out
}

// Intercept returns the learned intercept.
func (lr *LinearRegression) Intercept() float64 { return lr.intercept_ }

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool { return lr.state.IsFitted() }

// String returns a scikit-learn style description of the model.
func (lr *LinearRegression) String() string {
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, normalize=%t)",
		lr.fitIntercept, lr.normalize)
}

// linearRegressionState is the serialized form of LinearRegression.
// The learned parameters live in unexported fields, so gob needs an
// explicit snapshot with exported ones.
type linearRegressionState struct {
	FitIntercept bool
	Normalize    bool
	Coef         []float64
	Intercept    float64
	NFeatures    int
	NSamples     int
	Fitted       bool
}

// GobEncode implements gob.GobEncoder.
func (lr *LinearRegression) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := linearRegressionState{
		FitIntercept: lr.fitIntercept,
		Normalize:    lr.normalize,
		Coef:         lr.coef_,
		Intercept:    lr.intercept_,
		NFeatures:    lr.nFeatures_,
		NSamples:     lr.nSamples_,
		Fitted:       lr.state.IsFitted(),
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, errors.Wrap(err, "geolearn: failed to encode LinearRegression")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (lr *LinearRegression) GobDecode(data []byte) error {
	var state linearRegressionState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return errors.Wrap(err, "geolearn: failed to decode LinearRegression")
	}
	lr.state = model.NewStateManager()
	lr.fitIntercept = state.FitIntercept
	lr.normalize = state.Normalize
	lr.coef_ = state.Coef
	lr.intercept_ = state.Intercept
	lr.nFeatures_ = state.NFeatures
	lr.nSamples_ = state.NSamples
	lr.state.SetDimensions(state.NFeatures, state.NSamples)
	if state.Fitted {
		lr.state.SetFitted()
	}
	return nil
}
