// Package report renders the textual evaluation summary for a fitted
// regression model. Build is a pure function over the model and the
// observed/predicted vectors; it never touches the filesystem. Header
// spellings follow the report format of the original geoprocessing
// tool, typos included, so downstream consumers keep parsing.
package report

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/metrics"
)

// Model is the minimal view of a fitted estimator the report needs.
type Model interface {
	Coef() []float64
	Intercept() float64
	fmt.Stringer
}

// Build returns the report lines for a fitted model, in order:
// model description, coefficients, intercept, the four evaluation
// metrics, and, when X is usable, per-feature F-scores and p-values.
//
// The coefficient line pairs each coefficient with its variable name
// when the counts match; otherwise the raw slice is printed. The
// F-score block is appended only when X is non-empty and its row count
// equals the length of yTrue; a failure inside FRegression drops the
// block but never the report.
func Build(m Model, yTrue, yPred *mat.VecDense, names []string, X mat.Matrix) ([]string, error) {
	intercept := m.Intercept()
	if intercept == 0 {
		// QR can return a signed zero, which would render as -0.
		intercept = 0
	}

	lines := []string{
		fmt.Sprintf("REGRESSION MODEL: %s", m.String()),
		"MODEL COEFFICENTS",
		fmt.Sprintf("  Regression Coefficents:  %s", coefficientLine(m.Coef(), names)),
		fmt.Sprintf("  Regression Intercept:    %v", intercept),
		"MODEL EVALUATION",
	}

	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	medae, err := metrics.MedianAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	lines = append(lines,
		fmt.Sprintf("  Model Coefficent of Determination: %v", r2),
		fmt.Sprintf("  Model Mean Squared Error:          %v", mse),
		fmt.Sprintf("  Model Mean Absolute Error:         %v", mae),
		fmt.Sprintf("  Model Median Absolute Error:       %v", medae),
	)

	lines = append(lines, regressorScores(names, X, yTrue)...)
	return lines, nil
}

// coefficientLine renders "c0 * name0 + c1 * name1 + ..." with the
// coefficients rounded to three decimals, falling back to the raw
// slice when the name count does not match.
func coefficientLine(coef []float64, names []string) string {
	if len(names) != len(coef) {
		return fmt.Sprintf("%v", coef)
	}
	terms := make([]string, len(coef))
	for i, c := range coef {
		terms[i] = fmt.Sprintf("%g * %s", math.Round(c*1000)/1000, names[i])
	}
	return strings.Join(terms, " + ")
}

// regressorScores returns the F-score/p-value block, or nil when the
// preconditions do not hold. The row count of X must equal the length
// of yTrue; degenerate inputs that FRegression rejects (fewer than 3
// samples, constant y) silently omit the block.
func regressorScores(names []string, X mat.Matrix, yTrue *mat.VecDense) []string {
	if X == nil {
		return nil
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 || rows != yTrue.Len() {
		return nil
	}

	fScores, pValues, err := metrics.FRegression(X, yTrue)
	if err != nil {
		return nil
	}

	return []string{
		"REGRESSOR SCORES",
		fmt.Sprintf("  Regressor F-Scores:     %s", pairedValues(names, fScores)),
		fmt.Sprintf("  Regressor P-Values:     %s", pairedValues(names, pValues)),
	}
}

// pairedValues renders "[(name, value) ...]" when the counts match,
// otherwise the raw value slice.
func pairedValues(names []string, values []float64) string {
	if len(names) != len(values) {
		return fmt.Sprintf("%v", values)
	}
	pairs := make([]string, len(values))
	for i, v := range values {
		pairs[i] = fmt.Sprintf("(%s, %v)", names[i], v)
	}
	return "[" + strings.Join(pairs, " ") + "]"
}
