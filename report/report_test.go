package report

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

type fakeModel struct {
	desc      string
	coef      []float64
	intercept float64
}

func (m *fakeModel) Coef() []float64    { return m.coef }
func (m *fakeModel) Intercept() float64 { return m.intercept }
func (m *fakeModel) String() string     { return m.desc }

func TestBuildFullReport(t *testing.T) {
	m := &fakeModel{
		desc:      "LinearRegression(fit_intercept=true, normalize=false)",
		coef:      []float64{2},
		intercept: 1.5,
	}
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	got, err := Build(m, yTrue, yPred, []string{"POP"}, X)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{
		"REGRESSION MODEL: LinearRegression(fit_intercept=true, normalize=false)",
		"MODEL COEFFICENTS",
		"  Regression Coefficents:  2 * POP",
		"  Regression Intercept:    1.5",
		"MODEL EVALUATION",
		"  Model Coefficent of Determination: 1",
		"  Model Mean Squared Error:          0",
		"  Model Mean Absolute Error:         0",
		"  Model Median Absolute Error:       0",
		"REGRESSOR SCORES",
		"  Regressor F-Scores:     [(POP, +Inf)]",
		"  Regressor P-Values:     [(POP, 0)]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRoundsCoefficientsToThreeDecimals(t *testing.T) {
	m := &fakeModel{
		desc:      "Ridge(alpha=1, normalize=false)",
		coef:      []float64{3.14159, -0.00049},
		intercept: 0.25,
	}
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(3, []float64{1.1, 1.9, 3.1})

	got, err := Build(m, yTrue, yPred, []string{"DENSITY", "SLOPE"}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "  Regression Coefficents:  3.142 * DENSITY + -0 * SLOPE"
	if got[2] != want {
		t.Errorf("coefficient line = %q, want %q", got[2], want)
	}
}

func TestBuildSignedZeroIntercept(t *testing.T) {
	m := &fakeModel{
		desc:      "LinearRegression(fit_intercept=true, normalize=false)",
		coef:      []float64{2},
		intercept: math.Copysign(0, -1),
	}
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(3, []float64{1, 2, 3})

	got, err := Build(m, yTrue, yPred, []string{"POP"}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "  Regression Intercept:    0"
	if got[3] != want {
		t.Errorf("intercept line = %q, want %q", got[3], want)
	}
}

func TestBuildNameCountMismatchFallsBackToRawSlice(t *testing.T) {
	m := &fakeModel{desc: "Lasso(alpha=1)", coef: []float64{2, 3}, intercept: 0}
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(3, []float64{1, 2, 3})

	got, err := Build(m, yTrue, yPred, []string{"ONLY_ONE"}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "  Regression Coefficents:  [2 3]"
	if got[2] != want {
		t.Errorf("coefficient line = %q, want %q", got[2], want)
	}
}

func TestBuildOmitsScoresOnRowMismatch(t *testing.T) {
	m := &fakeModel{desc: "Ridge(alpha=1)", coef: []float64{2}, intercept: 0}
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	// 3 rows of X against 4 observations.
	X := mat.NewDense(3, 1, []float64{1, 2, 3})

	got, err := Build(m, yTrue, yPred, []string{"POP"}, X)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, line := range got {
		if strings.Contains(line, "REGRESSOR SCORES") {
			t.Error("REGRESSOR SCORES block present despite row count mismatch")
		}
	}
	if len(got) != 9 {
		t.Errorf("report has %d lines, want 9 without the scores block", len(got))
	}
}

func TestBuildOmitsScoresWhenFRegressionFails(t *testing.T) {
	m := &fakeModel{desc: "Ridge(alpha=1)", coef: []float64{2}, intercept: 0}
	// Two samples: too few for the F statistic, block must be dropped
	// but the report still returned.
	yTrue := mat.NewVecDense(2, []float64{1, 2})
	yPred := mat.NewVecDense(2, []float64{1, 2})
	X := mat.NewDense(2, 1, []float64{1, 2})

	got, err := Build(m, yTrue, yPred, []string{"POP"}, X)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(got) != 9 {
		t.Errorf("report has %d lines, want 9 without the scores block", len(got))
	}
}

func TestBuildZeroVarianceDependent(t *testing.T) {
	m := &fakeModel{desc: "Ridge(alpha=1)", coef: []float64{2}, intercept: 0}
	yTrue := mat.NewVecDense(3, []float64{5, 5, 5})
	yPred := mat.NewVecDense(3, []float64{5, 5, 5})

	if _, err := Build(m, yTrue, yPred, []string{"POP"}, nil); err == nil {
		t.Error("Build() with zero variance in yTrue should return an error")
	}
}
