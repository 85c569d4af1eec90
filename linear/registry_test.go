package linear

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

func TestDefaultRegistryNames(t *testing.T) {
	names := DefaultRegistry().Names()
	want := []string{"ElasticNet", "Lasso", "LinearRegression", "Ridge"}

	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewRegressorConstructsEveryType(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	for _, name := range DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			reg, err := NewRegressor(name, DefaultConfig())
			if err != nil {
				t.Fatalf("NewRegressor(%q) error = %v", name, err)
			}
			if reg.IsFitted() {
				t.Error("freshly constructed model reports fitted")
			}
			if err := reg.Fit(X, y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if !reg.IsFitted() {
				t.Error("model does not report fitted after Fit()")
			}
			if _, err := reg.Predict(X); err != nil {
				t.Errorf("Predict() error = %v", err)
			}
		})
	}
}

func TestNewRegressorUnknownName(t *testing.T) {
	_, err := NewRegressor("RandomForest", DefaultConfig())
	if err == nil {
		t.Fatal("NewRegressor with unknown name should return an error")
	}

	var ume *errors.UnknownModelError
	if !errors.As(err, &ume) {
		t.Fatalf("error = %v, want UnknownModelError", err)
	}
	if ume.Name != "RandomForest" {
		t.Errorf("UnknownModelError.Name = %q, want RandomForest", ume.Name)
	}
	if len(ume.Available) != 4 {
		t.Errorf("UnknownModelError.Available = %v, want the 4 registered types", ume.Available)
	}
}

func TestNewRegressorAppliesAlpha(t *testing.T) {
	cfg := Config{Alpha: 0.25}

	for _, name := range []string{"Ridge", "Lasso", "ElasticNet"} {
		reg, err := NewRegressor(name, cfg)
		if err != nil {
			t.Fatalf("NewRegressor(%q) error = %v", name, err)
		}
		type alphaGetter interface{ Alpha() float64 }
		ag, ok := reg.(alphaGetter)
		if !ok {
			t.Fatalf("%s does not expose Alpha()", name)
		}
		if ag.Alpha() != 0.25 {
			t.Errorf("%s alpha = %v, want 0.25", name, ag.Alpha())
		}
	}
}

func TestNewRegressorWarnsOnUnsupportedAlpha(t *testing.T) {
	captured := captureWarnings(t)

	reg, err := NewRegressor("LinearRegression", Config{Alpha: 10})
	if err != nil {
		t.Fatalf("NewRegressor() error = %v", err)
	}
	if reg == nil {
		t.Fatal("NewRegressor() returned nil model")
	}

	found := false
	for _, w := range *captured {
		var puw *errors.ParameterUnsupportedWarning
		if errors.As(w, &puw) {
			found = true
			if puw.Model != "LinearRegression" || puw.Parameter != "alpha" {
				t.Errorf("warning = %+v, want LinearRegression/alpha", puw)
			}
		}
	}
	if !found {
		t.Error("expected ParameterUnsupportedWarning for alpha on LinearRegression")
	}
}

func TestNewRegressorAppliesNormalizeIndependently(t *testing.T) {
	captureWarnings(t)

	// alpha is unsupported on LinearRegression but normalize must still
	// be applied.
	reg, err := NewRegressor("LinearRegression", Config{Alpha: 10, Normalize: true})
	if err != nil {
		t.Fatalf("NewRegressor() error = %v", err)
	}
	lr, ok := reg.(*LinearRegression)
	if !ok {
		t.Fatalf("model type = %T, want *LinearRegression", reg)
	}
	if !lr.normalize {
		t.Error("normalize flag was not applied")
	}
}
