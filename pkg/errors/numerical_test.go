package errors

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("coordinate_descent", []float64{1, -2, 3}, 5); err != nil {
		t.Errorf("finite values should pass, got %v", err)
	}

	err := CheckNumericalStability("coordinate_descent", []float64{1, math.NaN()}, 5)
	if err == nil {
		t.Fatal("NaN should be detected")
	}
	var nie *NumericalInstabilityError
	if !As(err, &nie) {
		t.Fatalf("error = %v, want NumericalInstabilityError", err)
	}
	if nie.Iteration != 5 {
		t.Errorf("iteration = %d, want 5", nie.Iteration)
	}

	if err := CheckNumericalStability("solve", []float64{math.Inf(1)}, 0); err == nil {
		t.Error("Inf should be detected")
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("intercept", 1.5, 0); err != nil {
		t.Errorf("finite scalar should pass, got %v", err)
	}
	if err := CheckScalar("intercept", math.NaN(), 0); err == nil {
		t.Error("NaN scalar should be detected")
	}
}

func TestCheckMatrix(t *testing.T) {
	ok := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if err := CheckMatrix("ridge_solve", ok, 2, 2, 0); err != nil {
		t.Errorf("finite matrix should pass, got %v", err)
	}

	bad := mat.NewDense(2, 2, []float64{1, math.Inf(-1), 3, 4})
	if err := CheckMatrix("ridge_solve", bad, 2, 2, 0); err == nil {
		t.Error("Inf entry should be detected")
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(10, 4); got != 2.5 {
		t.Errorf("SafeDivide(10, 4) = %v, want 2.5", got)
	}
	if got := SafeDivide(10, 0); got != 0 {
		t.Errorf("SafeDivide(10, 0) = %v, want 0", got)
	}
	if got := SafeDivide(10, 1e-12); got != 0 {
		t.Errorf("SafeDivide near zero = %v, want 0", got)
	}
}
