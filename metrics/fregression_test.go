package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMedianAE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "odd number of samples",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(3, []float64{1.1, 2.5, 2.0}),
			want:      0.5, // abs errors sorted: 0.1, 0.5, 1.0
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "even number of samples",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.1, 2.2, 3.3, 4.4}),
			want:      0.25, // abs errors sorted: 0.1, 0.2, 0.3, 0.4 -> (0.2+0.3)/2
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:      "robust to a single outlier",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 105.0}),
			want:      0.0,
			tolerance: 1e-10,
			wantErr:   false,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MedianAE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MedianAE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("MedianAE() = %v, want %v (tolerance: %v)", got, tt.want, tt.tolerance)
				}
			}
		})
	}
}

func TestFRegression(t *testing.T) {
	t.Run("perfectly correlated feature", func(t *testing.T) {
		X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
		y := mat.NewVecDense(4, []float64{1, 2, 3, 4})

		fScores, pValues, err := FRegression(X, y)
		if err != nil {
			t.Fatalf("FRegression() error = %v", err)
		}
		if len(fScores) != 1 || len(pValues) != 1 {
			t.Fatalf("expected 1 score and 1 p-value, got %d and %d", len(fScores), len(pValues))
		}
		if !math.IsInf(fScores[0], 1) {
			t.Errorf("F-score = %v, want +Inf for perfect correlation", fScores[0])
		}
		if pValues[0] != 0 {
			t.Errorf("p-value = %v, want 0 for perfect correlation", pValues[0])
		}
	})

	t.Run("weakly correlated feature", func(t *testing.T) {
		// r² = 0.2 で F = r²/(1-r²)*(n-2) = 0.5、p値は自由度(1,2)のF分布から
		X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
		y := mat.NewVecDense(4, []float64{1, 2, 1, 2})

		fScores, pValues, err := FRegression(X, y)
		if err != nil {
			t.Fatalf("FRegression() error = %v", err)
		}
		if math.Abs(fScores[0]-0.5) > 1e-10 {
			t.Errorf("F-score = %v, want 0.5", fScores[0])
		}
		if math.Abs(pValues[0]-0.5528) > 1e-3 {
			t.Errorf("p-value = %v, want ~0.5528", pValues[0])
		}
	})

	t.Run("constant feature", func(t *testing.T) {
		X := mat.NewDense(4, 2, []float64{
			1, 5,
			2, 5,
			3, 5,
			4, 5,
		})
		y := mat.NewVecDense(4, []float64{1, 2, 3, 4})

		fScores, pValues, err := FRegression(X, y)
		if err != nil {
			t.Fatalf("FRegression() error = %v", err)
		}
		if fScores[1] != 0 {
			t.Errorf("F-score for constant feature = %v, want 0", fScores[1])
		}
		if pValues[1] != 1 {
			t.Errorf("p-value for constant feature = %v, want 1", pValues[1])
		}
	})

	t.Run("row count mismatch", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewVecDense(4, []float64{1, 2, 3, 4})

		if _, _, err := FRegression(X, y); err == nil {
			t.Error("expected error for row count mismatch, got nil")
		}
	})

	t.Run("too few samples", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{1, 2})
		y := mat.NewVecDense(2, []float64{1, 2})

		if _, _, err := FRegression(X, y); err == nil {
			t.Error("expected error for n < 3, got nil")
		}
	})
}
