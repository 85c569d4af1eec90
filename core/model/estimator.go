package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer はスコア計算可能なモデルのインターフェース
type Scorer interface {
	// Score は予測の決定係数（R²）を返す
	Score(X, y mat.Matrix) (float64, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Coef は学習された係数を独立変数の入力順で返す
	Coef() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}
