// Package geolearn provides linear regression tooling for GIS feature
// tables: fit a scikit-learn style model over attribute columns, join
// the predictions back onto the table by object ID, and emit an
// evaluation report alongside the serialized model.
//
// # Quick Start
//
// Fitting a model directly over gonum matrices:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/Holisticnature/GeoLearn/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//
//	    model, err := linear.NewRegressor("Ridge", linear.Config{Alpha: 0.5})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(mat.NewDense(2, 1, []float64{5, 6}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", predictions)
//	}
//
// The full table-to-report pipeline lives in the orchestrator package;
// the geolearn command wraps it for the command line.
//
// # Packages
//
//   - linear: the regression estimators and the model registry
//     (LinearRegression, Ridge, Lasso, ElasticNet)
//   - metrics: evaluation metrics (R², MSE, RMSE, MAE, median AE) and
//     univariate F-regression scores
//   - report: the textual model evaluation report
//   - geotable: feature table bridge (CSV/GeoJSON, OID joins, null
//     coercion)
//   - orchestrator: the end-to-end pipeline
//   - preprocessing: feature standardization
//   - core/model: estimator interfaces, state management, persistence
//   - core/parallel: parallel processing utilities
package geolearn
