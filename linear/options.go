package linear

// LinearRegressionOption configures a LinearRegression.
type LinearRegressionOption func(*LinearRegression)

// WithLRFitIntercept sets whether the intercept is learned.
func WithLRFitIntercept(fit bool) LinearRegressionOption {
	return func(lr *LinearRegression) { lr.fitIntercept = fit }
}

// WithLRNormalize sets whether features are standardized before fitting.
func WithLRNormalize(normalize bool) LinearRegressionOption {
	return func(lr *LinearRegression) { lr.normalize = normalize }
}

// RidgeOption configures a Ridge.
type RidgeOption func(*Ridge)

// WithRidgeAlpha sets the regularization strength.
func WithRidgeAlpha(alpha float64) RidgeOption {
	return func(r *Ridge) { r.alpha = alpha }
}

// WithRidgeNormalize sets whether features are standardized before fitting.
func WithRidgeNormalize(normalize bool) RidgeOption {
	return func(r *Ridge) { r.normalize = normalize }
}

// LassoOption configures a Lasso.
type LassoOption func(*Lasso)

// WithLassoAlpha sets the regularization strength.
func WithLassoAlpha(alpha float64) LassoOption {
	return func(l *Lasso) { l.alpha = alpha }
}

// WithLassoNormalize sets whether features are standardized before fitting.
func WithLassoNormalize(normalize bool) LassoOption {
	return func(l *Lasso) { l.normalize = normalize }
}

// WithLassoMaxIter sets the coordinate descent iteration budget.
func WithLassoMaxIter(maxIter int) LassoOption {
	return func(l *Lasso) { l.maxIter = maxIter }
}

// WithLassoTol sets the convergence tolerance.
func WithLassoTol(tol float64) LassoOption {
	return func(l *Lasso) { l.tol = tol }
}

// ElasticNetOption configures an ElasticNet.
type ElasticNetOption func(*ElasticNet)

// WithENAlpha sets the regularization strength.
func WithENAlpha(alpha float64) ElasticNetOption {
	return func(e *ElasticNet) { e.alpha = alpha }
}

// WithENL1Ratio sets the mixing parameter between L1 and L2 penalties.
func WithENL1Ratio(l1Ratio float64) ElasticNetOption {
	return func(e *ElasticNet) { e.l1Ratio = l1Ratio }
}

// WithENNormalize sets whether features are standardized before fitting.
func WithENNormalize(normalize bool) ElasticNetOption {
	return func(e *ElasticNet) { e.normalize = normalize }
}

// WithENMaxIter sets the coordinate descent iteration budget.
func WithENMaxIter(maxIter int) ElasticNetOption {
	return func(e *ElasticNet) { e.maxIter = maxIter }
}

// WithENTol sets the convergence tolerance.
func WithENTol(tol float64) ElasticNetOption {
	return func(e *ElasticNet) { e.tol = tol }
}
