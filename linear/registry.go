package linear

import (
	"sort"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// Config carries the tunable parameters a caller may request for any
// regression type. Parameters are applied best effort: an estimator
// that does not support one skips it with a ParameterUnsupportedWarning
// instead of failing, and the other parameters are still applied.
type Config struct {
	// Alpha is the regularization strength for the penalized models.
	Alpha float64

	// Normalize standardizes features before fitting. Coefficients are
	// always reported in original feature units either way.
	Normalize bool
}

// DefaultConfig returns the parameter defaults used when the caller
// specifies nothing (alpha=1.0, normalize=false).
func DefaultConfig() Config {
	return Config{Alpha: 1.0}
}

// Registry maps regression type names to estimator constructors. The
// set of valid names is closed: only registered constructors can be
// instantiated, there is no reflective lookup.
type Registry struct {
	constructors map[string]func() Regressor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]func() Regressor)}
}

// Register adds a constructor under the given name, replacing any
// previous registration.
func (r *Registry) Register(name string, constructor func() Regressor) {
	r.constructors[name] = constructor
}

// Names returns the registered regression type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRegressor instantiates the estimator registered under name and
// applies cfg to it. An unrecognized name returns UnknownModelError.
// Alpha and normalize are applied independently: each lands on the
// estimator when it supports the parameter and is otherwise dropped
// with a ParameterUnsupportedWarning.
func (r *Registry) NewRegressor(name string, cfg Config) (Regressor, error) {
	constructor, ok := r.constructors[name]
	if !ok {
		return nil, errors.NewUnknownModelError(name, r.Names())
	}
	reg := constructor()

	if setter, ok := reg.(alphaSetter); ok {
		setter.setAlpha(cfg.Alpha)
	} else {
		errors.Warn(errors.NewParameterUnsupportedWarning(name, "alpha"))
	}

	if setter, ok := reg.(normalizeSetter); ok {
		setter.setNormalize(cfg.Normalize)
	} else {
		errors.Warn(errors.NewParameterUnsupportedWarning(name, "normalize"))
	}

	return reg, nil
}

// DefaultRegistry returns the registry holding the four supported
// regression types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("LinearRegression", func() Regressor { return NewLinearRegression() })
	r.Register("Ridge", func() Regressor { return NewRidge() })
	r.Register("Lasso", func() Regressor { return NewLasso() })
	r.Register("ElasticNet", func() Regressor { return NewElasticNet() })
	return r
}

// NewRegressor instantiates a regression type from the default
// registry. This is the package-level entry point the orchestrator
// uses.
func NewRegressor(name string, cfg Config) (Regressor, error) {
	return DefaultRegistry().NewRegressor(name, cfg)
}
