// Package log defines standard attribute keys for regression-tool operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in GeoLearn. Using these standard keys enables better
// log analysis, monitoring, and debugging of regression runs.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Feature Table Context
//   - Data Shape and Characteristics
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of regression model.
	// Examples: "LinearRegression", "Ridge", "Lasso", "ElasticNet"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "report"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "linear", "geotable", "report", "orchestrator"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the run lifecycle.
	// Examples: "load", "training", "inference", "reporting", "persistence"
	PhaseKey = "ml.phase"
)

// Feature Table Context
// These attributes describe the feature table a run is operating on.
const (
	// TablePathKey records the path of the feature table being processed.
	TablePathKey = "table.path"

	// TableRecordsKey records the number of records in the feature table.
	TableRecordsKey = "table.records"

	// FieldNameKey identifies a single attribute field by name.
	// Examples: the dependent field, a coerced column, a new prediction field.
	FieldNameKey = "table.field"

	// DependentFieldKey identifies the dependent variable field of a run.
	DependentFieldKey = "table.dependent"

	// IndependentFieldsKey lists the independent variable fields of a run.
	IndependentFieldsKey = "table.independents"

	// CoercedNullsKey records how many null or unparsable cells were
	// coerced to zero when a column was extracted.
	CoercedNullsKey = "table.coerced_nulls"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"
)

// Performance Metrics
// These attributes capture timing, accuracy, and resource usage information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² coefficient of determination for regression.
	// Range typically [-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"

	// MSEKey records the mean squared error of a fitted model.
	MSEKey = "metrics.mse"

	// IterationKey records the current iteration number during iterative processes.
	// Useful for tracking convergence in coordinate descent.
	IterationKey = "training.iteration"
)

// Output Context
// These attributes describe run artifacts written to the output directory.
const (
	// OutputDirKey records the directory report and model files are written to.
	OutputDirKey = "output.dir"

	// ReportPathKey records the path of the written text report.
	ReportPathKey = "output.report_path"

	// ModelPathKey records the path of the serialized model file.
	ModelPathKey = "output.model_path"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "UNKNOWN_MODEL"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValueError", "TableError", "UnknownModelError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters and Configuration
// These attributes capture model configuration and hyperparameters.
const (
	// AlphaKey records the regularization strength of a penalized regression.
	AlphaKey = "hyperparams.alpha"

	// NormalizeKey records whether feature standardization was requested.
	NormalizeKey = "hyperparams.normalize"

	// RegressionTypeKey records the requested regression type name.
	RegressionTypeKey = "config.regression_type"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationReport    = "report"
	OperationExtend    = "extend"

	// Standard run phases
	PhaseLoad        = "load"
	PhaseTraining    = "training"
	PhaseInference   = "inference"
	PhaseReporting   = "reporting"
	PhasePersistence = "persistence"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorUnknownModel      = "UNKNOWN_MODEL"
)
