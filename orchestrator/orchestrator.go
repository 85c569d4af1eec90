// Package orchestrator wires the full regression pipeline: load a
// feature table, fit the requested model, join predictions back by
// object ID, and emit the report and serialized model artifacts.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Holisticnature/GeoLearn/core/model"
	"github.com/Holisticnature/GeoLearn/geotable"
	"github.com/Holisticnature/GeoLearn/linear"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
	"github.com/Holisticnature/GeoLearn/pkg/log"
	"github.com/Holisticnature/GeoLearn/report"
)

// Candidate names for the columns appended to the table. They pass
// through ValidateFieldName, so collisions get a numeric suffix.
const (
	joinFieldCandidate = "NPIndexJoin"
	predFieldCandidate = "PredictedValues"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a custom model registry.
func WithRegistry(registry *linear.Registry) Option {
	return func(o *Orchestrator) { o.registry = registry }
}

// WithLogger injects the logger used for pipeline progress and the
// report lines.
func WithLogger(logger log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// Orchestrator coordinates the pipeline from attribute table to fitted
// model, extended table and report artifacts. Missing dependencies are
// initialised with the built-in implementations so callers can start
// with a single constructor call.
type Orchestrator struct {
	registry *linear.Registry
	logger   log.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.registry == nil {
		o.registry = linear.DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = log.GetLogger()
	}
	return o
}

// Request describes one regression invocation.
type Request struct {
	// TablePath locates the input table. A .geojson or .json extension
	// selects the GeoJSON reader, anything else reads CSV.
	TablePath string

	// OIDField names the object ID column. Empty selects the default.
	OIDField string

	// RegressionType is the registry name of the model to fit.
	RegressionType string

	// DependentField is the observed variable column.
	DependentField string

	// IndependentFields are the regressor columns, in input order.
	IndependentFields []string

	// Alpha is the regularization strength. Ignored with a warning by
	// models that have no penalty.
	Alpha float64

	// Normalize standardizes features before fitting.
	Normalize bool

	// OutputDir receives the report, model and scatter files. When it
	// is not an existing directory the artifacts are skipped and the
	// report only logged; this is not an error.
	OutputDir string

	// OutputTablePath, when set, receives the extended table as CSV.
	OutputTablePath string
}

// Result reports what one invocation produced.
type Result struct {
	Model       linear.Regressor
	Table       *geotable.Table
	ReportLines []string

	// Artifact paths; empty when the corresponding file was not written.
	ReportPath  string
	ModelPath   string
	ScatterPath string
	TablePath   string
}

// Run executes the pipeline. Table-layer failures and fit errors abort
// the invocation; panics in the numeric path are recovered and
// surfaced as errors. An invalid OutputDir alone never fails the run.
func (o *Orchestrator) Run(ctx context.Context, req Request) (res *Result, err error) {
	defer errors.Recover(&err, "orchestrator.Run")

	if req.RegressionType == "" {
		return nil, errors.NewValueError("orchestrator.Run", "regression type is required")
	}
	if req.DependentField == "" || len(req.IndependentFields) == 0 {
		return nil, errors.NewValueError("orchestrator.Run", "dependent and independent fields are required")
	}

	logger := o.logger.With(
		log.RegressionTypeKey, req.RegressionType,
		log.TablePathKey, req.TablePath,
	)

	logger.Info("Loading feature table",
		log.PhaseKey, log.PhaseLoad,
		log.DependentFieldKey, req.DependentField,
		log.IndependentFieldsKey, req.IndependentFields,
	)

	table, err := loadTable(req.TablePath, req.OIDField)
	if err != nil {
		return nil, err
	}

	y, err := table.Column(req.DependentField)
	if err != nil {
		return nil, err
	}
	X, err := table.Columns(req.IndependentFields)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	reg, err := o.registry.NewRegressor(req.RegressionType, linear.Config{
		Alpha:     req.Alpha,
		Normalize: req.Normalize,
	})
	if err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	logger.Info("Fitting model",
		log.PhaseKey, log.PhaseTraining,
		log.ModelNameKey, reg.String(),
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.AlphaKey, req.Alpha,
		log.NormalizeKey, req.Normalize,
	)

	yMat := mat.NewDense(y.Len(), 1, nil)
	for i := 0; i < y.Len(); i++ {
		yMat.Set(i, 0, y.AtVec(i))
	}
	if err := reg.Fit(X, yMat); err != nil {
		return nil, err
	}

	predictions, err := reg.Predict(X)
	if err != nil {
		return nil, err
	}
	predVec := mat.NewVecDense(rows, nil)
	predValues := make([]float64, rows)
	for i := 0; i < rows; i++ {
		predValues[i] = predictions.At(i, 0)
		predVec.SetVec(i, predValues[i])
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	joinField := table.ValidateFieldName(joinFieldCandidate)
	predField := table.ValidateFieldName(predFieldCandidate)
	if err := table.ExtendTable(joinField, predField, table.OIDs(), predValues); err != nil {
		return nil, err
	}

	lines, err := report.Build(reg, y, predVec, req.IndependentFields, X)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		logger.Info(line, log.PhaseKey, log.PhaseReporting)
	}

	res = &Result{
		Model:       reg,
		Table:       table,
		ReportLines: lines,
	}

	o.writeArtifacts(req, res, y, predVec, logger)

	if req.OutputTablePath != "" {
		if err := table.WriteCSV(req.OutputTablePath); err != nil {
			return nil, err
		}
		res.TablePath = req.OutputTablePath
	}

	return res, nil
}

// loadTable picks the reader from the file extension.
func loadTable(path, oidField string) (*geotable.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return geotable.ReadGeoJSON(path, oidField)
	default:
		return geotable.ReadCSV(path, oidField)
	}
}

// writeArtifacts writes the report, model and scatter files when the
// output directory exists. Artifact failures are logged, never fatal:
// the fitted model and extended table already stand on their own.
func (o *Orchestrator) writeArtifacts(req Request, res *Result, y, pred *mat.VecDense, logger log.Logger) {
	if req.OutputDir == "" {
		return
	}
	info, err := os.Stat(req.OutputDir)
	if err != nil || !info.IsDir() {
		logger.Warn("Output directory does not exist, skipping report and model files",
			log.OutputDirKey, req.OutputDir,
		)
		return
	}

	reportPath := filepath.Join(req.OutputDir, req.RegressionType+"_Report.txt")
	content := strings.Join(res.ReportLines, "\n") + "\n"
	if err := os.WriteFile(reportPath, []byte(content), 0o644); err != nil {
		logger.Error("Failed to write report file", err, log.ReportPathKey, reportPath)
	} else {
		res.ReportPath = reportPath
		logger.Info("Report written", log.ReportPathKey, reportPath)
	}

	modelPath := filepath.Join(req.OutputDir, req.RegressionType+"_Model.gob.gz")
	if err := model.SaveModel(res.Model, modelPath); err != nil {
		logger.Error("Failed to write model file", err, log.ModelPathKey, modelPath)
	} else {
		res.ModelPath = modelPath
		logger.Info("Model written", log.ModelPathKey, modelPath)
	}

	scatterPath := filepath.Join(req.OutputDir, req.RegressionType+"_Scatter.png")
	if err := saveScatter(scatterPath, req.DependentField, y, pred); err != nil {
		logger.Error("Failed to write scatter plot", err, log.ReportPathKey, scatterPath)
	} else {
		res.ScatterPath = scatterPath
		logger.Info("Scatter plot written", log.ReportPathKey, scatterPath)
	}
}

// saveScatter renders observed vs predicted values with an identity
// reference line.
func saveScatter(path, dependentField string, y, pred *mat.VecDense) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Observed vs Predicted: %s", dependentField)
	p.X.Label.Text = "Observed"
	p.Y.Label.Text = "Predicted"

	points := make(plotter.XYs, y.Len())
	minV, maxV := y.AtVec(0), y.AtVec(0)
	for i := 0; i < y.Len(); i++ {
		obs, est := y.AtVec(i), pred.AtVec(i)
		points[i].X = obs
		points[i].Y = est
		for _, v := range []float64{obs, est} {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	identity := plotter.XYs{{X: minV, Y: minV}, {X: maxV, Y: maxV}}
	line, err := plotter.NewLine(identity)
	if err != nil {
		return err
	}

	p.Add(scatter, line)
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
