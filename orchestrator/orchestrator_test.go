package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holisticnature/GeoLearn/linear"
	"github.com/Holisticnature/GeoLearn/pkg/errors"
	"github.com/Holisticnature/GeoLearn/pkg/log"
)

// testCSV is a small table where VALUE = 2*POP + 10 exactly.
const testCSV = `OID,POP,AREA,VALUE
1,10,1.0,30
2,20,2.0,50
3,30,1.5,70
4,40,3.0,90
5,50,2.5,110
`

func writeTestTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parcels.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func quietLogger() log.Logger {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	return logger
}

func TestRunEndToEnd(t *testing.T) {
	tablePath := writeTestTable(t)
	outDir := t.TempDir()
	outTable := filepath.Join(t.TempDir(), "scored.csv")

	o := New(WithLogger(quietLogger()))
	res, err := o.Run(context.Background(), Request{
		TablePath:         tablePath,
		RegressionType:    "LinearRegression",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP", "AREA"},
		Alpha:             1.0,
		OutputDir:         outDir,
		OutputTablePath:   outTable,
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Model.IsFitted())

	require.NotEmpty(t, res.ReportLines)
	assert.True(t, strings.HasPrefix(res.ReportLines[0], "REGRESSION MODEL: LinearRegression"))
	joined := strings.Join(res.ReportLines, "\n")
	assert.Contains(t, joined, "MODEL COEFFICENTS")
	assert.Contains(t, joined, "REGRESSOR SCORES")

	assert.Equal(t, filepath.Join(outDir, "LinearRegression_Report.txt"), res.ReportPath)
	assert.FileExists(t, res.ReportPath)
	assert.FileExists(t, res.ModelPath)
	assert.FileExists(t, res.ScatterPath)
	assert.FileExists(t, res.TablePath)

	content, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, joined+"\n", string(content))

	// The extended table carries the join and prediction columns.
	assert.Contains(t, res.Table.Fields(), "NPIndexJoin")
	assert.Contains(t, res.Table.Fields(), "PredictedValues")
	pred, err := res.Table.Column("PredictedValues")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, pred.AtVec(0), 1e-6, "perfect fit reproduces the observations")
}

func TestRunInvalidOutputDirIsNotAnError(t *testing.T) {
	tablePath := writeTestTable(t)

	o := New(WithLogger(quietLogger()))
	res, err := o.Run(context.Background(), Request{
		TablePath:         tablePath,
		RegressionType:    "Ridge",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP"},
		Alpha:             0.5,
		OutputDir:         filepath.Join(t.TempDir(), "does", "not", "exist"),
	})
	require.NoError(t, err, "missing output directory must not fail the run")
	require.NotNil(t, res)

	assert.Empty(t, res.ReportPath)
	assert.Empty(t, res.ModelPath)
	assert.Empty(t, res.ScatterPath)
	assert.NotEmpty(t, res.ReportLines, "report is still produced and logged")
}

func TestRunUnknownRegressionType(t *testing.T) {
	tablePath := writeTestTable(t)

	o := New(WithLogger(quietLogger()))
	_, err := o.Run(context.Background(), Request{
		TablePath:         tablePath,
		RegressionType:    "SupportVectorMachine",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP"},
	})
	require.Error(t, err)

	var ume *errors.UnknownModelError
	assert.True(t, errors.As(err, &ume))
}

func TestRunMissingField(t *testing.T) {
	tablePath := writeTestTable(t)

	o := New(WithLogger(quietLogger()))
	_, err := o.Run(context.Background(), Request{
		TablePath:         tablePath,
		RegressionType:    "LinearRegression",
		DependentField:    "NO_SUCH_FIELD",
		IndependentFields: []string{"POP"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFieldNotFound))
}

func TestRunMissingTable(t *testing.T) {
	o := New(WithLogger(quietLogger()))
	_, err := o.Run(context.Background(), Request{
		TablePath:         filepath.Join(t.TempDir(), "nope.csv"),
		RegressionType:    "LinearRegression",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP"},
	})
	require.Error(t, err)

	var te *errors.TableError
	assert.True(t, errors.As(err, &te))
}

func TestRunValidatesRequest(t *testing.T) {
	o := New(WithLogger(quietLogger()))

	_, err := o.Run(context.Background(), Request{
		RegressionType: "", DependentField: "VALUE", IndependentFields: []string{"POP"},
	})
	assert.Error(t, err)

	_, err = o.Run(context.Background(), Request{
		RegressionType: "Ridge", DependentField: "", IndependentFields: []string{"POP"},
	})
	assert.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	tablePath := writeTestTable(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(WithLogger(quietLogger()))
	_, err := o.Run(ctx, Request{
		TablePath:         tablePath,
		RegressionType:    "LinearRegression",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCustomRegistry(t *testing.T) {
	tablePath := writeTestTable(t)

	registry := linear.NewRegistry()
	registry.Register("OnlyRidge", func() linear.Regressor { return linear.NewRidge() })

	o := New(WithRegistry(registry), WithLogger(quietLogger()))

	_, err := o.Run(context.Background(), Request{
		TablePath:         tablePath,
		RegressionType:    "LinearRegression",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP"},
	})
	require.Error(t, err, "default names are absent from a custom registry")

	res, err := o.Run(context.Background(), Request{
		TablePath:         tablePath,
		RegressionType:    "OnlyRidge",
		DependentField:    "VALUE",
		IndependentFields: []string{"POP"},
	})
	require.NoError(t, err)
	assert.True(t, res.Model.IsFitted())
}
