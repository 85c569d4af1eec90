// Command geolearn fits a regression model over a feature table and
// writes the evaluation report, the serialized model and the scored
// table.
//
// Usage:
//
//	geolearn -table parcels.csv -type Ridge -dependent VALUE \
//	    -independents POP,AREA -alpha 0.5 -output-dir ./out
//
// A YAML file passed with -config carries the same settings; flags
// given on the command line win over file values.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Holisticnature/GeoLearn/orchestrator"
	"github.com/Holisticnature/GeoLearn/pkg/log"
)

// runConfig mirrors orchestrator.Request for YAML configuration files.
type runConfig struct {
	Table        string   `yaml:"table"`
	OIDField     string   `yaml:"oid_field"`
	Type         string   `yaml:"type"`
	Dependent    string   `yaml:"dependent"`
	Independents []string `yaml:"independents"`
	Alpha        float64  `yaml:"alpha"`
	Normalize    bool     `yaml:"normalize"`
	OutputDir    string   `yaml:"output_dir"`
	OutputTable  string   `yaml:"output_table"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "geolearn: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional YAML run configuration")
	table := flag.String("table", "", "input table (CSV or GeoJSON)")
	oidField := flag.String("oid-field", "", "object ID column name (default OID)")
	modelType := flag.String("type", "LinearRegression", "regression type: LinearRegression, Ridge, Lasso or ElasticNet")
	dependent := flag.String("dependent", "", "dependent variable field")
	independents := flag.String("independents", "", "comma-separated independent variable fields")
	alpha := flag.Float64("alpha", 1.0, "regularization strength for penalized models")
	normalize := flag.Bool("normalize", false, "standardize features before fitting")
	outputDir := flag.String("output-dir", "", "directory for report, model and scatter files")
	outputTable := flag.String("output-table", "", "path for the scored table CSV")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "json", "log output format: json or text")
	flag.Parse()

	cfg := runConfig{Type: "LinearRegression", Alpha: 1.0, LogLevel: "info", LogFormat: "json"}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	}

	// Explicit flags win over config file values.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["table"] || cfg.Table == "" {
		cfg.Table = *table
	}
	if set["oid-field"] {
		cfg.OIDField = *oidField
	}
	if set["type"] || cfg.Type == "" {
		cfg.Type = *modelType
	}
	if set["dependent"] || cfg.Dependent == "" {
		cfg.Dependent = *dependent
	}
	if set["independents"] || len(cfg.Independents) == 0 {
		cfg.Independents = splitFields(*independents)
	}
	if set["alpha"] {
		cfg.Alpha = *alpha
	}
	if set["normalize"] {
		cfg.Normalize = *normalize
	}
	if set["output-dir"] {
		cfg.OutputDir = *outputDir
	}
	if set["output-table"] {
		cfg.OutputTable = *outputTable
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if set["log-format"] {
		cfg.LogFormat = *logFormat
	}

	if cfg.Table == "" {
		return fmt.Errorf("an input table is required (-table or config file)")
	}
	if cfg.Dependent == "" || len(cfg.Independents) == 0 {
		return fmt.Errorf("dependent and independent fields are required")
	}

	var logger log.Logger
	switch cfg.LogFormat {
	case "json":
		logger = log.NewZerologLogger(os.Stderr, log.ToLevel(cfg.LogLevel))
	case "text":
		logger = log.NewSlogLogger(os.Stderr, log.ToLevel(cfg.LogLevel))
	default:
		return fmt.Errorf("unknown log format %q (want json or text)", cfg.LogFormat)
	}
	log.SetDefault(logger)
	log.InstallWarningBridge()

	o := orchestrator.New(orchestrator.WithLogger(logger))
	res, err := o.Run(context.Background(), orchestrator.Request{
		TablePath:         cfg.Table,
		OIDField:          cfg.OIDField,
		RegressionType:    cfg.Type,
		DependentField:    cfg.Dependent,
		IndependentFields: cfg.Independents,
		Alpha:             cfg.Alpha,
		Normalize:         cfg.Normalize,
		OutputDir:         cfg.OutputDir,
		OutputTablePath:   cfg.OutputTable,
	})
	if err != nil {
		return err
	}

	for _, line := range res.ReportLines {
		fmt.Println(line)
	}
	return nil
}

// splitFields parses the comma-separated independents flag.
func splitFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}
