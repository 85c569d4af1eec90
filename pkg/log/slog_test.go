package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestSlogLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LevelDebug)

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", SamplesKey, 10)

	out := buf.String()
	if !strings.Contains(out, "debug message") {
		t.Error("debug message not found in output")
	}
	if !strings.Contains(out, "info message") {
		t.Error("info message not found in output")
	}
	if !strings.Contains(out, SamplesKey+"=10") {
		t.Errorf("structured field not found in output: %s", out)
	}
}

func TestSlogLoggerErrorStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LevelInfo)

	err := errors.WithStack(errors.New("solver failed"))
	logger.Error("fit failed", err, OperationKey, OperationFit)

	out := buf.String()
	if !strings.Contains(out, "fit failed") {
		t.Error("error message not found in output")
	}
	if !strings.Contains(out, "solver failed") {
		t.Error("wrapped error text not found in output")
	}
	// ErrFmtHandler extracts the cockroachdb stacktrace from the
	// leading error and attaches it as a structured attribute.
	if !strings.Contains(out, StacktraceAttrKey) {
		t.Errorf("stacktrace attribute not found in output: %s", out)
	}
}

func TestSlogLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LevelWarn)
	ctx := context.Background()

	logger.Info("should be filtered")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message emitted despite warn threshold")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message not found in output")
	}

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("Enabled(LevelDebug) = true with warn threshold")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Enabled(LevelError) = false with warn threshold")
	}
}

func TestSlogLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, LevelInfo).With(ComponentKey, "orchestrator")

	logger.Info("context message", OperationKey, OperationFit)

	out := buf.String()
	if !strings.Contains(out, "orchestrator") {
		t.Error("pre-populated component field not found in output")
	}
	if !strings.Contains(out, OperationFit) {
		t.Error("call-site field not found in output")
	}
}
