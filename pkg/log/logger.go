package log

import (
	"context"
	"io"
	"log/slog"
)

// Attribute keys shared by the logging backends. A bare error passed
// as the leading field of Error is attached under ErrAttrKey; the
// handler adds the extracted stacktrace under StacktraceAttrKey.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger is a Logger implementation backed by log/slog. Records
// pass through ErrFmtHandler, so cockroachdb error values carry their
// stacktrace as a structured attribute. It is the text-format
// alternative to the default zerolog JSON backend.
type SlogLogger struct {
	logger *slog.Logger
	level  Level
}

// NewSlogLogger builds a text-format slog backend writing to w.
// Level values are slog-compatible, so the threshold passes through.
func NewSlogLogger(w io.Writer, level Level) *SlogLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.Level(level),
	})
	return &SlogLogger{
		logger: slog.New(WrapByErrFmtHandler(handler)),
		level:  level,
	}
}

func (s *SlogLogger) Debug(msg string, fields ...any) { s.log(slog.LevelDebug, msg, fields) }

func (s *SlogLogger) Info(msg string, fields ...any) { s.log(slog.LevelInfo, msg, fields) }

func (s *SlogLogger) Warn(msg string, fields ...any) { s.log(slog.LevelWarn, msg, fields) }

func (s *SlogLogger) Error(msg string, fields ...any) { s.log(slog.LevelError, msg, fields) }

// log forwards to slog, promoting a bare leading error to ErrAttr so
// ErrFmtHandler can attach its stacktrace.
func (s *SlogLogger) log(level slog.Level, msg string, fields []any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	s.logger.Log(context.Background(), level, msg, fields...)
}

// With returns a new SlogLogger with the given fields pre-populated.
func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: s.logger.With(fields...), level: s.level}
}

// Enabled reports whether the logger emits records at the given level.
func (s *SlogLogger) Enabled(_ context.Context, level Level) bool {
	return level >= s.level
}
