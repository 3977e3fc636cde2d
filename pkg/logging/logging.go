package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey int

const (
	fieldsKey contextKey = iota
)

type ZapLogger struct {
	inner *zap.Logger
}

func NewZapLogger(level zapcore.Level) (*ZapLogger, error) {
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "message",
			LevelKey:       "level",
			TimeKey:        "@timestamp",
			NameKey:        "logger",
			CallerKey:      "caller",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &ZapLogger{inner: logger}, nil
}

// WithContextFields attaches fields to the context so that every later
// *Ctx call on the request path carries them. The parent's fields are
// copied into a fresh slice: appending in place could alias the parent's
// backing array and let sibling contexts overwrite each other.
func WithContextFields(ctx context.Context, fields ...zap.Field) context.Context {
	parentFields := fieldsFromCtx(ctx)
	merged := make([]zap.Field, 0, len(parentFields)+len(fields))
	merged = append(merged, parentFields...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

func fieldsFromCtx(ctx context.Context) []zap.Field {
	fields, ok := ctx.Value(fieldsKey).([]zap.Field)
	if !ok {
		return nil
	}
	return fields
}

func (l *ZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.inner.Debug(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.inner.Info(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.inner.Warn(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.inner.Error(msg, append(fieldsFromCtx(ctx), fields...)...)
}

func (l *ZapLogger) Sync() error {
	return l.inner.Sync() //nolint:wrapcheck // unnecessary
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *ZapLogger {
	return &ZapLogger{inner: zap.NewNop()}
}
