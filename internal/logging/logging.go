package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Field  = zapcore.Field
	Option = zap.Option
)

type LoggerCtxKey struct{}

type zapLogger interface {
	Debug(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Sync() error
	Warn(msg string, fields ...zapcore.Field)
	With(fields ...zapcore.Field) *zap.Logger
}

type Logger struct {
	log zapLogger
	// level is nil for loggers injected with SetCustomGlobalLogger, whose
	// level belongs to the caller.
	level *zap.AtomicLevel
}

var (
	logOnce      sync.Once
	cachedLogger *Logger
)

func SetCustomGlobalLogger(logger zapLogger) {
	if logger != nil {
		logOnce.Do(func() {
			cachedLogger = &Logger{
				log: logger,
			}
		})
	}
}

func insideContainer() bool {
	return os.Getenv("GO_ENVIRONMENT") == "production"
}

func defaultLogger(level zap.AtomicLevel) *zap.Logger {
	opts := []Option{
		zap.AddCallerSkip(1),
	}

	var logCfg zap.Config
	if insideContainer() {
		logCfg = zap.NewProductionConfig()
	} else {
		logCfg = zap.NewDevelopmentConfig()
		logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logCfg.Level = level
	logCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	logger, err := logCfg.Build(opts...)
	if err != nil {
		log.Panicf("could not create logger: %v", err)
	}

	return logger
}

func New() *Logger {
	if cachedLogger != nil {
		return cachedLogger
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger := defaultLogger(level)

	logOnce.Do(func() {
		cachedLogger = &Logger{
			log:   logger,
			level: &level,
		}
	})

	return cachedLogger
}

// NewNop discards everything, for tests.
func NewNop() *Logger {
	level := zap.NewAtomicLevel()
	return &Logger{
		log:   zap.NewNop(),
		level: &level,
	}
}

func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return New()
	}

	if l, ok := ctx.Value(LoggerCtxKey{}).(*Logger); ok {
		return l
	}

	return New()
}

// SetVerbosity maps the harness verbosity, 0 to 3, onto a zap level. It is
// a no-op for injected loggers.
func (l *Logger) SetVerbosity(v int) {
	if l.level == nil {
		return
	}

	switch {
	case v <= 0:
		l.level.SetLevel(zapcore.ErrorLevel)
	case v == 1:
		l.level.SetLevel(zapcore.WarnLevel)
	case v == 2:
		l.level.SetLevel(zapcore.InfoLevel)
	default:
		l.level.SetLevel(zapcore.DebugLevel)
	}
}

func (l Logger) Debug(msg string, fields ...Field) {
	l.log.Debug(msg, fields...)
}

func (l Logger) Error(msg string, fields ...Field) {
	l.log.Error(msg, fields...)
}

func (l Logger) Info(msg string, fields ...Field) {
	l.log.Info(msg, fields...)
}

func (l Logger) Sync() error {
	return l.log.Sync()
}

func (l Logger) Warn(msg string, fields ...Field) {
	l.log.Warn(msg, fields...)
}

func (l Logger) With(fields ...Field) *Logger {
	logger := l.log.With(fields...)
	return &Logger{
		log:   logger,
		level: l.level,
	}
}

func (l *Logger) GetContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, LoggerCtxKey{}, l)
}
