package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's sugared logger so callers depend on this package
// rather than on zap directly.
type Logger struct {
	*zap.SugaredLogger
}

// L is the fallback instance for scripts and one-off jobs where wiring
// dependency injection is not worth it. Everywhere else prefer the
// injected logger.
var L *Logger

func init() {
	L, _ = NewLogger()
}

// NewLogger builds a production JSON logger. Set PATHWAYS_LOG_DEVEL to any
// value for the human-readable development encoder.
func NewLogger() (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if os.Getenv("PATHWAYS_LOG_DEVEL") != "" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// With returns a child logger carrying the given structured context.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}
