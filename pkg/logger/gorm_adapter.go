package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juanpineyrob/dscommerce/infrastructure/persistence"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// GormLoggerConfig tuning for the GORM log adapter.
type GormLoggerConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// DefaultGormLoggerConfig returns the default adapter configuration.
func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{
		SlowThreshold: 200 * time.Millisecond,
		// Missing rows are an expected outcome for existence checks, not a
		// database failure.
		IgnoreRecordNotFoundError: true,
	}
}

// GormLoggerAdapter routes GORM's logging through zap, tagging each line
// with the request id carried in context.
type GormLoggerAdapter struct {
	logLevel logger.LogLevel
	logger   *zap.Logger
	config   *GormLoggerConfig
}

// NewGormLoggerAdapter creates an adapter at the given GORM log level.
func NewGormLoggerAdapter(logLevel logger.LogLevel) *GormLoggerAdapter {
	baseLogger := log
	if baseLogger == nil {
		baseLogger = zap.NewNop()
	}
	return &GormLoggerAdapter{
		logLevel: logLevel,
		logger:   baseLogger,
		config:   DefaultGormLoggerConfig(),
	}
}

// LogMode implements logger.Interface.
func (l *GormLoggerAdapter) LogMode(logLevel logger.LogLevel) logger.Interface {
	return &GormLoggerAdapter{logLevel: logLevel, logger: l.logger, config: l.config}
}

func (l *GormLoggerAdapter) contextLogger(ctx context.Context) *zap.Logger {
	base := l.logger
	if base == nil {
		base = zap.NewNop()
	}
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		base = base.With(zap.String("request_id", requestID))
	}
	return base
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Info {
		l.contextLogger(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.contextLogger(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Error {
		l.contextLogger(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs a completed statement, warning on slow queries.
func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	zl := l.contextLogger(ctx)

	if err != nil && l.logLevel >= logger.Error {
		if errors.Is(err, logger.ErrRecordNotFound) && l.config.IgnoreRecordNotFoundError {
			return
		}
		zl.Error("database operation failed", append(fields, zap.Error(err))...)
		return
	}

	if l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold && l.logLevel >= logger.Warn {
		zl.Warn("slow sql query", fields...)
		return
	}

	if l.logLevel >= logger.Info {
		zl.Info("sql query executed", fields...)
	}
}
