package loggers

import (
	"context"
	"errors"
	"time"

	"greenhouse-server/configs"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ZapGormLogger implements gorm's logger.Interface on top of zap, with a
// slow-query threshold and optional suppression of record-not-found errors.
type ZapGormLogger struct {
	LogLevel                  gormlogger.LogLevel
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// NewZapGormLogger creates a ZapGormLogger with the given options.
func NewZapGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration, ignoreRecordNotFoundError bool) *ZapGormLogger {
	return &ZapGormLogger{
		LogLevel:                  level,
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: ignoreRecordNotFoundError,
	}
}

// LogMode returns a copy of the logger with the level changed.
func (z *ZapGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *z
	newLogger.LogLevel = level
	return &newLogger
}

func (z *ZapGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if z.LogLevel < gormlogger.Info {
		return
	}
	configs.Logger.Sugar().Infof(msg, data...)
}

func (z *ZapGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if z.LogLevel < gormlogger.Warn {
		return
	}
	configs.Logger.Sugar().Warnf(msg, data...)
}

func (z *ZapGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if z.LogLevel < gormlogger.Error {
		return
	}
	configs.Logger.Sugar().Errorf(msg, data...)
}

// Trace records the SQL, elapsed time, affected rows and any error.
func (z *ZapGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && (!z.IgnoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)) {
		configs.Logger.Error("GORM Trace Error",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
		return
	}

	if z.SlowThreshold != 0 && elapsed > z.SlowThreshold {
		configs.Logger.Warn("GORM Slow Query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
		return
	}

	if z.LogLevel >= gormlogger.Info {
		configs.Logger.Info("GORM Query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
	}
}
