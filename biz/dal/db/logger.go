package db

import (
	"context"
	"errors"
	"time"

	"orders-hertz/conf"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// hlogLogger routes gorm logs to hlog at the matching level: SQL errors
// to Error, slow queries to Warn, plain traces to Info.
type hlogLogger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(cfg conf.Database) logger.Interface {
	return &hlogLogger{
		level:         gormLogLevel(cfg.LogLevel),
		slowThreshold: time.Duration(cfg.SlowThresholdMs) * time.Millisecond,
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (l *hlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *hlogLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		hlog.CtxInfof(ctx, "[gorm] "+msg, args...)
	}
}

func (l *hlogLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		hlog.CtxWarnf(ctx, "[gorm] "+msg, args...)
	}
}

func (l *hlogLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		hlog.CtxErrorf(ctx, "[gorm] "+msg, args...)
	}
}

func (l *hlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		hlog.CtxErrorf(ctx, "[gorm] %v [%.3fms] [rows:%d] %s", err, ms(elapsed), rows, sql)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		hlog.CtxWarnf(ctx, "[gorm] slow sql >= %v [%.3fms] [rows:%d] %s", l.slowThreshold, ms(elapsed), rows, sql)
	case l.level >= logger.Info:
		sql, rows := fc()
		hlog.CtxInfof(ctx, "[gorm] [%.3fms] [rows:%d] %s", ms(elapsed), rows, sql)
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
