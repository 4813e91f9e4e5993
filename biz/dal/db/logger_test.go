package db

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"orders-hertz/conf"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func captureHlog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	hlog.SetOutput(&buf)
	hlog.SetLevel(hlog.LevelTrace)
	t.Cleanup(func() {
		hlog.SetOutput(os.Stderr)
		hlog.SetLevel(hlog.LevelInfo)
	})
	return &buf
}

func sqlOf(s string) func() (string, int64) {
	return func() (string, int64) { return s, 1 }
}

func TestGormLoggerErrorLevel(t *testing.T) {
	buf := captureHlog(t)
	l := newGormLogger(conf.Database{LogLevel: "warn", SlowThresholdMs: 200})

	l.Trace(context.Background(), time.Now(), sqlOf("INSERT INTO orders"), errors.New("disk I/O error"))

	assert.Contains(t, buf.String(), "[Error]")
	assert.Contains(t, buf.String(), "disk I/O error")
}

func TestGormLoggerSlowQueryIsWarn(t *testing.T) {
	buf := captureHlog(t)
	l := newGormLogger(conf.Database{LogLevel: "warn", SlowThresholdMs: 1})

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlOf("SELECT * FROM orders"), nil)

	assert.Contains(t, buf.String(), "[Warn]")
	assert.Contains(t, buf.String(), "slow sql")
}

func TestGormLoggerSkipsFastQueriesAtWarn(t *testing.T) {
	buf := captureHlog(t)
	l := newGormLogger(conf.Database{LogLevel: "warn", SlowThresholdMs: 200})

	l.Trace(context.Background(), time.Now(), sqlOf("SELECT * FROM orders"), nil)
	l.Trace(context.Background(), time.Now(), sqlOf("SELECT * FROM orders"), gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormLoggerInfoLevelTracesEverything(t *testing.T) {
	buf := captureHlog(t)
	l := newGormLogger(conf.Database{LogLevel: "warn"}).LogMode(logger.Info)

	l.Trace(context.Background(), time.Now(), sqlOf("SELECT * FROM orders"), nil)

	assert.Contains(t, buf.String(), "[Info]")
	assert.Contains(t, buf.String(), "SELECT * FROM orders")
}

func TestGormLoggerSilent(t *testing.T) {
	buf := captureHlog(t)
	l := newGormLogger(conf.Database{LogLevel: "silent"})

	l.Trace(context.Background(), time.Now(), sqlOf("INSERT INTO orders"), errors.New("boom"))
	l.Warn(context.Background(), "ignored")

	assert.Empty(t, buf.String())
}
