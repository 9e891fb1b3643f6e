package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"jsonview/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observeGorm(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(ReplaceForTest(zap.New(core)))
	return logs
}

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLoggerAdapterLevels(t *testing.T) {
	testCases := []struct {
		name       string
		level      gormlogger.LogLevel
		wantCounts int
	}{
		{"silent", gormlogger.Silent, 0},
		{"error", gormlogger.Error, 1},
		{"warn", gormlogger.Warn, 2},
		{"info", gormlogger.Info, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := observeGorm(t)
			adapter := NewGormLoggerAdapter(tc.level)

			adapter.Info(context.Background(), "info %d", 1)
			adapter.Warn(context.Background(), "warn %d", 2)
			adapter.Error(context.Background(), "error %d", 3)

			assert.Equal(t, tc.wantCounts, logs.Len())
		})
	}
}

func TestGormLoggerAdapterTrace(t *testing.T) {
	t.Run("query logged at debug", func(t *testing.T) {
		logs := observeGorm(t)
		adapter := NewGormLoggerAdapter(gormlogger.Info)

		adapter.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), nil)

		entries := logs.FilterMessage("SQL query executed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	})

	t.Run("record not found ignored", func(t *testing.T) {
		logs := observeGorm(t)
		adapter := NewGormLoggerAdapter(gormlogger.Info)

		adapter.Trace(context.Background(), time.Now(), sqlFn("SELECT * FROM users", 0), gormlogger.ErrRecordNotFound)

		assert.Zero(t, logs.Len())
	})

	t.Run("errors logged with request id", func(t *testing.T) {
		logs := observeGorm(t)
		adapter := NewGormLoggerAdapter(gormlogger.Warn)
		ctx := persistence.ContextWithRequestID(context.Background(), "req-1")

		adapter.Trace(ctx, time.Now(), sqlFn("INSERT INTO users", 0), errors.New("boom"))

		entries := logs.FilterMessage("Database operation failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})

	t.Run("slow query warned", func(t *testing.T) {
		logs := observeGorm(t)
		adapter := NewGormLoggerAdapterWithConfig(gormlogger.Warn, GormLoggerConfig{SlowThreshold: time.Millisecond})

		adapter.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT sleep", 0), nil)

		assert.Equal(t, 1, logs.FilterMessage("Slow SQL query").Len())
	})

	t.Run("silent level skips tracing", func(t *testing.T) {
		logs := observeGorm(t)
		adapter := NewGormLoggerAdapter(gormlogger.Info).LogMode(gormlogger.Silent)

		adapter.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), errors.New("boom"))

		assert.Zero(t, logs.Len())
	})
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, ParseGormLevel("debug"))
	assert.Equal(t, gormlogger.Error, ParseGormLevel("error"))
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel(""))
}
