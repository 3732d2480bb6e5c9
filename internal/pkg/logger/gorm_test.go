package logger_test

import (
	"errors"
	"testing"
	"time"

	"visadesk/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func trace(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed statement is logged as error", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := logger.NewGormLogger(zap.New(core), gormlogger.Warn, time.Second)

		l.Trace(t.Context(), time.Now(), trace("INSERT INTO orders", 0), errors.New("boom"))

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "INSERT INTO orders", entry.ContextMap()["sql"])
	})

	t.Run("record not found is not logged", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := logger.NewGormLogger(zap.New(core), gormlogger.Warn, time.Second)

		l.Trace(t.Context(), time.Now(), trace("SELECT 1", 0), gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("slow statement is logged as warning", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := logger.NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

		l.Trace(t.Context(), time.Now().Add(-time.Second), trace("SELECT 1", 1), nil)

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := logger.NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond).LogMode(gormlogger.Silent)

		l.Trace(t.Context(), time.Now().Add(-time.Second), trace("SELECT 1", 1), errors.New("boom"))

		assert.Equal(t, 0, recorded.Len())
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, logger.GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, logger.GormLevel("info"))
	assert.Equal(t, gormlogger.Error, logger.GormLevel("error"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("WARNING"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
}
