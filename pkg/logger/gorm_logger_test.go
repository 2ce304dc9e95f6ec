package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM workspaces", 1 }

	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		begin     time.Time
		err       error
		wantLevel zapcore.Level
		wantLogs  int
	}{
		{"error is logged", gormlogger.Warn, time.Now(), assert.AnError, zapcore.ErrorLevel, 1},
		{"record not found ignored", gormlogger.Warn, time.Now(), gorm.ErrRecordNotFound, 0, 0},
		{"slow query warns", gormlogger.Warn, time.Now().Add(-time.Second), nil, zapcore.WarnLevel, 1},
		{"fast query below info level is silent", gormlogger.Warn, time.Now(), nil, 0, 0},
		{"silent level logs nothing", gormlogger.Silent, time.Now(), assert.AnError, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, 200*time.Millisecond, true)

			gl.Trace(context.Background(), tt.begin, query, tt.err)

			assert.Equal(t, tt.wantLogs, logs.Len())
			if tt.wantLogs > 0 {
				assert.Equal(t, tt.wantLevel, logs.All()[0].Level)
			}
		})
	}
}

func TestGormLogger_LogModeReturnsCopy(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn, 0, true)
	info := gl.LogMode(gormlogger.Info)

	assert.Equal(t, gormlogger.Warn, gl.LogLevel)
	assert.Equal(t, gormlogger.Info, info.(*GormLogger).LogLevel)
}
