package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/juanpineyrob/dscommerce/config"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync() before Init error = %v", err)
	}
}

func TestDevelopmentConfig(t *testing.T) {
	devConfig := &config.LogConfig{
		Level:  "debug",
		Output: "stdout",
	}

	if err := Init(devConfig, "development"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Sync()

	Info("development logger initialized", zap.String("env", "development"))
	Debug("debug message should appear")

	if Get() == nil {
		t.Error("Get() returned nil after Init")
	}
}

func TestDynamicLogLevel(t *testing.T) {
	if err := Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Sync()

	if !atomLevel.Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled initially")
	}

	UpdateLevel("info")
	if atomLevel.Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled after UpdateLevel(info)")
	}
	if !atomLevel.Enabled(zapcore.InfoLevel) {
		t.Error("info should stay enabled")
	}

	UpdateLevel("debug")
}

func TestFileOutput(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "logs", "test.log")

	fileConfig := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: testFile,
	}

	if err := Init(fileConfig, "production"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Sync()

	Info("file logger initialized")
	for i := 0; i < 10; i++ {
		Info("log entry", zap.Int("entry", i))
	}
	Sync()

	fileInfo, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if fileInfo.Size() == 0 {
		t.Error("log file is empty")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
