package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		expectedEnv string
		expectedLvl string
		wantFile    bool
	}{
		{name: "Production", env: "production", expectedEnv: "production", expectedLvl: "info", wantFile: true},
		{name: "Prod alias", env: "prod", expectedEnv: "production", expectedLvl: "info", wantFile: true},
		{name: "Testing", env: "testing", expectedEnv: "testing", expectedLvl: "debug"},
		{name: "Development", env: "development", expectedEnv: "development", expectedLvl: "debug"},
		{name: "Unknown falls back to development", env: "staging", expectedEnv: "development", expectedLvl: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(tt.env)
			if cfg.Environment != tt.expectedEnv {
				t.Errorf("Environment = %q, expected %q", cfg.Environment, tt.expectedEnv)
			}
			if cfg.Level != tt.expectedLvl {
				t.Errorf("Level = %q, expected %q", cfg.Level, tt.expectedLvl)
			}
			if tt.wantFile && cfg.Filename == "" {
				t.Error("production config must set a log file")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{input: "debug", expected: zapcore.DebugLevel},
		{input: "info", expected: zapcore.InfoLevel},
		{input: "warn", expected: zapcore.WarnLevel},
		{input: "warning", expected: zapcore.WarnLevel},
		{input: "error", expected: zapcore.ErrorLevel},
		{input: "fatal", expected: zapcore.FatalLevel},
		{input: "bogus", expected: zapcore.InfoLevel},
		{input: "", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetWithoutInitReturnsNoop(t *testing.T) {
	if Get() == nil {
		t.Error("Get must never return nil")
	}
	if Named("test") == nil {
		t.Error("Named must never return nil")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync on uninitialized logger: %v", err)
	}
}
