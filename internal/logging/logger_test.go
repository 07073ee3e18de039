package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	defer SetLogger(nil)

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be silent when no level is configured")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")
	defer SetLogger(nil)

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize(\"\") error = %v", err)
	}

	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("logger should be enabled at debug level")
	}
}

func TestGetLogger_Fallback(t *testing.T) {
	SetLogger(nil)
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
	SetLogger(zap.NewNop())
}

func TestHexBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"arrow up", []byte{0x1b, '[', 'A'}, "1b 5b 41"},
		{"single byte", []byte{'q'}, "71"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexBytes(tt.data); got != tt.want {
				t.Errorf("HexBytes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsciiDump(t *testing.T) {
	got := asciiDump([]byte("ok\r\n"))
	if got != "ok.." {
		t.Errorf("asciiDump() = %q, want %q", got, "ok..")
	}
}
