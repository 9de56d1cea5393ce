package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantTrace bool
		wantDebug bool
		wantInfo  bool
	}{
		{level: "trace", wantTrace: true, wantDebug: true, wantInfo: true},
		{level: "debug", wantTrace: false, wantDebug: true, wantInfo: true},
		{level: "info", wantTrace: false, wantDebug: false, wantInfo: true},
		{level: "warn", wantTrace: false, wantDebug: false, wantInfo: false},
		{level: "bogus", wantTrace: false, wantDebug: false, wantInfo: true}, // falls back to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Pretty: false, Output: &buf})

			logger.Trace().Msg("trace message")
			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")

			output := buf.String()
			if got := strings.Contains(output, "trace message"); got != tt.wantTrace {
				t.Errorf("trace logged = %v, want %v", got, tt.wantTrace)
			}
			if got := strings.Contains(output, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(output, "info message"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Pretty: false, Output: &buf}, "calibration")

	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"calibration"`) {
		t.Errorf("expected component field in output, got %s", buf.String())
	}
}
