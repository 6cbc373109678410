package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := NewLogger(LoggerOptions{Level: "debug", Dir: dir, MaxSizeMB: 1, Console: &console})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Info().Str("path", "/dl/Heat.1995").Msg("classified torrent")
	logger.Debug().Msg("debug line")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	out := console.String()
	if !strings.Contains(out, "classified torrent") || !strings.Contains(out, "debug line") {
		t.Errorf("console output missing messages: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("console output to a buffer should not be colored: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"path":"/dl/Heat.1995"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var console bytes.Buffer
	logger, _, err := NewLogger(LoggerOptions{Level: "warn", Console: &console})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	if out := console.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("level filtering wrong: %q", out)
	}

	if _, _, err := NewLogger(LoggerOptions{Level: "loud"}); err == nil {
		t.Error("NewLogger() with bad level error = nil, want error")
	}
}
