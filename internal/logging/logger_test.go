package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagforge/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger = NewComponentLogger(logger, "dataset")
	logger.Info("saved tags", String(FieldImage, "img001.png"), Int(FieldCount, 3))

	line := buf.String()
	if !strings.Contains(line, "[dataset]") {
		t.Errorf("component missing from output: %q", line)
	}
	if !strings.Contains(line, "saved tags") {
		t.Errorf("message missing from output: %q", line)
	}
	if !strings.Contains(line, "image=img001.png") || !strings.Contains(line, "count=3") {
		t.Errorf("attrs missing from output: %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info record emitted below handler level: %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, levelVar, false))

	logger.Info("rebuilt index", Int(FieldCount, 42))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["msg"] != "rebuilt index" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Errorf("level = %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("ts field missing")
	}
	if record["count"] != float64(42) {
		t.Errorf("count = %v", record["count"])
	}
}

func TestNewWritesToFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tagforge.log")
	logger, err := New(Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("dataset loaded", Int(FieldCount, 7))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "dataset loaded") {
		t.Errorf("log file missing record: %q", string(data))
	}
}

func TestNewFromConfigUsesOutputPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagforge.log")
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.OutputPaths = []string{path}

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("configured destination")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "configured destination") {
		t.Errorf("log file missing record: %q", string(data))
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(nil, slog.LevelError) {
		t.Error("nop logger should report disabled for every level")
	}
}
