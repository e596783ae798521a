package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{" warn ", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	if got := WarnLevel.String(); got != "WARN" {
		t.Errorf("WarnLevel.String() = %q", got)
	}
	if got := LogLevel(42).String(); got != "UNKNOWN" {
		t.Errorf("LogLevel(42).String() = %q", got)
	}
}

func TestStructuredLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger("test", "0.0.1", WarnLevel)
	logger.SetOutput(&buf)

	ctx := context.Background()
	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	logger.Warn(ctx, "[TEST_WARN] careful", Fields{"k": 1})
	if !strings.Contains(buf.String(), "[TEST_WARN] careful") {
		t.Errorf("warn entry missing: %q", buf.String())
	}
}

func TestStructuredLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger("test", "0.0.1", DebugLevel)
	logger.SetOutput(&buf)

	ctx := WithRunID(context.Background(), "run-123")
	logger.Error(ctx, "[TEST_ERROR] boom", Fields{"path": "x"}, errors.New("disk full"))

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}

	if entry.Level != "ERROR" {
		t.Errorf("Level = %v, want ERROR", entry.Level)
	}
	if entry.RunID != "run-123" {
		t.Errorf("RunID = %v, want run-123", entry.RunID)
	}
	if entry.Error != "disk full" {
		t.Errorf("Error = %v, want disk full", entry.Error)
	}
	if entry.File == "" || entry.Line == 0 {
		t.Error("caller information should be set for error level")
	}
	if !strings.HasSuffix(entry.Function, "TestStructuredLogger_EntryShape") {
		t.Errorf("Function = %q, want the calling test", entry.Function)
	}
	if entry.Service != "test" || entry.Version != "0.0.1" {
		t.Errorf("service/version = %v/%v", entry.Service, entry.Version)
	}
}

func TestStructuredLogger_FatalUsesExitFunc(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger("test", "0.0.1", InfoLevel)
	logger.SetOutput(&buf)

	code := -1
	logger.SetExitFunc(func(c int) { code = c })
	logger.Fatal(context.Background(), "[TEST_FATAL] stop", Fields{}, errors.New("bad"))

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "stack_trace") {
		t.Error("fatal entry should carry a stack trace")
	}
}

func TestContextLogger_MergeFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger("test", "0.0.1", InfoLevel)
	logger.SetOutput(&buf)

	cl := logger.WithFields(Fields{"component": "generator", "batch": 0})
	cl.Info(context.Background(), "hello", Fields{"batch": 7})

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry.Fields["component"] != "generator" {
		t.Errorf("component = %v", entry.Fields["component"])
	}
	// JSON numbers decode as float64
	if entry.Fields["batch"] != float64(7) {
		t.Errorf("batch = %v, want 7", entry.Fields["batch"])
	}
}
