// log/log_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		s   string
		lvl slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	} {
		if lvl, err := ParseLevel(tc.s); err != nil || lvl != tc.lvl {
			t.Errorf("%q: got %v, %v; expected %v", tc.s, lvl, err, tc.lvl)
		}
	}
	if _, err := ParseLevel("verbose"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestCallstackAttribute(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	lg.Debug("hidden")
	lg.With(slog.String("shape", "ring")).Infof("meshed %d vertices", 108)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %s", len(lines), buf.String())
	}

	var rec struct {
		Msg       string       `json:"msg"`
		Shape     string       `json:"shape"`
		Callstack []StackFrame `json:"callstack"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Msg != "meshed 108 vertices" || rec.Shape != "ring" {
		t.Errorf("unexpected record %+v", rec)
	}
	if len(rec.Callstack) == 0 || rec.Callstack[0].File != "log_test.go" {
		t.Errorf("callstack should start in the caller: %+v", rec.Callstack)
	}
}

func TestNilLogger(t *testing.T) {
	var lg *Logger
	lg.Debug("a")
	lg.Debugf("%d", 1)
	lg.Info("b")
	lg.Infof("%d", 2)
	if lg.With("k", "v") != nil {
		t.Errorf("With on a nil Logger should return nil")
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	lg, err := New("debug", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lg.Warn("test warning")

	b, err := os.ReadFile(lg.LogFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), "test warning") {
		t.Errorf("log file doesn't contain the warning: %s", b)
	}

	if _, err := New("loud", dir); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}
