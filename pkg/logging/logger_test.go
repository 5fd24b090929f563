// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("Level(%d).toSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_DefaultConfig(t *testing.T) {
	logger := New(Config{})
	if logger == nil {
		t.Fatal("New(Config{}) returned nil")
	}
	if logger.Slog() == nil {
		t.Fatal("Slog() returned nil")
	}
}

func TestNew_QuietMode(t *testing.T) {
	logger := New(Config{Quiet: true})
	logger.Info("should not panic even though stderr is suppressed")
}

func TestNew_WithLogDir(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelInfo, Service: "test-svc", LogDir: dir})
	defer logger.Close()

	logger.Info("hello from file logging", "key", "value")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading log dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one log file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "test-svc_") {
		t.Errorf("log file name %q does not start with service prefix", entries[0].Name())
	}

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(contents), "hello from file logging") {
		t.Errorf("log file does not contain expected message: %s", contents)
	}
}

func TestNew_WithLogDir_NoService(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir})
	defer logger.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading log dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "firewall_") {
		t.Fatalf("expected a firewall_*.log file, got %v", entries)
	}
}

func TestNew_WithLogDir_InvalidPath(t *testing.T) {
	// A path nested under a regular file cannot be MkdirAll'd into; New
	// should fall back to stderr-only logging rather than panic.
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	logger := New(Config{LogDir: filepath.Join(blocker, "logs")})
	logger.Info("still works without a file handle")
	if logger.file != nil {
		t.Error("expected file to be nil when LogDir creation fails")
	}
}

func TestNew_MultipleHandlers(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "multi"})
	defer logger.Close()

	if _, ok := logger.slog.Handler().(*multiHandler); !ok {
		t.Fatalf("expected *multiHandler when both stderr and file are active, got %T", logger.slog.Handler())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger := New(Config{Level: LevelWarn})
	// These exercise the wrapper methods without a custom handler to
	// inspect, so the test only checks that none of them panic; the
	// Warn/Error lines appear on stderr but are not asserted.
	logger.Debug("filtered out")
	logger.Info("filtered out")
	logger.Warn("passes the filter")
	logger.Error("passes the filter")
}

func TestLogger_With(t *testing.T) {
	logger := New(Config{})
	child := logger.With("request_id", "abc-123")
	if child == logger {
		t.Fatal("With() should return a new Logger, not the receiver")
	}
	child.Info("scoped message")
}

func TestLogger_Slog(t *testing.T) {
	logger := New(Config{})
	if logger.Slog() == nil {
		t.Fatal("Slog() returned nil")
	}
}

func TestLogger_Close_NoResources(t *testing.T) {
	logger := New(Config{})
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on a logger with no file returned error: %v", err)
	}
}

func TestLogger_Close_WithFile(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir})
	if err := logger.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

// multiHandler tests

func TestMultiHandler_Enabled(t *testing.T) {
	h1 := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
	h2 := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	mh := &multiHandler{handlers: []slog.Handler{h1, h2}}

	if !mh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Enabled(Debug) to be true since h2 accepts it")
	}
}

func TestMultiHandler_Enabled_NoneEnabled(t *testing.T) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
	mh := &multiHandler{handlers: []slog.Handler{h}}

	if mh.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Enabled(Debug) to be false")
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	h := slog.NewTextHandler(os.Stderr, nil)
	mh := &multiHandler{handlers: []slog.Handler{h}}

	newHandler := mh.WithAttrs([]slog.Attr{slog.String("k", "v")})
	if _, ok := newHandler.(*multiHandler); !ok {
		t.Error("WithAttrs() should return *multiHandler")
	}
}

func TestMultiHandler_WithGroup(t *testing.T) {
	h := slog.NewTextHandler(os.Stderr, nil)
	mh := &multiHandler{handlers: []slog.Handler{h}}

	newHandler := mh.WithGroup("grp")
	if _, ok := newHandler.(*multiHandler); !ok {
		t.Error("WithGroup() should return *multiHandler")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/logs", filepath.Join(home, "logs")},
		{"/var/log", "/var/log"},
		{"relative/path", "relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
