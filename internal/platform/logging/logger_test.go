package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FieldsFromKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.With("draw_id", "draw-1").InfoContext(context.Background(), "teams drawn",
		"diff", 0.5,
		"error", errors.New("boom"),
		"dangling",
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["draw_id"] != "draw-1" {
		t.Fatalf("missing draw_id: %+v", fields)
	}
	if fields["diff"] != 0.5 {
		t.Fatalf("unexpected diff: %+v", fields["diff"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %+v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	logger.Info("skipped")
	logger.Warn("kept")

	if logs.Len() != 1 || logs.All()[0].Message != "kept" {
		t.Fatalf("unexpected entries: %+v", logs.All())
	}
}

func TestLogger_Tee(t *testing.T) {
	primary, primaryLogs := observer.New(zapcore.InfoLevel)
	extra, extraLogs := observer.New(zapcore.ErrorLevel)

	logger := FromZap(zap.New(primary)).Tee(extra)
	logger.Info("info only")
	logger.Error("both")

	if primaryLogs.Len() != 2 {
		t.Fatalf("expected 2 primary entries, got %d", primaryLogs.Len())
	}
	if extraLogs.Len() != 1 || extraLogs.All()[0].Message != "both" {
		t.Fatalf("unexpected extra entries: %+v", extraLogs.All())
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("roster loaded", "players", 16)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "roster loaded") || !strings.Contains(out, `"players": 16`) {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestDefault_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected a default logger")
	}
}
