package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetupText(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	if _, err := Setup(Config{Level: "warn", Output: &buf}); err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	L().Info("hidden")
	L().Warn("settings.fallback", "path", "settings.json")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "settings.fallback") || !strings.Contains(out, "path=settings.json") {
		t.Errorf("expected warn record, got %q", out)
	}
}

func TestSetupJSON(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	if _, err := Setup(Config{Format: "json", Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	L().Debug("settings.loaded", "feed_rate", 1000.0)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "settings.loaded" {
		t.Errorf("expected msg settings.loaded, got %v", rec["msg"])
	}
	if _, ok := rec["source"]; !ok {
		t.Error("debug mode should add source locations")
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	if _, err := Setup(Config{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := Setup(Config{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
