package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetupFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "warn", true)
	defer Init("info", false)

	Info("hidden")
	Warn("shown", "room", "R0")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"room":"R0"`) {
		t.Fatalf("expected json warn record, got: %s", out)
	}
}
