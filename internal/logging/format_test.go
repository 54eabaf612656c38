package logging

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFormatEventLine(t *testing.T) {
	event := Event{
		Time:    time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC),
		Level:   slog.LevelWarn,
		Message: "request failed",
		Fields:  map[string]any{"status": "401 Unauthorized", "method": "GET"},
	}
	line := FormatEventLine(event)
	if !strings.HasPrefix(line, "14:05:09 [WARN] request failed") {
		t.Fatalf("line = %q", line)
	}
	// Fields are rendered sorted by key.
	if !strings.Contains(line, "method=GET status=401 Unauthorized") {
		t.Fatalf("line = %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line must end with newline: %q", line)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate(""); got != "<empty>" {
		t.Fatalf("Truncate(\"\") = %q", got)
	}
	if got := Truncate("a\nb\rc"); got != "a b c" {
		t.Fatalf("newlines must flatten, got %q", got)
	}
	long := strings.Repeat("x", 500)
	if got := Truncate(long); len(got) != clipLimit+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("len = %d", len(got))
	}
}

func TestFormatHTTPPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: "<empty>"},
		{name: "whitespace", raw: "  \n ", want: "<empty>"},
		{name: "object", raw: `{"error":"bad & worse"}`, want: `{"error":"bad & worse"}`},
		{name: "quoted json string", raw: `"{\"ok\":true}"`, want: `{"ok":true}`},
		{name: "plain text", raw: "gateway timeout", want: "gateway timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatHTTPPayload([]byte(tt.raw)); got != tt.want {
				t.Fatalf("FormatHTTPPayload(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLogger_DebugGate(t *testing.T) {
	var buf strings.Builder
	logger := New(false)
	logger.SetOutput(&buf)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output leaked: %q", buf.String())
	}

	logger.SetDebugEnabled(true)
	logger.Debug("visible", Field("key", "value"))
	if !strings.Contains(buf.String(), "[DEBUG] visible key=value") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var logger *Logger
	logger.Debug("noop")
	logger.Info("noop")
	logger.Warn("noop")
	logger.Error("noop")
	logger.SetDebugEnabled(true)
}
