package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_TextFormat_SortedAndFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "myvet", Output: &buf}).(*StdLogger)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("hidden", nil)
	l.Info("hello", map[string]any{"path": "/api/x"})

	got := strings.TrimSpace(buf.String())
	want := "app=myvet level=info msg=hello path=/api/x ts=2026-01-02T03:04:05Z"
	if got != want {
		t.Fatalf("unexpected line:\n got=%q\nwant=%q", got, want)
	}
}

func TestLogger_JSONFormat_WithFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Level: Debug, Format: FormatJSON, Output: &buf})
	l := base.With(map[string]any{"component": "session"})

	l.Warn("clear failed", map[string]any{"error": errors.New("disk full")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line: %v (%q)", err, buf.String())
	}
	if entry["component"] != "session" || entry["error"] != "disk full" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestNop_WritesNothing(t *testing.T) {
	l := Nop()
	l.Error("nothing", map[string]any{"x": 1})
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) must return a logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"DEBUG":   Debug,
		"warning": Warn,
		"error":   Error,
		"off":     Off,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}
