package platform

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v", in, got)
		}
	}
}

func TestNATSLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	nl := NewNATSServerLogger(newLogger(&buf, "info"))
	nl.Noticef("hidden %d", 1)
	nl.Warnf("slow consumer %s", "x")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected exactly one JSON record, got %q", buf.String())
	}
	if rec["msg"] != "slow consumer x" || rec["level"] != "WARN" || rec["component"] != "nats" {
		t.Fatalf("record %v", rec)
	}
}
