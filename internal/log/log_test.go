package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})

	Info(context.Background(), "hello", "user", "test")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	if !strings.Contains(line, "ts=") {
		t.Fatalf("expected timestamp field in log line, got %q", line)
	}
	if !strings.Contains(line, "level=info") {
		t.Fatalf("expected level field in log line, got %q", line)
	}
	if !strings.Contains(line, "msg=hello") {
		t.Fatalf("expected message field in log line, got %q", line)
	}
	if !strings.Contains(line, "user=test") {
		t.Fatalf("expected structured field in log line, got %q", line)
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() {
		_ = SetLevel("info")
	})

	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{level: "", want: slog.LevelInfo},
		{level: "DEBUG", want: slog.LevelDebug},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		err := SetLevel(tt.level)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("SetLevel(%q) expected error", tt.level)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SetLevel(%q) error = %v", tt.level, err)
		}
		if got := levelVar.Level(); got != tt.want {
			t.Fatalf("SetLevel(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestWarnSuppressedAtErrorLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
		_ = SetLevel("info")
	})

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Warn(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected warn to be filtered, got %q", buf.String())
	}

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Warn(context.Background(), "kept", "recipe", "loaf")
	if !strings.Contains(buf.String(), "level=warn") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}
