package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPretty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	Pretty(&buf, slog.LevelInfo).Info("merge", "id", 256)

	output := buf.String()
	if !strings.Contains(output, "merge") {
		t.Fatalf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, "id=256") {
		t.Fatalf("expected 'id=256' in output, got: %s", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Fatalf("expected trailing newline, got: %q", output)
	}
}

func TestPrettyDebugLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	Pretty(&buf, slog.LevelDebug).Debug("debug msg")

	if !strings.Contains(buf.String(), "debug msg") {
		t.Fatalf("expected debug message at debug level, got: %s", buf.String())
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warn to be enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "api")})).Info("with attrs")
	if !strings.Contains(buf.String(), "component=api") {
		t.Fatalf("expected 'component=api' in output, got: %s", buf.String())
	}
}

func TestPrettyHandlerWithAttrsDoesNotLeak(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	base := h.WithAttrs([]slog.Attr{slog.Int("a", 1)})
	_ = base.WithAttrs([]slog.Attr{slog.Int("b", 2)})

	slog.New(base).Info("x")
	if strings.Contains(buf.String(), "b=2") {
		t.Fatalf("sibling handler attrs leaked: %s", buf.String())
	}
}

func TestPrettyHandlerNestedGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	slog.New(h.WithGroup("a").WithGroup("b")).Info("nested", "key", "val")
	if !strings.Contains(buf.String(), "a.b.key=val") {
		t.Fatalf("expected 'a.b.key=val' in output, got: %s", buf.String())
	}
}

func TestPrettyHandlerGroupValue(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("x", slog.Group("pair", "left", 97, "right", 98))

	if !strings.Contains(buf.String(), "pair.left=97 pair.right=98") {
		t.Fatalf("expected flattened group, got: %s", buf.String())
	}
}

func TestPrettyHandlerEmptyGroup(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	if h.WithGroup("") != h {
		t.Fatal("WithGroup empty string should return same handler")
	}
}

func TestPrettyQuotesTokenText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("test", "text", "a\nb", "msg", "hello world")

	output := buf.String()
	if !strings.Contains(output, `text="a\nb"`) {
		t.Fatalf("expected escaped newline, got: %s", output)
	}
	if !strings.Contains(output, `msg="hello world"`) {
		t.Fatalf("expected quoted string with spaces, got: %s", output)
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"simple", false},
		{"has space", true},
		{"has\ttab", true},
		{"has\nnewline", true},
		{`has"quote`, true},
		{"k=v", true},
		{"\x00", true},
		{"", false},
		{"(97,97)", false},
	}

	for _, tc := range tests {
		if got := needsQuoting(tc.input); got != tc.expected {
			t.Errorf("needsQuoting(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}
