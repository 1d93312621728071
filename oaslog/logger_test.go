package oaslog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		l.Debug("test message", "key", "value")
		l.Info("test message", "key", "value")
		l.Warn("test message", "key", "value")
		l.Error("test message", "key", "value")
	})

	t.Run("With returns NopLogger", func(t *testing.T) {
		l2 := NopLogger{}.With("key", "value")
		if _, ok := l2.(NopLogger); !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	newAdapter := func() (*SlogAdapter, *bytes.Buffer) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		return NewSlogAdapter(slog.New(handler)), &buf
	}

	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("levels are forwarded", func(t *testing.T) {
		adapter, buf := newAdapter()

		adapter.Debug("debug message", "kind", "schema")
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")

		out := buf.String()
		for _, want := range []string{
			"level=DEBUG msg=\"debug message\" kind=schema",
			"level=INFO msg=\"info message\"",
			"level=WARN msg=\"warn message\"",
			"level=ERROR msg=\"error message\"",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got: %s", want, out)
			}
		}
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		adapter, buf := newAdapter()

		child := adapter.With("collection", "public")
		child.Info("generated")

		if !strings.Contains(buf.String(), "collection=public") {
			t.Errorf("expected attribute in output, got: %s", buf.String())
		}
	})
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(NopLogger); !ok {
		t.Error("OrNop(nil) should return NopLogger")
	}

	adapter := NewSlogAdapter(nil)
	if OrNop(adapter) != Logger(adapter) {
		t.Error("OrNop should return the given logger")
	}
}
