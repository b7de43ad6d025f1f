package glossy_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"deedles.dev/circscroll/internal/glossy"
)

func newLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := glossy.Handler{Level: level, Out: &buf}.Synchronized()
	return slog.New(h), &buf
}

func TestHandlerLevel(t *testing.T) {
	logger, buf := newLogger(slog.LevelInfo)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf)
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "WARN shown\n") {
		t.Fatalf("missing record: %q", buf)
	}
}

func TestHandlerAttrs(t *testing.T) {
	logger, buf := newLogger(slog.LevelDebug)

	logger.With("device", "/dev/input/event3").
		WithGroup("gesture").
		Debug("scrolled", "amount", 5, slog.Group("state", "active", true), slog.Group("empty"))

	out := buf.String()
	for _, want := range []string{
		"DEBUG scrolled\n",
		"\tdevice=/dev/input/event3\n",
		"\tgesture.amount=5\n",
		"\tgesture.state.active=true\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%v", want, out)
		}
	}
	if strings.Contains(out, "empty") {
		t.Errorf("empty group written:\n%v", out)
	}
}

func TestHandlerQuoting(t *testing.T) {
	logger, buf := newLogger(slog.LevelInfo)

	logger.Info("opened", "name", "Synaptics TouchPad", "phys", "")

	out := buf.String()
	if !strings.Contains(out, "\tname=\"Synaptics TouchPad\"\n") {
		t.Errorf("value with spaces not quoted:\n%v", out)
	}
	if !strings.Contains(out, "\tphys=\"\"\n") {
		t.Errorf("empty value not quoted:\n%v", out)
	}
}

func TestHandlerDefaultLevel(t *testing.T) {
	h := glossy.Handler{}
	if h.Enabled(t.Context(), slog.LevelDebug) {
		t.Fatal("debug enabled by default")
	}
	if !h.Enabled(t.Context(), slog.LevelInfo) {
		t.Fatal("info disabled by default")
	}
}
