package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("scanned processes", "matches", 2)

	output := buf.String()
	for _, want := range []string{"INFO", "scanned processes", "matches=2"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(context.Background(), LevelTrace, "command output", "stdout", "1.95.0")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got %q", buf.String())
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := context.Background()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("editor", "Cursor").WithGroup("probe")

	logger.Info("verified", "command", "cursor")

	output := buf.String()
	if !strings.Contains(output, "editor=Cursor") {
		t.Errorf("expected handler attribute, got %q", output)
	}
	if !strings.Contains(output, "probe.command=cursor") {
		t.Errorf("expected grouped attribute, got %q", output)
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with level, got %q", buf.String())
	}
}

func TestHandler_ShortensSessionAndHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}

	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))
	logger.Info("signals",
		"session", "abcdef123456",
		"path", filepath.Join(home, "bin", "cursor"),
	)

	output := buf.String()
	if strings.Contains(output, "abcdef123456") {
		t.Errorf("session identifier printed in full: %q", output)
	}
	if !strings.Contains(output, "session=abcd****") {
		t.Errorf("expected shortened session, got %q", output)
	}
	if !strings.Contains(output, "path=~"+string(filepath.Separator)+"bin") {
		t.Errorf("expected home-relative path, got %q", output)
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h)

	logger.Debug("debug only in json")
	logger.Info("both")

	if strings.Contains(a.String(), "debug only") {
		t.Errorf("text handler should skip debug: %q", a.String())
	}
	if !strings.Contains(b.String(), "debug only in json") {
		t.Errorf("json handler missing debug record: %q", b.String())
	}
	if !strings.Contains(a.String(), "both") || !strings.Contains(b.String(), "both") {
		t.Error("info record should reach both handlers")
	}
}

func TestMultiHandler_ReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(
		failingHandler{slog.NewTextHandler(&buf, nil)},
		slog.NewTextHandler(&buf, nil),
	)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	if err == nil {
		t.Fatal("expected error from failing handler")
	}
	if !strings.Contains(buf.String(), "msg=x") {
		t.Error("second handler should still receive the record")
	}
}
