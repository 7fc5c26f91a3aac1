package logger

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestAsyncWriterDropsLinesAfterClose(t *testing.T) {
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	if err := aw.Write([]byte("before\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := aw.Write([]byte("late line\n")); !errors.Is(err, errWriterClosed) {
		t.Fatalf("late write err = %v, want errWriterClosed", err)
	}
	if got := buf.String(); got != "before\n" {
		t.Fatalf("output = %q", got)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestHandlerLogAfterShutdownDoesNotPanic(t *testing.T) {
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	log := slog.New(newStructuredHandler(handlerConfig{writer: aw, format: formatKV}))
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	LogEvent(Background(), log, slog.LevelError, "handler.panic")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output after close: %q", buf.String())
	}
}
