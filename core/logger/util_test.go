package logger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/pontusbot/core/config"
)

func TestStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"nil":       {nil, "ok"},
		"plain":     {errors.New("x"), "fail"},
		"cancelled": {fmt.Errorf("wrap: %w", context.Canceled), "cancelled"},
	}
	for name, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("%s: Status = %q, want %q", name, got, tc.want)
		}
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		in       string
		num, den int
	}{
		{"1/10", 1, 10},
		{"25", 1, 25},
		{"0", 0, 0},
		{"a/b", 0, 0},
		{"", 0, 0},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.in)
		if num != tc.num || den != tc.den {
			t.Errorf("parseRatioSpec(%q) = %d/%d, want %d/%d", tc.in, num, den, tc.num, tc.den)
		}
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	var allowed int
	for i := 0; i < 9; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Fatalf("allowed = %d, want 3", allowed)
	}
	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}
}

func TestSummarizeStrings(t *testing.T) {
	got, truncated := SummarizeStrings([]string{"a", "b", "c"}, 2)
	if got != "a,b" || !truncated {
		t.Fatalf("got %q truncated=%v", got, truncated)
	}
}

func TestBuildOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	outputs, errOutputs, closers := buildOutputs(coreconfig.LoggingConfig{
		Dir:        dir,
		BotFile:    "bot.log",
		ErrorsFile: "errors.log",
	})
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	if len(outputs) != 2 {
		t.Fatalf("outputs = %d, want stdout plus bot.log", len(outputs))
	}
	if len(errOutputs) != 1 {
		t.Fatalf("errOutputs = %d, want 1", len(errOutputs))
	}
	if len(closers) != 2 {
		t.Fatalf("closers = %d, want 2", len(closers))
	}
}

func TestCompactRID(t *testing.T) {
	if got := CompactRID("36:1:2"); got != "10.1.2" {
		t.Fatalf("CompactRID = %q", got)
	}
	if got := CompactRID("rid-x"); got != "rid-x" {
		t.Fatalf("non-matching rid must pass through, got %q", got)
	}
}
