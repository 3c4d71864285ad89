package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/tair-lang/tair/internal/config"
)

// TestRunDeterministicUnderTestMode exercises config.IsTestMode's effect on
// the smoke-test CLI's summary line: the elapsed-time field must be a fixed
// placeholder rather than a wall-clock duration, so output is comparable
// across runs.
func TestRunDeterministicUnderTestMode(t *testing.T) {
	config.IsTestMode = true
	defer func() { config.IsTestMode = false }()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	code := run()

	w.Close()
	os.Stdout = oldStdout

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading pipe: %v", err)
	}

	if code != 0 {
		t.Fatalf("expected run() to return 0, got %d", code)
	}
	if !strings.Contains(string(out), "in 0s,") {
		t.Fatalf("expected a deterministic elapsed field, got %q", out)
	}
}
