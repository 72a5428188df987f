package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/graindesk/config"
	"github.com/guttosm/graindesk/internal/app"
	"github.com/guttosm/graindesk/internal/dataset"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "generic", err: errors.New("boom"), want: 1},
		{name: "malformed", err: &dataset.MalformedDatasetError{Reason: "not an array"}, want: 2},
		{name: "missing field", err: fmt.Errorf("load: %w", &dataset.MissingFieldError{Index: 3, Field: "name"}), want: 2},
		{name: "duplicate", err: &dataset.DuplicateIdentifierError{ID: "v1", Name: "A", Existing: "B"}, want: 3},
		{name: "config", err: fmt.Errorf("%w: missing DATASET_PATH", config.ErrInvalidConfig), want: 4},
		{name: "reference", err: fmt.Errorf("%w: bad yaml", app.ErrReference), want: 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestRun_GenerateAndReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buyers.json")
	var out bytes.Buffer

	if err := run(context.Background(), []string{"--mode", "generate", "--dataset", path, "--seed", "7"}, &out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out.String(), "Generated ") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := run(context.Background(), []string{"--mode", "report", "--dataset", path}, &out); err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out.String(), "Buyers: ") {
		t.Fatalf("unexpected report %q", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"id": "b001", "name": "A"}, {"id": "b001", "name": "B"}]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown mode", args: []string{"--mode", "nope", "--dataset", bad}, want: 4},
		{name: "unknown flag", args: []string{"--bogus"}, want: 4},
		{name: "duplicate ids", args: []string{"--mode", "reconcile-full", "--dataset", bad}, want: 3},
		{name: "missing reference", args: []string{"--mode", "generate", "--dataset", filepath.Join(dir, "out.json"), "--reference", filepath.Join(dir, "nope.yaml")}, want: 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), tc.args, &bytes.Buffer{})
			if got := exitCode(err); got != tc.want {
				t.Fatalf("exit code %d, want %d (err=%v)", got, tc.want, err)
			}
		})
	}
}
