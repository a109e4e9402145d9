// internal/prover/runner.go
package prover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"
)

// RawResult is what the orchestrator hands to the interpreter: the captured
// channels of one reaped subprocess.
type RawResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
	TimedOut bool // deadline or caller cancellation fired before exit
}

// Runner spawns LADR binaries with a bounded in-flight pool. Once a run
// starts it always reaches exactly one terminal RawResult and the subprocess
// is reaped on every exit path: normal exit, timeout (SIGTERM, then SIGKILL
// after the grace period), caller cancellation, and launch failure alike.
type Runner struct {
	binDir string
	grace  time.Duration
	slots  chan struct{}
}

// NewRunner creates a Runner for binaries under binDir. maxConcurrent bounds
// the number of live subprocesses; further invocations wait for a slot.
func NewRunner(binDir string, maxConcurrent int, grace time.Duration) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Runner{
		binDir: binDir,
		grace:  grace,
		slots:  make(chan struct{}, maxConcurrent),
	}
}

// BinaryPath resolves the executable for kind, preferring the bare name and
// falling back to the Windows-style .exe the LADR distribution also ships.
func (r *Runner) BinaryPath(kind BinaryKind) (string, error) {
	for _, name := range []string{kind.String(), kind.String() + ".exe"} {
		p := filepath.Join(r.binDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found in %s", kind, r.binDir)
}

// Run executes one invocation and returns its raw channels. The returned
// error is non-nil only for orchestrator-level faults (no slot because ctx
// ended, temp file failure); every started subprocess yields a RawResult.
func (r *Runner) Run(ctx context.Context, inv Invocation) (*RawResult, error) {
	select {
	case r.slots <- struct{}{}:
		defer func() { <-r.slots }()
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for prover slot: %w", ctx.Err())
	}

	exe, err := r.BinaryPath(inv.Binary)
	if err != nil {
		return nil, err
	}

	inputPath, err := writeInputFile(inv.Input)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(inputPath); err != nil {
			// Cleanup failure never escalates; the outcome already has a
			// definite value.
			log.Printf("prover: remove input file %s: %v", inputPath, err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, exe, "-f", inputPath)
	cmd.Dir = filepath.Dir(exe)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// On timeout or cancellation, ask nicely first and force-kill only after
	// the grace period.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.grace

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	res := &RawResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: elapsed,
	}

	if runErr != nil && runCtx.Err() != nil {
		// Deadline or caller cancellation interrupted the run. The process
		// is already reaped: cmd.Run does not return before Wait completes.
		// A nil runErr means the process exited cleanly before the
		// interruption took effect, and its result stands.
		res.TimedOut = true
		res.ExitCode = -1
		log.Printf("prover: %s terminated after %s: %v", inv.Binary, elapsed, runCtx.Err())
		return res, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Launch-level failure (e.g. binary not executable).
			res.ExitCode = -1
			return res, fmt.Errorf("run %s: %w", inv.Binary, runErr)
		}
	}

	log.Printf("prover: %s finished in %s (exit=%d)", inv.Binary, elapsed, res.ExitCode)
	return res, nil
}

func writeInputFile(content string) (string, error) {
	tmp, err := os.CreateTemp("", "mcp-logic-*.in")
	if err != nil {
		return "", fmt.Errorf("create input file: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write input file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close input file: %w", err)
	}
	return tmp.Name(), nil
}
