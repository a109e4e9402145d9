package prover

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// writeStub installs an executable shell script standing in for a LADR
// binary. The runner invokes it as `<binary> -f <inputfile>`, so $2 is the
// input file path.
func writeStub(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestRunnerRun(t *testing.T) {
	t.Run("passes input file and captures stdout", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "prover9", `cat "$2"`+"\n")

		r := NewRunner(dir, 2, time.Second)
		raw, err := r.Run(context.Background(), Invocation{
			Input:   ProverInput([]string{"p"}, "p"),
			Binary:  BinaryProver,
			Timeout: 5 * time.Second,
		})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !strings.Contains(raw.Stdout, "formulas(assumptions).") {
			t.Errorf("stdout = %q, want echoed input file", raw.Stdout)
		}
		if raw.ExitCode != 0 || raw.TimedOut {
			t.Errorf("raw = %+v, want clean exit", raw)
		}
	})

	t.Run("input file is removed after the run", func(t *testing.T) {
		dir := t.TempDir()
		// The stub records the input path so the test can stat it afterwards.
		pathFile := filepath.Join(dir, "seen-input")
		writeStub(t, dir, "prover9", `echo "$2" > `+pathFile+"\n")

		r := NewRunner(dir, 1, time.Second)
		if _, err := r.Run(context.Background(), Invocation{Input: "x.", Binary: BinaryProver, Timeout: 5 * time.Second}); err != nil {
			t.Fatalf("Run: %v", err)
		}

		recorded, err := os.ReadFile(pathFile)
		if err != nil {
			t.Fatalf("stub did not record input path: %v", err)
		}
		inputPath := strings.TrimSpace(string(recorded))
		if _, err := os.Stat(inputPath); !os.IsNotExist(err) {
			t.Errorf("input file %s still exists after run", inputPath)
		}
	})

	t.Run("nonzero exit is data not an error", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "prover9", "echo 'SEARCH FAILED'\nexit 2\n")

		r := NewRunner(dir, 1, time.Second)
		raw, err := r.Run(context.Background(), Invocation{Input: "x.", Binary: BinaryProver, Timeout: 5 * time.Second})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if raw.ExitCode != 2 {
			t.Errorf("ExitCode = %d, want 2", raw.ExitCode)
		}
	})

	t.Run("missing binary is an orchestrator error", func(t *testing.T) {
		r := NewRunner(t.TempDir(), 1, time.Second)
		_, err := r.Run(context.Background(), Invocation{Input: "x.", Binary: BinaryProver, Timeout: time.Second})
		if err == nil {
			t.Fatal("Run = nil error, want missing-binary failure")
		}
	})

	t.Run("timeout terminates the subprocess", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "prover9", "exec sleep 30\n")

		r := NewRunner(dir, 1, time.Second)
		start := time.Now()
		raw, err := r.Run(context.Background(), Invocation{Input: "x.", Binary: BinaryProver, Timeout: 200 * time.Millisecond})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !raw.TimedOut {
			t.Fatal("TimedOut = false, want true")
		}
		// Termination must happen within the grace period, not after the
		// stub's 30s sleep.
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("run took %s, subprocess was not terminated", elapsed)
		}
	})

	t.Run("clean exit just before the deadline keeps its result", func(t *testing.T) {
		dir := t.TempDir()
		// The binary exits 0 with its output well before the deadline, but
		// the background child inherits the stdout pipe and holds it open
		// past it, so the deadline fires while the exit is being collected.
		writeStub(t, dir, "prover9", "echo 'THEOREM PROVED'\nsleep 0.4 &\nexit 0\n")

		r := NewRunner(dir, 1, 5*time.Second)
		raw, err := r.Run(context.Background(), Invocation{Input: "x.", Binary: BinaryProver, Timeout: 150 * time.Millisecond})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if raw.TimedOut {
			t.Error("TimedOut = true for a process that exited cleanly")
		}
		if raw.ExitCode != 0 {
			t.Errorf("ExitCode = %d, want 0", raw.ExitCode)
		}
		if !strings.Contains(raw.Stdout, "THEOREM PROVED") {
			t.Errorf("Stdout = %q, output of the clean exit was discarded", raw.Stdout)
		}
	})

	t.Run("caller cancellation terminates the subprocess", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "prover9", "exec sleep 30\n")

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()

		r := NewRunner(dir, 1, time.Second)
		raw, err := r.Run(ctx, Invocation{Input: "x.", Binary: BinaryProver, Timeout: time.Minute})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !raw.TimedOut {
			t.Error("TimedOut = false after cancellation, want true")
		}
	})

	t.Run("pool bounds concurrent subprocesses", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "prover9", "sleep 0.3\necho done\n")

		r := NewRunner(dir, 1, time.Second)
		start := time.Now()

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := r.Run(context.Background(), Invocation{Input: "x.", Binary: BinaryProver, Timeout: 10 * time.Second}); err != nil {
					t.Errorf("Run: %v", err)
				}
			}()
		}
		wg.Wait()

		// With one slot the runs must serialize: two 300ms sleeps.
		if elapsed := time.Since(start); elapsed < 550*time.Millisecond {
			t.Errorf("two runs finished in %s, pool did not serialize them", elapsed)
		}
	})
}

func TestBinaryPath(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "mace4.exe", "true\n")

	r := NewRunner(dir, 1, time.Second)
	p, err := r.BinaryPath(BinaryModelFinder)
	if err != nil {
		t.Fatalf("BinaryPath: %v", err)
	}
	if !strings.HasSuffix(p, "mace4.exe") {
		t.Errorf("path = %s, want .exe fallback", p)
	}

	if _, err := r.BinaryPath(BinaryProver); err == nil {
		t.Error("BinaryPath(prover9) = nil error, want not found")
	}
}
