package prover

import (
	"strings"
	"testing"
	"time"
)

const proverProvedOutput = `============================== Prover9 ===============================
Prover9 (64) version 2009-11A.
Process 4242 was started by tester on host,
============================== end of head ===========================

============================== SEARCH ================================
% Starting search at 0.01 seconds.
============================== end of search =========================

THEOREM PROVED

PROOF =
1 p -> q.  [assumption].
2 p.  [assumption].
3 q.  [goal].
====

Exiting with 1 proof.
`

const proverFailedOutput = `============================== SEARCH ================================
% Starting search at 0.01 seconds.

SEARCH FAILED

Exiting with failure.
`

const mace4ModelOutput = `============================== Mace4 =================================
Mace4 (64) version 2009-11A.

============================== DOMAIN SIZE 2 =========================

============================== MODEL =================================

interpretation( 2, [number=1, seconds=0], [

        function(a, [ 0 ]),

        function(b, [ 1 ]),

        relation(P(_), [ 1, 0 ])
]).

end_of_list.

Exiting with 1 model.
`

const mace4ExhaustedOutput = `============================== Mace4 =================================

SEARCH FAILED

Exiting with failure.
`

func TestInterpretProver(t *testing.T) {
	t.Run("theorem proved", func(t *testing.T) {
		out := Interpret(&RawResult{Stdout: proverProvedOutput, Elapsed: 40 * time.Millisecond}, BinaryProver)
		if out.Status != StatusProved {
			t.Fatalf("Status = %v, want proved", out.Status)
		}
		if !strings.Contains(out.Proof, "[assumption]") {
			t.Errorf("Proof = %q, want extracted proof lines", out.Proof)
		}
		if out.RawOutput != proverProvedOutput {
			t.Error("RawOutput not preserved")
		}
		if out.Elapsed != 40*time.Millisecond {
			t.Errorf("Elapsed = %v, want 40ms", out.Elapsed)
		}
	})

	t.Run("search failed maps to disproved", func(t *testing.T) {
		out := Interpret(&RawResult{Stdout: proverFailedOutput, ExitCode: 2}, BinaryProver)
		if out.Status != StatusDisproved {
			t.Errorf("Status = %v, want disproved", out.Status)
		}
	})

	t.Run("fatal error on stderr maps to process failure", func(t *testing.T) {
		raw := &RawResult{Stdout: "", Stderr: "Fatal error:  bad formula (c 7)", ExitCode: 1}
		out := Interpret(raw, BinaryProver)
		if out.Status != StatusProcessFailed {
			t.Fatalf("Status = %v, want process_failed", out.Status)
		}
		if out.Stderr == "" || out.ExitCode != 1 {
			t.Errorf("Stderr/ExitCode not carried: %+v", out)
		}
	})

	t.Run("unknown output is data not a crash", func(t *testing.T) {
		out := Interpret(&RawResult{Stdout: "something entirely new"}, BinaryProver)
		if out.Status != StatusUnrecognized {
			t.Fatalf("Status = %v, want unrecognized", out.Status)
		}
		if out.RawOutput != "something entirely new" {
			t.Error("RawOutput must carry the unclassified text")
		}
	})

	t.Run("timed out short-circuits without parsing", func(t *testing.T) {
		// Marker text present, but the orchestrator already declared timeout.
		out := Interpret(&RawResult{Stdout: proverProvedOutput, TimedOut: true}, BinaryProver)
		if out.Status != StatusTimedOut {
			t.Errorf("Status = %v, want timeout", out.Status)
		}
	})
}

func TestInterpretModelFinder(t *testing.T) {
	t.Run("model found", func(t *testing.T) {
		out := Interpret(&RawResult{Stdout: mace4ModelOutput}, BinaryModelFinder)
		if out.Status != StatusModelFound {
			t.Fatalf("Status = %v, want model_found", out.Status)
		}
		if out.Model == nil {
			t.Fatal("Model = nil")
		}
		if out.Model.DomainSize != 2 {
			t.Errorf("DomainSize = %d, want 2", out.Model.DomainSize)
		}
		if len(out.Model.Relations) != 1 || !strings.Contains(out.Model.Relations[0], "P(_)") {
			t.Errorf("Relations = %v, want the P relation", out.Model.Relations)
		}
		if len(out.Model.Functions) != 2 {
			t.Errorf("Functions = %v, want a and b", out.Model.Functions)
		}
		if !strings.HasPrefix(out.Model.Interpretation, "interpretation(") {
			t.Errorf("Interpretation = %q, want raw block", out.Model.Interpretation)
		}
	})

	t.Run("search exhausted maps to no model", func(t *testing.T) {
		out := Interpret(&RawResult{Stdout: mace4ExhaustedOutput, ExitCode: 2}, BinaryModelFinder)
		if out.Status != StatusNoModel {
			t.Errorf("Status = %v, want no_model_within_bounds", out.Status)
		}
	})

	t.Run("search terminated also maps to no model", func(t *testing.T) {
		out := Interpret(&RawResult{Stdout: "SEARCH TERMINATED\n"}, BinaryModelFinder)
		if out.Status != StatusNoModel {
			t.Errorf("Status = %v, want no_model_within_bounds", out.Status)
		}
	})
}

func TestStatusTerminal(t *testing.T) {
	durable := []Status{StatusProved, StatusDisproved, StatusModelFound, StatusNoModel}
	transient := []Status{StatusTimedOut, StatusProcessFailed, StatusUnrecognized}

	for _, s := range durable {
		if !s.Terminal() {
			t.Errorf("%v.Terminal() = false, want true", s)
		}
	}
	for _, s := range transient {
		if s.Terminal() {
			t.Errorf("%v.Terminal() = true, want false", s)
		}
	}
}
