// internal/prover/outcome.go
package prover

import (
	"encoding/json"
	"time"
)

// BinaryKind selects which LADR binary an invocation runs.
type BinaryKind int

const (
	BinaryProver      BinaryKind = iota // prover9
	BinaryModelFinder                   // mace4
)

func (k BinaryKind) String() string {
	if k == BinaryModelFinder {
		return "mace4"
	}
	return "prover9"
}

// Status is the terminal classification of one external invocation.
type Status int

const (
	// StatusProved: prover9 found a proof.
	StatusProved Status = iota
	// StatusDisproved: prover9 exhausted its search without a proof
	// (reported as SEARCH FAILED).
	StatusDisproved
	// StatusModelFound: mace4 found a finite model.
	StatusModelFound
	// StatusNoModel: mace4 exhausted the configured domain sizes.
	StatusNoModel
	// StatusTimedOut: the orchestrator timeout elapsed, or the caller
	// cancelled; the subprocess was terminated.
	StatusTimedOut
	// StatusProcessFailed: the binary could not be launched, or it exited
	// reporting a fatal error before producing a classifiable result.
	StatusProcessFailed
	// StatusUnrecognized: output matched no known marker. Unknown output is
	// data, not a fault.
	StatusUnrecognized
)

var statusNames = map[Status]string{
	StatusProved:        "proved",
	StatusDisproved:     "disproved",
	StatusModelFound:    "model_found",
	StatusNoModel:       "no_model_within_bounds",
	StatusTimedOut:      "timeout",
	StatusProcessFailed: "process_failed",
	StatusUnrecognized:  "unrecognized",
}

func (s Status) String() string { return statusNames[s] }

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Terminal reports whether the status is a durable answer worth keeping in
// the result cache. Timeouts, launch failures, and unrecognized output are
// retryable and only ever cached with a short TTL.
func (s Status) Terminal() bool {
	switch s {
	case StatusProved, StatusDisproved, StatusModelFound, StatusNoModel:
		return true
	}
	return false
}

// Outcome is the structured result of one invocation. Exactly one Outcome is
// produced per started invocation, on every exit path. RawOutput and Elapsed
// are always populated for diagnostics.
type Outcome struct {
	Status    Status        `json:"status"`
	Binary    BinaryKind    `json:"-"`
	Proof     string        `json:"proof,omitempty"`    // StatusProved
	Model     *Model        `json:"model,omitempty"`    // StatusModelFound
	ExitCode  int           `json:"exit_code"`          // StatusProcessFailed: non-zero or -1
	Stderr    string        `json:"stderr,omitempty"`   // StatusProcessFailed
	RawOutput string        `json:"raw_output,omitempty"`
	Elapsed   time.Duration `json:"-"`
}

// ElapsedSeconds is the JSON-friendly view of Elapsed.
func (o *Outcome) ElapsedSeconds() float64 { return o.Elapsed.Seconds() }

// Invocation is the immutable description of one external run. It is only
// ever constructed from statements that passed validation.
type Invocation struct {
	Input      string
	Binary     BinaryKind
	Timeout    time.Duration
	DomainSize int // model finder only; 0 means incremental search
}
