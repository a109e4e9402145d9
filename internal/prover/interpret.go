// internal/prover/interpret.go
package prover

import "strings"

// Output markers emitted by the LADR binaries. Matching is marker-driven;
// exit codes are recorded but never drive classification, since prover9 exits
// non-zero for ordinary failed searches.
const (
	markerProved        = "THEOREM PROVED"
	markerProofStart    = "PROOF ="
	markerProofEnd      = "===="
	markerSearchFailed  = "SEARCH FAILED"
	markerSearchStopped = "SEARCH TERMINATED"
	markerFatal         = "Fatal error"
	markerDomainSize    = "DOMAIN SIZE"
	markerModel         = "interpretation("
)

// Interpret maps the raw channels of a finished invocation to a structured
// Outcome. A timed-out run short-circuits to StatusTimedOut without textual
// parsing. Output matching no known marker yields StatusUnrecognized, never
// an error.
func Interpret(raw *RawResult, kind BinaryKind) *Outcome {
	out := &Outcome{
		Binary:    kind,
		ExitCode:  raw.ExitCode,
		RawOutput: raw.Stdout,
		Elapsed:   raw.Elapsed,
	}

	if raw.TimedOut {
		out.Status = StatusTimedOut
		return out
	}

	if strings.Contains(raw.Stderr, markerFatal) || strings.Contains(raw.Stdout, markerFatal) {
		out.Status = StatusProcessFailed
		out.Stderr = raw.Stderr
		return out
	}

	switch kind {
	case BinaryProver:
		interpretProver(raw, out)
	case BinaryModelFinder:
		interpretModelFinder(raw, out)
	}
	return out
}

func interpretProver(raw *RawResult, out *Outcome) {
	switch {
	case strings.Contains(raw.Stdout, markerProved):
		out.Status = StatusProved
		out.Proof = extractProof(raw.Stdout)
	case strings.Contains(raw.Stdout, markerSearchFailed):
		out.Status = StatusDisproved
	default:
		out.Status = StatusUnrecognized
		out.Stderr = raw.Stderr
	}
}

func interpretModelFinder(raw *RawResult, out *Outcome) {
	switch {
	case strings.Contains(raw.Stdout, markerDomainSize) && strings.Contains(raw.Stdout, markerModel):
		out.Status = StatusModelFound
		out.Model = ParseModel(raw.Stdout)
	case strings.Contains(raw.Stdout, markerSearchFailed), strings.Contains(raw.Stdout, markerSearchStopped):
		out.Status = StatusNoModel
	default:
		out.Status = StatusUnrecognized
		out.Stderr = raw.Stderr
	}
}

// extractProof pulls the proof body prover9 prints between "PROOF =" and the
// closing separator line.
func extractProof(stdout string) string {
	_, rest, ok := strings.Cut(stdout, markerProofStart)
	if !ok {
		return ""
	}
	proof, _, _ := strings.Cut(rest, markerProofEnd)
	return strings.TrimSpace(proof)
}
