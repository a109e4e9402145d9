// internal/prover/input.go
package prover

import (
	"fmt"
	"strings"
)

// withPeriod terminates a formula with the LADR statement period if the
// caller did not.
func withPeriod(formula string) string {
	if strings.HasSuffix(formula, ".") {
		return formula
	}
	return formula + "."
}

// ProverInput renders a prover9 input file: the premises as assumptions and
// the conclusion as the goal.
func ProverInput(premises []string, conclusion string) string {
	var b strings.Builder
	b.WriteString("formulas(assumptions).\n")
	for _, p := range premises {
		b.WriteString(withPeriod(p))
		b.WriteByte('\n')
	}
	b.WriteString("end_of_list.\n\nformulas(goals).\n")
	b.WriteString(withPeriod(conclusion))
	b.WriteString("\nend_of_list.\n")
	return b.String()
}

// ModelInput renders a mace4 input file. A zero domainSize asks mace4 to
// search domain sizes domainStart..domainEnd incrementally; a non-zero
// domainSize pins the search to that size. If negatedGoal is non-empty it is
// emitted as the goals block; mace4 searches for a model where the goal
// fails, i.e. a counterexample.
func ModelInput(premises []string, negatedGoal string, domainSize, domainStart, domainEnd, maxSeconds int) string {
	var b strings.Builder

	if domainSize > 0 {
		fmt.Fprintf(&b, "assign(domain_size, %d).\n", domainSize)
	} else {
		fmt.Fprintf(&b, "assign(domain_size, %d).\n", domainStart)
		fmt.Fprintf(&b, "assign(end_size, %d).\n", domainEnd)
	}
	fmt.Fprintf(&b, "assign(max_seconds, %d).\n\n", maxSeconds)

	b.WriteString("formulas(assumptions).\n")
	for _, p := range premises {
		b.WriteString(withPeriod(p))
		b.WriteByte('\n')
	}
	b.WriteString("end_of_list.\n")

	if negatedGoal != "" {
		b.WriteString("\nformulas(goals).\n")
		b.WriteString(withPeriod(negatedGoal))
		b.WriteString("\nend_of_list.\n")
	}

	return b.String()
}

// NegateGoal wraps a conclusion so mace4 searches for a model falsifying it.
func NegateGoal(conclusion string) string {
	return fmt.Sprintf("-((%s))", strings.TrimRight(conclusion, ". \t"))
}
