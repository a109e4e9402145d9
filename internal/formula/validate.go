// internal/formula/validate.go
package formula

import (
	"fmt"
	"strings"
)

// reserved are LADR keywords that cannot be used as predicate or function
// names. "all" and "exists" are handled by the tokenizer.
var reserved = map[string]bool{
	"true":        true,
	"false":       true,
	"end_of_list": true,
}

// ValidationResult is the outcome of validating one statement. Warnings
// never flip Valid to false; only SeverityError diagnostics do.
type ValidationResult struct {
	Formula     string       `json:"formula"`
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Errors returns only the error-severity diagnostics.
func (r ValidationResult) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics.
func (r ValidationResult) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Validate tokenizes, parses, and style-checks a single statement. A trailing
// LADR period is ignored for analysis. Validate holds no state; every call is
// independent.
func Validate(statement string) ValidationResult {
	res := ValidationResult{Formula: statement}

	clean := strings.TrimRight(statement, ". \t\n\r")
	if strings.TrimSpace(clean) == "" {
		res.Diagnostics = append(res.Diagnostics, *errorDiag(0, len(statement), "empty statement"))
		return res
	}

	tokens, diag := Tokenize(clean)
	if diag != nil {
		res.Diagnostics = append(res.Diagnostics, *diag)
		return res
	}

	node, diag := Parse(clean)
	if diag != nil {
		res.Diagnostics = append(res.Diagnostics, *diag)
	}

	res.Diagnostics = append(res.Diagnostics, styleChecks(clean, tokens)...)
	if node != nil {
		res.Diagnostics = append(res.Diagnostics, scopeChecks(node, len(clean))...)
	}

	res.Valid = len(res.Errors()) == 0
	return res
}

// ValidateAll validates every statement independently, continuing through
// failures, and returns results index-aligned with the input.
func ValidateAll(statements []string) []ValidationResult {
	results := make([]ValidationResult, len(statements))
	for i, s := range statements {
		results[i] = Validate(s)
	}
	return results
}

// ValidateArgument validates premises followed by the conclusion. The
// returned slice holds the premise results in order with the conclusion
// result last; ok is true only if every statement is valid.
func ValidateArgument(premises []string, conclusion string) (results []ValidationResult, ok bool) {
	results = ValidateAll(append(append([]string{}, premises...), conclusion))
	ok = true
	for _, r := range results {
		if !r.Valid {
			ok = false
		}
	}
	return results, ok
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

// styleChecks runs the token-level heuristics. These produce warnings and
// the reserved-word error; structural problems are the parser's job.
func styleChecks(src string, tokens []Token) []Diagnostic {
	var diags []Diagnostic

	implications := 0
	parens := 0

	for i, t := range tokens {
		switch t.Kind {
		case TokLParen:
			parens++

		case TokImplies, TokIff:
			if t.Kind == TokImplies {
				implications++
			}
			// Missing whitespace around the operator reads badly and is a
			// frequent typo source.
			tight := (t.Start > 0 && isIdentChar(src[t.Start-1])) ||
				(t.End < len(src) && isIdentChar(src[t.End]))
			if tight {
				diags = append(diags, warnDiag(t.Start, t.End,
					fmt.Sprintf("add spaces around %q for readability", t.Text)))
			}

		case TokAll, TokExists:
			if i+1 < len(tokens) && tokens[i+1].Kind == TokIdent {
				v := tokens[i+1]
				if isUpper(v.Text[0]) {
					diags = append(diags, warnDiag(v.Start, v.End,
						fmt.Sprintf("quantifier variable %q should start with lowercase", v.Text)))
				}
			}

		case TokIdent:
			applied := i+1 < len(tokens) && tokens[i+1].Kind == TokLParen
			if applied && reserved[t.Text] {
				diags = append(diags, *errorDiag(t.Start, t.End,
					fmt.Sprintf("%q is a reserved keyword and cannot be used as a predicate or function", t.Text)))
				continue
			}
			if applied && isUpper(t.Text[0]) {
				diags = append(diags, warnDiag(t.Start, t.End,
					fmt.Sprintf("predicate or function %q starts with uppercase; lowercase %q is the convention", t.Text, strings.ToLower(t.Text[:1])+t.Text[1:])))
			}
		}
	}

	for _, doubled := range []string{"&&", "||"} {
		if idx := strings.Index(src, doubled); idx >= 0 {
			diags = append(diags, warnDiag(idx, idx+2,
				fmt.Sprintf("doubled operator %q: did you mean a single %q?", doubled, doubled[:1])))
		}
	}

	if implications > 1 && parens == 0 {
		diags = append(diags, warnDiag(0, len(src),
			"multiple implications without parentheses; add parentheses for clarity"))
	}

	return diags
}

// scopeChecks walks the tree for quantifiers whose scope is an
// unparenthesized atom or negation. "all x p(x) -> q(x)" parses as
// "(all x p(x)) -> q(x)", which is rarely what was meant.
func scopeChecks(node Node, srcLen int) []Diagnostic {
	var diags []Diagnostic
	var walk func(n Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Quant:
			switch v.Body.(type) {
			case Atom, Equality, Not:
				diags = append(diags, warnDiag(0, srcLen,
					fmt.Sprintf("scope of %q %s is not parenthesized and ends at the first atom; wrap the intended scope in parentheses", v.Kind, v.Var)))
			}
			walk(v.Body)
		case Not:
			walk(v.Operand)
		case BinOp:
			walk(v.Left)
			walk(v.Right)
		case Group:
			walk(v.Inner)
		}
	}
	walk(node)
	return diags
}
