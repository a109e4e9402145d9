// internal/formula/ast.go
package formula

import "strings"

// Node is a node in a parsed formula tree. Trees are acyclic and are not
// modified after the parser returns them.
type Node interface {
	node()
	// String renders the node back to formula syntax. The rendering is
	// canonical rather than byte-identical to the input: operator structure
	// is preserved, original whitespace is not.
	String() string
}

// Term is a variable, constant, or function application appearing inside an
// atom, e.g. x, socrates, compose(g, f).
type Term struct {
	Name string
	Args []Term
}

func (t Term) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Atom is a predicate application, e.g. mortal(socrates), or a bare
// propositional name like P.
type Atom struct {
	Pred Term
}

// Equality is an atom of the form term = term.
type Equality struct {
	Left  Term
	Right Term
}

// Not is a negation.
type Not struct {
	Operand Node
}

// BinOpKind enumerates the binary connectives.
type BinOpKind int

const (
	OpAnd BinOpKind = iota
	OpOr
	OpImplies
	OpIff
)

func (op BinOpKind) String() string {
	switch op {
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpImplies:
		return "->"
	default:
		return "<->"
	}
}

// BinOp is a binary connective application.
type BinOp struct {
	Op    BinOpKind
	Left  Node
	Right Node
}

// QuantKind enumerates the quantifiers.
type QuantKind int

const (
	QuantAll QuantKind = iota
	QuantExists
)

func (q QuantKind) String() string {
	if q == QuantExists {
		return "exists"
	}
	return "all"
}

// Quant binds exactly one variable over exactly one body.
type Quant struct {
	Kind QuantKind
	Var  string
	Body Node
}

// Group is an explicitly parenthesized subformula. Kept in the tree so a
// re-render preserves the grouping the user wrote.
type Group struct {
	Inner Node
}

func (Atom) node()     {}
func (Equality) node() {}
func (Not) node()      {}
func (BinOp) node()    {}
func (Quant) node()    {}
func (Group) node()    {}

func (a Atom) String() string     { return a.Pred.String() }
func (e Equality) String() string { return e.Left.String() + " = " + e.Right.String() }
func (n Not) String() string      { return "-" + n.Operand.String() }

func (b BinOp) String() string {
	return b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}

func (q Quant) String() string {
	return q.Kind.String() + " " + q.Var + " " + q.Body.String()
}

func (g Group) String() string { return "(" + g.Inner.String() + ")" }
