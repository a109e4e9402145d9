// internal/formula/parser.go
package formula

import "fmt"

// Parse tokenizes and parses a single formula. On failure it returns a
// Diagnostic carrying the exact source offset of the first structural error;
// the parser does not attempt recovery within a statement.
//
// Precedence, tightest to loosest: negation, '&', '|', '->', '<->'.
// '->' associates to the right ("a -> b -> c" is "a -> (b -> c)");
// '<->' chains to the left. Parentheses override precedence.
func Parse(src string) (Node, *Diagnostic) {
	tokens, diag := Tokenize(src)
	if diag != nil {
		return nil, diag
	}

	p := &parser{tokens: tokens}
	node, diag := p.parseIff()
	if diag != nil {
		return nil, diag
	}

	if trailing := p.peek(); trailing.Kind != TokEOF {
		if trailing.Kind == TokRParen {
			return nil, errorDiag(trailing.Start, trailing.End, "unmatched closing parenthesis")
		}
		return nil, errorDiag(trailing.Start, trailing.End,
			fmt.Sprintf("unexpected %s %q after complete formula", trailing.Kind, trailing.Text))
	}

	return node, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseIff() (Node, *Diagnostic) {
	left, diag := p.parseImplies()
	if diag != nil {
		return nil, diag
	}
	for p.peek().Kind == TokIff {
		p.next()
		right, diag := p.parseImplies()
		if diag != nil {
			return nil, diag
		}
		left = BinOp{Op: OpIff, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseImplies() (Node, *Diagnostic) {
	left, diag := p.parseOr()
	if diag != nil {
		return nil, diag
	}
	if p.peek().Kind == TokImplies {
		p.next()
		// Right recursion makes chained implications right-associative.
		right, diag := p.parseImplies()
		if diag != nil {
			return nil, diag
		}
		return BinOp{Op: OpImplies, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseOr() (Node, *Diagnostic) {
	left, diag := p.parseAnd()
	if diag != nil {
		return nil, diag
	}
	for p.peek().Kind == TokOr {
		p.next()
		right, diag := p.parseAnd()
		if diag != nil {
			return nil, diag
		}
		left = BinOp{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, *Diagnostic) {
	left, diag := p.parseUnary()
	if diag != nil {
		return nil, diag
	}
	for p.peek().Kind == TokAnd {
		p.next()
		right, diag := p.parseUnary()
		if diag != nil {
			return nil, diag
		}
		left = BinOp{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, *Diagnostic) {
	if p.peek().Kind == TokNot {
		p.next()
		operand, diag := p.parseUnary()
		if diag != nil {
			return nil, diag
		}
		return Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, *Diagnostic) {
	t := p.peek()
	switch t.Kind {
	case TokAll, TokExists:
		return p.parseQuantifier()

	case TokLParen:
		open := p.next()
		inner, diag := p.parseIff()
		if diag != nil {
			return nil, diag
		}
		if closing := p.peek(); closing.Kind != TokRParen {
			return nil, errorDiag(closing.Start, closing.End,
				fmt.Sprintf("unmatched opening parenthesis at offset %d: expected ')', found %s", open.Start, closing.Kind))
		}
		p.next()
		return Group{Inner: inner}, nil

	case TokIdent:
		return p.parseAtom()

	case TokEOF:
		return nil, errorDiag(t.Start, t.End, "expected a formula, found end of input")

	case TokRParen:
		return nil, errorDiag(t.Start, t.End, "unmatched closing parenthesis")

	default:
		return nil, errorDiag(t.Start, t.End,
			fmt.Sprintf("expected a formula, found %s %q", t.Kind, t.Text))
	}
}

func (p *parser) parseQuantifier() (Node, *Diagnostic) {
	quant := p.next()
	kind := QuantAll
	if quant.Kind == TokExists {
		kind = QuantExists
	}

	v := p.peek()
	if v.Kind != TokIdent {
		return nil, errorDiag(v.Start, v.End,
			fmt.Sprintf("quantifier %q must bind a variable, found %s", quant.Text, v.Kind))
	}
	p.next()

	if body := p.peek(); body.Kind == TokEOF {
		return nil, errorDiag(body.Start, body.End,
			fmt.Sprintf("quantifier %q %s is missing its body", quant.Text, v.Text))
	}

	body, diag := p.parsePrimary()
	if diag != nil {
		return nil, diag
	}
	return Quant{Kind: kind, Var: v.Text, Body: body}, nil
}

// parseAtom parses an identifier with an optional argument list, optionally
// followed by '=' and a second term, e.g. p, p(x, y), f(x) = g(y).
func (p *parser) parseAtom() (Node, *Diagnostic) {
	left, diag := p.parseTerm()
	if diag != nil {
		return nil, diag
	}

	if p.peek().Kind == TokEquals {
		p.next()
		rt := p.peek()
		if rt.Kind != TokIdent {
			return nil, errorDiag(rt.Start, rt.End,
				fmt.Sprintf("expected a term after '=', found %s", rt.Kind))
		}
		right, diag := p.parseTerm()
		if diag != nil {
			return nil, diag
		}
		return Equality{Left: *left, Right: *right}, nil
	}

	return Atom{Pred: *left}, nil
}

func (p *parser) parseTerm() (*Term, *Diagnostic) {
	name := p.next()
	term := &Term{Name: name.Text}

	if p.peek().Kind != TokLParen {
		return term, nil
	}
	open := p.next()

	if empty := p.peek(); empty.Kind == TokRParen {
		return nil, errorDiag(open.Start, empty.End,
			fmt.Sprintf("empty argument list for %q: predicates and functions must have arguments", name.Text))
	}

	for {
		at := p.peek()
		if at.Kind != TokIdent {
			return nil, errorDiag(at.Start, at.End,
				fmt.Sprintf("expected an argument term, found %s", at.Kind))
		}
		arg, diag := p.parseTerm()
		if diag != nil {
			return nil, diag
		}
		term.Args = append(term.Args, *arg)

		sep := p.peek()
		switch sep.Kind {
		case TokComma:
			p.next()
		case TokRParen:
			p.next()
			return term, nil
		default:
			return nil, errorDiag(sep.Start, sep.End,
				fmt.Sprintf("unmatched opening parenthesis at offset %d: expected ',' or ')', found %s", open.Start, sep.Kind))
		}
	}
}
