// internal/formula/token.go
package formula

import "fmt"

// TokenKind classifies a lexical token in a first-order formula.
type TokenKind int

const (
	TokIdent TokenKind = iota
	TokAll
	TokExists
	TokNot     // -
	TokAnd     // &
	TokOr      // |
	TokImplies // ->
	TokIff     // <->
	TokEquals  // =
	TokLParen
	TokRParen
	TokComma
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokIdent:
		return "identifier"
	case TokAll:
		return "'all'"
	case TokExists:
		return "'exists'"
	case TokNot:
		return "'-'"
	case TokAnd:
		return "'&'"
	case TokOr:
		return "'|'"
	case TokImplies:
		return "'->'"
	case TokIff:
		return "'<->'"
	case TokEquals:
		return "'='"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokComma:
		return "','"
	case TokEOF:
		return "end of input"
	default:
		return "unknown token"
	}
}

// Token is a positioned lexical token. Start and End are byte offsets into
// the source string; End is exclusive.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

func isIdentStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize converts src into a token sequence terminated by a TokEOF token.
// It is a pure function of src; on an unrecognized character it returns a
// Diagnostic pointing at the offending offset.
func Tokenize(src string) ([]Token, *Diagnostic) {
	tokens := make([]Token, 0, 16)
	i := 0

	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++

		case c == '(':
			tokens = append(tokens, Token{TokLParen, "(", i, i + 1})
			i++
		case c == ')':
			tokens = append(tokens, Token{TokRParen, ")", i, i + 1})
			i++
		case c == ',':
			tokens = append(tokens, Token{TokComma, ",", i, i + 1})
			i++
		case c == '&':
			tokens = append(tokens, Token{TokAnd, "&", i, i + 1})
			i++
		case c == '|':
			tokens = append(tokens, Token{TokOr, "|", i, i + 1})
			i++
		case c == '=':
			tokens = append(tokens, Token{TokEquals, "=", i, i + 1})
			i++

		case c == '-':
			// '->' is implication, a lone '-' is negation.
			if i+1 < len(src) && src[i+1] == '>' {
				tokens = append(tokens, Token{TokImplies, "->", i, i + 2})
				i += 2
			} else {
				tokens = append(tokens, Token{TokNot, "-", i, i + 1})
				i++
			}

		case c == '<':
			if i+2 < len(src) && src[i+1] == '-' && src[i+2] == '>' {
				tokens = append(tokens, Token{TokIff, "<->", i, i + 3})
				i += 3
			} else {
				return nil, errorDiag(i, i+1, "'<' must begin a '<->' operator")
			}

		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			text := src[start:i]
			kind := TokIdent
			switch text {
			case "all":
				kind = TokAll
			case "exists":
				kind = TokExists
			}
			tokens = append(tokens, Token{kind, text, start, i})

		default:
			return nil, errorDiag(i, i+1, fmt.Sprintf("unrecognized character %q", c))
		}
	}

	tokens = append(tokens, Token{TokEOF, "", len(src), len(src)})
	return tokens, nil
}
