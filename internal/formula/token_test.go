package formula

import "testing"

func TestTokenize(t *testing.T) {
	t.Run("operators and positions", func(t *testing.T) {
		src := "p(x) -> -q | r & s <-> x = y"
		tokens, diag := Tokenize(src)
		if diag != nil {
			t.Fatalf("Tokenize: %v", diag)
		}

		wantKinds := []TokenKind{
			TokIdent, TokLParen, TokIdent, TokRParen, TokImplies,
			TokNot, TokIdent, TokOr, TokIdent, TokAnd, TokIdent,
			TokIff, TokIdent, TokEquals, TokIdent, TokEOF,
		}
		if len(tokens) != len(wantKinds) {
			t.Fatalf("got %d tokens, want %d", len(tokens), len(wantKinds))
		}
		for i, k := range wantKinds {
			if tokens[i].Kind != k {
				t.Errorf("token %d: kind = %v, want %v", i, tokens[i].Kind, k)
			}
		}

		// Every token's text must match its source slice.
		for _, tok := range tokens {
			if tok.Kind == TokEOF {
				continue
			}
			if got := src[tok.Start:tok.End]; got != tok.Text {
				t.Errorf("token %q: source slice [%d:%d] = %q", tok.Text, tok.Start, tok.End, got)
			}
		}
	})

	t.Run("quantifier keywords", func(t *testing.T) {
		tokens, diag := Tokenize("all x exists y allowed")
		if diag != nil {
			t.Fatalf("Tokenize: %v", diag)
		}
		if tokens[0].Kind != TokAll {
			t.Errorf("token 0 = %v, want TokAll", tokens[0].Kind)
		}
		if tokens[2].Kind != TokExists {
			t.Errorf("token 2 = %v, want TokExists", tokens[2].Kind)
		}
		// "allowed" merely starts with "all"; it is an identifier.
		if tokens[4].Kind != TokIdent || tokens[4].Text != "allowed" {
			t.Errorf("token 4 = %v %q, want identifier \"allowed\"", tokens[4].Kind, tokens[4].Text)
		}
	})

	t.Run("eof token at source length", func(t *testing.T) {
		tokens, diag := Tokenize("p")
		if diag != nil {
			t.Fatalf("Tokenize: %v", diag)
		}
		last := tokens[len(tokens)-1]
		if last.Kind != TokEOF || last.Start != 1 {
			t.Errorf("eof token = %+v, want TokEOF at offset 1", last)
		}
	})

	t.Run("unrecognized character reports offset", func(t *testing.T) {
		_, diag := Tokenize("p(x) @ q(x)")
		if diag == nil {
			t.Fatal("Tokenize = nil diagnostic, want error")
		}
		if diag.Start != 5 {
			t.Errorf("diag.Start = %d, want 5", diag.Start)
		}
		if diag.Severity != SeverityError {
			t.Errorf("diag.Severity = %v, want error", diag.Severity)
		}
	})

	t.Run("lone '<' is an error", func(t *testing.T) {
		_, diag := Tokenize("p < q")
		if diag == nil {
			t.Fatal("Tokenize = nil diagnostic, want error")
		}
		if diag.Start != 2 {
			t.Errorf("diag.Start = %d, want 2", diag.Start)
		}
	})
}
