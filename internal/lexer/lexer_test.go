package lexer

import "testing"

func tokenKinds(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks := tokenKinds("var x = y")
	want := []string{"var", "x", "=", "y"}
	if len(toks) != len(want)+1 {
		t.Fatalf("got %d tokens, want %d (+EOF)", len(toks), len(want)+1)
	}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Literal, w)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	cases := map[string]string{
		"42":     "42",
		"3.14":   "3.14",
		"0x1F":   "0x1F",
		"1e10":   "1e10",
		".5":     ".5",
		"2.5e-3": "2.5e-3",
	}
	for src, want := range cases {
		tok := New(src).Next()
		if tok.Kind != TokNum {
			t.Errorf("%q: kind = %v, want TokNum", src, tok.Kind)
		}
		if tok.Literal != want {
			t.Errorf("%q: literal = %q, want %q", src, tok.Literal, want)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	tok := New(`"a\nb\\c"`).Next()
	if tok.Kind != TokString {
		t.Fatalf("kind = %v, want TokString", tok.Kind)
	}
	if want := "a\nb\\c"; tok.Literal != want {
		t.Errorf("literal = %q, want %q", tok.Literal, want)
	}
}

func TestLexMaximalMunchOperators(t *testing.T) {
	toks := tokenKinds("a >>>= b")
	if toks[1].Literal != ">>>=" {
		t.Errorf("got %q, want %q", toks[1].Literal, ">>>=")
	}

	toks = tokenKinds("x+++y")
	// x ++ + y : maximal munch takes "++" first, then "+".
	if toks[1].Literal != "++" || toks[2].Literal != "+" {
		t.Errorf("got %q %q, want ++ +", toks[1].Literal, toks[2].Literal)
	}
}

func TestLexSkipsComments(t *testing.T) {
	toks := tokenKinds("var /* c */ x // trailing\n= 1")
	want := []string{"var", "x", "=", "1"}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Literal, w)
		}
	}
}

func TestLexLineTracking(t *testing.T) {
	l := New("a\nb")
	first := l.Next()
	second := l.Next()
	if first.Line != 1 {
		t.Errorf("first.Line = %d, want 1", first.Line)
	}
	if second.Line != 2 {
		t.Errorf("second.Line = %d, want 2", second.Line)
	}
}
