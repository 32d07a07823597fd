package lexer

import (
	"testing"

	"verisem/internal/diag"
	"verisem/internal/source"
	"verisem/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sv", []byte(src))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeModuleHeader(t *testing.T) {
	toks, bag := tokenize(t, "module m;\nendmodule\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	want := []token.Kind{token.KwModule, token.Ident, token.Semicolon, token.KwEndmodule, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTokenizeHierarchyOperators(t *testing.T) {
	toks, bag := tokenize(t, "pkg::cls.field")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	want := []token.Kind{token.Ident, token.ColonColon, token.Ident, token.Dot, token.Ident, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTokenizeSizedLiteral(t *testing.T) {
	toks, bag := tokenize(t, "8'hFF_0")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if toks[0].Kind != token.Number || toks[0].Text != "8'hFF_0" {
		t.Fatalf("unexpected literal token: %v %q", toks[0].Kind, toks[0].Text)
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, bag := tokenize(t, "// line\n/* block\nstill */ wire w;")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if toks[0].Kind != token.KwWire {
		t.Fatalf("comments not skipped, first token %v", toks[0].Kind)
	}
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, bag := tokenize(t, "/* never closed")
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected code %v", bag.Items()[0].Code)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, bag := tokenize(t, `"oops`)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string diagnostic")
	}
}

func TestTokenizeUnknownChar(t *testing.T) {
	toks, bag := tokenize(t, "`define")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected unknown char diagnostic")
	}
	if toks[0].Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", toks[0].Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sv", []byte("wire w;"))
	lx := New(fs.Get(id), Options{})

	p := lx.Peek()
	n := lx.Next()
	if p != n {
		t.Fatalf("peeked token must equal next token")
	}
}
