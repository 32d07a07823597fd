package cst

import (
	"testing"

	"verisem/internal/token"
)

func ident(text string) *Leaf {
	return NewLeaf(token.Token{Kind: token.Ident, Text: text})
}

func kw(kind token.Kind) *Leaf {
	return NewLeaf(token.Token{Kind: kind})
}

func TestDeclaredName(t *testing.T) {
	mod := NewBranch(TagModuleDeclaration, kw(token.KwModule), ident("m"))
	if got := DeclaredName(mod); got == nil || got.Tok.Text != "m" {
		t.Fatalf("module name not found")
	}
	if DeclaredName(NewBranch(TagDataDeclaration)) != nil {
		t.Fatalf("accessor must reject foreign tags")
	}
}

func TestParamNameSkipsTypeSubtree(t *testing.T) {
	dt := NewBranch(TagDataType, NewBranch(TagReference, ident("my_t")))
	param := NewBranch(TagParamDeclaration, kw(token.KwParameter), dt, ident("WIDTH"))
	if got := ParamName(param); got == nil || got.Tok.Text != "WIDTH" {
		t.Fatalf("param name must be the first direct identifier leaf")
	}
}

func TestGenerateBlockLabel(t *testing.T) {
	labeled := NewBranch(TagGenerateBlock,
		kw(token.KwBegin), kw(token.Colon), ident("blk"))
	if got := GenerateBlockLabel(labeled); got == nil || got.Tok.Text != "blk" {
		t.Fatalf("label not extracted")
	}

	unlabeled := NewBranch(TagGenerateBlock, kw(token.KwBegin), NewBranch(TagDataDeclaration))
	if GenerateBlockLabel(unlabeled) != nil {
		t.Fatalf("unlabeled block must have no label")
	}
}

func TestGenerateElseBodyAcceptsElseIf(t *testing.T) {
	nested := NewBranch(TagConditionalGenerate)
	elseClause := NewBranch(TagGenerateElseClause, kw(token.KwElse), nested)
	if got := GenerateElseBody(elseClause); got != nested {
		t.Fatalf("else-if chain body not returned")
	}

	block := NewBranch(TagGenerateBlock)
	elseClause = NewBranch(TagGenerateElseClause, kw(token.KwElse), block)
	if got := GenerateElseBody(elseClause); got != block {
		t.Fatalf("plain else body not returned")
	}
}

func TestNamedConnections(t *testing.T) {
	conns := NewBranch(TagPortConnectionList,
		NewBranch(TagNamedPortConnection, ident("clk")),
		NewBranch(TagExpression),
		NewBranch(TagNamedPortConnection, ident("q")),
	)
	if got := NamedConnections(conns); got != 2 {
		t.Fatalf("expected 2 named connections, got %d", got)
	}
}

func TestLeftmostLeaf(t *testing.T) {
	tree := NewBranch(TagExpression,
		NewBranch(TagReference, ident("a"), kw(token.Dot), ident("b")))
	if got := LeftmostLeaf(tree); got == nil || got.Tok.Text != "a" {
		t.Fatalf("leftmost leaf not found")
	}
	if LeftmostLeaf(NewBranch(TagExpression)) != nil {
		t.Fatalf("empty subtree must yield nil")
	}
}
