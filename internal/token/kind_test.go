package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"module":    KwModule,
		"endclass":  KwEndclass,
		"generate":  KwGenerate,
		"logic":     KwLogic,
		"my_signal": Ident,
	}
	for text, want := range cases {
		if got := LookupKeyword(text); got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KwModule.String() != "module" {
		t.Fatalf("unexpected: %s", KwModule)
	}
	if ColonColon.String() != "::" {
		t.Fatalf("unexpected: %s", ColonColon)
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Kind: KwLogic}).IsPrimitiveType() {
		t.Fatalf("logic is a primitive type")
	}
	if (Token{Kind: Ident}).IsPrimitiveType() {
		t.Fatalf("ident is not a primitive type")
	}
	if !(Token{Kind: Dot}).IsHierarchyOperator() || !(Token{Kind: ColonColon}).IsHierarchyOperator() {
		t.Fatalf("hierarchy operators misclassified")
	}
}
