package diag

import (
	"testing"

	"verisem/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := bag.Add(NewError(SymUnresolvedSymbol, source.Span{Start: uint32(i)}, "x"))
		if i < 2 && !ok {
			t.Fatalf("add %d should succeed", i)
		}
		if i == 2 && ok {
			t.Fatalf("add beyond cap should fail")
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevWarning, SymUnresolvedMember, source.Span{File: 0, Start: 20, End: 21}, "later"))
	bag.Add(NewError(SymDuplicateSymbol, source.Span{File: 0, Start: 5, End: 6}, "earlier"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "earlier" || items[1].Message != "later" {
		t.Fatalf("unexpected order: %q then %q", items[0].Message, items[1].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	span := source.Span{File: 1, Start: 3, End: 7}
	bag.Add(NewError(SymUnresolvedSymbol, span, "same"))
	bag.Add(NewError(SymUnresolvedSymbol, span, "same"))
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("expected 1 after dedup, got %d", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{File: 1, Start: 3, End: 7}

	r.Report(SymUnresolvedSymbol, SevError, span, "msg", nil)
	r.Report(SymUnresolvedSymbol, SevError, span, "msg", nil)
	r.Report(SymUnresolvedSymbol, SevError, span, "other msg", nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestHasErrors(t *testing.T) {
	bag := NewBag(4)
	bag.Add(New(SevWarning, SymUnresolvedMember, source.Span{}, "warn"))
	if bag.HasErrors() {
		t.Fatalf("no errors expected")
	}
	if !bag.HasWarnings() {
		t.Fatalf("warning expected")
	}
	bag.Add(NewError(SymDuplicateSymbol, source.Span{}, "err"))
	if !bag.HasErrors() {
		t.Fatalf("error expected")
	}
}
