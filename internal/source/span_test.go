package source

import "testing"

func TestSpanEmptyAndLen(t *testing.T) {
	s := Span{File: 1, Start: 10, End: 10}
	if !s.Empty() {
		t.Fatalf("expected empty span")
	}
	s.End = 14
	if s.Empty() {
		t.Fatalf("expected non-empty span")
	}
	if got := s.Len(); got != 4 {
		t.Fatalf("expected len 4, got %d", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 8, End: 20}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Fatalf("unexpected cover: %v", c)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cover across files must be a no-op, got %v", got)
	}
}
