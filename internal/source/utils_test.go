package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	in := []byte("a\r\nb\rc\n")
	out, changed := normalizeCRLF(in)
	if !changed {
		t.Fatalf("expected change")
	}
	if !bytes.Equal(out, []byte("a\nb\rc\n")) {
		t.Fatalf("unexpected output: %q", out)
	}

	same := []byte("no carriage returns\n")
	out, changed = normalizeCRLF(same)
	if changed || !bytes.Equal(out, same) {
		t.Fatalf("expected untouched content")
	}
}

func TestRemoveBOM(t *testing.T) {
	in := []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}
	out, had := removeBOM(in)
	if !had || !bytes.Equal(out, []byte("hi")) {
		t.Fatalf("BOM not stripped: %q", out)
	}
	out, had = removeBOM([]byte("hi"))
	if had || !bytes.Equal(out, []byte("hi")) {
		t.Fatalf("unexpected BOM strip")
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\nef")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
	}
	for _, tc := range cases {
		if got := toLineCol(idx, tc.off); got != tc.want {
			t.Fatalf("off %d: expected %v, got %v", tc.off, tc.want, got)
		}
	}
}
