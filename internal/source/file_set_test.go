package source

import (
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sv", []byte("module m;\nendmodule\n"))

	f := fs.Get(id)
	if f.Path != "test.sv" {
		t.Fatalf("unexpected path %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("expected 2 newline entries, got %d", len(f.LineIdx))
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sv", []byte("module m;\nendmodule\n"))

	// "endmodule" starts at offset 10 (line 2, col 1).
	start, end := fs.Resolve(Span{File: id, Start: 10, End: 19})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("unexpected start %v", start)
	}
	if end.Line != 2 || end.Col != 10 {
		t.Fatalf("unexpected end %v", end)
	}
}

func TestFileSetGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.sv", []byte("x"))
	id2 := fs.AddVirtual("a.sv", []byte("y"))

	f, ok := fs.GetByPath("a.sv")
	if !ok {
		t.Fatalf("expected file")
	}
	if f.ID != id2 {
		t.Fatalf("index must point at latest version")
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sv", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "second" {
		t.Fatalf("expected %q, got %q", "second", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("expected %q, got %q", "third", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("expected empty line, got %q", got)
	}
}
