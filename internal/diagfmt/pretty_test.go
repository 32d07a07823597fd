package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"verisem/internal/diag"
	"verisem/internal/source"
)

func sampleDiags(t *testing.T) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sv", []byte("module m;\n  wire w = missing;\nendmodule\n"))

	// Span of "missing" on line 2.
	content := "module m;\n  wire w = missing;\n"
	start := uint32(strings.Index(content, "missing"))
	d := diag.NewError(diag.SymUnresolvedSymbol,
		source.Span{File: id, Start: start, End: start + 7},
		`unable to resolve symbol "missing" from context $root::m`)
	return fs, []diag.Diagnostic{d}
}

func TestPrettyOutput(t *testing.T) {
	fs, diags := sampleDiags(t)

	var sb strings.Builder
	if err := Pretty(&sb, fs, diags, Options{Color: ColorNever}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"m.sv:2:12:",
		"ERROR V3002:",
		`unable to resolve symbol "missing"`,
		"wire w = missing;",
		"^^^^^^^",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyNeverColorsWhenDisabled(t *testing.T) {
	fs, diags := sampleDiags(t)

	var sb strings.Builder
	if err := Pretty(&sb, fs, diags, Options{Color: ColorNever, IsTTY: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(sb.String(), "\x1b[") {
		t.Fatalf("ANSI escapes present with color disabled")
	}
}

func TestPrettyRendersNotes(t *testing.T) {
	fs, diags := sampleDiags(t)
	diags[0] = diags[0].WithNote(source.Span{File: diags[0].Primary.File}, "previously declared here")

	var sb strings.Builder
	if err := Pretty(&sb, fs, diags, Options{Color: ColorNever}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(sb.String(), "note: previously declared here") {
		t.Fatalf("note not rendered:\n%s", sb.String())
	}
}

func TestJSONOutput(t *testing.T) {
	fs, diags := sampleDiags(t)

	var sb strings.Builder
	if err := JSON(&sb, fs, diags); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(decoded))
	}
	entry := decoded[0]
	if entry["severity"] != "ERROR" || entry["code"] != "V3002" || entry["phase"] != "symbols" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["file"] != "m.sv" || entry["line"] != float64(2) {
		t.Fatalf("unexpected location: %v", entry)
	}
}
