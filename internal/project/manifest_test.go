package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[project]
name = "chip"
source_dirs = ["rtl", "tb"]

[analysis]
max_diagnostics = 64
jobs = 4
disk_cache = true
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != "chip" {
		t.Fatalf("name = %q", m.Project.Name)
	}
	if len(m.Project.SourceDirs) != 2 || m.Project.SourceDirs[1] != "tb" {
		t.Fatalf("source dirs = %v", m.Project.SourceDirs)
	}
	if m.Analysis.MaxDiagnostics != 64 || m.Analysis.Jobs != 4 || !m.Analysis.DiskCache {
		t.Fatalf("analysis section = %+v", m.Analysis)
	}
}

func TestLoadManifestBadToml(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project\nname =")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"chip\"\n")
	nested := filepath.Join(root, "rtl", "core")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("manifest found at %q, want under %q", path, root)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || gotRoot != root {
		t.Fatalf("FindProjectRoot = %q ok=%v err=%v", gotRoot, ok, err)
	}
}

func TestFindManifestMissing(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest where none exists")
	}
}

func TestDigestHex(t *testing.T) {
	var d Digest
	if !d.IsZero() {
		t.Fatalf("zero digest must report zero")
	}
	d[0] = 0xab
	if d.IsZero() {
		t.Fatalf("non-zero digest must not report zero")
	}
	if got := d.Hex(); len(got) != 64 || got[:2] != "ab" {
		t.Fatalf("hex = %q", got)
	}
}
