package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"verisem/internal/source"
)

const cleanModule = `
module m;
  wire a;
  wire b = a;
endmodule
`

const brokenModule = `
module m;
  wire w = missing;
endmodule
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sv", []byte(cleanModule))

	res := AnalyzeFile(fs, id, 0)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if res.Table == nil || res.Table.Root.FindDirectChild("m") == nil {
		t.Fatalf("symbol table missing module scope")
	}
	if got := res.Table.ResolvedChainMap()["a"]; got != "$root::m::a" {
		t.Fatalf("reference a resolved to %q", got)
	}
}

func TestAnalyzeFileReportsUnresolved(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sv", []byte(brokenModule))

	res := AnalyzeFile(fs, id, 0)
	if !res.Bag.HasErrors() {
		t.Fatalf("expected an unresolved-symbol diagnostic")
	}
}

func TestTokenizeFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sv", []byte("module m; endmodule"))

	toks, bag := TokenizeFile(fs, id, 0)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) == 0 {
		t.Fatalf("no tokens produced")
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", cleanModule)
	writeFile(t, dir, "b.sv", brokenModule)
	writeFile(t, dir, "notes.txt", "not a source file")

	var mu sync.Mutex
	var events []Event
	sink := func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}

	fileSet, results, err := AnalyzeDir(context.Background(), dir, DirOptions{
		Jobs:   2,
		Events: sink,
	})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if fileSet.Len() != 2 {
		t.Fatalf("expected 2 loaded files, got %d", fileSet.Len())
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Sorted order: a.sv before b.sv.
	if results[0].Bag.HasErrors() {
		t.Fatalf("a.sv should be clean: %v", results[0].Bag.Items())
	}
	if !results[1].Bag.HasErrors() {
		t.Fatalf("b.sv should carry an error")
	}

	mu.Lock()
	defer mu.Unlock()
	var doneStatuses int
	stages := make(map[string]map[Stage]bool)
	for _, ev := range events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			doneStatuses++
		}
		if ev.Status == StatusWorking {
			if stages[ev.Path] == nil {
				stages[ev.Path] = make(map[Stage]bool)
			}
			stages[ev.Path][ev.Stage] = true
		}
	}
	if doneStatuses != 2 {
		t.Fatalf("expected a terminal event per file, got %d", doneStatuses)
	}
	for path, seen := range stages {
		for _, stage := range []Stage{StageLoad, StageParse, StageSymbols, StageResolve} {
			if !seen[stage] {
				t.Fatalf("%s never reported stage %s", path, stage)
			}
		}
	}
	if len(stages) != 2 {
		t.Fatalf("expected stage events for 2 files, got %d", len(stages))
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	dir := t.TempDir()
	_, results, err := AnalyzeDir(context.Background(), dir, DirOptions{})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for an empty directory")
	}
}

func TestAnalyzeDirCanceled(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 8; i++ {
		writeFile(t, dir, fmt.Sprintf("m%d.sv", i), cleanModule)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := AnalyzeDir(ctx, dir, DirOptions{Jobs: 1})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sv", []byte(brokenModule))
	res := AnalyzeFile(fs, id, 0)

	storeCache(cache, fs, res)

	got, hit := lookupCache(cache, fs, id, DefaultMaxDiagnostics)
	if !hit {
		t.Fatalf("expected a cache hit for the same content")
	}
	if !got.Cached {
		t.Fatalf("cached result not marked as cached")
	}
	if got.Bag.Len() != res.Bag.Len() {
		t.Fatalf("cached diagnostics differ: %d vs %d", got.Bag.Len(), res.Bag.Len())
	}
	if got.Bag.Items()[0].Message != res.Bag.Items()[0].Message {
		t.Fatalf("cached message differs")
	}

	// Changed content must miss.
	other := fs.AddVirtual("m2.sv", []byte(cleanModule))
	if _, hit := lookupCache(cache, fs, other, DefaultMaxDiagnostics); hit {
		t.Fatalf("different content must not hit the cache")
	}
}

func TestAnalyzeDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", cleanModule)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	_, first, err := AnalyzeDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Cached {
		t.Fatalf("first run must not be served from cache")
	}

	_, second, err := AnalyzeDir(context.Background(), dir, DirOptions{Cache: cache})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].Cached {
		t.Fatalf("second run should hit the cache")
	}
	if second[0].Bag.Len() != first[0].Bag.Len() {
		t.Fatalf("cached run changed diagnostics")
	}
}

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.sv", "")
	writeFile(t, dir, "a.svh", "")
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, sub, "m.sv", "")
	writeFile(t, dir, "skip.txt", "")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Fatalf("files not sorted: %v", files)
		}
	}
}
