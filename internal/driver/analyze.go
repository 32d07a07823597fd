// Package driver runs the analysis pipeline: load, parse, build the symbol
// table, resolve. Single files run synchronously; directories fan out one
// goroutine per file, since every file owns an independent scope tree.
package driver

import (
	"verisem/internal/diag"
	"verisem/internal/lexer"
	"verisem/internal/parser"
	"verisem/internal/source"
	"verisem/internal/symtab"
	"verisem/internal/token"
)

// DefaultMaxDiagnostics bounds a file's diagnostic bag when the caller does
// not say otherwise.
const DefaultMaxDiagnostics = 256

// FileResult is the analysis outcome for one file. Table is nil when the
// result was served from the disk cache or the file failed to load.
type FileResult struct {
	Path   string
	FileID source.FileID
	Table  *symtab.SymbolTable
	Bag    *diag.Bag
	Cached bool
}

// AnalyzeFile runs the full pipeline on one already-loaded file.
func AnalyzeFile(fileSet *source.FileSet, id source.FileID, maxDiagnostics int) FileResult {
	return analyzeFile(fileSet, id, maxDiagnostics, nil)
}

// analyzeFile reports each pipeline stage to events as it starts.
func analyzeFile(fileSet *source.FileSet, id source.FileID, maxDiagnostics int, events Sink) FileResult {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	file := fileSet.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	events.emit(Event{Path: file.Path, Stage: StageParse, Status: StatusWorking})
	root := parser.ParseFile(file, parser.Options{Reporter: reporter})

	events.emit(Event{Path: file.Path, Stage: StageSymbols, Status: StatusWorking})
	table := symtab.Build(root, file, reporter)

	events.emit(Event{Path: file.Path, Stage: StageResolve, Status: StatusWorking})
	table.Resolve(reporter)

	return FileResult{
		Path:   file.Path,
		FileID: id,
		Table:  table,
		Bag:    bag,
	}
}

// TokenizeFile scans one loaded file into its token stream.
func TokenizeFile(fileSet *source.FileSet, id source.FileID, maxDiagnostics int) ([]token.Token, *diag.Bag) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}
