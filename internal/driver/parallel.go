package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"verisem/internal/diag"
	"verisem/internal/source"
)

// DirOptions configures a directory analysis run.
type DirOptions struct {
	MaxDiagnostics int
	// Jobs limits concurrent file analyses; <= 0 means GOMAXPROCS.
	Jobs int
	// Events receives per-file progress; may be nil.
	Events Sink
	// Cache, when non-nil, serves unchanged files from disk and stores
	// fresh results back.
	Cache *DiskCache
}

// ListSourceFiles returns every *.sv and *.svh file under dir, sorted for a
// deterministic run order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && (strings.HasSuffix(path, ".sv") || strings.HasSuffix(path, ".svh")) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every source file under dir, one independent symbol
// table per file. Files are preloaded serially; analysis fans out under an
// errgroup bounded by opts.Jobs. Result order matches the sorted file list.
func AnalyzeDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		opts.Events.emit(Event{Path: path, Stage: StageLoad, Status: StatusWorking})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			opts.Events.emit(Event{Path: path, Stage: StageLoad, Status: StatusError})
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(maxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			id := fileIDs[path]

			if cached, ok := lookupCache(opts.Cache, fileSet, id, maxDiagnostics); ok {
				results[i] = cached
				opts.Events.emit(Event{Path: path, Stage: StageResolve, Status: StatusCached})
				return nil
			}

			res := analyzeFile(fileSet, id, maxDiagnostics, opts.Events)
			results[i] = res

			storeCache(opts.Cache, fileSet, res)

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			opts.Events.emit(Event{Path: path, Stage: StageResolve, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
