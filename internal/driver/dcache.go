package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"verisem/internal/diag"
	"verisem/internal/project"
	"verisem/internal/source"
)

// diskCacheSchemaVersion invalidates every stored payload when the format
// changes; bump it together with DiskPayload.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file analysis summaries keyed by content hash.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached summary of one analyzed file. It carries what
// the diag command needs to report without re-running the pipeline; the
// symbol table itself is rebuilt on demand.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest

	Diags     []CachedDiagnostic
	ScopeDump string
	ChainMap  map[string]string
}

// CachedDiagnostic is a Diagnostic flattened for serialization. Spans keep
// only offsets; the file is implied by the cache key.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// OpenDiskCache initializes a disk cache under the XDG cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// "files" keeps payloads separable from whatever lands here later.
	return filepath.Join(c.dir, "files", key.Hex()+".mp")
}

// Put serializes a payload and installs it atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", removeErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; the bool reports whether the key was present.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	// #nosec G304 -- p is derived from the hash, not user input
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close cache file: %v\n", closeErr)
		}
	}()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// resultToPayload flattens an analysis result for storage.
func resultToPayload(res FileResult, hash project.Digest) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.Path,
		ContentHash: hash,
	}
	if res.Table != nil {
		payload.ScopeDump = res.Table.DumpScopeTree()
		payload.ChainMap = res.Table.ResolvedChainMap()
	}
	if res.Bag != nil {
		payload.Diags = make([]CachedDiagnostic, 0, res.Bag.Len())
		for _, d := range res.Bag.Items() {
			payload.Diags = append(payload.Diags, CachedDiagnostic{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Start:    d.Primary.Start,
				End:      d.Primary.End,
			})
		}
	}
	return payload
}

// payloadToResult rebuilds a FileResult from a cached payload. Spans are
// re-anchored to the freshly loaded file ID.
func payloadToResult(payload *DiskPayload, id source.FileID, maxDiagnostics int) FileResult {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range payload.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: id, Start: d.Start, End: d.End},
		})
	}
	return FileResult{
		Path:   payload.Path,
		FileID: id,
		Bag:    bag,
		Cached: true,
	}
}

func lookupCache(cache *DiskCache, fileSet *source.FileSet, id source.FileID, maxDiagnostics int) (FileResult, bool) {
	if cache == nil {
		return FileResult{}, false
	}
	file := fileSet.Get(id)
	var payload DiskPayload
	hit, err := cache.Get(project.Digest(file.Hash), &payload)
	if err != nil || !hit {
		// A broken cache entry is treated as a miss.
		return FileResult{}, false
	}
	return payloadToResult(&payload, id, maxDiagnostics), true
}

func storeCache(cache *DiskCache, fileSet *source.FileSet, res FileResult) {
	if cache == nil || res.Table == nil {
		return
	}
	file := fileSet.Get(res.FileID)
	hash := project.Digest(file.Hash)
	if err := cache.Put(hash, resultToPayload(res, hash)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to store cache entry for %s: %v\n", res.Path, err)
	}
}
