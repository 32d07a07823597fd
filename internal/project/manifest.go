// Package project locates and reads the verisem.toml project manifest.
package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "verisem.toml"

// Manifest is the decoded verisem.toml.
type Manifest struct {
	Project  ProjectSection  `toml:"project"`
	Analysis AnalysisSection `toml:"analysis"`
}

// ProjectSection names the project and its source roots.
type ProjectSection struct {
	Name string `toml:"name"`
	// SourceDirs lists directories scanned for *.sv/*.svh files, relative
	// to the manifest. Empty means the manifest's own directory.
	SourceDirs []string `toml:"source_dirs"`
}

// AnalysisSection tunes the analysis pipeline.
type AnalysisSection struct {
	// MaxDiagnostics bounds the per-file diagnostic bag; 0 keeps the
	// built-in default.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Jobs is the default parallelism for directory analysis; 0 means one
	// worker per CPU.
	Jobs int `toml:"jobs"`
	// DiskCache enables the on-disk analysis cache.
	DiskCache bool `toml:"disk_cache"`
}

// LoadManifest reads and decodes one manifest file.
func LoadManifest(path string) (*Manifest, error) {
	// #nosec G304 -- path comes from manifest discovery or the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// LoadFromDir discovers the manifest starting at dir and loads it. The
// second return value is false when no manifest exists, which is not an
// error: the tool runs fine without a project.
func LoadFromDir(dir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(dir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}
