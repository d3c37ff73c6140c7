// Package repository locates the project a translated file belongs to, so
// cmd/jstranslate can find a `.jstranslate.yaml` config and compute
// project-relative paths for report output (spec.md §6, §7).
//
// Adapted from the teacher's inspector/repository.Detector: the same
// upward marker-file walk, trimmed to four markers (a JS project's
// package.json, a go.mod, this tool's own .jstranslate.yaml, and .git), and
// with the multi-language name-extraction helpers (Maven/Gradle/Cargo/
// Poetry/etc.) dropped since they serve project types this tool never
// ingests.
package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// markers lists, in priority order, the files that identify a project root.
var markers = []string{"package.json", "go.mod", ".jstranslate.yaml", ".git"}

// Project describes the root directory a translated file lives under.
type Project struct {
	RootPath     string // absolute path to the detected root
	Type         string // "javascript", "go", or "unknown"
	Name         string
	RelativePath string // file path relative to RootPath, slash-separated
}

// Detector walks up from a file/directory looking for a project root.
type Detector struct {
	fs afs.Service
}

// New returns a Detector that reads marker files via afs, the way the
// teacher's Detector and Cache both do file I/O.
func New(fs afs.Service) *Detector {
	return &Detector{fs: fs}
}

// DetectProject finds the nearest enclosing project root for filePath.
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findRoot(ctx, startDir)
	proj := &Project{Type: "unknown", RootPath: absPath}
	if rootPath != "" {
		proj.RootPath = rootPath
		proj.Type = projectType(marker)
		proj.Name = d.extractName(ctx, rootPath, marker)
	}

	rel, err := filepath.Rel(proj.RootPath, absPath)
	if err != nil {
		rel = filepath.Base(absPath)
	}
	proj.RelativePath = filepath.ToSlash(rel)
	return proj, nil
}

func (d *Detector) findRoot(ctx context.Context, startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range markers {
			markerPath := filepath.Join(dir, marker)
			if exists, _ := d.fs.Exists(ctx, markerPath); exists {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func projectType(marker string) string {
	switch marker {
	case "package.json":
		return "javascript"
	case "go.mod":
		return "go"
	default:
		return "unknown"
	}
}

func (d *Detector) extractName(ctx context.Context, rootPath, marker string) string {
	switch marker {
	case "go.mod":
		data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "go.mod"))
		if err != nil {
			break
		}
		if mod, err := modfile.Parse("go.mod", data, nil); err == nil && mod.Module != nil {
			return mod.Module.Mod.Path
		}
	case "package.json":
		data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "package.json"))
		if err != nil {
			break
		}
		var pkg struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &pkg) == nil && pkg.Name != "" {
			return pkg.Name
		}
	}
	return filepath.Base(rootPath)
}
