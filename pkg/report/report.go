// Package report builds the directory/project-mode summary spec.md §6
// describes: a rollup of every translated file's diagnostics and exit
// status, grouped the way a real project is grouped.
//
// Grounded on the teacher's inspector/graph.Project/Package tree (a
// Project holding named Packages, each holding a FileSet) and its
// content-fingerprint helper (graph.Hash, highwayhash-based); the file/type
// metadata those hold has no equivalent here, so this package keeps only
// the rollup shape and the fingerprint, and replaces "package" (a Go import
// path) with "directory" (the natural grouping unit for a tree of .js files).
package report

import (
	"path/filepath"
	"sort"

	"github.com/viant/jstranslate/pkg/diag"
)

// File is one translated source file's outcome.
type File struct {
	Path         string // project-relative path
	Fingerprint  uint64
	ExitCode     int
	Diagnostics  []diag.Record
	ExportCount  int
}

// Directory groups every File found directly under one directory path,
// the report-mode analogue of the teacher's Package.
type Directory struct {
	Path  string
	Files []*File
}

// Project is the root of one report: every file translated in this run,
// grouped by directory, plus the totals a CLI summary line needs.
type Project struct {
	Name        string
	RootPath    string
	Directories []*Directory

	dirIndex map[string]int
}

// NewProject starts an empty report rooted at rootPath.
func NewProject(name, rootPath string) *Project {
	return &Project{Name: name, RootPath: rootPath, dirIndex: map[string]int{}}
}

// AddFile records one translated file's outcome under its directory group.
func (p *Project) AddFile(f *File) {
	dirPath := filepath.ToSlash(filepath.Dir(f.Path))
	idx, ok := p.dirIndex[dirPath]
	if !ok {
		idx = len(p.Directories)
		p.Directories = append(p.Directories, &Directory{Path: dirPath})
		p.dirIndex[dirPath] = idx
	}
	dir := p.Directories[idx]
	dir.Files = append(dir.Files, f)
}

// Totals summarizes a Project for the CLI's final status line.
type Totals struct {
	FileCount       int
	CleanCount      int // ExitCode == 0
	WarnCount       int // ExitCode == 1
	ErrorCount      int // ExitCode == 2
	DiagnosticCount int
}

// Totals walks every file once; stable regardless of directory-insertion
// order since it only sums counters.
func (p *Project) Totals() Totals {
	var t Totals
	for _, dir := range p.Directories {
		for _, f := range dir.Files {
			t.FileCount++
			t.DiagnosticCount += len(f.Diagnostics)
			switch f.ExitCode {
			case 0:
				t.CleanCount++
			case 1:
				t.WarnCount++
			default:
				t.ErrorCount++
			}
		}
	}
	return t
}

// SortedDirectories returns the Project's directories in a stable,
// deterministic order for report output (spec.md §8's determinism
// requirement applies to report text too, not just translated source).
func (p *Project) SortedDirectories() []*Directory {
	out := append([]*Directory(nil), p.Directories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	for _, dir := range out {
		sort.Slice(dir.Files, func(i, j int) bool { return dir.Files[i].Path < dir.Files[j].Path })
	}
	return out
}
