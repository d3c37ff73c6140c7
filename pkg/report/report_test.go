package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jstranslate/pkg/diag"
)

func TestProject_AddFile_GroupsByDirectory(t *testing.T) {
	p := NewProject("demo", "/repo")
	p.AddFile(&File{Path: "src/a.js", ExitCode: 0})
	p.AddFile(&File{Path: "src/b.js", ExitCode: 1})
	p.AddFile(&File{Path: "lib/c.js", ExitCode: 2})

	assert.Len(t, p.Directories, 2)
	byPath := map[string]*Directory{}
	for _, d := range p.Directories {
		byPath[d.Path] = d
	}
	assert.Len(t, byPath["src"].Files, 2)
	assert.Len(t, byPath["lib"].Files, 1)
}

func TestProject_Totals(t *testing.T) {
	p := NewProject("demo", "/repo")
	p.AddFile(&File{Path: "a.js", ExitCode: 0})
	p.AddFile(&File{Path: "b.js", ExitCode: 1, Diagnostics: []diag.Record{{}}})
	p.AddFile(&File{Path: "c.js", ExitCode: 2, Diagnostics: []diag.Record{{}, {}}})

	tot := p.Totals()
	assert.Equal(t, 3, tot.FileCount)
	assert.Equal(t, 1, tot.CleanCount)
	assert.Equal(t, 1, tot.WarnCount)
	assert.Equal(t, 1, tot.ErrorCount)
	assert.Equal(t, 3, tot.DiagnosticCount)
}

func TestProject_SortedDirectories_Deterministic(t *testing.T) {
	p := NewProject("demo", "/repo")
	p.AddFile(&File{Path: "z/a.js"})
	p.AddFile(&File{Path: "a/b.js"})
	p.AddFile(&File{Path: "a/a.js"})

	sorted := p.SortedDirectories()
	assert.Equal(t, "a", sorted[0].Path)
	assert.Equal(t, "z", sorted[1].Path)
	assert.Equal(t, "a/a.js", sorted[0].Files[0].Path)
	assert.Equal(t, "a/b.js", sorted[0].Files[1].Path)
}

func TestRender_IncludesProjectHeaderAndTotals(t *testing.T) {
	p := NewProject("demo", "/repo")
	p.AddFile(&File{Path: "a.js", ExitCode: 0, ExportCount: 2})
	p.AddFile(&File{Path: "b.js", ExitCode: 1})

	out := Render(p)
	assert.Contains(t, out, "project: demo\n")
	assert.Contains(t, out, "root: /repo\n")
	assert.Contains(t, out, "ok      a.js")
	assert.Contains(t, out, "warn    b.js")
	assert.Contains(t, out, "2 files: 1 clean, 1 with warnings, 0 with errors")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "ok", statusLabel(0))
	assert.Equal(t, "warn", statusLabel(1))
	assert.Equal(t, "error", statusLabel(2))
	assert.Equal(t, "error", statusLabel(99))
}
