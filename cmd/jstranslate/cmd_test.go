package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath_NoOutUsesSiblingPysExtension(t *testing.T) {
	got := outputPath("/repo/src/app.js", "/repo/src/app.js", "")
	assert.Equal(t, "/repo/src/app.pys", got)
}

func TestOutputPath_SingleFileWithOutIsExactPath(t *testing.T) {
	got := outputPath("/repo/src/app.js", "/repo/src/app.js", "/dist/out.pys")
	assert.Equal(t, "/dist/out.pys", got)
}

func TestOutputPath_DirectoryModeMirrorsRelativeTree(t *testing.T) {
	got := outputPath("/repo/src/lib/a.js", "/repo/src", "/dist")
	assert.Equal(t, filepath.Join("/dist", "lib", "a.pys"), got)
}

func TestWriteOutput_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deep", "out.pys")
	assert.NoError(t, writeOutput(target, "print(1)\n"))

	data, err := os.ReadFile(target)
	assert.NoError(t, err)
	assert.Equal(t, "print(1)\n", string(data))
}

func TestCollectJSFiles_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		full := filepath.Join(root, rel)
		assert.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		assert.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	mustWrite("a.js", "x")
	mustWrite("lib/b.jsx", "x")
	mustWrite("lib/c.txt", "x")
	mustWrite("node_modules/dep/d.js", "x")
	mustWrite(".git/e.js", "x")
	mustWrite(".cache/f.js", "x")

	files, err := collectJSFiles(root)
	assert.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, _ := filepath.Rel(root, f)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"a.js", "lib/b.jsx"}, rels)
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, boolToInt(true))
	assert.Equal(t, 0, boolToInt(false))
}

func TestExitCodeForError(t *testing.T) {
	assert.Equal(t, 0, exitCodeForError(nil))
	assert.Equal(t, 2, exitCodeForError(assert.AnError))
}
