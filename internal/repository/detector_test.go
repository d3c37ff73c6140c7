package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestDetectProject_FindsPackageJSONRoot(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"widgets"}`), 0644))
	nested := filepath.Join(root, "src", "lib")
	assert.NoError(t, os.MkdirAll(nested, 0755))
	file := filepath.Join(nested, "a.js")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	proj, err := New(afs.New()).DetectProject(context.Background(), file)
	assert.NoError(t, err)

	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(proj.RootPath)
	assert.Equal(t, wantRoot, gotRoot)
	assert.Equal(t, "javascript", proj.Type)
	assert.Equal(t, "widgets", proj.Name)
	assert.Equal(t, "src/lib/a.js", proj.RelativePath)
}

func TestDetectProject_FindsGoModRoot(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/widgets\n\ngo 1.21\n"), 0644))
	file := filepath.Join(root, "main.js")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	proj, err := New(afs.New()).DetectProject(context.Background(), file)
	assert.NoError(t, err)
	assert.Equal(t, "go", proj.Type)
	assert.Equal(t, "example.com/widgets", proj.Name)
}

func TestDetectProject_PackageJSONTakesPriorityOverGoMod(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"front"}`), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/back\n"), 0644))
	file := filepath.Join(root, "app.js")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	proj, err := New(afs.New()).DetectProject(context.Background(), file)
	assert.NoError(t, err)
	assert.Equal(t, "javascript", proj.Type)
	assert.Equal(t, "front", proj.Name)
}

func TestDetectProject_DotGitMarkerIsUnknownType(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	file := filepath.Join(root, "app.js")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	proj, err := New(afs.New()).DetectProject(context.Background(), file)
	assert.NoError(t, err)
	assert.Equal(t, "unknown", proj.Type)
	assert.Equal(t, filepath.Base(root), proj.Name)
}
