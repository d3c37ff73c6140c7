package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(context.Background(), afs.New(), dir)
	assert.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_DecodesYAML(t *testing.T) {
	dir := t.TempDir()
	content := "out: dist\nruntime: skip\nstrict: true\nreport: report.json\nexclude:\n  - vendor/**\n  - \"*.min.js\"\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(context.Background(), afs.New(), dir)
	assert.NoError(t, err)
	assert.Equal(t, "dist", cfg.Out)
	assert.Equal(t, "skip", cfg.Runtime)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "report.json", cfg.Report)
	assert.Equal(t, []string{"vendor/**", "*.min.js"}, cfg.Exclude)
}

func TestMerge_OverrideWinsOnlyWhenNonZero(t *testing.T) {
	base := &Config{Out: "base-out", Runtime: "include", Strict: false, Report: ""}

	merged := base.Merge(Config{Strict: true})
	assert.Equal(t, "base-out", merged.Out, "override left Out empty, base must survive")
	assert.Equal(t, "include", merged.Runtime)
	assert.True(t, merged.Strict)
	assert.Empty(t, merged.Report)
}

func TestMerge_NonEmptyOverrideFieldsWin(t *testing.T) {
	base := &Config{Out: "base-out", Runtime: "include", Exclude: []string{"a"}}

	merged := base.Merge(Config{Out: "cli-out", Runtime: "skip", Exclude: []string{"b", "c"}})
	assert.Equal(t, "cli-out", merged.Out)
	assert.Equal(t, "skip", merged.Runtime)
	assert.Equal(t, []string{"b", "c"}, merged.Exclude)
}
