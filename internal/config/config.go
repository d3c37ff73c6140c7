// Package config loads `.jstranslate.yaml`, the project-level defaults
// spec.md §6 lets CLI flags override (a project wanting --strict always on,
// or a fixed --out directory, without every invocation repeating it).
//
// The teacher only reaches for gopkg.in/yaml.v3 in test fixtures
// (analyzer/analyzer_test.go's expectYaml decoding); this package is the
// first production use of that same library in this codebase, for the
// config shape yaml.v3 is built for: struct-tagged decode of a small,
// human-edited file.
package config

import (
	"context"
	"path/filepath"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// FileName is the conventional config file name searched for at a project root.
const FileName = ".jstranslate.yaml"

// Config is the decoded shape of .jstranslate.yaml. Every field mirrors a
// cmd/jstranslate flag of the same purpose (spec.md §6); a zero value means
// "let the flag/default decide".
type Config struct {
	Out     string   `yaml:"out"`     // default --out directory
	Runtime string   `yaml:"runtime"` // "include" or "skip"
	Strict  bool     `yaml:"strict"`
	Report  string   `yaml:"report"` // default --report <path>
	Exclude []string `yaml:"exclude"` // glob patterns; decoded and merged, but not applied by cmd/jstranslate's directory walk
}

// Load reads and decodes rootDir/.jstranslate.yaml. A missing file is not an
// error: it returns a zero-value Config, so callers can always apply
// Config on top of their own defaults unconditionally.
func Load(ctx context.Context, fs afs.Service, rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, FileName)
	exists, err := fs.Exists(ctx, path)
	if err != nil || !exists {
		return &Config{}, nil
	}
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge returns a copy of c in which every non-zero field of override
// replaces the corresponding field (the CLI flags actually passed win).
func (c *Config) Merge(override Config) Config {
	merged := *c
	if override.Out != "" {
		merged.Out = override.Out
	}
	if override.Runtime != "" {
		merged.Runtime = override.Runtime
	}
	if override.Strict {
		merged.Strict = true
	}
	if override.Report != "" {
		merged.Report = override.Report
	}
	if len(override.Exclude) > 0 {
		merged.Exclude = override.Exclude
	}
	return merged
}
