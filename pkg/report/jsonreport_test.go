package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jstranslate/pkg/diag"
)

func TestDiagnosticsJSON_FlattensEveryFileSortedByPath(t *testing.T) {
	p := NewProject("demo", "/repo")
	p.AddFile(&File{
		Path: "b.js",
		Diagnostics: []diag.Record{
			{File: "b.js", Loc: diag.Location{StartLine: 2, StartCol: 3}, Level: diag.Warn, Code: "JSR-TEST", Message: "warn here"},
		},
	})
	p.AddFile(&File{
		Path: "a.js",
		Diagnostics: []diag.Record{
			{File: "a.js", Loc: diag.Location{StartLine: 1, StartCol: 1}, Level: diag.Error, Code: "JSR-OTHER", Message: "fatal here"},
		},
	})

	data, err := DiagnosticsJSON(p)
	assert.NoError(t, err)

	var entries []DiagnosticEntry
	assert.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 2)
	assert.Equal(t, "a.js", entries[0].File)
	assert.Equal(t, 1, entries[0].Line)
	assert.Equal(t, "error", entries[0].Level)
	assert.Equal(t, "b.js", entries[1].File)
}

func TestDiagnosticsJSON_EmptyProjectProducesEmptyArray(t *testing.T) {
	p := NewProject("demo", "/repo")
	data, err := DiagnosticsJSON(p)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
