package report

import "encoding/json"

// DiagnosticEntry is one line of the JSON diagnostic report file (spec.md
// §6, "Diagnostic report file"): {file, line, column, level, code, message}.
type DiagnosticEntry struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DiagnosticsJSON flattens every file's sorted diagnostics in a Project into
// the JSON array spec.md §6 names for --report <path>.
func DiagnosticsJSON(p *Project) ([]byte, error) {
	var entries []DiagnosticEntry
	for _, dir := range p.SortedDirectories() {
		for _, f := range dir.Files {
			for _, r := range f.Diagnostics {
				entries = append(entries, DiagnosticEntry{
					File:    r.File,
					Line:    r.Loc.StartLine,
					Column:  r.Loc.StartCol,
					Level:   string(r.Level),
					Code:    r.Code,
					Message: r.Message,
				})
			}
		}
	}
	if entries == nil {
		entries = []DiagnosticEntry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}
