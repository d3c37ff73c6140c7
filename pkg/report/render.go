package report

import (
	"fmt"
	"strings"
)

// Render writes a plain-text summary of a Project, the report-mode analogue
// of the per-file diagnostic lines pipeline.FormatDiagnostics already
// produces for single-file mode.
func Render(p *Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "project: %s\n", p.Name)
	fmt.Fprintf(&b, "root: %s\n\n", p.RootPath)

	for _, dir := range p.SortedDirectories() {
		label := dir.Path
		if label == "." {
			label = "(root)"
		}
		fmt.Fprintf(&b, "%s/\n", label)
		for _, f := range dir.Files {
			status := statusLabel(f.ExitCode)
			fmt.Fprintf(&b, "  %-7s %s  (%d diagnostics, %d exports)\n", status, f.Path, len(f.Diagnostics), f.ExportCount)
		}
	}

	t := p.Totals()
	fmt.Fprintf(&b, "\n%d files: %d clean, %d with warnings, %d with errors (%d diagnostics total)\n",
		t.FileCount, t.CleanCount, t.WarnCount, t.ErrorCount, t.DiagnosticCount)
	return b.String()
}

func statusLabel(exitCode int) string {
	switch exitCode {
	case 0:
		return "ok"
	case 1:
		return "warn"
	default:
		return "error"
	}
}
