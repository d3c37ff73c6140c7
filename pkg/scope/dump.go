package scope

import "gopkg.in/yaml.v3"

// DumpYAML renders the scope tree built by Analyze, the same yaml.v3
// struct-tag encoding the teacher's analyzer/linage.Scope carries but never
// wired to an output path (--dump-scopes, spec.md "Supplemented features").
func DumpYAML(result *AnalysisResult) ([]byte, error) {
	return yaml.Marshal(result.Scopes)
}
