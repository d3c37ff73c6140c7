// Package diag implements the diagnostic bus threaded through every pipeline
// stage: an append-only sequence of structured records, sortable for stable
// output and promotable to fatal in strict mode.
package diag

import "sort"

// Level classifies the severity of a Record.
type Level string

const (
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
)

// Stable diagnostic codes. New codes should follow the JSR-<TOPIC> shape.
const (
	CodeParseError       = "JSR-PARSE"
	CodeUnsupportedSyn   = "JSR-UNSUPPORTED"
	CodeWith             = "JSR-WITH"
	CodeEval             = "JSR-EVAL"
	CodeArguments        = "JSR-ARGUMENTS"
	CodeDoWhile          = "JSR-DO-WHILE"
	CodeSparseArray      = "JSR-SPARSE-ARRAY"
	CodeLabeledBreak     = "JSR-LABELED-BREAK"
	CodeGetterSetter     = "JSR-GETTER-SETTER"
	CodeDynamicProto     = "JSR-DYNAMIC-PROTO"
	CodeDuplicateBinding = "JSR-DUP-BINDING"
	CodeShadowVar        = "JSR-SHADOW-VAR"
	CodeUnresolvedGlobal = "JSR-UNRESOLVED-GLOBAL"
	CodeMixedModuleShape = "JSR-MIXED-MODULE"
	CodeStrictPromoted   = "JSR-STRICT-PROMOTED"
	CodeThisTopLevel     = "JSR-THIS-TOP-LEVEL"
	CodeThisOrdinary     = "JSR-THIS-ORDINARY"
)

// Location is a 1-based line/column span in the source file.
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Record is a single diagnostic emitted by any stage.
type Record struct {
	File    string
	Loc     Location
	Level   Level
	Code    string
	Message string
}

// Bus is the append-only diagnostic accumulator passed through all stages.
type Bus struct {
	records []Record
}

// NewBus creates an empty diagnostic bus.
func NewBus() *Bus {
	return &Bus{}
}

// Add appends a record to the bus.
func (b *Bus) Add(r Record) {
	b.records = append(b.records, r)
}

// Info appends an info-level record.
func (b *Bus) Info(file string, loc Location, code, message string) {
	b.Add(Record{File: file, Loc: loc, Level: Info, Code: code, Message: message})
}

// Warn appends a warn-level record.
func (b *Bus) Warn(file string, loc Location, code, message string) {
	b.Add(Record{File: file, Loc: loc, Level: Warn, Code: code, Message: message})
}

// Error appends an error-level record.
func (b *Bus) Error(file string, loc Location, code, message string) {
	b.Add(Record{File: file, Loc: loc, Level: Error, Code: code, Message: message})
}

// Records returns a copy of the accumulated records, unsorted (insertion order).
func (b *Bus) Records() []Record {
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len reports the number of accumulated records.
func (b *Bus) Len() int {
	return len(b.records)
}

// HasErrors reports whether any error-level record has been recorded.
func (b *Bus) HasErrors() bool {
	for _, r := range b.records {
		if r.Level == Error {
			return true
		}
	}
	return false
}

// PromoteWarnToError rewrites every warn-level record already on the bus to
// error-level. Called at a stage boundary in strict mode, never mid-stage.
func (b *Bus) PromoteWarnToError() {
	for i := range b.records {
		if b.records[i].Level == Warn {
			b.records[i].Level = Error
			b.records[i].Code = CodeStrictPromoted + ":" + b.records[i].Code
		}
	}
}

// Sorted returns the records ordered by (file, location, code), the total
// order spec.md §3 requires for reproducible diagnostic output.
func (b *Bus) Sorted() []Record {
	out := b.Records()
	sort.SliceStable(out, func(i, j int) bool {
		a, c := out[i], out[j]
		if a.File != c.File {
			return a.File < c.File
		}
		if a.Loc.StartLine != c.Loc.StartLine {
			return a.Loc.StartLine < c.Loc.StartLine
		}
		if a.Loc.StartCol != c.Loc.StartCol {
			return a.Loc.StartCol < c.Loc.StartCol
		}
		return a.Code < c.Code
	})
	return out
}
