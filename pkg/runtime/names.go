// Package runtime is a pure name contract: the exact set of identifiers the
// emitted program is allowed to reference on the runtime facade (spec.md §6).
// The facade's implementation is an external collaborator, out of scope here
// (spec.md §1) — this package exists only so pkg/transform and pkg/emit
// share one source of truth for the names instead of scattering string
// literals, the way the teacher's graph package centralizes its own
// well-known type names in inspector/graph/types.go.
package runtime

// Module is the import name the emitted program's preamble uses for the
// runtime facade (spec.md §6, "runtime-import preamble").
const Module = "jsrt"

// Helper identifiers the Transformer may reference, qualified by Module at
// emit time (e.g. "jsrt.js_plus").
const (
	Undefined    = "undefined"
	Plus         = "js_plus"
	LooseEq      = "loose_eq"
	And          = "js_and"
	Or           = "js_or"
	Nullish      = "js_nullish"
	Typeof       = "js_typeof"
	GetIndex     = "js_getindex"
	SetIndex     = "js_setindex"
	New          = "js_new"
	Keys         = "js_keys"
	Iter         = "js_iter"
	Regex        = "js_regex"
	JsError      = "JsError"
	Console      = "console"
	Array        = "Array"
	Object       = "Object"
	Date         = "Date"
	JSON         = "JSON"
	ObjSet       = "obj_set"
	Spread       = "spread"
	StringCoerce = "js_str"
	NewObject    = "js_makeclass"
)

// Names lists every identifier above. pkg/emit decides on the runtime-import
// preamble from transform.Result.UsesRuntime, not from this set, and no stage
// checks Transformer references against it.
var Names = map[string]bool{
	Undefined: true, Plus: true, LooseEq: true, And: true, Or: true,
	Nullish: true, Typeof: true, GetIndex: true, SetIndex: true, New: true,
	Keys: true, Iter: true, Regex: true, JsError: true, Console: true,
	Array: true, Object: true, Date: true, JSON: true, ObjSet: true,
	Spread: true, StringCoerce: true, NewObject: true,
}
