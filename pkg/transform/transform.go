// Package transform implements the Transformer stage (spec.md §4.3): a
// Rule Registry keyed by source-AST node kind rewrites (source AST,
// AnalysisResult) into a target AST, delegating semantics the target
// can't express directly to the runtime facade (pkg/runtime).
//
// Grounded on the teacher's golang/java/jsx emitters (inspector/golang,
// inspector/java, inspector/jsx), each of which walks one closed AST and
// builds a second, language-specific representation kind by kind; this
// package generalizes that shape from "extract metadata" to "rewrite a full
// program", and from a single hard-coded language pair to a registry
// dispatched on ast.Kind the way spec.md §4.3 describes.
package transform

import (
	"fmt"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
	"github.com/viant/jstranslate/pkg/runtime"
	"github.com/viant/jstranslate/pkg/scope"
	"github.com/viant/jstranslate/pkg/target"
)

// ExportRecord tracks what a module re-exports, for the emitter's footer
// (spec.md §4.3, "Module-shape mapping").
type ExportRecord struct {
	Default string   // target name holding `export default`'s value, "" if none
	Named   []string // target names added to the export record
}

// Transformer holds the mutable state threaded through one file's lowering:
// the analysis result to consult, the diagnostic bus, a rename table keyed
// by binding id (spec.md §4.3.1), a temp-name counter, and per-function
// hoist sinks (spec.md §9, "Hoisting without mutation").
type Transformer struct {
	file     string
	analysis *scope.AnalysisResult
	bus      *diag.Bus

	renames     map[int]string // binding id -> target name
	usedNames   map[string]bool
	tempCounter int

	// hoistSinks accumulates synthesized `name = jsrt.undefined` assignments
	// keyed by the owning function's source node ID (0 for module level),
	// interleaved before the body by the caller that closes the function
	// (spec.md §9).
	hoistSinks map[int][]*target.Node

	// stmtSinkStack supports expression-to-statement lifting (spec.md §9):
	// the innermost non-nil entry receives statements produced while
	// lowering an expression that itself has no direct target-expression
	// form (e.g. assignment-as-expression).
	stmtSinkStack []*[]*target.Node

	// funcScopeStack tracks the enclosing function's source node ID (0 for
	// module level), the hoistSinks key for hoisted var initializers.
	funcScopeStack []int
	selfStack      []string // current `self`/instance-name per enclosing method, "" if none

	usesRuntime      bool
	usesImportlib    bool
	exports          ExportRecord
	exportLocalNames map[string]string

	// hoistedBindings guards against seeding the same var's undefined
	// placeholder twice (spec.md §9, "Hoisting without mutation").
	hoistedBindings map[int]bool

	// pendingParamDestructure collects destructuring parameters discovered
	// while lowerParams runs; buildFuncDef drains it into a body prologue.
	pendingParamDestructure []paramDestructure
}

type paramDestructure struct {
	tmp     string
	pattern *ast.Node
}

// Result is everything Transform produces for one file.
type Result struct {
	Module        *target.Node
	Exports       ExportRecord
	UsesRuntime   bool
	UsesImportlib bool
}

// Transform lowers a parsed Program plus its AnalysisResult into a target
// Module node (spec.md §2 stage 3).
func Transform(file string, program *ast.Node, analysis *scope.AnalysisResult, bus *diag.Bus) *Result {
	tr := &Transformer{
		file:             file,
		analysis:         analysis,
		bus:              bus,
		renames:          map[int]string{},
		usedNames:        map[string]bool{},
		hoistSinks:       map[int][]*target.Node{},
		hoistedBindings:  map[int]bool{},
		exportLocalNames: map[string]string{},
	}
	tr.funcScopeStack = append(tr.funcScopeStack, 0) // module level; source node IDs start at 1
	tr.selfStack = append(tr.selfStack, "")

	mod := &target.Node{Kind: target.ModuleKind}
	for _, stmt := range program.Statements {
		mod.Statements = append(mod.Statements, tr.lowerModuleStatement(stmt)...)
	}
	mod.Statements = append(tr.hoistSinks[0], mod.Statements...)

	return &Result{Module: mod, Exports: tr.exports, UsesRuntime: tr.usesRuntime, UsesImportlib: tr.usesImportlib}
}

func (tr *Transformer) currentFuncScope() int {
	return tr.funcScopeStack[len(tr.funcScopeStack)-1]
}

func (tr *Transformer) currentSelf() string {
	return tr.selfStack[len(tr.selfStack)-1]
}

// pushStmtSink installs a fresh lifting sink and returns it plus a restore func.
func (tr *Transformer) pushStmtSink(sink *[]*target.Node) func() {
	tr.stmtSinkStack = append(tr.stmtSinkStack, sink)
	return func() { tr.stmtSinkStack = tr.stmtSinkStack[:len(tr.stmtSinkStack)-1] }
}

func (tr *Transformer) emitToSink(n *target.Node) {
	if len(tr.stmtSinkStack) == 0 {
		return
	}
	sink := tr.stmtSinkStack[len(tr.stmtSinkStack)-1]
	*sink = append(*sink, n)
}

func (tr *Transformer) newTemp() string {
	tr.tempCounter++
	return fmt.Sprintf("_t%d", tr.tempCounter)
}

func (tr *Transformer) markRuntimeUse() { tr.usesRuntime = true }

func (tr *Transformer) runtimeRef(name string) *target.Node {
	tr.markRuntimeUse()
	return &target.Node{Kind: target.Attribute, Base: &target.Node{Kind: target.Name, Name: runtime.Module}, Attr: name}
}

func (tr *Transformer) runtimeCall(name string, args ...*target.Node) *target.Node {
	return &target.Node{Kind: target.Call, Func: tr.runtimeRef(name), Args: args}
}

func srcRef(n *ast.Node) *target.SourceRef {
	if n == nil {
		return nil
	}
	return &target.SourceRef{StartLine: n.Loc.StartLine, StartCol: n.Loc.StartCol}
}
