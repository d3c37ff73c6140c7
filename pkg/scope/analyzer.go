package scope

import (
	"fmt"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
)

// builtins lists identifier names resolved against the runtime facade /
// host environment rather than against any user binding (spec.md §4.2,
// "unresolved global reference where the name is not in a known builtin
// list"). Kept small and explicit rather than pulling in a third-party
// ECMAScript globals table; it covers common host globals and is wider than
// the facade identifiers listed in pkg/runtime.
var builtins = map[string]bool{
	"console": true, "Object": true, "Array": true, "Date": true, "JSON": true,
	"Math": true, "RegExp": true, "Error": true, "TypeError": true, "RangeError": true,
	"Number": true, "String": true, "Boolean": true, "Symbol": true, "Promise": true,
	"Map": true, "Set": true, "WeakMap": true, "WeakSet": true, "globalThis": true,
	"parseInt": true, "parseFloat": true, "isNaN": true, "isFinite": true,
	"setTimeout": true, "setInterval": true, "clearTimeout": true, "clearInterval": true,
	"Function": true, "Infinity": true, "NaN": true, "undefined": true,
}

// Analyzer performs the single source-order pass that builds the scope
// tree, binding map, this-classification table, and risk set.
type Analyzer struct {
	file       string
	bus        *diag.Bus
	strict     bool
	result     *AnalysisResult
	scopeStack []int
	// funcStack tracks enclosing function/arrow node IDs (innermost last),
	// used for this-classification of arrows and for uses-arguments scoping.
	funcStack []*funcFrame
	// constructorNames holds identifiers observed as `new X(...)` callees or
	// as the base of `X.prototype.y = ...` writes, computed in one
	// pre-scan (analogous to the teacher's analyzer.Analyzer scanning a
	// whole file before resolving flows).
	constructorNames map[string]bool
}

type funcFrame struct {
	node   *ast.Node
	scopeID int
	isArrow bool
}

// Analyze runs the Binder/Analyzer stage over a parsed Program.
func Analyze(file string, program *ast.Node, bus *diag.Bus, strict bool) *AnalysisResult {
	a := &Analyzer{
		file:   file,
		bus:    bus,
		strict: strict,
		result: &AnalysisResult{
			BindingMap:        map[int]int{},
			RiskSet:           map[int][]RiskFlag{},
			ThisKinds:         map[int]ThisKind{},
			UnresolvedGlobals: map[string][]*ast.Node{},
		},
	}
	a.constructorNames = collectConstructorUsage(program)
	a.result.ModuleShape = detectModuleShape(program)

	rootKind := KindModule
	if a.result.ModuleShape == ast.ShapeScript {
		rootKind = KindGlobal
	}
	root := a.enterScope(rootKind, "", program.Loc)
	a.hoistInto(root, program.Statements)
	for _, stmt := range program.Statements {
		a.walkStatement(stmt)
	}
	a.exitScope()
	return a.result
}

func locOf(n *ast.Node) diag.Location {
	if n == nil {
		return diag.Location{}
	}
	return diag.Location{StartLine: n.Loc.StartLine, StartCol: n.Loc.StartCol, EndLine: n.Loc.EndLine, EndCol: n.Loc.EndCol}
}

// ---- scope arena -----------------------------------------------------

func (a *Analyzer) enterScope(kind Kind, name string, loc ast.Location) *Scope {
	parent := -1
	if len(a.scopeStack) > 0 {
		parent = a.scopeStack[len(a.scopeStack)-1]
	}
	sc := &Scope{
		ID:       len(a.result.Scopes),
		Kind:     kind,
		Name:     name,
		ParentID: parent,
		Start:    int(loc.StartByte),
		End:      int(loc.EndByte),
		Bindings: map[string]*Binding{},
	}
	a.result.Scopes = append(a.result.Scopes, sc)
	if parent >= 0 {
		a.result.Scopes[parent].Children = append(a.result.Scopes[parent].Children, sc.ID)
	}
	a.scopeStack = append(a.scopeStack, sc.ID)
	return sc
}

func (a *Analyzer) exitScope() {
	a.scopeStack = a.scopeStack[:len(a.scopeStack)-1]
}

func (a *Analyzer) currentScope() *Scope {
	return a.result.Scopes[a.scopeStack[len(a.scopeStack)-1]]
}

func (a *Analyzer) nearestHoistScopeID() int {
	for i := len(a.scopeStack) - 1; i >= 0; i-- {
		sc := a.result.Scopes[a.scopeStack[i]]
		if sc.Kind == KindFunction || sc.Kind == KindModule || sc.Kind == KindGlobal {
			return sc.ID
		}
	}
	return a.scopeStack[0]
}

func (a *Analyzer) nearestFunctionScopeID(scopeID int) int {
	for scopeID != -1 {
		sc := a.result.Scopes[scopeID]
		if sc.Kind == KindFunction || sc.Kind == KindModule || sc.Kind == KindGlobal {
			return scopeID
		}
		scopeID = sc.ParentID
	}
	return -1
}

// ---- bindings ----------------------------------------------------------

func (a *Analyzer) declare(scope *Scope, name string, kind BindingKind, declSite *ast.Node, hoisted bool) *Binding {
	if existing, ok := scope.Bindings[name]; ok {
		mergeable := func(k BindingKind) bool { return k == BindVar || k == BindFunction }
		if mergeable(existing.Kind) && mergeable(kind) {
			if kind == BindFunction {
				existing.Kind = BindFunction
				existing.DeclSite = declSite
			}
			if declSite != nil {
				a.result.BindingMap[declSite.ID] = existing.ID
			}
			return existing
		}
		a.bus.Error(a.file, locOf(declSite), diag.CodeDuplicateBinding,
			fmt.Sprintf("duplicate declaration of %q in this scope", name))
		return existing
	}
	b := &Binding{ID: len(a.result.Bindings), Name: name, Kind: kind, DeclSite: declSite, Hoisted: hoisted}
	a.result.Bindings = append(a.result.Bindings, b)
	scope.Bindings[name] = b
	if declSite != nil {
		a.result.BindingMap[declSite.ID] = b.ID
	}
	return b
}

// shadowCheckLet warns when a let/const/class declared in a nested block
// shares a name with a var already hoisted into the enclosing function or
// module scope (spec.md §4.2, "shadowing of block-scoped binding by inner
// var"). Checked at the let/const/class site because hoisting runs as a
// prepass before nested blocks exist, so this is the first point both
// bindings are known.
func (a *Analyzer) shadowCheckLet(name string, declSite *ast.Node) {
	hoistID := a.nearestHoistScopeID()
	if hoistID == a.currentScope().ID {
		return
	}
	sc := a.result.Scopes[hoistID]
	if b, ok := sc.Bindings[name]; ok && b.Kind == BindVar {
		a.bus.Warn(a.file, locOf(declSite), diag.CodeShadowVar,
			fmt.Sprintf("block-scoped %q is shadowed by a hoisted var of the same name", name))
	}
}

func (a *Analyzer) resolveRef(node *ast.Node) {
	name := node.Name
	curFn := a.nearestFunctionScopeID(a.currentScope().ID)
	for i := len(a.scopeStack) - 1; i >= 0; i-- {
		sc := a.result.Scopes[a.scopeStack[i]]
		if sc.Flagged {
			a.result.addRisk(node, RiskAmbiguousWithRef)
		}
		if b, ok := sc.Bindings[name]; ok {
			b.References = append(b.References, node)
			a.result.BindingMap[node.ID] = b.ID
			ownerFn := a.nearestFunctionScopeID(sc.ID)
			if ownerFn != curFn {
				b.Captured = true
			}
			return
		}
	}
	if builtins[name] {
		return
	}
	a.result.UnresolvedGlobals[name] = append(a.result.UnresolvedGlobals[name], node)
	a.bus.Info(a.file, locOf(node), diag.CodeUnresolvedGlobal, fmt.Sprintf("unresolved global reference %q", name))
}

func (a *Analyzer) recordAssignment(node *ast.Node) {
	id, ok := a.result.BindingMap[node.ID]
	if !ok {
		return
	}
	a.result.Bindings[id].Assignments++
}
