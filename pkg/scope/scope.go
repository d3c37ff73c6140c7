// Package scope implements the Binder/Analyzer stage (spec.md §4.2): a
// single source-order pass over the source AST that builds a scope tree,
// resolves every identifier to exactly one binding, classifies `this`
// binding per function, and flags semantic-risk patterns.
//
// The scope tree is an arena of *Scope records addressed by integer index
// (design notes, spec.md §9, "Cyclic AST references"), directly adapted from
// the teacher's analyzer/linage.Scope (same ID/Kind/ParentID/Start/End
// shape) rather than a pointer-linked tree with owning parent/child refs.
package scope

import "github.com/viant/jstranslate/pkg/ast"

// Kind enumerates the scope kinds named in spec.md §3.
type Kind string

const (
	KindModule      Kind = "module"
	KindGlobal      Kind = "global"
	KindFunction    Kind = "function"
	KindBlock       Kind = "block"
	KindClassBody   Kind = "class-body"
	KindCatchParam  Kind = "catch-param"
	KindWith        Kind = "with"
)

// Scope is one node of the scope-tree arena.
type Scope struct {
	ID       int              `yaml:"id"`
	Kind     Kind             `yaml:"kind"`
	Name     string           `yaml:"name,omitempty"`
	ParentID int              `yaml:"parentId"` // -1 for the root scope
	Start    int              `yaml:"start"`
	End      int              `yaml:"end"`
	Children []int            `yaml:"children,omitempty"`
	Bindings map[string]*Binding `yaml:"-"`
	Flagged  bool             `yaml:"flagged,omitempty"` // with-scope: all references below are ambiguous
}

// BindingKind enumerates the binding kinds named in spec.md §3.
type BindingKind string

const (
	BindVar        BindingKind = "var"
	BindLet        BindingKind = "let"
	BindConst      BindingKind = "const"
	BindFunction   BindingKind = "function"
	BindClass      BindingKind = "class"
	BindImport     BindingKind = "import"
	BindParam      BindingKind = "param"
	BindCatchParam BindingKind = "catch-param"
	BindBuiltin    BindingKind = "builtin"
)

// Binding is the Binding Record of spec.md §3.
type Binding struct {
	ID          int
	Name        string
	Kind        BindingKind
	DeclSite    *ast.Node
	References  []*ast.Node
	Captured    bool
	Assignments int
	Hoisted     bool
}

// RiskFlag enumerates the risk-set flags of spec.md §3.
type RiskFlag string

const (
	RiskThisAtTopLevel       RiskFlag = "uses-this-at-top-level"
	RiskArguments            RiskFlag = "uses-arguments"
	RiskEval                 RiskFlag = "uses-eval"
	RiskWith                 RiskFlag = "uses-with"
	RiskDynamicPropertyWrite RiskFlag = "dynamic-property-write"
	RiskPrototypeMutation    RiskFlag = "prototype-mutation"
	RiskComplexDestructuring RiskFlag = "complex-destructuring"
	RiskAmbiguousWithRef     RiskFlag = "ambiguous-with-reference"
)

// ThisKind classifies how a function/arrow body binds `this` (spec.md §4.2).
type ThisKind string

const (
	ThisArrow       ThisKind = "arrow"
	ThisInstance    ThisKind = "instance"
	ThisConstructor ThisKind = "constructor"
	ThisOrdinary    ThisKind = "ordinary"
)

// AnalysisResult is the output of Analyze (spec.md §3, "Analysis Result").
type AnalysisResult struct {
	Scopes            []*Scope
	Bindings          []*Binding
	BindingMap        map[int]int // source node ID -> binding ID
	RiskSet           map[int][]RiskFlag
	ThisKinds         map[int]ThisKind // function/arrow/method node ID -> this kind
	ModuleShape       ast.ModuleShape
	UnresolvedGlobals map[string][]*ast.Node
}

// BindingFor looks up the binding for a declaration or reference node, if any.
func (r *AnalysisResult) BindingFor(n *ast.Node) *Binding {
	if n == nil {
		return nil
	}
	id, ok := r.BindingMap[n.ID]
	if !ok {
		return nil
	}
	return r.Bindings[id]
}

// RisksFor returns the risk flags recorded against a node, if any.
func (r *AnalysisResult) RisksFor(n *ast.Node) []RiskFlag {
	if n == nil {
		return nil
	}
	return r.RiskSet[n.ID]
}

func (r *AnalysisResult) addRisk(n *ast.Node, flag RiskFlag) {
	if n == nil {
		return
	}
	for _, f := range r.RiskSet[n.ID] {
		if f == flag {
			return
		}
	}
	r.RiskSet[n.ID] = append(r.RiskSet[n.ID], flag)
}
