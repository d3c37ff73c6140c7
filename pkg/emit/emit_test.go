package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jstranslate/pkg/target"
	"github.com/viant/jstranslate/pkg/transform"
)

func name(n string) *target.Node { return &target.Node{Kind: target.Name, Name: n} }

func TestEmit_HeaderAndTrailingNewline(t *testing.T) {
	res := &transform.Result{Module: &target.Node{Kind: target.ModuleKind}}
	out := Emit(res, Options{SourceName: "app.js"})
	assert.True(t, strings.HasPrefix(out, "# Code generated by jstranslate. DO NOT EDIT.\n# source: app.js\n"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestEmit_RuntimeAndImportlibPreamble(t *testing.T) {
	res := &transform.Result{
		Module:        &target.Node{Kind: target.ModuleKind},
		UsesRuntime:   true,
		UsesImportlib: true,
	}
	out := Emit(res, Options{})
	assert.Contains(t, out, "import importlib\n")
	assert.Contains(t, out, "import jsrt\n")
}

func TestEmit_SkipRuntimeOmitsImport(t *testing.T) {
	res := &transform.Result{Module: &target.Node{Kind: target.ModuleKind}, UsesRuntime: true}
	out := Emit(res, Options{SkipRuntime: true})
	assert.NotContains(t, out, "import jsrt")
}

func TestEmit_IfElifElseChain(t *testing.T) {
	innerElse := &target.Node{Kind: target.If,
		Test: name("b"),
		Body: []*target.Node{{Kind: target.Pass}},
		Orelse: []*target.Node{
			{Kind: target.ExprStmt, Value: name("c")},
		},
	}
	outer := &target.Node{Kind: target.If,
		Test:   name("a"),
		Body:   []*target.Node{{Kind: target.Pass}},
		Orelse: []*target.Node{innerElse},
	}
	mod := &target.Node{Kind: target.ModuleKind, Statements: []*target.Node{outer}}
	res := &transform.Result{Module: mod}
	out := Emit(res, Options{})

	assert.Contains(t, out, "if a:\n")
	assert.Contains(t, out, "elif b:\n")
	assert.Contains(t, out, "else:\n")
	assert.NotContains(t, out, "else:\n    if", "a single nested If in Orelse must collapse to elif")
}

func TestEmit_SpreadMarkerOnCallArgsAndListElements(t *testing.T) {
	call := &target.Node{Kind: target.Call, Func: name("f"), Args: []*target.Node{
		name("x"),
		{Kind: target.Name, Name: "rest", IsSpread: true},
	}}
	list := &target.Node{Kind: target.ListLit, Elements: []*target.Node{
		name("a"),
		{Kind: target.Name, Name: "more", IsSpread: true},
	}}
	mod := &target.Node{Kind: target.ModuleKind, Statements: []*target.Node{
		{Kind: target.ExprStmt, Value: call},
		{Kind: target.ExprStmt, Value: list},
	}}
	out := Emit(&transform.Result{Module: mod}, Options{})
	assert.Contains(t, out, "f(x, *rest)")
	assert.Contains(t, out, "[a, *more]")
}

func TestEmit_ExportFooterSortedAndDeduped(t *testing.T) {
	mod := &target.Node{Kind: target.ModuleKind}
	res := &transform.Result{
		Module: mod,
		Exports: transform.ExportRecord{
			Default: "theDefault",
			Named:   []string{"zeta", "alpha", "alpha"},
		},
	}
	out := Emit(res, Options{})
	assert.Contains(t, out, `"default": theDefault,`)
	alphaIdx := strings.Index(out, `"alpha"`)
	zetaIdx := strings.Index(out, `"zeta"`)
	assert.True(t, alphaIdx > 0 && zetaIdx > alphaIdx, "named exports must be sorted")
	assert.Equal(t, 1, strings.Count(out, `"alpha"`), "duplicate export names must be deduped")
}

func TestEmit_NoExportFooterWhenEmpty(t *testing.T) {
	res := &transform.Result{Module: &target.Node{Kind: target.ModuleKind}}
	out := Emit(res, Options{})
	assert.NotContains(t, out, "__exports__")
}

func TestEmit_StringLiteralQuoting(t *testing.T) {
	mod := &target.Node{Kind: target.ModuleKind, Statements: []*target.Node{
		{Kind: target.ExprStmt, Value: &target.Node{Kind: target.StringLit, StringText: "a\"b\nc"}},
	}}
	out := Emit(&transform.Result{Module: mod}, Options{})
	assert.Contains(t, out, `"a\"b\nc"`)
}

func TestEmit_Determinism(t *testing.T) {
	mod := &target.Node{Kind: target.ModuleKind, Statements: []*target.Node{
		{Kind: target.FuncDef, Name: "f", Params: []target.Param{{Name: "x"}},
			Body: []*target.Node{{Kind: target.Return, Value: name("x")}}},
	}}
	res := &transform.Result{Module: mod}
	first := Emit(res, Options{SourceName: "x.js"})
	second := Emit(res, Options{SourceName: "x.js"})
	assert.Equal(t, first, second)
}
