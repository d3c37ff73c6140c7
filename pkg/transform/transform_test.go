package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
	"github.com/viant/jstranslate/pkg/parser"
	"github.com/viant/jstranslate/pkg/scope"
	"github.com/viant/jstranslate/pkg/target"
)

func transformSrc(t *testing.T, src string) (*Result, *diag.Bus) {
	t.Helper()
	bus := diag.NewBus()
	program, _, err := parser.Parse("test.js", []byte(src), bus, parser.Options{})
	assert.NoError(t, err)
	analysis := scope.Analyze("test.js", program, bus, false)
	res := Transform("test.js", program, analysis, bus)
	return res, bus
}

func findFuncDef(stmts []*target.Node, name string) *target.Node {
	for _, s := range stmts {
		if s.Kind == target.FuncDef && s.Name == name {
			return s
		}
	}
	return nil
}

func TestTransform_PlusOperatorLowersThroughRuntimeHelper(t *testing.T) {
	res, _ := transformSrc(t, "function add(a, b) { return a + b; }")
	fn := findFuncDef(res.Module.Statements, "add")
	assert.NotNil(t, fn)
	assert.True(t, res.UsesRuntime)

	ret := fn.Body[0]
	assert.Equal(t, target.Return, ret.Kind)
	assert.Equal(t, target.Call, ret.Value.Kind)
	assert.Equal(t, "js_plus", ret.Value.Func.Attr)
}

func TestTransform_StrictEqualityLowersToCompareOp(t *testing.T) {
	res, _ := transformSrc(t, "function eq(a, b) { return a === b; }")
	fn := findFuncDef(res.Module.Statements, "eq")
	ret := fn.Body[0]
	assert.Equal(t, target.CompareOp, ret.Value.Kind)
	assert.Equal(t, "==", ret.Value.Operator)
}

func TestTransform_VarDeclExports(t *testing.T) {
	res, _ := transformSrc(t, "export const x = 1;\nexport function f() {}")
	assert.Contains(t, res.Exports.Named, "x")
	assert.Contains(t, res.Exports.Named, "f")
}

func TestTransform_DefaultExportRecorded(t *testing.T) {
	res, _ := transformSrc(t, "export default function main() {}")
	assert.NotEmpty(t, res.Exports.Default)
}

func TestTransform_SpreadArgumentMarked(t *testing.T) {
	res, _ := transformSrc(t, "f(a, ...rest);")

	var call *target.Node
	for _, s := range res.Module.Statements {
		if s.Kind == target.ExprStmt && s.Value.Kind == target.Call {
			call = s.Value
		}
	}
	assert.NotNil(t, call)
	assert.Len(t, call.Args, 2)
	assert.True(t, call.Args[1].IsSpread)
}

func TestTransform_VarHoistedToTopOfFunction(t *testing.T) {
	res, _ := transformSrc(t, `
function f() {
  if (true) {
    var y = 1;
  }
  return y;
}
`)
	fn := findFuncDef(res.Module.Statements, "f")
	assert.NotNil(t, fn)
	assert.Equal(t, target.Assign, fn.Body[0].Kind, "the hoisted var's undefined seed must precede the if statement")
}

func TestTransform_ClassLowersToClassDef(t *testing.T) {
	res, _ := transformSrc(t, `
class Greeter {
  constructor(name) {
    this.name = name;
  }
  greet() {
    return this.name;
  }
}
`)
	var classDef *target.Node
	for _, s := range res.Module.Statements {
		if s.Kind == target.ClassDef {
			classDef = s
		}
	}
	assert.NotNil(t, classDef)
	assert.Equal(t, "Greeter", classDef.Name)

	var greet *target.Node
	for _, m := range classDef.Body {
		if m.Kind == target.FuncDef && m.Name == "greet" {
			greet = m
		}
	}
	assert.NotNil(t, greet)
	assert.Equal(t, "self", greet.Params[0].Name)
}

func TestTransform_StaticMethodGetsNoSelfAndStaticmethodDecorator(t *testing.T) {
	res, _ := transformSrc(t, `
class Registry {
  static create(x) {
    return x;
  }
}
`)
	var classDef *target.Node
	for _, s := range res.Module.Statements {
		if s.Kind == target.ClassDef {
			classDef = s
		}
	}
	assert.NotNil(t, classDef)

	var create *target.Node
	for _, m := range classDef.Body {
		if m.Kind == target.FuncDef && m.Name == "create" {
			create = m
		}
	}
	assert.NotNil(t, create)
	assert.Len(t, create.Params, 1, "a static method takes no implicit self parameter")
	assert.Equal(t, "x", create.Params[0].Name)
	assert.Contains(t, create.Decorators, "staticmethod")
}

func TestTransform_ConstructorReturnValueIsDropped(t *testing.T) {
	res, _ := transformSrc(t, `
class Widget {
  constructor(n) {
    if (n < 0) {
      return this;
    }
    this.n = n;
  }
}
`)
	var classDef *target.Node
	for _, s := range res.Module.Statements {
		if s.Kind == target.ClassDef {
			classDef = s
		}
	}
	assert.NotNil(t, classDef)

	var ctor *target.Node
	for _, m := range classDef.Body {
		if m.Kind == target.FuncDef && m.Name == "__init__" {
			ctor = m
		}
	}
	assert.NotNil(t, ctor)

	var ifStmt *target.Node
	for _, s := range ctor.Body {
		if s.Kind == target.If {
			ifStmt = s
		}
	}
	assert.NotNil(t, ifStmt)
	assert.Equal(t, target.Return, ifStmt.Body[0].Kind)
	assert.Nil(t, ifStmt.Body[0].Value, "a constructor's return value must be dropped since __init__ can only return None")
}

func TestTransform_RequireCallLowersWithImportlib(t *testing.T) {
	res, _ := transformSrc(t, `var fs = require("fs");`)
	assert.True(t, res.UsesImportlib)
}

func TestTransform_UnsupportedBinaryOperatorWarns(t *testing.T) {
	_, bus := transformSrc(t, "var x = a >>> b;")
	found := false
	for _, r := range bus.Records() {
		if r.Code == diag.CodeUnsupportedSyn {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTransform_ModuleShapeIsAvailableFromAnalysis(t *testing.T) {
	bus := diag.NewBus()
	program, _, err := parser.Parse("test.js", []byte("export const a = 1;"), bus, parser.Options{})
	assert.NoError(t, err)
	analysis := scope.Analyze("test.js", program, bus, false)
	assert.Equal(t, ast.ShapeESM, analysis.ModuleShape)
}
