package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
	"github.com/viant/jstranslate/pkg/parser"
)

func parseFor(t *testing.T, src string) (*ast.Node, *diag.Bus) {
	t.Helper()
	bus := diag.NewBus()
	program, _, err := parser.Parse("test.js", []byte(src), bus, parser.Options{})
	assert.NoError(t, err)
	return program, bus
}

func TestAnalyze_DetectsESMModuleShape(t *testing.T) {
	program, bus := parseFor(t, `export const x = 1;`)
	res := Analyze("test.js", program, bus, false)
	assert.Equal(t, ast.ShapeESM, res.ModuleShape)
}

func TestAnalyze_DetectsCommonJSModuleShape(t *testing.T) {
	program, bus := parseFor(t, `module.exports = { foo: 1 };`)
	res := Analyze("test.js", program, bus, false)
	assert.Equal(t, ast.ShapeCommonJS, res.ModuleShape)
}

func TestAnalyze_DetectsMixedModuleShape(t *testing.T) {
	program, bus := parseFor(t, "export const x = 1;\nmodule.exports = x;")
	res := Analyze("test.js", program, bus, false)
	assert.Equal(t, ast.ShapeMixed, res.ModuleShape)
}

func TestAnalyze_PlainScriptHasScriptShape(t *testing.T) {
	program, bus := parseFor(t, `var x = 1;`)
	res := Analyze("test.js", program, bus, false)
	assert.Equal(t, ast.ShapeScript, res.ModuleShape)
}

func TestAnalyze_FlagsEvalUse(t *testing.T) {
	program, bus := parseFor(t, `eval("1 + 1");`)
	res := Analyze("test.js", program, bus, false)

	foundRisk := false
	for _, flags := range res.RiskSet {
		for _, f := range flags {
			if f == RiskEval {
				foundRisk = true
			}
		}
	}
	assert.True(t, foundRisk, "eval() call should be flagged as a risk")

	foundDiag := false
	for _, r := range bus.Records() {
		if r.Code == diag.CodeEval {
			foundDiag = true
		}
	}
	assert.True(t, foundDiag, "eval() call should emit a diagnostic")
}

func TestAnalyze_StaticMethodGetsOrdinaryThisKind(t *testing.T) {
	program, bus := parseFor(t, `
class Registry {
  static create() {
    return 1;
  }
}
`)
	res := Analyze("test.js", program, bus, false)
	cls := program.Statements[0]
	method := cls.Members[0]
	assert.Equal(t, ThisOrdinary, res.ThisKinds[method.ID], "a static method binds no instance self, so it classifies like an ordinary function")
}

func TestAnalyze_ResolvesVarBindingAndCountsReference(t *testing.T) {
	program, bus := parseFor(t, "var total = 0;\ntotal = total + 1;")
	res := Analyze("test.js", program, bus, false)

	var totalBinding *Binding
	for _, b := range res.Bindings {
		if b.Name == "total" {
			totalBinding = b
		}
	}
	assert.NotNil(t, totalBinding)
	assert.Equal(t, BindVar, totalBinding.Kind)
	assert.Len(t, totalBinding.References, 2)
}

func TestAnalyze_UnresolvedGlobalIsRecorded(t *testing.T) {
	program, bus := parseFor(t, `console.log(undeclaredThing);`)
	res := Analyze("test.js", program, bus, false)
	_, ok := res.UnresolvedGlobals["undeclaredThing"]
	assert.True(t, ok, "a reference with no enclosing declaration should be tracked as an unresolved global")
}
