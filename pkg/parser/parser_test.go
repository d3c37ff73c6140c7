package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
)

func TestContentHash_DeterministicAndContentSensitive(t *testing.T) {
	a := ContentHash([]byte("var x = 1;"))
	b := ContentHash([]byte("var x = 1;"))
	c := ContentHash([]byte("var x = 2;"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex digest is 64 characters")
}

func TestParse_SimpleFunctionDeclaration(t *testing.T) {
	bus := diag.NewBus()
	program, hash, err := Parse("f.js", []byte("function add(a, b) { return a + b; }"), bus, Options{})
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.Len(t, program.Statements, 1)

	fn := program.Statements[0]
	assert.Equal(t, ast.FunctionDecl, fn.Kind)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)

	assert.Len(t, fn.Body.Statements, 1)
	ret := fn.Body.Statements[0]
	assert.Equal(t, ast.Return, ret.Kind)
	assert.Equal(t, ast.Binary, ret.Value.Kind)
	assert.Equal(t, "+", ret.Value.Operator)
}

func TestParse_VarDeclaration(t *testing.T) {
	bus := diag.NewBus()
	program, _, err := Parse("f.js", []byte("var x = 1, y = 2;"), bus, Options{})
	assert.NoError(t, err)
	decl := program.Statements[0]
	assert.Equal(t, ast.VarDecl, decl.Kind)
	assert.Equal(t, ast.VarVar, decl.DeclKind)
	assert.Len(t, decl.Declarators, 2)
	assert.Equal(t, "x", decl.Declarators[0].Id.Name)
	assert.Equal(t, "y", decl.Declarators[1].Id.Name)
}

func TestParse_ArrowFunctionExpressionBody(t *testing.T) {
	bus := diag.NewBus()
	program, _, err := Parse("f.js", []byte("var double = (x) => x * 2;"), bus, Options{})
	assert.NoError(t, err)
	init := program.Statements[0].Declarators[0].Value
	assert.Equal(t, ast.ArrowFunction, init.Kind)
	assert.True(t, init.IsExprBody)
	assert.Equal(t, ast.Binary, init.Body.Kind)
}

func TestParse_TemplateLiteralQuasisAndExpressions(t *testing.T) {
	bus := diag.NewBus()
	program, _, err := Parse("f.js", []byte("var s = `hello ${name}!`;"), bus, Options{})
	assert.NoError(t, err)
	tpl := program.Statements[0].Declarators[0].Value
	assert.Equal(t, ast.TemplateLit, tpl.Kind)
	assert.Equal(t, []string{"hello ", "!"}, tpl.Quasis)
	assert.Len(t, tpl.Expressions, 1)
	assert.Equal(t, "name", tpl.Expressions[0].Name)
}

func TestParse_UnsupportedConstructEmitsWarning(t *testing.T) {
	bus := diag.NewBus()
	_, _, err := Parse("f.js", []byte("with (obj) { x = 1; }"), bus, Options{})
	assert.NoError(t, err)

	found := false
	for _, r := range bus.Records() {
		if r.Code == diag.CodeUnsupportedSyn {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_StrictModeFailsOnSyntaxError(t *testing.T) {
	bus := diag.NewBus()
	_, _, err := Parse("f.js", []byte("function broken( {"), bus, Options{Strict: true})
	assert.Error(t, err)
}

func TestParse_ClassWithConstructorAndMethod(t *testing.T) {
	bus := diag.NewBus()
	src := `
class Greeter {
  constructor(name) {
    this.name = name;
  }
  greet() {
    return this.name;
  }
}
`
	program, _, err := Parse("f.js", []byte(src), bus, Options{})
	assert.NoError(t, err)
	cls := program.Statements[0]
	assert.Equal(t, ast.ClassDecl, cls.Kind)
	assert.Equal(t, "Greeter", cls.Name)
	assert.Len(t, cls.Members, 2)
	assert.Equal(t, ast.MethodConstructor, cls.Members[0].MethodKind)
	assert.Equal(t, "greet", cls.Members[1].Name)
}

func TestParse_StaticMethodGetsStaticMethodKind(t *testing.T) {
	bus := diag.NewBus()
	src := `
class Registry {
  static create() {
    return 1;
  }
}
`
	program, _, err := Parse("f.js", []byte(src), bus, Options{})
	assert.NoError(t, err)
	cls := program.Statements[0]
	assert.Len(t, cls.Members, 1)
	m := cls.Members[0]
	assert.True(t, m.Static)
	assert.Equal(t, ast.MethodStatic, m.MethodKind)
}
