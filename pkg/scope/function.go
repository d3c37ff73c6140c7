package scope

import "github.com/viant/jstranslate/pkg/ast"

// walkFunctionLike binds a function/arrow's own scope: its optional name
// (for named function expressions, visible only inside its own body),
// parameters, hoisted var/function declarations, and statements. defaultKind
// is the this-classification used when the node isn't already classified by
// a more specific caller (walkClassDecl, object-literal method handling).
func (a *Analyzer) walkFunctionLike(fn *ast.Node, defaultKind ThisKind) {
	thisKind := defaultKind
	isArrow := fn.Kind == ast.ArrowFunction
	if isArrow {
		thisKind = ThisArrow
	}
	a.result.ThisKinds[fn.ID] = thisKind

	sc := a.enterScope(KindFunction, fn.Name, fn.Loc)
	if fn.Kind == ast.FunctionExpr && fn.Name != "" {
		a.declare(sc, fn.Name, BindFunction, fn, false)
	}
	for _, p := range fn.Params {
		a.walkPatternBind(p, BindParam, false)
	}
	a.funcStack = append(a.funcStack, &funcFrame{node: fn, scopeID: sc.ID, isArrow: isArrow})

	if fn.IsExprBody {
		a.walkExpression(fn.Body)
	} else if fn.Body != nil {
		a.hoistInto(sc, fn.Body.Statements)
		for _, st := range fn.Body.Statements {
			a.walkStatement(st)
		}
	}

	a.funcStack = a.funcStack[:len(a.funcStack)-1]
	a.exitScope()
}

// walkClassDecl binds the class name (if any), enters a class-body scope
// for member resolution, and walks each method/field with the appropriate
// this-classification (spec.md §4.2: constructor vs instance vs static).
func (a *Analyzer) walkClassDecl(cls *ast.Node) {
	if cls.Name != "" {
		a.declare(a.currentScope(), cls.Name, BindClass, cls, false)
		a.shadowCheckLet(cls.Name, cls)
	}
	if cls.SuperClass != nil {
		a.walkExpression(cls.SuperClass)
	}
	a.enterScope(KindClassBody, cls.Name, cls.Loc)
	for _, m := range cls.Members {
		a.walkClassMember(m)
	}
	a.exitScope()
}

func (a *Analyzer) walkClassMember(m *ast.Node) {
	switch m.Kind {
	case ast.FieldDef:
		if m.Value != nil {
			a.walkExpression(m.Value)
		}
	case ast.MethodDef:
		thisKind := ThisInstance
		switch {
		case m.MethodKind == ast.MethodConstructor:
			thisKind = ThisConstructor
		case m.Static:
			// a static method binds no instance `self`; any `this` inside it
			// depends on the call site the same way an ordinary function's
			// does, so it gets the same classification and diagnostic.
			thisKind = ThisOrdinary
		}
		// MethodDef carries its own Params/Body (spec.md §3), not a nested
		// FunctionExpr value, so it's walked directly as a function-like.
		a.walkFunctionLike(m, thisKind)
	}
}
