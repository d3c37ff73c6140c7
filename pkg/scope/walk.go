package scope

import (
	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
)

func (a *Analyzer) walkStatement(s *ast.Node) {
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.VarDecl:
		a.walkVarDecl(s)
	case ast.FunctionDecl:
		// name + hoisting already bound; only the body is a fresh scope.
		a.walkFunctionLike(s, ThisOrdinary)
	case ast.ClassDecl:
		a.walkClassDecl(s)
	case ast.Block:
		a.enterScope(KindBlock, "", s.Loc)
		a.hoistInto(a.currentScope(), s.Statements)
		for _, st := range s.Statements {
			a.walkStatement(st)
		}
		a.exitScope()
	case ast.ExprStmt:
		a.walkExpression(s.Value)
	case ast.If:
		a.walkExpression(s.Test)
		a.walkStatement(s.Consequent)
		a.walkStatement(s.Alternate)
	case ast.ForC:
		a.enterScope(KindBlock, "", s.Loc)
		a.hoistInto(a.currentScope(), nonNil(s.Init))
		if s.Init != nil {
			if s.Init.Kind == ast.VarDecl {
				a.walkStatement(s.Init)
			} else {
				a.walkExpression(s.Init)
			}
		}
		a.walkExpression(s.Test)
		a.walkExpression(s.Update2)
		a.walkStatement(s.Body)
		a.exitScope()
	case ast.ForIn, ast.ForOf:
		a.enterScope(KindBlock, "", s.Loc)
		if s.DeclKind != "" {
			a.declareForTarget(s)
		} else {
			a.walkExpression(s.Left)
		}
		a.walkExpression(s.Right)
		a.walkStatement(s.Body)
		a.exitScope()
	case ast.While:
		a.walkExpression(s.Test)
		a.walkStatement(s.Body)
	case ast.DoWhile:
		a.walkStatement(s.Body)
		a.walkExpression(s.Test)
	case ast.Switch:
		a.walkExpression(s.Discriminant)
		a.enterScope(KindBlock, "", s.Loc)
		for _, c := range s.Cases {
			a.hoistInto(a.currentScope(), c.Statements)
		}
		for _, c := range s.Cases {
			if c.Test != nil {
				a.walkExpression(c.Test)
			}
			for _, st := range c.Statements {
				a.walkStatement(st)
			}
		}
		a.exitScope()
	case ast.Try:
		a.walkStatement(s.TryBlock)
		if s.Handler != nil {
			a.enterScope(KindCatchParam, "", s.Loc)
			if s.CatchParam != nil {
				a.walkPatternBind(s.CatchParam, BindCatchParam, false)
			}
			a.hoistInto(a.currentScope(), s.Handler.Statements)
			for _, st := range s.Handler.Statements {
				a.walkStatement(st)
			}
			a.exitScope()
		}
		if s.Finalizer != nil {
			a.walkStatement(s.Finalizer)
		}
	case ast.Throw:
		a.walkExpression(s.Value)
	case ast.Return:
		a.walkExpression(s.Value)
	case ast.Labeled:
		a.walkStatement(s.Body)
	case ast.Break, ast.Continue, ast.EmptyStmt:
		// no-op
	case ast.ImportDecl:
		a.walkImportDecl(s)
	case ast.ExportDecl:
		a.walkExportDecl(s)
	}
}

func nonNil(n *ast.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	return []*ast.Node{n}
}

func (a *Analyzer) walkVarDecl(s *ast.Node) {
	kind := declBindingKind(s.DeclKind)
	hoisted := s.DeclKind == ast.VarVar
	for _, d := range s.Declarators {
		a.walkPatternBind(d.Id, kind, hoisted)
		if d.Value != nil {
			a.walkExpression(d.Value)
		}
		if hoisted {
			continue
		}
		if d.Id != nil && d.Id.Kind == ast.Identifier {
			a.shadowCheckLet(d.Id.Name, d.Id)
		}
	}
}

func declBindingKind(k ast.VarKind) BindingKind {
	switch k {
	case ast.VarLet:
		return BindLet
	case ast.VarConst:
		return BindConst
	default:
		return BindVar
	}
}

// walkPatternBind declares (unless alreadyDeclared, e.g. pre-hoisted vars)
// every identifier in a binding pattern and walks default-value
// expressions and computed keys for reference resolution.
func (a *Analyzer) walkPatternBind(pattern *ast.Node, kind BindingKind, alreadyDeclared bool) {
	if pattern == nil {
		return
	}
	switch pattern.Kind {
	case ast.Identifier:
		if !alreadyDeclared {
			a.declare(a.currentScope(), pattern.Name, kind, pattern, false)
		}
	case ast.ObjectPattern:
		a.result.addRisk(pattern, RiskComplexDestructuring)
		for _, p := range pattern.Properties {
			if p.Computed {
				a.walkExpression(p.Key)
			}
			a.walkPatternBind(p.Value, kind, alreadyDeclared)
		}
	case ast.ArrayPattern:
		a.result.addRisk(pattern, RiskComplexDestructuring)
		for _, e := range pattern.Elements {
			if e != nil {
				a.walkPatternBind(e, kind, alreadyDeclared)
			}
		}
	case ast.AssignPattern:
		a.walkPatternBind(pattern.Left, kind, alreadyDeclared)
		a.walkExpression(pattern.Right)
	case ast.Rest:
		a.walkPatternBind(pattern.Value, kind, alreadyDeclared)
	}
}

func (a *Analyzer) declareForTarget(s *ast.Node) {
	kind := declBindingKind(s.DeclKind)
	a.walkPatternBind(s.Left, kind, s.DeclKind == ast.VarVar)
}

func (a *Analyzer) walkImportDecl(s *ast.Node) {
	for _, spec := range s.Specifiers {
		a.declare(a.currentScope(), spec.Name, BindImport, spec, false)
	}
}

func (a *Analyzer) walkExportDecl(s *ast.Node) {
	switch {
	case s.Declaration == nil:
		// no declaration; just re-export specifiers below
	case s.Declaration.Kind == ast.FunctionDecl || s.Declaration.Kind == ast.ClassDecl || s.Declaration.Kind == ast.VarDecl:
		a.walkStatement(s.Declaration)
	default:
		// `export default <expr>`
		a.walkExpression(s.Declaration)
	}
	for _, spec := range s.Specifiers {
		// ExportSpecifier.Name holds the locally bound name being re-exported.
		a.resolveRef(spec)
	}
}

// ---- expressions ---------------------------------------------------------

func (a *Analyzer) walkExpression(e *ast.Node) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.Identifier:
		if e.Name == "arguments" {
			a.flagArguments(e)
			return
		}
		if e.Name == "eval" {
			a.result.addRisk(e, RiskEval)
			a.bus.Warn(a.file, locOf(e), diag.CodeEval, "use of eval prevents full semantic translation")
		}
		a.resolveRef(e)
	case ast.ThisExpr:
		a.flagThisUse(e)
	case ast.NumberLit, ast.StringLit, ast.BoolLit, ast.NullLit, ast.UndefinedLit, ast.RegexLit:
		// literals carry no references
	case ast.TemplateLit:
		for _, ex := range e.Expressions {
			a.walkExpression(ex)
		}
	case ast.Member:
		a.walkExpression(e.Object)
		if e.Computed {
			a.walkExpression(e.PropertyID)
		}
	case ast.Call:
		a.walkExpression(e.Callee)
		for _, arg := range e.Arguments {
			a.walkExpression(arg)
		}
	case ast.New:
		a.walkExpression(e.Callee)
		for _, arg := range e.Arguments {
			a.walkExpression(arg)
		}
	case ast.Assignment:
		a.walkAssignmentTarget(e.Left)
		a.walkExpression(e.Right)
	case ast.Update:
		a.walkAssignmentTarget(e.Value)
	case ast.Unary:
		a.walkExpression(e.Value)
	case ast.Binary, ast.Logical:
		a.walkExpression(e.Left)
		a.walkExpression(e.Right)
	case ast.Conditional:
		a.walkExpression(e.Test)
		a.walkExpression(e.Consequent)
		a.walkExpression(e.Alternate)
	case ast.Sequence:
		for _, ex := range e.Expressions {
			a.walkExpression(ex)
		}
	case ast.Spread, ast.Rest:
		a.walkExpression(e.Value)
	case ast.ObjectLit:
		for _, p := range e.Properties {
			if p.Computed {
				a.walkExpression(p.Key)
			}
			switch p.PropKind {
			case ast.PropMethod, ast.PropGetter, ast.PropSetter:
				// object-literal methods bind `this` to the receiver at
				// call time, the same as an instance method.
				a.walkFunctionLike(p.Value, ThisInstance)
			default:
				a.walkExpression(p.Value)
			}
		}
	case ast.ArrayLit:
		for _, el := range e.Elements {
			if el != nil {
				a.walkExpression(el)
			}
		}
	case ast.FunctionExpr:
		a.walkFunctionLike(e, ThisOrdinary)
	case ast.ArrowFunction:
		a.walkFunctionLike(e, ThisArrow)
	}
}

// walkAssignmentTarget resolves a reference and records it as an assignment;
// detects dynamic-property-write and prototype-mutation risks.
func (a *Analyzer) walkAssignmentTarget(target *ast.Node) {
	if target == nil {
		return
	}
	switch target.Kind {
	case ast.Identifier:
		a.resolveRef(target)
		a.recordAssignment(target)
	case ast.Member:
		a.walkExpression(target.Object)
		if target.Computed {
			a.walkExpression(target.PropertyID)
			if target.PropertyID.Kind != ast.StringLit && target.PropertyID.Kind != ast.NumberLit {
				a.result.addRisk(target, RiskDynamicPropertyWrite)
			}
		}
		if target.PropertyID != nil && target.PropertyID.Name == "prototype" {
			a.result.addRisk(target, RiskPrototypeMutation)
			a.bus.Warn(a.file, locOf(target), diag.CodeDynamicProto, "assignment to a .prototype property")
		}
	case ast.ObjectPattern, ast.ArrayPattern:
		a.result.addRisk(target, RiskComplexDestructuring)
		a.walkPatternBind(target, BindVar, true) // already-bound names, just resolve nested refs
	}
}

func (a *Analyzer) flagArguments(e *ast.Node) {
	a.result.addRisk(e, RiskArguments)
	a.bus.Info(a.file, locOf(e), diag.CodeArguments, "use of arguments object")
}

func (a *Analyzer) flagThisUse(e *ast.Node) {
	// Arrows inherit `this` lexically, so walk up the stack past any
	// arrow frames to find the enclosing function this actually binds to.
	owner := (*funcFrame)(nil)
	for i := len(a.funcStack) - 1; i >= 0; i-- {
		if !a.funcStack[i].isArrow {
			owner = a.funcStack[i]
			break
		}
	}
	if owner == nil {
		a.result.addRisk(e, RiskThisAtTopLevel)
		a.bus.Warn(a.file, locOf(e), diag.CodeThisTopLevel, "this used outside any function")
		return
	}
	if a.result.ThisKinds[owner.node.ID] == ThisOrdinary {
		a.result.addRisk(e, RiskThisAtTopLevel)
		a.bus.Warn(a.file, locOf(e), diag.CodeThisOrdinary, "this used in an ordinary function; binding depends on call site")
	}
}
