package scope

import "github.com/viant/jstranslate/pkg/ast"

// hoistInto declares every var and function declaration reachable from
// stmts without descending into nested function/arrow bodies, modeling
// spec.md §4.2's hoisting rule ("var declarations hoist to the nearest
// function or module scope; function declarations hoist with both name
// and value") without a second full-tree pass: this prepass only looks
// inside the control-flow constructs that share the enclosing function's
// scope (blocks, if, loops, try, switch, labeled statements). Given a block
// or catch scope it declares nothing, since those names already live in the
// enclosing function or module scope.
func (a *Analyzer) hoistInto(scope *Scope, stmts []*ast.Node) {
	if scope.Kind != KindFunction && scope.Kind != KindModule && scope.Kind != KindGlobal {
		return
	}
	for _, s := range stmts {
		a.hoistStatement(scope, s)
	}
}

func (a *Analyzer) hoistStatement(scope *Scope, s *ast.Node) {
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.VarDecl:
		if s.DeclKind == ast.VarVar {
			for _, d := range s.Declarators {
				a.hoistPattern(scope, d.Id)
			}
		}
	case ast.FunctionDecl:
		a.declare(scope, s.Name, BindFunction, s, true)
	case ast.Block:
		for _, st := range s.Statements {
			a.hoistStatement(scope, st)
		}
	case ast.If:
		a.hoistStatement(scope, s.Consequent)
		a.hoistStatement(scope, s.Alternate)
	case ast.ForC:
		a.hoistStatement(scope, s.Init)
		a.hoistStatement(scope, s.Body)
	case ast.ForIn, ast.ForOf:
		if s.DeclKind == ast.VarVar {
			a.hoistPattern(scope, s.Left)
		}
		a.hoistStatement(scope, s.Body)
	case ast.While, ast.DoWhile:
		a.hoistStatement(scope, s.Body)
	case ast.Try:
		a.hoistStatement(scope, s.TryBlock)
		a.hoistStatement(scope, s.Handler)
		a.hoistStatement(scope, s.Finalizer)
	case ast.Switch:
		for _, c := range s.Cases {
			for _, st := range c.Statements {
				a.hoistStatement(scope, st)
			}
		}
	case ast.Labeled:
		a.hoistStatement(scope, s.Body)
	case ast.ExportDecl:
		a.hoistStatement(scope, s.Declaration)
	}
}

// hoistPattern declares every identifier bound by a (possibly destructured)
// var binding pattern, flagging complex destructuring per spec.md §4.2.
func (a *Analyzer) hoistPattern(scope *Scope, pattern *ast.Node) {
	if pattern == nil {
		return
	}
	switch pattern.Kind {
	case ast.Identifier:
		a.declare(scope, pattern.Name, BindVar, pattern, true)
	case ast.ObjectPattern, ast.ArrayPattern:
		a.result.addRisk(pattern, RiskComplexDestructuring)
		a.hoistPatternChildren(scope, pattern)
	case ast.AssignPattern:
		a.hoistPattern(scope, pattern.Left)
	case ast.Rest:
		a.hoistPattern(scope, pattern.Value)
	}
}

func (a *Analyzer) hoistPatternChildren(scope *Scope, pattern *ast.Node) {
	switch pattern.Kind {
	case ast.ObjectPattern:
		for _, p := range pattern.Properties {
			a.hoistPattern(scope, p.Value)
		}
	case ast.ArrayPattern:
		for _, e := range pattern.Elements {
			if e != nil {
				a.hoistPattern(scope, e)
			}
		}
	}
}
