package scope

import "github.com/viant/jstranslate/pkg/ast"

// collectConstructorUsage pre-scans the whole program for identifiers used
// as a `new X(...)` callee or as the base of an `X.prototype.y = ...`
// write, the same single-pass-before-resolving shape the teacher's
// analyzer.Analyzer uses to know a package's exported symbols before
// walking call sites. The result is kept on Analyzer.constructorNames only;
// it is not part of AnalysisResult, and neither this-classification nor
// pkg/transform reads it.
func collectConstructorUsage(program *ast.Node) map[string]bool {
	names := map[string]bool{}
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case ast.New:
			if n.Callee != nil && n.Callee.Kind == ast.Identifier {
				names[n.Callee.Name] = true
			}
		case ast.Assignment:
			if base := prototypeBase(n.Left); base != "" {
				names[base] = true
			}
		}
		walkChildren(n, walk)
	}
	walk(program)
	return names
}

// prototypeBase returns "X" when target is the shape X.prototype.y.
func prototypeBase(target *ast.Node) string {
	if target == nil || target.Kind != ast.Member {
		return ""
	}
	obj := target.Object
	if obj == nil || obj.Kind != ast.Member || obj.Computed {
		return ""
	}
	if obj.PropertyID == nil || obj.PropertyID.Name != "prototype" {
		return ""
	}
	if obj.Object == nil || obj.Object.Kind != ast.Identifier {
		return ""
	}
	return obj.Object.Name
}

// walkChildren is a generic structural descent used by scans that don't
// need scope bookkeeping (collectConstructorUsage, detectModuleShape).
func walkChildren(n *ast.Node, visit func(*ast.Node)) {
	for _, c := range []*ast.Node{
		n.Id, n.Body, n.SuperClass, n.Object, n.PropertyID, n.Callee,
		n.Left, n.Right, n.Value, n.Test, n.Consequent, n.Alternate, n.Key,
		n.Init, n.Update2, n.Discriminant, n.TryBlock, n.CatchParam, n.Handler,
		n.Finalizer, n.Declaration,
	} {
		visit(c)
	}
	for _, list := range [][]*ast.Node{
		n.Declarators, n.Params, n.Members, n.Arguments, n.Expressions,
		n.Properties, n.Elements, n.Statements, n.Cases, n.Specifiers,
	} {
		for _, c := range list {
			visit(c)
		}
	}
}
