package scope

import "github.com/viant/jstranslate/pkg/ast"

// detectModuleShape classifies a program's module system by shape rather
// than by a dedicated grammar rule (mirrors the teacher's jsx.Inspector
// recognizing React-ness by call shape, not by a parser production):
// presence of ImportDecl/ExportDecl statements means esm; a top-level
// `require(...)` call or a `module.exports`/`exports.x` assignment means
// commonjs; both together is mixed; neither is a plain script.
func detectModuleShape(program *ast.Node) ast.ModuleShape {
	sawESM := false
	sawCJS := false
	for _, s := range program.Statements {
		switch s.Kind {
		case ast.ImportDecl, ast.ExportDecl:
			sawESM = true
		}
		if statementUsesCommonJS(s) {
			sawCJS = true
		}
	}
	switch {
	case sawESM && sawCJS:
		return ast.ShapeMixed
	case sawESM:
		return ast.ShapeESM
	case sawCJS:
		return ast.ShapeCommonJS
	default:
		return ast.ShapeScript
	}
}

func statementUsesCommonJS(s *ast.Node) bool {
	found := false
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil || found {
			return
		}
		switch n.Kind {
		case ast.Call:
			if n.Callee != nil && n.Callee.Kind == ast.Identifier && n.Callee.Name == "require" {
				found = true
				return
			}
		case ast.Assignment:
			if isModuleExportsTarget(n.Left) {
				found = true
				return
			}
		}
		walkChildren(n, walk)
	}
	walk(s)
	return found
}

// isModuleExportsTarget matches `module.exports` and `exports.<name>`.
func isModuleExportsTarget(target *ast.Node) bool {
	if target == nil || target.Kind != ast.Member || target.Computed {
		return false
	}
	if target.Object == nil || target.Object.Kind != ast.Identifier {
		return false
	}
	if target.Object.Name == "module" && target.PropertyID != nil && target.PropertyID.Name == "exports" {
		return true
	}
	if target.Object.Name == "exports" {
		return true
	}
	return false
}
