package transform

import (
	"strings"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/target"
)

// resolveModulePath turns a relative JS specifier into a dotted module path
// the target language's import statement can reference (spec.md §4.3,
// "Module-shape mapping"). Parent-relative specifiers ("../x") are not
// distinguished from same-directory ones — the repo-relative layout a real
// resolver would need is an open question the translator doesn't attempt to
// solve (documented in DESIGN.md).
func resolveModulePath(source string) string {
	s := source
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimPrefix(s, "../")
	s = strings.TrimSuffix(s, ".jsx")
	s = strings.TrimSuffix(s, ".js")
	s = strings.ReplaceAll(s, "/", ".")
	if s == "" {
		s = "module"
	}
	return s
}

func (tr *Transformer) importSpecifierLocalName(spec *ast.Node) string {
	if b := tr.analysis.BindingFor(spec); b != nil {
		return tr.nameForBinding(b.ID, b.Name)
	}
	return tr.freshName(spec.Name)
}

// lowerImportDeclStmt maps an ESM import to one `import X as Y` per
// namespace specifier and a single `from MODULE import ...` covering every
// default/named specifier (spec.md §4.3: ESM forms).
func (tr *Transformer) lowerImportDeclStmt(s *ast.Node) []*target.Node {
	modPath := resolveModulePath(s.Source)
	var result []*target.Node
	var named []target.ImportName
	for _, spec := range s.Specifiers {
		localName := tr.importSpecifierLocalName(spec)
		switch {
		case spec.IsNamespace:
			result = append(result, &target.Node{Kind: target.Import, Module: modPath, Alias: localName})
		case spec.IsDefault:
			named = append(named, target.ImportName{Name: "default", Alias: localName})
		default:
			srcName := spec.ImportedName
			if srcName == "" {
				srcName = spec.Name
			}
			alias := ""
			if localName != srcName {
				alias = localName
			}
			named = append(named, target.ImportName{Name: srcName, Alias: alias})
		}
	}
	if len(named) > 0 {
		result = append(result, &target.Node{Kind: target.ImportFrom, Module: modPath, Imports: named})
	}
	return result
}

func (tr *Transformer) exportSpecifierLocalName(spec *ast.Node) string {
	if b := tr.analysis.BindingFor(spec); b != nil {
		return tr.nameForBinding(b.ID, b.Name)
	}
	return spec.Name
}

func (tr *Transformer) exportedNamesOfDeclaration(decl *ast.Node) []string {
	var names []string
	switch decl.Kind {
	case ast.FunctionDecl, ast.ClassDecl:
		if b := tr.analysis.BindingFor(decl); b != nil {
			names = append(names, tr.nameForBinding(b.ID, b.Name))
		}
	case ast.VarDecl:
		for _, d := range decl.Declarators {
			for _, id := range collectPatternIdentifiers(d.Id) {
				if b := tr.analysis.BindingFor(id); b != nil {
					names = append(names, tr.nameForBinding(b.ID, b.Name))
				}
			}
		}
	}
	return names
}

func (tr *Transformer) exportedNameOfDeclaration(decl *ast.Node) string {
	names := tr.exportedNamesOfDeclaration(decl)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// lowerExportDeclStmt lowers `export`/`export default` (spec.md §4.3: "ESM
// export forms"). A wrapped declaration still gets its own statements (the
// function/class/var is a real local binding as well as an export); a bare
// `export { a, b as c }` only registers names already bound elsewhere.
func (tr *Transformer) lowerExportDeclStmt(s *ast.Node) []*target.Node {
	switch {
	case s.Declaration != nil && (s.Declaration.Kind == ast.FunctionDecl || s.Declaration.Kind == ast.ClassDecl || s.Declaration.Kind == ast.VarDecl):
		stmts := tr.lowerStatement(s.Declaration)
		if s.IsDefault {
			name := tr.exportedNameOfDeclaration(s.Declaration)
			stmts = append(stmts, &target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: "default"}}, Value: &target.Node{Kind: target.Name, Name: name}})
			tr.exports.Default = "default"
		} else {
			tr.exports.Named = append(tr.exports.Named, tr.exportedNamesOfDeclaration(s.Declaration)...)
		}
		return stmts
	case s.Declaration != nil:
		val := tr.lowerExpr(s.Declaration)
		tr.exports.Default = "default"
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: "default"}}, Value: val}}
	default:
		for _, spec := range s.Specifiers {
			tr.exports.Named = append(tr.exports.Named, tr.exportSpecifierLocalName(spec))
		}
		return nil
	}
}

// ---- CommonJS --------------------------------------------------------------

// isRequireCall recognizes `require("literal")` by shape, the same way
// pkg/scope's module-shape detector does, rather than as a parser-level
// grammar rule (spec.md §3).
func isRequireCall(e *ast.Node) bool {
	return e.Callee.Kind == ast.Identifier && e.Callee.Name == "require" &&
		len(e.Arguments) == 1 && e.Arguments[0].Kind == ast.StringLit
}

// lowerRequireCall turns `require("./bar")` into `importlib.import_module("bar")`
// — the one target-language construct that, like require, yields a module
// object as an ordinary expression value rather than binding names into the
// current scope (spec.md §4.3: "CommonJS require").
func (tr *Transformer) lowerRequireCall(e *ast.Node) *target.Node {
	tr.usesImportlib = true
	modPath := resolveModulePath(e.Arguments[0].StrValue)
	return &target.Node{
		Kind: target.Call,
		Func: &target.Node{Kind: target.Attribute, Base: &target.Node{Kind: target.Name, Name: "importlib"}, Attr: "import_module"},
		Args: []*target.Node{{Kind: target.StringLit, StringText: modPath}},
	}
}

// moduleExportsAssignShape classifies `module.exports = ...`,
// `exports.foo = ...` and `module.exports.foo = ...` the same way
// pkg/scope's isModuleExportsTarget does (spec.md §3: shape recognition,
// not a grammar rule). Returns ok=false for anything else.
func moduleExportsAssignShape(t *ast.Node) (propName string, isDefault bool, ok bool) {
	if t.Kind != ast.Member || t.Computed {
		return "", false, false
	}
	if t.Object.Kind == ast.Identifier && t.Object.Name == "module" && t.PropertyID.Name == "exports" {
		return "", true, true
	}
	if t.Object.Kind == ast.Identifier && t.Object.Name == "exports" {
		return t.PropertyID.Name, false, true
	}
	if t.Object.Kind == ast.Member && !t.Object.Computed &&
		t.Object.Object.Kind == ast.Identifier && t.Object.Object.Name == "module" && t.Object.PropertyID.Name == "exports" {
		return t.PropertyID.Name, false, true
	}
	return "", false, false
}

func (tr *Transformer) exportLocalName(propName string) string {
	if n, ok := tr.exportLocalNames[propName]; ok {
		return n
	}
	n := tr.freshName(propName)
	tr.exportLocalNames[propName] = n
	return n
}

// lowerCommonJSExportAssign lowers a `module.exports`/`exports.x` write to a
// plain module-level assignment plus an export-record entry. The caller
// (lowerAssignment) dispatches here purely on moduleExportsAssignShape's
// node-shape match — it does not check that `module`/`exports` are actually
// unshadowed CommonJS globals, so a local variable named `module` or
// `exports` would be misread the same way.
func (tr *Transformer) lowerCommonJSExportAssign(e *ast.Node) ([]*target.Node, *target.Node) {
	propName, isDefault, _ := moduleExportsAssignShape(e.Left)
	value := tr.lowerExpr(e.Right)
	if isDefault {
		tr.exports.Default = "default"
		stmt := &target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: "default"}}, Value: value}
		return []*target.Node{stmt}, value
	}
	name := tr.exportLocalName(propName)
	alreadyExported := false
	for _, n := range tr.exports.Named {
		if n == name {
			alreadyExported = true
			break
		}
	}
	if !alreadyExported {
		tr.exports.Named = append(tr.exports.Named, name)
	}
	stmt := &target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: name}}, Value: value}
	return []*target.Node{stmt}, value
}
