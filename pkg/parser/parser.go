// Package parser implements the Parser front-end stage: tree-sitter JS/JSX
// concrete syntax into the closed pkg/ast union. Grounded directly on the
// teacher's inspector/jsx.Inspector, which drives the same
// go-tree-sitter+javascript grammar pair via ParseCtx and walks the CST with
// ChildByFieldName/NamedChild, but expanded here from partial metadata
// extraction into a full statement-and-expression AST builder.
package parser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
)

// Options configures a single Parse call.
type Options struct {
	// Strict promotes any CST error node into a hard parse failure instead
	// of a diagnostic-and-best-effort recovery (spec.md §6, --strict).
	Strict bool
}

// ContentHash returns the SHA-256 hex digest used as the cache key for a
// source file (pkg/cache), grounded on the teacher's info.Document.HashContent.
func ContentHash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Parse converts one source file's bytes into a Program node. The returned
// hash is the content hash pkg/cache keys the parsed-AST cache entry by.
func Parse(file string, src []byte, bus *diag.Bus, opt Options) (*ast.Node, string, error) {
	hash := ContentHash(src)

	sp := sitter.NewParser()
	sp.SetLanguage(javascript.GetLanguage())
	tree, err := sp.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, hash, fmt.Errorf("parse %s: %w", file, err)
	}
	root := tree.RootNode()

	p := &parseCtx{gen: &ast.IDGen{}, src: src, bus: bus, file: file, strict: opt.Strict}
	if root.HasError() {
		if opt.Strict {
			return nil, hash, fmt.Errorf("parse %s: syntax error", file)
		}
		p.bus.Warn(file, diag.Location{}, diag.CodeParseError, "source contains one or more syntax errors; best-effort recovery applied")
	}

	program := p.newNode(ast.Program, root)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if st := p.convertStatement(root.NamedChild(i)); st != nil {
			program.Statements = append(program.Statements, st)
		}
	}
	return program, hash, nil
}

type parseCtx struct {
	gen    *ast.IDGen
	src    []byte
	bus    *diag.Bus
	file   string
	strict bool
}

func (p *parseCtx) loc(n *sitter.Node) ast.Location {
	sp, ep := n.StartPoint(), n.EndPoint()
	return ast.Location{
		StartLine: int(sp.Row) + 1, StartCol: int(sp.Column) + 1,
		EndLine: int(ep.Row) + 1, EndCol: int(ep.Column) + 1,
		StartByte: n.StartByte(), EndByte: n.EndByte(),
	}
}

func (p *parseCtx) diagLoc(n *sitter.Node) diag.Location {
	l := p.loc(n)
	return diag.Location{StartLine: l.StartLine, StartCol: l.StartCol, EndLine: l.EndLine, EndCol: l.EndCol}
}

func (p *parseCtx) newNode(kind ast.Kind, n *sitter.Node) *ast.Node {
	node := p.gen.NewNode(kind, p.loc(n))
	node.Raw = n.Content(p.src)
	return node
}

func (p *parseCtx) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(p.src)
}

func (p *parseCtx) unsupported(n *sitter.Node, what string) *ast.Node {
	p.bus.Warn(p.file, p.diagLoc(n), diag.CodeUnsupportedSyn, fmt.Sprintf("unsupported construct %q left as raw passthrough", what))
	node := p.newNode(ast.ExprStmt, n)
	node.Value = p.gen.NewNode(ast.Identifier, p.loc(n))
	node.Value.Name = "__unsupported__"
	node.Value.Raw = node.Raw
	return node
}

// ---- statements ----------------------------------------------------------

func (p *parseCtx) convertStatement(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "comment":
		return nil
	case "expression_statement":
		node := p.newNode(ast.ExprStmt, n)
		if n.NamedChildCount() > 0 {
			node.Value = p.convertExpr(n.NamedChild(0))
		}
		return node
	case "variable_declaration", "lexical_declaration":
		return p.convertVarDecl(n)
	case "function_declaration", "generator_function_declaration":
		return p.convertFunctionLike(n, ast.FunctionDecl)
	case "class_declaration":
		return p.convertClassDecl(n)
	case "statement_block":
		return p.convertBlock(n)
	case "if_statement":
		node := p.newNode(ast.If, n)
		node.Test = p.convertExpr(n.ChildByFieldName("condition"))
		node.Consequent = p.convertStatement(n.ChildByFieldName("consequence"))
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			node.Alternate = p.convertStatement(alt)
		}
		return node
	case "for_statement":
		node := p.newNode(ast.ForC, n)
		if init := n.ChildByFieldName("initializer"); init != nil {
			node.Init = p.convertForInit(init)
		}
		if cond := n.ChildByFieldName("condition"); cond != nil {
			node.Test = p.convertExpr(firstNamed(cond))
		}
		if upd := n.ChildByFieldName("increment"); upd != nil {
			node.Update2 = p.convertExpr(upd)
		}
		node.Body = p.convertStatement(n.ChildByFieldName("body"))
		return node
	case "for_in_statement":
		return p.convertForInOf(n)
	case "while_statement":
		node := p.newNode(ast.While, n)
		node.Test = p.convertExpr(n.ChildByFieldName("condition"))
		node.Body = p.convertStatement(n.ChildByFieldName("body"))
		return node
	case "do_statement":
		node := p.newNode(ast.DoWhile, n)
		node.Body = p.convertStatement(n.ChildByFieldName("body"))
		node.Test = p.convertExpr(n.ChildByFieldName("condition"))
		p.bus.Info(p.file, p.diagLoc(n), diag.CodeDoWhile, "do/while translated via a first-iteration-unconditional while loop")
		return node
	case "switch_statement":
		return p.convertSwitch(n)
	case "try_statement":
		return p.convertTry(n)
	case "throw_statement":
		node := p.newNode(ast.Throw, n)
		node.Value = p.convertExpr(firstNamed(n))
		return node
	case "return_statement":
		node := p.newNode(ast.Return, n)
		if n.NamedChildCount() > 0 {
			node.Value = p.convertExpr(n.NamedChild(0))
		}
		return node
	case "break_statement":
		node := p.newNode(ast.Break, n)
		if lbl := n.ChildByFieldName("label"); lbl != nil {
			node.Label = p.text(lbl)
			p.bus.Info(p.file, p.diagLoc(n), diag.CodeLabeledBreak, "labeled break requires a sentinel-based loop rewrite")
		}
		return node
	case "continue_statement":
		node := p.newNode(ast.Continue, n)
		if lbl := n.ChildByFieldName("label"); lbl != nil {
			node.Label = p.text(lbl)
		}
		return node
	case "labeled_statement":
		node := p.newNode(ast.Labeled, n)
		node.Label = p.text(n.ChildByFieldName("label"))
		node.Body = p.convertStatement(n.ChildByFieldName("body"))
		return node
	case "empty_statement", ";":
		return p.newNode(ast.EmptyStmt, n)
	case "import_statement":
		return p.convertImport(n)
	case "export_statement":
		return p.convertExport(n)
	default:
		return p.unsupported(n, n.Type())
	}
}

func (p *parseCtx) convertBlock(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.Block, n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if st := p.convertStatement(n.NamedChild(i)); st != nil {
			node.Statements = append(node.Statements, st)
		}
	}
	return node
}

func (p *parseCtx) convertForInit(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "variable_declaration", "lexical_declaration":
		return p.convertVarDecl(n)
	default:
		if n.NamedChildCount() > 0 {
			return p.convertExpr(n.NamedChild(0))
		}
		return p.convertExpr(n)
	}
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func (p *parseCtx) convertVarDecl(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.VarDecl, n)
	kw := strings.TrimSpace(p.text(n.Child(0)))
	switch kw {
	case "let":
		node.DeclKind = ast.VarLet
	case "const":
		node.DeclKind = ast.VarConst
	default:
		node.DeclKind = ast.VarVar
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		d := p.newNode(ast.VarDeclarator, c)
		d.Id = p.convertPattern(c.ChildByFieldName("name"))
		if v := c.ChildByFieldName("value"); v != nil {
			d.Value = p.convertExpr(v)
		}
		node.Declarators = append(node.Declarators, d)
	}
	return node
}

func (p *parseCtx) convertForInOf(n *sitter.Node) *ast.Node {
	isOf := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if t := n.Child(i).Type(); t == "of" {
			isOf = true
			break
		} else if t == "in" {
			break
		}
	}
	kind := ast.ForIn
	if isOf {
		kind = ast.ForOf
	}
	node := p.newNode(kind, n)
	left := n.ChildByFieldName("left")
	switch left.Type() {
	case "variable_declaration", "lexical_declaration", "let", "const", "var":
		kw := strings.TrimSpace(p.text(left.Child(0)))
		switch kw {
		case "let":
			node.DeclKind = ast.VarLet
		case "const":
			node.DeclKind = ast.VarConst
		default:
			node.DeclKind = ast.VarVar
		}
		decl := firstNamed(left)
		if decl != nil && decl.Type() == "variable_declarator" {
			node.Left = p.convertPattern(decl.ChildByFieldName("name"))
		} else {
			node.Left = p.convertPattern(left)
		}
	default:
		node.Left = p.convertPattern(left)
	}
	node.Right = p.convertExpr(n.ChildByFieldName("right"))
	node.Body = p.convertStatement(n.ChildByFieldName("body"))
	return node
}

func (p *parseCtx) convertSwitch(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.Switch, n)
	node.Discriminant = p.convertExpr(n.ChildByFieldName("value"))
	body := n.ChildByFieldName("body")
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() != "switch_case" && c.Type() != "switch_default" {
			continue
		}
		sc := p.newNode(ast.SwitchCase, c)
		startIdx := 0
		if c.Type() == "switch_case" {
			valueNode := c.ChildByFieldName("value")
			sc.Test = p.convertExpr(valueNode)
			startIdx = 1 // skip the case expression itself
		}
		for j := startIdx; j < int(c.NamedChildCount()); j++ {
			if st := p.convertStatement(c.NamedChild(j)); st != nil {
				sc.Statements = append(sc.Statements, st)
			}
		}
		node.Cases = append(node.Cases, sc)
	}
	return node
}

func (p *parseCtx) convertTry(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.Try, n)
	node.TryBlock = p.convertBlock(n.ChildByFieldName("body"))
	if h := n.ChildByFieldName("handler"); h != nil {
		if param := h.ChildByFieldName("parameter"); param != nil {
			node.CatchParam = p.convertPattern(param)
		}
		node.Handler = p.convertBlock(h.ChildByFieldName("body"))
	}
	if f := n.ChildByFieldName("finalizer"); f != nil {
		node.Finalizer = p.convertBlock(f.ChildByFieldName("body"))
	}
	return node
}

func (p *parseCtx) convertFunctionLike(n *sitter.Node, kind ast.Kind) *ast.Node {
	node := p.newNode(kind, n)
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		node.Name = p.text(nameNode)
	}
	node.IsGenerator = strings.Contains(n.Type(), "generator")
	node.IsAsync = hasLeadingKeyword(n, p.src, "async")
	params := n.ChildByFieldName("parameters")
	if params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			node.Params = append(node.Params, p.convertParam(params.NamedChild(i)))
		}
	} else if single := n.ChildByFieldName("parameter"); single != nil {
		node.Params = append(node.Params, p.convertParam(single))
	}
	body := n.ChildByFieldName("body")
	if body != nil && body.Type() == "statement_block" {
		node.Body = p.convertBlock(body)
	} else if body != nil {
		node.Body = p.convertExpr(body)
		node.IsExprBody = true
	}
	return node
}

func (p *parseCtx) convertParam(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "assignment_pattern":
		node := p.newNode(ast.AssignPattern, n)
		node.Left = p.convertPattern(n.ChildByFieldName("left"))
		node.Right = p.convertExpr(n.ChildByFieldName("right"))
		return node
	case "rest_pattern":
		node := p.newNode(ast.Rest, n)
		node.Value = p.convertPattern(firstNamed(n))
		return node
	default:
		return p.convertPattern(n)
	}
}

func (p *parseCtx) convertClassDecl(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.ClassDecl, n)
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		node.Name = p.text(nameNode)
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		node.SuperClass = p.convertExpr(sc)
	}
	body := n.ChildByFieldName("body")
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		switch m.Type() {
		case "method_definition":
			node.Members = append(node.Members, p.convertMethod(m))
		case "field_definition", "public_field_definition":
			node.Members = append(node.Members, p.convertField(m))
		}
	}
	return node
}

func (p *parseCtx) convertMethod(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.MethodDef, n)
	node.Name = p.text(n.ChildByFieldName("name"))
	node.Static = hasLeadingKeyword(n, p.src, "static")
	node.IsAsync = hasLeadingKeyword(n, p.src, "async")
	node.IsGenerator = strings.Contains(n.Content(p.src), "*")
	switch {
	case node.Name == "constructor":
		node.MethodKind = ast.MethodConstructor
	case hasLeadingKeyword(n, p.src, "get"):
		node.MethodKind = ast.MethodGetter
	case hasLeadingKeyword(n, p.src, "set"):
		node.MethodKind = ast.MethodSetter
	case node.Static:
		node.MethodKind = ast.MethodStatic
	default:
		node.MethodKind = ast.MethodInstance
	}
	params := n.ChildByFieldName("parameters")
	for i := 0; i < int(params.NamedChildCount()); i++ {
		node.Params = append(node.Params, p.convertParam(params.NamedChild(i)))
	}
	node.Body = p.convertBlock(n.ChildByFieldName("body"))
	return node
}

func (p *parseCtx) convertField(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.FieldDef, n)
	node.Name = p.text(n.ChildByFieldName("property"))
	node.Static = hasLeadingKeyword(n, p.src, "static")
	if v := n.ChildByFieldName("value"); v != nil {
		node.Value = p.convertExpr(v)
	}
	return node
}

func (p *parseCtx) convertImport(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.ImportDecl, n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "string":
			node.Source = unquote(p.text(c))
		case "identifier":
			spec := p.newNode(ast.ImportSpecifier, c)
			spec.Name = p.text(c)
			spec.IsDefault = true
			node.Specifiers = append(node.Specifiers, spec)
		case "import_clause":
			p.convertImportClause(c, node)
		}
	}
	return node
}

func (p *parseCtx) convertImportClause(n *sitter.Node, decl *ast.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "identifier":
			spec := p.newNode(ast.ImportSpecifier, c)
			spec.Name = p.text(c)
			spec.IsDefault = true
			decl.Specifiers = append(decl.Specifiers, spec)
		case "namespace_import":
			spec := p.newNode(ast.ImportSpecifier, c)
			spec.Name = p.text(firstNamed(c))
			spec.IsNamespace = true
			decl.Specifiers = append(decl.Specifiers, spec)
		case "named_imports":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				is := c.NamedChild(j)
				if is.Type() != "import_specifier" {
					continue
				}
				spec := p.newNode(ast.ImportSpecifier, is)
				if alias := is.ChildByFieldName("alias"); alias != nil {
					spec.Name = p.text(alias)
					spec.ImportedName = p.text(is.ChildByFieldName("name"))
				} else {
					spec.Name = p.text(is.ChildByFieldName("name"))
				}
				decl.Specifiers = append(decl.Specifiers, spec)
			}
		}
	}
}

func (p *parseCtx) convertExport(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.ExportDecl, n)
	node.IsDefault = hasLeadingKeyword(n, p.src, "default")
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		node.Declaration = p.convertStatementOrExpr(decl)
		return node
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "export_clause":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				es := c.NamedChild(j)
				if es.Type() != "export_specifier" {
					continue
				}
				spec := p.newNode(ast.ExportSpecifier, es)
				spec.Name = p.text(es.ChildByFieldName("name"))
				if alias := es.ChildByFieldName("alias"); alias != nil {
					spec.ExportedName = p.text(alias)
				} else {
					spec.ExportedName = spec.Name
				}
				node.Specifiers = append(node.Specifiers, spec)
			}
		case "identifier", "number", "string", "true", "false", "null",
			"object", "array", "call_expression", "arrow_function", "function":
			node.Declaration = p.convertExpr(c)
		}
	}
	return node
}

func (p *parseCtx) convertStatementOrExpr(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		return p.convertFunctionLike(n, ast.FunctionDecl)
	case "class_declaration":
		return p.convertClassDecl(n)
	case "variable_declaration", "lexical_declaration":
		return p.convertVarDecl(n)
	default:
		return p.convertExpr(n)
	}
}

// ---- patterns -------------------------------------------------------------

func (p *parseCtx) convertPattern(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier":
		node := p.newNode(ast.Identifier, n)
		node.Name = p.text(n)
		return node
	case "object_pattern":
		node := p.newNode(ast.ObjectPattern, n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			node.Properties = append(node.Properties, p.convertPatternProperty(n.NamedChild(i)))
		}
		return node
	case "array_pattern":
		node := p.newNode(ast.ArrayPattern, n)
		afterComma := true
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch {
			case c.Type() == ",":
				if afterComma {
					node.Elements = append(node.Elements, nil)
				}
				afterComma = true
			case c.IsNamed() && c.Type() != "comment":
				node.Elements = append(node.Elements, p.convertPattern(c))
				afterComma = false
			}
		}
		return node
	case "assignment_pattern":
		node := p.newNode(ast.AssignPattern, n)
		node.Left = p.convertPattern(n.ChildByFieldName("left"))
		node.Right = p.convertExpr(n.ChildByFieldName("right"))
		return node
	case "rest_pattern":
		node := p.newNode(ast.Rest, n)
		node.Value = p.convertPattern(firstNamed(n))
		return node
	default:
		return p.convertExpr(n)
	}
}

func (p *parseCtx) convertPatternProperty(n *sitter.Node) *ast.Node {
	prop := p.newNode(ast.Property, n)
	switch n.Type() {
	case "shorthand_property_identifier_pattern":
		prop.Key = p.newNode(ast.Identifier, n)
		prop.Key.Name = p.text(n)
		prop.Value = p.convertPattern(n)
		prop.PropKind = ast.PropShorthand
	case "pair_pattern":
		prop.Key = p.convertExpr(n.ChildByFieldName("key"))
		prop.Value = p.convertPattern(n.ChildByFieldName("value"))
		prop.PropKind = ast.PropInit
	case "rest_pattern":
		prop.PropKind = ast.PropSpread
		prop.Value = p.convertPattern(firstNamed(n))
	default:
		prop.Value = p.convertPattern(n)
	}
	return prop
}

// ---- expressions ----------------------------------------------------------

func (p *parseCtx) convertExpr(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "parenthesized_expression":
		return p.convertExpr(firstNamed(n))
	case "identifier", "property_identifier", "shorthand_property_identifier":
		node := p.newNode(ast.Identifier, n)
		node.Name = p.text(n)
		return node
	case "this":
		return p.newNode(ast.ThisExpr, n)
	case "number":
		node := p.newNode(ast.NumberLit, n)
		node.NumValue, _ = strconv.ParseFloat(strings.ReplaceAll(p.text(n), "_", ""), 64)
		return node
	case "string":
		node := p.newNode(ast.StringLit, n)
		node.StrValue = unquote(p.text(n))
		return node
	case "true", "false":
		node := p.newNode(ast.BoolLit, n)
		node.BoolValue = n.Type() == "true"
		return node
	case "null":
		return p.newNode(ast.NullLit, n)
	case "undefined":
		return p.newNode(ast.UndefinedLit, n)
	case "regex":
		node := p.newNode(ast.RegexLit, n)
		pattern := n.ChildByFieldName("pattern")
		flags := n.ChildByFieldName("flags")
		node.RegexBody = p.text(pattern)
		node.RegexFlags = p.text(flags)
		return node
	case "template_string":
		return p.convertTemplate(n)
	case "member_expression":
		node := p.newNode(ast.Member, n)
		node.Object = p.convertExpr(n.ChildByFieldName("object"))
		node.PropertyID = p.newNode(ast.Identifier, n.ChildByFieldName("property"))
		node.PropertyID.Name = p.text(n.ChildByFieldName("property"))
		return node
	case "subscript_expression":
		node := p.newNode(ast.Member, n)
		node.Object = p.convertExpr(n.ChildByFieldName("object"))
		node.Computed = true
		node.PropertyID = p.convertExpr(n.ChildByFieldName("index"))
		return node
	case "call_expression":
		node := p.newNode(ast.Call, n)
		node.Callee = p.convertExpr(n.ChildByFieldName("function"))
		node.Arguments = p.convertArguments(n.ChildByFieldName("arguments"))
		return node
	case "new_expression":
		node := p.newNode(ast.New, n)
		node.Callee = p.convertExpr(n.ChildByFieldName("constructor"))
		if args := n.ChildByFieldName("arguments"); args != nil {
			node.Arguments = p.convertArguments(args)
		}
		return node
	case "assignment_expression":
		node := p.newNode(ast.Assignment, n)
		node.Operator = "="
		node.Left = p.convertAssignTarget(n.ChildByFieldName("left"))
		node.Right = p.convertExpr(n.ChildByFieldName("right"))
		return node
	case "augmented_assignment_expression":
		node := p.newNode(ast.Assignment, n)
		node.Operator = p.text(n.ChildByFieldName("operator"))
		node.Left = p.convertAssignTarget(n.ChildByFieldName("left"))
		node.Right = p.convertExpr(n.ChildByFieldName("right"))
		return node
	case "update_expression":
		node := p.newNode(ast.Update, n)
		node.Operator = p.extractUpdateOperator(n)
		node.Prefix = n.Child(0).IsNamed() == false && (p.text(n.Child(0)) == "++" || p.text(n.Child(0)) == "--")
		node.Value = p.convertExpr(firstNamed(n))
		return node
	case "unary_expression":
		node := p.newNode(ast.Unary, n)
		node.Operator = p.text(n.Child(0))
		node.Value = p.convertExpr(n.ChildByFieldName("argument"))
		return node
	case "binary_expression":
		op := p.text(n.ChildByFieldName("operator"))
		kind := ast.Binary
		if op == "&&" || op == "||" || op == "??" {
			kind = ast.Logical
		}
		node := p.newNode(kind, n)
		node.Operator = op
		node.Left = p.convertExpr(n.ChildByFieldName("left"))
		node.Right = p.convertExpr(n.ChildByFieldName("right"))
		return node
	case "ternary_expression":
		node := p.newNode(ast.Conditional, n)
		node.Test = p.convertExpr(n.ChildByFieldName("condition"))
		node.Consequent = p.convertExpr(n.ChildByFieldName("consequence"))
		node.Alternate = p.convertExpr(n.ChildByFieldName("alternative"))
		return node
	case "sequence_expression":
		node := p.newNode(ast.Sequence, n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			node.Expressions = append(node.Expressions, p.convertExpr(n.NamedChild(i)))
		}
		return node
	case "spread_element":
		node := p.newNode(ast.Spread, n)
		node.Value = p.convertExpr(firstNamed(n))
		return node
	case "object":
		node := p.newNode(ast.ObjectLit, n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			node.Properties = append(node.Properties, p.convertObjectProperty(n.NamedChild(i)))
		}
		return node
	case "array":
		node := p.newNode(ast.ArrayLit, n)
		afterComma := true
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch {
			case c.Type() == ",":
				if afterComma {
					node.Elements = append(node.Elements, nil)
				}
				afterComma = true
			case c.IsNamed() && c.Type() != "comment":
				node.Elements = append(node.Elements, p.convertExpr(c))
				afterComma = false
			}
		}
		return node
	case "object_pattern", "array_pattern", "assignment_pattern", "rest_pattern":
		return p.convertPattern(n)
	case "function", "function_expression", "generator_function":
		return p.convertFunctionLike(n, ast.FunctionExpr)
	case "arrow_function":
		return p.convertFunctionLike(n, ast.ArrowFunction)
	case "class":
		return p.convertClassDecl(n)
	default:
		return p.unsupportedExpr(n)
	}
}

func (p *parseCtx) unsupportedExpr(n *sitter.Node) *ast.Node {
	p.bus.Warn(p.file, p.diagLoc(n), diag.CodeUnsupportedSyn, fmt.Sprintf("unsupported expression %q left as raw identifier", n.Type()))
	node := p.newNode(ast.Identifier, n)
	node.Name = "__unsupported__"
	return node
}

func (p *parseCtx) convertAssignTarget(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "object_pattern", "array_pattern":
		return p.convertPattern(n)
	default:
		return p.convertExpr(n)
	}
}

func (p *parseCtx) convertArguments(n *sitter.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	var out []*ast.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, p.convertExpr(n.NamedChild(i)))
	}
	return out
}

func (p *parseCtx) convertObjectProperty(n *sitter.Node) *ast.Node {
	prop := p.newNode(ast.Property, n)
	switch n.Type() {
	case "pair":
		prop.Key = p.convertPropertyKey(n.ChildByFieldName("key"))
		prop.Computed = n.ChildByFieldName("key").Type() == "computed_property_name"
		prop.Value = p.convertExpr(n.ChildByFieldName("value"))
		prop.PropKind = ast.PropInit
	case "shorthand_property_identifier":
		prop.Key = p.newNode(ast.Identifier, n)
		prop.Key.Name = p.text(n)
		prop.Value = prop.Key
		prop.PropKind = ast.PropShorthand
	case "method_definition":
		prop.Key = p.newNode(ast.Identifier, n.ChildByFieldName("name"))
		prop.Key.Name = p.text(n.ChildByFieldName("name"))
		prop.Value = p.convertFunctionLike(n, ast.FunctionExpr)
		switch {
		case hasLeadingKeyword(n, p.src, "get"):
			prop.PropKind = ast.PropGetter
		case hasLeadingKeyword(n, p.src, "set"):
			prop.PropKind = ast.PropSetter
		default:
			prop.PropKind = ast.PropMethod
		}
	case "spread_element":
		prop.PropKind = ast.PropSpread
		prop.Value = p.convertExpr(firstNamed(n))
	default:
		prop.Value = p.convertExpr(n)
	}
	return prop
}

func (p *parseCtx) convertPropertyKey(n *sitter.Node) *ast.Node {
	if n.Type() == "computed_property_name" {
		return p.convertExpr(firstNamed(n))
	}
	if n.Type() == "string" {
		node := p.newNode(ast.StringLit, n)
		node.StrValue = unquote(p.text(n))
		return node
	}
	node := p.newNode(ast.Identifier, n)
	node.Name = p.text(n)
	return node
}

func (p *parseCtx) convertTemplate(n *sitter.Node) *ast.Node {
	node := p.newNode(ast.TemplateLit, n)
	var quasi strings.Builder
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "template_substitution":
			node.Quasis = append(node.Quasis, quasi.String())
			quasi.Reset()
			if inner := firstNamed(c); inner != nil {
				node.Expressions = append(node.Expressions, p.convertExpr(inner))
			}
		case "`":
			// delimiter, skip
		default:
			quasi.WriteString(p.text(c))
		}
	}
	node.Quasis = append(node.Quasis, quasi.String())
	return node
}

func (p *parseCtx) extractUpdateOperator(n *sitter.Node) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		if t := p.text(n.Child(i)); t == "++" || t == "--" {
			return t
		}
	}
	return "++"
}

// hasLeadingKeyword reports whether an anonymous token with the given text
// appears among n's non-named children before its first named child
// (tree-sitter-javascript represents `static`/`async`/`get`/`set`/`default`
// as bare keyword tokens rather than boolean fields).
func hasLeadingKeyword(n *sitter.Node, src []byte, kw string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.IsNamed() {
			break
		}
		if c.Content(src) == kw {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 {
		quote := s[0]
		if (quote == '"' || quote == '\'' || quote == '`') && s[len(s)-1] == quote {
			return s[1 : len(s)-1]
		}
	}
	return s
}
