// Package emit implements the Emitter stage (spec.md §4.4): a deterministic
// printer that walks the target AST once and produces indented source text.
// Byte-identical output for byte-identical input is the whole contract
// (spec.md §8) — the printer never consults wall-clock time, map iteration
// order, or anything else that could vary between two runs of the same
// input, mirroring the teacher's single-pass, side-effect-free code
// generators (inspector/golang, inspector/java).
package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/jstranslate/pkg/runtime"
	"github.com/viant/jstranslate/pkg/target"
	"github.com/viant/jstranslate/pkg/transform"
)

const indentUnit = "    "

// Options controls the auto-generated header and runtime-import preamble
// (spec.md §6).
type Options struct {
	SourceName  string // basename of the original .js file, for the header comment
	SkipRuntime bool   // --runtime skip: omit the jsrt import even if referenced
}

// Emit renders one Transform result to target-language source text.
func Emit(res *transform.Result, opt Options) string {
	var b strings.Builder
	writeHeader(&b, opt)
	if res.UsesImportlib {
		b.WriteString("import importlib\n")
	}
	if res.UsesRuntime && !opt.SkipRuntime {
		fmt.Fprintf(&b, "import %s\n", runtime.Module)
	}
	if res.UsesImportlib || (res.UsesRuntime && !opt.SkipRuntime) {
		b.WriteString("\n")
	}

	p := &printer{out: &b}
	for _, stmt := range res.Module.Statements {
		p.statement(stmt, 0)
	}

	writeExportFooter(&b, res.Exports)

	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func writeHeader(b *strings.Builder, opt Options) {
	b.WriteString("# Code generated by jstranslate. DO NOT EDIT.\n")
	if opt.SourceName != "" {
		fmt.Fprintf(b, "# source: %s\n", opt.SourceName)
	}
	b.WriteString("\n")
}

// writeExportFooter emits a trailing dict assembling the module's exports
// (spec.md §4.3: "Module-shape mapping" — a reader importing this module
// sees the same named/default surface the source module exported).
func writeExportFooter(b *strings.Builder, exports transform.ExportRecord) {
	if exports.Default == "" && len(exports.Named) == 0 {
		return
	}
	b.WriteString("\n__exports__ = {\n")
	if exports.Default != "" {
		fmt.Fprintf(b, "%s\"default\": %s,\n", indentUnit, exports.Default)
	}
	names := append([]string(nil), exports.Named...)
	sort.Strings(names)
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		fmt.Fprintf(b, "%s%q: %s,\n", indentUnit, n, n)
	}
	b.WriteString("}\n")
}

type printer struct {
	out *strings.Builder
}

func (p *printer) indent(n int) {
	for i := 0; i < n; i++ {
		p.out.WriteString(indentUnit)
	}
}

func (p *printer) line(n int, text string) {
	p.indent(n)
	p.out.WriteString(text)
	p.out.WriteString("\n")
}

func (p *printer) leading(n *target.Node, depth int) {
	for _, c := range n.LeadingComments {
		p.indent(depth)
		p.out.WriteString("# ")
		p.out.WriteString(c)
		p.out.WriteString("\n")
	}
}

// statement prints one target statement node at the given indent depth,
// recursing into compound statements' bodies one level deeper.
func (p *printer) statement(n *target.Node, depth int) {
	if n == nil {
		return
	}
	p.leading(n, depth)
	switch n.Kind {
	case target.FuncDef:
		p.funcDef(n, depth)
	case target.ClassDef:
		p.indent(depth)
		p.out.WriteString("class ")
		p.out.WriteString(n.Name)
		if len(n.Bases) > 0 {
			p.out.WriteString("(")
			p.exprList(n.Bases)
			p.out.WriteString(")")
		}
		p.out.WriteString(":\n")
		p.block(n.Body, depth+1)
	case target.Assign:
		p.indent(depth)
		for _, t := range n.Targets {
			p.expr(t)
			p.out.WriteString(" = ")
		}
		p.expr(n.Value)
		p.out.WriteString("\n")
	case target.AugAssign:
		p.indent(depth)
		p.expr(n.Left)
		p.out.WriteString(" " + n.Operator + " ")
		p.expr(n.Right)
		p.out.WriteString("\n")
	case target.ExprStmt:
		p.indent(depth)
		p.expr(n.Value)
		p.out.WriteString("\n")
	case target.If:
		p.indent(depth)
		p.out.WriteString("if ")
		p.expr(n.Test)
		p.out.WriteString(":\n")
		p.block(n.Body, depth+1)
		p.orelse(n.Orelse, depth)
	case target.ForEach:
		p.indent(depth)
		p.out.WriteString("for ")
		p.expr(n.Target)
		p.out.WriteString(" in ")
		p.expr(n.Iter)
		p.out.WriteString(":\n")
		p.block(n.Body, depth+1)
	case target.While:
		p.indent(depth)
		p.out.WriteString("while ")
		p.expr(n.Test)
		p.out.WriteString(":\n")
		p.block(n.Body, depth+1)
	case target.TryExcept:
		p.indent(depth)
		p.out.WriteString("try:\n")
		p.block(n.Body, depth+1)
		p.indent(depth)
		p.out.WriteString("except ")
		p.out.WriteString(runtime.Module + "." + runtime.JsError)
		if n.ExceptName != "" {
			p.out.WriteString(" as ")
			p.out.WriteString(n.ExceptName)
		}
		p.out.WriteString(":\n")
		p.block(n.ExceptBody, depth+1)
		if len(n.FinallyBody) > 0 {
			p.indent(depth)
			p.out.WriteString("finally:\n")
			p.block(n.FinallyBody, depth+1)
		}
	case target.Raise:
		p.indent(depth)
		p.out.WriteString("raise ")
		p.expr(n.Value)
		p.out.WriteString("\n")
	case target.Return:
		p.indent(depth)
		p.out.WriteString("return")
		if n.Value != nil {
			p.out.WriteString(" ")
			p.expr(n.Value)
		}
		p.out.WriteString("\n")
	case target.Break:
		p.line(depth, "break")
	case target.Continue:
		p.line(depth, "continue")
	case target.Pass:
		p.line(depth, "pass")
	case target.Import:
		p.indent(depth)
		p.out.WriteString("import " + n.Module)
		if n.Alias != "" && n.Alias != n.Module {
			p.out.WriteString(" as " + n.Alias)
		}
		p.out.WriteString("\n")
	case target.ImportFrom:
		p.indent(depth)
		p.out.WriteString("from " + n.Module + " import ")
		for i, im := range n.Imports {
			if i > 0 {
				p.out.WriteString(", ")
			}
			p.out.WriteString(im.Name)
			if im.Alias != "" {
				p.out.WriteString(" as " + im.Alias)
			}
		}
		p.out.WriteString("\n")
	default:
		p.indent(depth)
		p.out.WriteString("pass\n")
	}
}

// orelse prints an If node's else-branch, collapsing a single nested If into
// "elif" the way Python's grammar prefers over nested "else: if ...".
func (p *printer) orelse(orelse []*target.Node, depth int) {
	if len(orelse) == 0 {
		return
	}
	if len(orelse) == 1 && orelse[0].Kind == target.If {
		p.elif(orelse[0], depth)
		return
	}
	p.indent(depth)
	p.out.WriteString("else:\n")
	p.block(orelse, depth+1)
}

func (p *printer) elif(n *target.Node, depth int) {
	p.leading(n, depth)
	p.indent(depth)
	p.out.WriteString("elif ")
	p.expr(n.Test)
	p.out.WriteString(":\n")
	p.block(n.Body, depth+1)
	p.orelse(n.Orelse, depth)
}

func (p *printer) block(stmts []*target.Node, depth int) {
	if len(stmts) == 0 {
		p.line(depth, "pass")
		return
	}
	for _, s := range stmts {
		p.statement(s, depth)
	}
}

func (p *printer) funcDef(n *target.Node, depth int) {
	for _, d := range n.Decorators {
		p.line(depth, "@"+d)
	}
	p.indent(depth)
	p.out.WriteString("def " + n.Name + "(")
	p.params(n.Params)
	p.out.WriteString("):\n")
	p.block(n.Body, depth+1)
}

func (p *printer) params(params []target.Param) {
	for i, prm := range params {
		if i > 0 {
			p.out.WriteString(", ")
		}
		if prm.IsStar {
			p.out.WriteString("*")
		}
		if prm.IsKwStar {
			p.out.WriteString("**")
		}
		p.out.WriteString(prm.Name)
		if prm.Default != nil {
			p.out.WriteString("=")
			p.expr(prm.Default)
		}
	}
}

func (p *printer) exprList(nodes []*target.Node) {
	for i, n := range nodes {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.expr(n)
	}
}

// expr prints one target expression node. Every operand is fully
// parenthesization-free by construction: the target AST carries no operator
// precedence ambiguity because each BinOp/CompareOp/BoolOp node is only ever
// built from already-atomic sub-expressions (names, calls, literals,
// attribute/subscript chains) or further binary nodes whose own printed
// form always nests in a defensive parenthesis pair, so precedence is never
// ambiguous regardless of composition.
func (p *printer) expr(n *target.Node) {
	if n == nil {
		p.out.WriteString(runtime.Module + "." + runtime.Undefined)
		return
	}
	switch n.Kind {
	case target.Name:
		p.out.WriteString(n.Name)
	case target.NumberLit:
		p.out.WriteString(n.NumberText)
	case target.StringLit:
		p.out.WriteString(pyStringLiteral(n.StringText))
	case target.BoolLit:
		if n.BoolValue {
			p.out.WriteString("True")
		} else {
			p.out.WriteString("False")
		}
	case target.NoneLit:
		p.out.WriteString("None")
	case target.Attribute:
		p.atom(n.Base)
		p.out.WriteString(".")
		p.out.WriteString(n.Attr)
	case target.Subscript:
		p.atom(n.Base)
		p.out.WriteString("[")
		p.expr(n.Index)
		p.out.WriteString("]")
	case target.Call:
		p.atom(n.Func)
		p.out.WriteString("(")
		for i, a := range n.Args {
			if i > 0 {
				p.out.WriteString(", ")
			}
			if a.IsSpread {
				p.out.WriteString("*")
			}
			p.expr(a)
		}
		p.out.WriteString(")")
	case target.ListLit:
		p.out.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				p.out.WriteString(", ")
			}
			if el.IsSpread {
				p.out.WriteString("*")
			}
			p.expr(el)
		}
		p.out.WriteString("]")
	case target.TupleLit:
		p.out.WriteString("(")
		for i, el := range n.Elements {
			if i > 0 {
				p.out.WriteString(", ")
			}
			p.expr(el)
		}
		if len(n.Elements) == 1 {
			p.out.WriteString(",")
		}
		p.out.WriteString(")")
	case target.DictLit:
		p.out.WriteString("{")
		for i := range n.Keys {
			if i > 0 {
				p.out.WriteString(", ")
			}
			p.expr(n.Keys[i])
			p.out.WriteString(": ")
			p.expr(n.Values[i])
		}
		p.out.WriteString("}")
	case target.Conditional:
		p.out.WriteString("(")
		p.expr(n.Consequent)
		p.out.WriteString(" if ")
		p.expr(n.Test)
		p.out.WriteString(" else ")
		p.expr(n.OrelseExpr)
		p.out.WriteString(")")
	case target.UnaryOp:
		p.out.WriteString("(")
		p.out.WriteString(n.Operator)
		if n.Operator == "not" {
			p.out.WriteString(" ")
		}
		p.expr(n.Left)
		p.out.WriteString(")")
	case target.BinOp, target.CompareOp, target.BoolOp:
		p.out.WriteString("(")
		p.expr(n.Left)
		p.out.WriteString(" " + n.Operator + " ")
		p.expr(n.Right)
		p.out.WriteString(")")
	case target.Lambda:
		p.out.WriteString("(lambda ")
		p.params(n.Params)
		p.out.WriteString(": ")
		p.expr(n.LambdaBody)
		p.out.WriteString(")")
	default:
		p.out.WriteString("None")
	}
}

// atom prints an expression in a call/attribute/subscript base position by
// delegating to `expr`, so binary/conditional/unary bases get the same
// defensive parens `expr` adds everywhere else.
func (p *printer) atom(n *target.Node) {
	p.expr(n)
}

func pyStringLiteral(s string) string {
	return strconv.Quote(s)
}
