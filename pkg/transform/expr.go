package transform

import (
	"strconv"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
	"github.com/viant/jstranslate/pkg/runtime"
	"github.com/viant/jstranslate/pkg/scope"
	"github.com/viant/jstranslate/pkg/target"
)

// ExprRule lowers one source expression node to a target expression node.
// Kept as a first-class func type (rather than an inline switch case) so the
// dispatch table below reads as the registry spec.md §4.3 describes: "the
// registry maps source-AST node kinds to rules".
type ExprRule func(tr *Transformer, e *ast.Node) *target.Node

var exprRules map[ast.Kind]ExprRule

func init() {
	exprRules = map[ast.Kind]ExprRule{
		ast.NumberLit:      (*Transformer).lowerNumberLit,
		ast.StringLit:      (*Transformer).lowerStringLit,
		ast.BoolLit:        (*Transformer).lowerBoolLit,
		ast.NullLit:        (*Transformer).lowerNullLit,
		ast.UndefinedLit:   (*Transformer).lowerUndefinedLit,
		ast.RegexLit:       (*Transformer).lowerRegexLit,
		ast.Identifier:     (*Transformer).lowerIdentifier,
		ast.ThisExpr:       (*Transformer).lowerThis,
		ast.TemplateLit:    (*Transformer).lowerTemplateLit,
		ast.Member:         (*Transformer).lowerMember,
		ast.Call:           (*Transformer).lowerCall,
		ast.New:            (*Transformer).lowerNew,
		ast.Assignment:     (*Transformer).lowerAssignmentExpr,
		ast.Update:         (*Transformer).lowerUpdateExpr,
		ast.Unary:          (*Transformer).lowerUnary,
		ast.Binary:         (*Transformer).lowerBinary,
		ast.Logical:        (*Transformer).lowerLogical,
		ast.Conditional:    (*Transformer).lowerConditional,
		ast.Sequence:       (*Transformer).lowerSequence,
		ast.ObjectLit:      (*Transformer).lowerObjectLit,
		ast.ArrayLit:       (*Transformer).lowerArrayLit,
		ast.FunctionExpr:   (*Transformer).lowerFunctionExpr,
		ast.ArrowFunction:  (*Transformer).lowerArrowFunction,
		ast.Spread:         (*Transformer).lowerSpreadOperand,
	}
}

// lowerExpr is the single entry point pkg/transform's statement lowering
// calls; everything else dispatches through exprRules.
func (tr *Transformer) lowerExpr(e *ast.Node) *target.Node {
	if e == nil {
		return nil
	}
	rule, ok := exprRules[e.Kind]
	if !ok {
		tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "unsupported expression form, lowered to None")
		return &target.Node{Kind: target.NoneLit, SourceLoc: srcRef(e)}
	}
	n := rule(tr, e)
	if n != nil {
		n.SourceLoc = srcRef(e)
	}
	return n
}

func locOf(n *ast.Node) diag.Location {
	if n == nil {
		return diag.Location{}
	}
	return diag.Location{StartLine: n.Loc.StartLine, StartCol: n.Loc.StartCol, EndLine: n.Loc.EndLine, EndCol: n.Loc.EndCol}
}

func (tr *Transformer) lowerNumberLit(e *ast.Node) *target.Node {
	return &target.Node{Kind: target.NumberLit, NumberText: strconv.FormatFloat(e.NumValue, 'g', -1, 64)}
}

func (tr *Transformer) lowerStringLit(e *ast.Node) *target.Node {
	return &target.Node{Kind: target.StringLit, StringText: e.StrValue}
}

func (tr *Transformer) lowerBoolLit(e *ast.Node) *target.Node {
	return &target.Node{Kind: target.BoolLit, BoolValue: e.BoolValue}
}

func (tr *Transformer) lowerNullLit(e *ast.Node) *target.Node {
	return &target.Node{Kind: target.NoneLit}
}

func (tr *Transformer) lowerUndefinedLit(e *ast.Node) *target.Node {
	return tr.runtimeRef(runtime.Undefined)
}

func (tr *Transformer) lowerRegexLit(e *ast.Node) *target.Node {
	return tr.runtimeCall(runtime.Regex,
		&target.Node{Kind: target.StringLit, StringText: e.RegexBody},
		&target.Node{Kind: target.StringLit, StringText: e.RegexFlags})
}

func (tr *Transformer) lowerIdentifier(e *ast.Node) *target.Node {
	return &target.Node{Kind: target.Name, Name: tr.nameForRef(e)}
}

func (tr *Transformer) lowerThis(e *ast.Node) *target.Node {
	self := tr.currentSelf()
	if self == "" {
		self = "self"
	}
	return &target.Node{Kind: target.Name, Name: self}
}

// lowerTemplateLit concatenates quasis and js_str-coerced substitutions with
// "+" (spec.md §4.3: "Template literals": quasis joined with the coerced
// substitutions).
func (tr *Transformer) lowerTemplateLit(e *ast.Node) *target.Node {
	var result *target.Node
	appendPart := func(part *target.Node) {
		if result == nil {
			result = part
			return
		}
		result = &target.Node{Kind: target.BinOp, Operator: "+", Left: result, Right: part}
	}
	for i, q := range e.Quasis {
		if q != "" {
			appendPart(&target.Node{Kind: target.StringLit, StringText: q})
		}
		if i < len(e.Expressions) {
			coerced := tr.runtimeCall(runtime.StringCoerce, tr.lowerExpr(e.Expressions[i]))
			appendPart(coerced)
		}
	}
	if result == nil {
		return &target.Node{Kind: target.StringLit, StringText: ""}
	}
	return result
}

// lowerMember lowers property access: non-computed access becomes a direct
// attribute read; computed access goes through jsrt.js_getindex so string,
// numeric and symbol-like keys all resolve the same way at runtime (spec.md
// §4.3: "Member access").
func (tr *Transformer) lowerMember(e *ast.Node) *target.Node {
	obj := tr.lowerExpr(e.Object)
	if !e.Computed {
		return &target.Node{Kind: target.Attribute, Base: obj, Attr: e.PropertyID.Name}
	}
	key := tr.lowerExpr(e.PropertyID)
	return tr.runtimeCall(runtime.GetIndex, obj, key)
}

// lowerCall flattens spread arguments with a leading "*" the same way
// lowerArrayLit does (spec.md §4.3: "Spread in calls").
func (tr *Transformer) lowerCall(e *ast.Node) *target.Node {
	if isRequireCall(e) {
		return tr.lowerRequireCall(e)
	}
	fn := tr.lowerExpr(e.Callee)
	args := tr.lowerArguments(e.Arguments)
	return &target.Node{Kind: target.Call, Func: fn, Args: args}
}

func (tr *Transformer) lowerArguments(in []*ast.Node) []*target.Node {
	args := make([]*target.Node, 0, len(in))
	for _, a := range in {
		if a.Kind == ast.Spread {
			inner := tr.lowerExpr(a.Value)
			inner.IsSpread = true
			args = append(args, inner)
			continue
		}
		args = append(args, tr.lowerExpr(a))
	}
	return args
}

// lowerSpreadOperand only fires when a Spread node is lowered outside an
// argument/element list context (object-spread properties carry the inner
// expression as p.Value, not a Spread node, so they never reach here); the
// IsSpread flag is applied by the caller that owns the containing list.
func (tr *Transformer) lowerSpreadOperand(e *ast.Node) *target.Node {
	return tr.lowerExpr(e.Value)
}

// lowerNew wraps the call through jsrt.js_new, which the runtime facade uses
// to apply a function-as-constructor (prototype chain setup, free function
// calls) without the target language needing a distinct `new` operator
// (spec.md §4.3: "new expressions").
func (tr *Transformer) lowerNew(e *ast.Node) *target.Node {
	fn := tr.lowerExpr(e.Callee)
	args := tr.lowerArguments(e.Arguments)
	return tr.runtimeCall(runtime.New, append([]*target.Node{fn}, args...)...)
}

// lowerAssignmentExpr lowers `a = b` used in expression position (not as its
// own ExprStmt): the assignment itself is lifted into the enclosing
// statement sink, and the expression value is the assigned value re-read
// (spec.md §9, "Expression-to-statement lifting").
func (tr *Transformer) lowerAssignmentExpr(e *ast.Node) *target.Node {
	stmts, valueExpr := tr.lowerAssignment(e)
	for _, stmt := range stmts {
		tr.emitToSink(stmt)
	}
	return valueExpr
}

func (tr *Transformer) lowerUnary(e *ast.Node) *target.Node {
	switch e.Operator {
	case "typeof":
		return tr.runtimeCall(runtime.Typeof, tr.lowerExpr(e.Value))
	case "!":
		return &target.Node{Kind: target.UnaryOp, Operator: "not", Left: tr.lowerExpr(e.Value)}
	case "void":
		// `void expr` evaluates expr for side effects and yields undefined.
		tr.emitToSink(&target.Node{Kind: target.ExprStmt, Value: tr.lowerExpr(e.Value)})
		return tr.runtimeRef(runtime.Undefined)
	case "delete":
		tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "delete expression is not translated; always evaluates to true")
		return &target.Node{Kind: target.BoolLit, BoolValue: true}
	case "-", "+", "~":
		return &target.Node{Kind: target.UnaryOp, Operator: e.Operator, Left: tr.lowerExpr(e.Value)}
	default:
		tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "unsupported unary operator "+e.Operator)
		return &target.Node{Kind: target.NoneLit}
	}
}

// lowerUpdateExpr lowers `x++`/`--x`/etc. by lifting the increment into the
// statement sink as an AugAssign and leaving the expression value as either
// the pre- or post-update read, matching JS prefix/postfix semantics
// (spec.md §4.3: "Update expressions").
func (tr *Transformer) lowerUpdateExpr(e *ast.Node) *target.Node {
	delta := "1"
	op := "+="
	if e.Operator == "--" {
		op = "-="
	}
	targetExpr := tr.lowerExpr(e.Value)
	if e.Prefix {
		tr.emitToSink(&target.Node{Kind: target.AugAssign, Operator: op, Left: targetExpr, Right: &target.Node{Kind: target.NumberLit, NumberText: delta}})
		return tr.lowerExpr(e.Value)
	}
	tmp := tr.newTemp()
	tr.emitToSink(&target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: tmp}}, Value: tr.lowerExpr(e.Value)})
	tr.emitToSink(&target.Node{Kind: target.AugAssign, Operator: op, Left: targetExpr, Right: &target.Node{Kind: target.NumberLit, NumberText: delta}})
	return &target.Node{Kind: target.Name, Name: tmp}
}

var directBinaryOps = map[string]bool{
	"-": true, "*": true, "/": true, "%": true, "**": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
}
var compareOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}

// lowerBinary implements spec.md §4.3's arithmetic/comparison table: numeric
// operators and ordering comparisons map directly (Python's operators agree
// with JS's for numbers), `+` always routes through jsrt.js_plus because it
// overloads string concatenation, and (in)equality routes through strict vs
// loose comparison per spec.md §4.2.
func (tr *Transformer) lowerBinary(e *ast.Node) *target.Node {
	left := tr.lowerExpr(e.Left)
	right := tr.lowerExpr(e.Right)
	switch {
	case e.Operator == "+":
		return tr.runtimeCall(runtime.Plus, left, right)
	case e.Operator == "===":
		return &target.Node{Kind: target.CompareOp, Operator: "==", Left: left, Right: right}
	case e.Operator == "!==":
		return &target.Node{Kind: target.CompareOp, Operator: "!=", Left: left, Right: right}
	case e.Operator == "==":
		return tr.runtimeCall(runtime.LooseEq, left, right)
	case e.Operator == "!=":
		return &target.Node{Kind: target.UnaryOp, Operator: "not", Left: tr.runtimeCall(runtime.LooseEq, left, right)}
	case e.Operator == ">>>":
		tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "unsigned right shift translated as signed right shift")
		return &target.Node{Kind: target.BinOp, Operator: ">>", Left: left, Right: right}
	case compareOps[e.Operator]:
		return &target.Node{Kind: target.CompareOp, Operator: e.Operator, Left: left, Right: right}
	case directBinaryOps[e.Operator]:
		return &target.Node{Kind: target.BinOp, Operator: e.Operator, Left: left, Right: right}
	default:
		tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "unsupported binary operator "+e.Operator)
		return &target.Node{Kind: target.NoneLit}
	}
}

// lowerLogical lowers &&, ||, ?? through runtime helpers rather than
// target.BoolOp, because JS's short-circuit operators yield one of their
// operand *values* (not necessarily a bool) — a distinction target.BoolOp
// (which always yields true/false) can't express (spec.md §4.3: "Logical
// operators"). Accepted limitation: operands are evaluated eagerly as
// arguments to the helper call, so true short-circuit (skipping evaluation
// of a side-effecting right operand) is not preserved; see DESIGN.md.
func (tr *Transformer) lowerLogical(e *ast.Node) *target.Node {
	left := tr.lowerExpr(e.Left)
	right := tr.lowerExpr(e.Right)
	switch e.Operator {
	case "&&":
		return tr.runtimeCall(runtime.And, left, right)
	case "||":
		return tr.runtimeCall(runtime.Or, left, right)
	default: // "??"
		return tr.runtimeCall(runtime.Nullish, left, right)
	}
}

func (tr *Transformer) lowerConditional(e *ast.Node) *target.Node {
	return &target.Node{
		Kind:       target.Conditional,
		Test:       tr.lowerExpr(e.Test),
		Consequent: tr.lowerExpr(e.Consequent),
		OrelseExpr: tr.lowerExpr(e.Alternate),
	}
}

// lowerSequence lowers the comma operator by lifting all but the last
// expression into the statement sink as bare ExprStmts and yielding the last
// expression's value (spec.md §4.3: "Sequence expressions").
func (tr *Transformer) lowerSequence(e *ast.Node) *target.Node {
	var last *target.Node
	for i, ex := range e.Expressions {
		v := tr.lowerExpr(ex)
		if i == len(e.Expressions)-1 {
			last = v
			continue
		}
		tr.emitToSink(&target.Node{Kind: target.ExprStmt, Value: v})
	}
	return last
}

// lowerObjectLit builds a direct DictLit for plain objects; anything with a
// computed key, method, getter or setter lowers through a temp variable and
// a sequence of jsrt.obj_set calls lifted into the statement sink (spec.md
// §4.3: "Object literals").
func (tr *Transformer) lowerObjectLit(e *ast.Node) *target.Node {
	simple := true
	for _, p := range e.Properties {
		if p.Computed || p.PropKind == ast.PropMethod || p.PropKind == ast.PropGetter || p.PropKind == ast.PropSetter || p.PropKind == ast.PropSpread {
			simple = false
			break
		}
	}
	if simple {
		dict := &target.Node{Kind: target.DictLit}
		for _, p := range e.Properties {
			dict.Keys = append(dict.Keys, &target.Node{Kind: target.StringLit, StringText: propKeyText(p)})
			dict.Values = append(dict.Values, tr.lowerExpr(p.Value))
		}
		return dict
	}

	tmp := tr.newTemp()
	tr.emitToSink(&target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: tmp}}, Value: &target.Node{Kind: target.DictLit}})
	tmpRef := func() *target.Node { return &target.Node{Kind: target.Name, Name: tmp} }
	for _, p := range e.Properties {
		switch p.PropKind {
		case ast.PropGetter, ast.PropSetter:
			tr.bus.Warn(tr.file, locOf(p), diag.CodeGetterSetter, "accessor property degraded to a plain value")
			tr.emitToSink(&target.Node{Kind: target.ExprStmt, Value: tr.runtimeCall(runtime.ObjSet, tmpRef(), tr.objKey(p), tr.lowerFunctionLikeValue(p.Value))})
		case ast.PropMethod:
			tr.emitToSink(&target.Node{Kind: target.ExprStmt, Value: tr.runtimeCall(runtime.ObjSet, tmpRef(), tr.objKey(p), tr.lowerFunctionLikeValue(p.Value))})
		case ast.PropSpread:
			tr.emitToSink(&target.Node{Kind: target.ExprStmt, Value: tr.runtimeCall(runtime.Spread, tmpRef(), tr.lowerExpr(p.Value))})
		default:
			tr.emitToSink(&target.Node{Kind: target.ExprStmt, Value: tr.runtimeCall(runtime.ObjSet, tmpRef(), tr.objKey(p), tr.lowerExpr(p.Value))})
		}
	}
	return tmpRef()
}

func (tr *Transformer) objKey(p *ast.Node) *target.Node {
	if p.Computed {
		return tr.lowerExpr(p.Key)
	}
	return &target.Node{Kind: target.StringLit, StringText: propKeyText(p)}
}

func propKeyText(p *ast.Node) string {
	if p.Key.Kind == ast.StringLit {
		return p.Key.StrValue
	}
	return p.Key.Name
}

// lowerFunctionLikeValue lowers a method/getter/setter's function value to
// an expression: block-bodied functions are lifted to a named FuncDef in the
// enclosing sink and referenced by name (spec.md §4.3: "Function
// expressions").
func (tr *Transformer) lowerFunctionLikeValue(fn *ast.Node) *target.Node {
	return tr.lowerExpr(fn)
}

// lowerArrayLit lowers elements directly; elision holes (nil entries) become
// an explicit undefined sentinel plus a one-time diagnostic (spec.md §4.3:
// "Array literals with elisions"); spread elements flatten with a leading
// "*" the same as call arguments.
func (tr *Transformer) lowerArrayLit(e *ast.Node) *target.Node {
	list := &target.Node{Kind: target.ListLit}
	sparse := false
	for _, el := range e.Elements {
		if el == nil {
			sparse = true
			list.Elements = append(list.Elements, tr.runtimeRef(runtime.Undefined))
			continue
		}
		if el.Kind == ast.Spread {
			inner := tr.lowerExpr(el.Value)
			inner.IsSpread = true
			list.Elements = append(list.Elements, inner)
			continue
		}
		list.Elements = append(list.Elements, tr.lowerExpr(el))
	}
	if sparse {
		tr.bus.Info(tr.file, locOf(e), diag.CodeSparseArray, "sparse array elision filled with undefined")
	}
	return list
}

// lowerFunctionExpr always lifts a named or anonymous function expression to
// a synthesized FuncDef, placed in the innermost statement sink just ahead of
// the statement that uses it, and referenced by name, rather than attempting
// a closure literal the target language can't directly express with
// arbitrary statements in its body (spec.md §4.3: "Function expressions").
func (tr *Transformer) lowerFunctionExpr(e *ast.Node) *target.Node {
	name := e.Name
	if name == "" {
		name = tr.newTemp()
	} else {
		name = tr.freshName(name)
	}
	def := tr.buildFuncDef(name, e, isMethodLike(tr.analysis.ThisKinds[e.ID]))
	tr.emitToSink(def)
	return &target.Node{Kind: target.Name, Name: name}
}

// lowerArrowFunction lowers an expression-bodied arrow directly to a
// target.Lambda (the common case: short callback bodies); a block-bodied
// arrow is lifted to a named FuncDef like any other function expression.
// Accepted simplification: arrows are not checked for assignment to any
// captured outer binding ("captures are read-only" in spec.md's table) —
// every captured variable is read directly by closure, which is correct for
// the overwhelming majority of arrows and is documented as a limitation in
// DESIGN.md rather than implemented in full.
func (tr *Transformer) lowerArrowFunction(e *ast.Node) *target.Node {
	if e.IsExprBody {
		lam := &target.Node{Kind: target.Lambda}
		lam.Params = tr.lowerParams(e.Params)
		tr.funcScopeStack = append(tr.funcScopeStack, tr.currentFuncScope())
		lam.LambdaBody = tr.lowerExpr(e.Body)
		tr.funcScopeStack = tr.funcScopeStack[:len(tr.funcScopeStack)-1]
		return lam
	}
	name := tr.newTemp()
	def := tr.buildFuncDef(name, e, false) // arrows never rebind self
	tr.emitToSink(def)
	return &target.Node{Kind: target.Name, Name: name}
}

func isMethodLike(k scope.ThisKind) bool {
	return k == scope.ThisInstance || k == scope.ThisConstructor
}
