package transform

import (
	"strconv"

	"github.com/viant/jstranslate/pkg/ast"
	"github.com/viant/jstranslate/pkg/diag"
	"github.com/viant/jstranslate/pkg/runtime"
	"github.com/viant/jstranslate/pkg/target"
)

// StmtRule lowers one source statement node to zero or more target
// statements — the Statement-side half of the registry described in
// spec.md §4.3, mirroring ExprRule.
type StmtRule func(tr *Transformer, s *ast.Node) []*target.Node

var stmtRules map[ast.Kind]StmtRule

func init() {
	stmtRules = map[ast.Kind]StmtRule{
		ast.VarDecl:      (*Transformer).lowerVarDecl,
		ast.FunctionDecl: (*Transformer).lowerFunctionDeclStmt,
		ast.ClassDecl:    (*Transformer).lowerClassDecl,
		ast.Block:        (*Transformer).lowerBody,
		ast.ExprStmt:     (*Transformer).lowerExprStmtNode,
		ast.If:           (*Transformer).lowerIf,
		ast.ForC:         (*Transformer).lowerForC,
		ast.ForIn:        (*Transformer).lowerForIn,
		ast.ForOf:        (*Transformer).lowerForOf,
		ast.While:        (*Transformer).lowerWhile,
		ast.DoWhile:      (*Transformer).lowerDoWhile,
		ast.Switch:       (*Transformer).lowerSwitch,
		ast.Try:          (*Transformer).lowerTry,
		ast.Throw:        (*Transformer).lowerThrow,
		ast.Return:       (*Transformer).lowerReturn,
		ast.Break:        (*Transformer).lowerBreak,
		ast.Continue:     (*Transformer).lowerContinue,
		ast.Labeled:      (*Transformer).lowerLabeled,
		ast.EmptyStmt:    func(tr *Transformer, s *ast.Node) []*target.Node { return nil },
		ast.ImportDecl:   (*Transformer).lowerImportDeclStmt,
		ast.ExportDecl:   (*Transformer).lowerExportDeclStmt,
	}
}

func (tr *Transformer) lowerStatement(s *ast.Node) []*target.Node {
	if s == nil {
		return nil
	}
	rule, ok := stmtRules[s.Kind]
	if !ok {
		tr.bus.Warn(tr.file, locOf(s), diag.CodeUnsupportedSyn, "unsupported statement form, skipped")
		return nil
	}
	var sink []*target.Node
	restore := tr.pushStmtSink(&sink)
	out := rule(tr, s)
	restore()
	return append(sink, out...)
}

// lowerModuleStatement is the top-level entry for Program.Statements; import
// and export forms are only meaningful there.
func (tr *Transformer) lowerModuleStatement(s *ast.Node) []*target.Node {
	return tr.lowerStatement(s)
}

// lowerBody lowers a Block's statements in place, without padding — callers
// that need a non-empty body call padBody themselves once all pieces
// (e.g. a for-loop's update expression) are assembled.
func (tr *Transformer) lowerBody(block *ast.Node) []*target.Node {
	if block == nil {
		return nil
	}
	if block.Kind != ast.Block {
		return tr.lowerStatement(block)
	}
	var out []*target.Node
	for _, st := range block.Statements {
		out = append(out, tr.lowerStatement(st)...)
	}
	return out
}

func padBody(stmts []*target.Node) []*target.Node {
	if len(stmts) == 0 {
		return []*target.Node{{Kind: target.Pass}}
	}
	return stmts
}

// ---- var/let/const -------------------------------------------------------

// lowerVarDecl implements spec.md §9's hoisting-without-mutation contract:
// `var` bindings are seeded to undefined in the enclosing function's hoist
// sink once, and the declaration site becomes a plain assignment only when
// there's an initializer; `let`/`const` assign directly at the declaration
// site since the target language has no block-scoped declaration form.
func (tr *Transformer) lowerVarDecl(s *ast.Node) []*target.Node {
	var stmts []*target.Node
	for _, d := range s.Declarators {
		if s.DeclKind == ast.VarVar {
			tr.seedHoist(d.Id)
			if d.Value != nil {
				stmts = append(stmts, tr.lowerPatternBind(d.Id, tr.lowerExpr(d.Value))...)
			}
			continue
		}
		if d.Value != nil {
			stmts = append(stmts, tr.lowerPatternBind(d.Id, tr.lowerExpr(d.Value))...)
		} else {
			stmts = append(stmts, tr.lowerPatternBind(d.Id, tr.runtimeRef(runtime.Undefined))...)
		}
	}
	return stmts
}

func (tr *Transformer) seedHoist(pattern *ast.Node) {
	for _, idNode := range collectPatternIdentifiers(pattern) {
		b := tr.analysis.BindingFor(idNode)
		if b == nil || tr.hoistedBindings[b.ID] {
			continue
		}
		tr.hoistedBindings[b.ID] = true
		name := tr.nameForBinding(b.ID, b.Name)
		fs := tr.currentFuncScope()
		tr.hoistSinks[fs] = append(tr.hoistSinks[fs], &target.Node{
			Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: name}}, Value: tr.runtimeRef(runtime.Undefined),
		})
	}
}

func collectPatternIdentifiers(p *ast.Node) []*ast.Node {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case ast.Identifier:
		return []*ast.Node{p}
	case ast.ObjectPattern:
		var out []*ast.Node
		for _, pr := range p.Properties {
			out = append(out, collectPatternIdentifiers(pr.Value)...)
		}
		return out
	case ast.ArrayPattern:
		var out []*ast.Node
		for _, e := range p.Elements {
			if e != nil {
				out = append(out, collectPatternIdentifiers(e)...)
			}
		}
		return out
	case ast.AssignPattern:
		return collectPatternIdentifiers(p.Left)
	case ast.Rest:
		return collectPatternIdentifiers(p.Value)
	}
	return nil
}

// lowerPatternBind recursively binds (or assigns) a pattern from an
// already-lowered value expression (spec.md §4.3: "Destructuring
// patterns"). Array patterns index the value positionally; object patterns
// go through jsrt.js_getindex per property; a rest element in an array
// pattern is accepted by the analyzer as a RiskComplexDestructuring risk and
// is intentionally left unbound here rather than emulated with slicing
// syntax the target AST has no node for (documented limitation).
func (tr *Transformer) lowerPatternBind(pattern *ast.Node, value *target.Node) []*target.Node {
	switch pattern.Kind {
	case ast.Identifier:
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: tr.nameForRef(pattern)}}, Value: value}}
	case ast.AssignPattern:
		withDefault := &target.Node{
			Kind: target.Conditional,
			Test: &target.Node{Kind: target.CompareOp, Operator: "is", Left: value, Right: tr.runtimeRef(runtime.Undefined)},
			Consequent: tr.lowerExpr(pattern.Right),
			OrelseExpr: value,
		}
		return tr.lowerPatternBind(pattern.Left, withDefault)
	case ast.Rest:
		return tr.lowerPatternBind(pattern.Value, value)
	case ast.ArrayPattern:
		var stmts []*target.Node
		tmp := tr.newTemp()
		stmts = append(stmts, &target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: tmp}}, Value: value})
		for i, el := range pattern.Elements {
			if el == nil {
				continue
			}
			if el.Kind == ast.Rest {
				tr.bus.Warn(tr.file, locOf(el), diag.CodeUnsupportedSyn, "rest element in array destructuring is not bound")
				continue
			}
			elem := &target.Node{Kind: target.Subscript, Base: &target.Node{Kind: target.Name, Name: tmp}, Index: &target.Node{Kind: target.NumberLit, NumberText: strconv.Itoa(i)}}
			stmts = append(stmts, tr.lowerPatternBind(el, elem)...)
		}
		return stmts
	case ast.ObjectPattern:
		var stmts []*target.Node
		tmp := tr.newTemp()
		stmts = append(stmts, &target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: tmp}}, Value: value})
		for _, p := range pattern.Properties {
			if p.PropKind == ast.PropSpread {
				tr.bus.Warn(tr.file, locOf(p), diag.CodeUnsupportedSyn, "rest property in object destructuring is not bound")
				continue
			}
			key := tr.objKey(p)
			get := tr.runtimeCall(runtime.GetIndex, &target.Node{Kind: target.Name, Name: tmp}, key)
			stmts = append(stmts, tr.lowerPatternBind(p.Value, get)...)
		}
		return stmts
	default:
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{tr.lowerAssignTarget(pattern)}, Value: value}}
	}
}

// ---- assignment / expression statements ---------------------------------

func (tr *Transformer) lowerAssignTarget(n *ast.Node) *target.Node {
	switch n.Kind {
	case ast.Identifier:
		return &target.Node{Kind: target.Name, Name: tr.nameForRef(n)}
	case ast.Member:
		base := tr.lowerExpr(n.Object)
		if n.Computed {
			return &target.Node{Kind: target.Subscript, Base: base, Index: tr.lowerExpr(n.PropertyID)}
		}
		return &target.Node{Kind: target.Attribute, Base: base, Attr: n.PropertyID.Name}
	default:
		return tr.lowerExpr(n)
	}
}

var directCompoundOps = map[string]string{
	"-=": "-=", "*=": "*=", "/=": "/=", "%=": "%=", "**=": "**=",
	"&=": "&=", "|=": "|=", "^=": "^=", "<<=": "<<=", ">>=": ">>=",
}

// lowerAssignment lowers one Assignment node to its target statement(s) plus
// the expression value it yields in expression position (spec.md §4.3:
// "Assignment expressions"). Destructuring assignment produces several
// statements: a temp capture followed by one assignment per bound name.
func (tr *Transformer) lowerAssignment(e *ast.Node) ([]*target.Node, *target.Node) {
	if e.Operator == "=" && e.Left.Kind == ast.Member {
		if _, _, ok := moduleExportsAssignShape(e.Left); ok {
			return tr.lowerCommonJSExportAssign(e)
		}
	}
	if e.Operator == "=" {
		if isPatternNode(e.Left) {
			value := tr.lowerExpr(e.Right)
			return tr.lowerPatternBind(e.Left, value), value
		}
		tgt := tr.lowerAssignTarget(e.Left)
		value := tr.lowerExpr(e.Right)
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{tgt}, Value: value}}, value
	}

	right := tr.lowerExpr(e.Right)
	switch e.Operator {
	case "+=":
		tgt := tr.lowerAssignTarget(e.Left)
		val := tr.runtimeCall(runtime.Plus, tr.lowerExpr(e.Left), right)
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{tgt}, Value: val}}, val
	case "&&=":
		tgt := tr.lowerAssignTarget(e.Left)
		val := tr.runtimeCall(runtime.And, tr.lowerExpr(e.Left), right)
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{tgt}, Value: val}}, val
	case "||=":
		tgt := tr.lowerAssignTarget(e.Left)
		val := tr.runtimeCall(runtime.Or, tr.lowerExpr(e.Left), right)
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{tgt}, Value: val}}, val
	case "??=":
		tgt := tr.lowerAssignTarget(e.Left)
		val := tr.runtimeCall(runtime.Nullish, tr.lowerExpr(e.Left), right)
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{tgt}, Value: val}}, val
	case ">>>=":
		tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "unsigned right-shift-assign translated as signed")
		tgt := tr.lowerAssignTarget(e.Left)
		return []*target.Node{{Kind: target.AugAssign, Operator: ">>=", Left: tgt, Right: right}}, tr.lowerExpr(e.Left)
	default:
		op, ok := directCompoundOps[e.Operator]
		tgt := tr.lowerAssignTarget(e.Left)
		if !ok {
			tr.bus.Warn(tr.file, locOf(e), diag.CodeUnsupportedSyn, "unsupported compound assignment operator "+e.Operator)
			op = "+="
		}
		return []*target.Node{{Kind: target.AugAssign, Operator: op, Left: tgt, Right: right}}, tr.lowerExpr(e.Left)
	}
}

func isPatternNode(n *ast.Node) bool {
	return n.Kind == ast.ObjectPattern || n.Kind == ast.ArrayPattern
}

// lowerExprStmtNode lowers an ExprStmt (spec.md §4.3: top-level expression
// statements); assignment and update expressions used as statements lower
// directly rather than through a temp, since their values are discarded.
func (tr *Transformer) lowerExprStmtNode(s *ast.Node) []*target.Node {
	return tr.lowerExprStatement(s.Value)
}

func (tr *Transformer) lowerExprStatement(e *ast.Node) []*target.Node {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ast.Assignment:
		stmts, _ := tr.lowerAssignment(e)
		return stmts
	case ast.Update:
		op := "+="
		if e.Operator == "--" {
			op = "-="
		}
		tgt := tr.lowerAssignTarget(e.Value)
		return []*target.Node{{Kind: target.AugAssign, Operator: op, Left: tgt, Right: &target.Node{Kind: target.NumberLit, NumberText: "1"}}}
	case ast.Sequence:
		var out []*target.Node
		for _, ex := range e.Expressions {
			out = append(out, tr.lowerExprStatement(ex)...)
		}
		return out
	default:
		var sink []*target.Node
		restore := tr.pushStmtSink(&sink)
		val := tr.lowerExpr(e)
		restore()
		sink = append(sink, &target.Node{Kind: target.ExprStmt, Value: val})
		return sink
	}
}

// ---- control flow ---------------------------------------------------------

func (tr *Transformer) lowerIf(s *ast.Node) []*target.Node {
	var sink []*target.Node
	restore := tr.pushStmtSink(&sink)
	test := tr.lowerExpr(s.Test)
	restore()
	node := &target.Node{Kind: target.If, Test: test, Body: padBody(tr.lowerBody(s.Consequent))}
	if s.Alternate != nil {
		if s.Alternate.Kind == ast.If {
			node.Orelse = tr.lowerIf(s.Alternate)
		} else {
			node.Orelse = padBody(tr.lowerBody(s.Alternate))
		}
	}
	return append(sink, node)
}

func (tr *Transformer) lowerForC(s *ast.Node) []*target.Node {
	var out []*target.Node
	if s.Init != nil {
		if s.Init.Kind == ast.VarDecl {
			out = append(out, tr.lowerVarDecl(s.Init)...)
		} else {
			out = append(out, tr.lowerExprStatement(s.Init)...)
		}
	}
	test := &target.Node{Kind: target.BoolLit, BoolValue: true}
	if s.Test != nil {
		test = tr.lowerExpr(s.Test)
	}
	body := tr.lowerBody(s.Body)
	if s.Update2 != nil {
		body = append(body, tr.lowerExprStatement(s.Update2)...)
	}
	out = append(out, &target.Node{Kind: target.While, Test: test, Body: padBody(body)})
	return out
}

// lowerForIn iterates the runtime's js_keys(obj) the way spec.md §4.3 maps
// `for...in` to key iteration.
func (tr *Transformer) lowerForIn(s *ast.Node) []*target.Node {
	return tr.lowerForEachCommon(s, tr.runtimeCall(runtime.Keys, tr.lowerExpr(s.Right)))
}

// lowerForOf iterates the runtime's js_iter(it) (spec.md §4.3: `for...of`
// maps to value iteration, including iterables with a custom Symbol.iterator
// the runtime facade understands).
func (tr *Transformer) lowerForOf(s *ast.Node) []*target.Node {
	return tr.lowerForEachCommon(s, tr.runtimeCall(runtime.Iter, tr.lowerExpr(s.Right)))
}

func (tr *Transformer) lowerForEachCommon(s *ast.Node, iter *target.Node) []*target.Node {
	var targetNode *target.Node
	var prologue []*target.Node
	switch {
	case s.DeclKind != "" && s.Left.Kind == ast.Identifier:
		targetNode = &target.Node{Kind: target.Name, Name: tr.nameForRef(s.Left)}
	case s.DeclKind != "":
		tmp := tr.newTemp()
		targetNode = &target.Node{Kind: target.Name, Name: tmp}
		prologue = tr.lowerPatternBind(s.Left, &target.Node{Kind: target.Name, Name: tmp})
	default:
		targetNode = tr.lowerAssignTarget(s.Left)
	}
	body := append(prologue, tr.lowerBody(s.Body)...)
	return []*target.Node{{Kind: target.ForEach, Target: targetNode, Iter: iter, Body: padBody(body)}}
}

func (tr *Transformer) lowerWhile(s *ast.Node) []*target.Node {
	return []*target.Node{{Kind: target.While, Test: tr.lowerExpr(s.Test), Body: padBody(tr.lowerBody(s.Body))}}
}

// lowerDoWhile lowers to `while True: body; if not test: break`, the
// standard idiom for a post-condition loop in a language with no native
// do-while (spec.md §4.3: "do-while loops").
func (tr *Transformer) lowerDoWhile(s *ast.Node) []*target.Node {
	tr.bus.Info(tr.file, locOf(s), diag.CodeDoWhile, "do-while lowered to while True with a trailing exit check")
	body := tr.lowerBody(s.Body)
	body = append(body, &target.Node{
		Kind: target.If,
		Test: &target.Node{Kind: target.UnaryOp, Operator: "not", Left: tr.lowerExpr(s.Test)},
		Body: []*target.Node{{Kind: target.Break}},
	})
	return []*target.Node{{Kind: target.While, Test: &target.Node{Kind: target.BoolLit, BoolValue: true}, Body: padBody(body)}}
}

// ---- switch ---------------------------------------------------------------

type switchEntry struct {
	test     *ast.Node
	own      []*ast.Node
	isDefault bool
}

// lowerSwitch implements the cascade algorithm of spec.md §4.3 ("switch
// statements"): each case's "effective body" is computed by walking the
// case list backward, concatenating the next entry's effective body
// whenever a case falls through (no break/return/throw at its own end),
// regardless of where a `default` clause sits textually. The if/elif chain
// is then built from the non-default entries in physical order (matching
// JS's match-by-position semantics), with the default's own effective body
// as the chain's unconditional final else. `switch (true)` is special-cased
// to use each case test directly as a boolean condition, skipping the
// discriminant temp entirely.
func (tr *Transformer) lowerSwitch(s *ast.Node) []*target.Node {
	var entries []switchEntry
	for _, c := range s.Cases {
		entries = append(entries, switchEntry{test: c.Test, own: c.Statements, isDefault: c.Test == nil})
	}
	effective := make([][]*ast.Node, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		stmts := entries[i].own
		if endsWithTerminator(stmts) {
			last := stmts[len(stmts)-1]
			if last.Kind == ast.Break && last.Label == "" {
				effective[i] = stmts[:len(stmts)-1]
			} else {
				effective[i] = stmts
			}
			continue
		}
		merged := append([]*ast.Node{}, stmts...)
		if i+1 < len(entries) {
			merged = append(merged, effective[i+1]...)
		}
		effective[i] = merged
	}

	switchTrue := s.Discriminant.Kind == ast.BoolLit && s.Discriminant.BoolValue
	var discriminant *target.Node
	var prelude []*target.Node
	if !switchTrue {
		tmp := tr.newTemp()
		prelude = append(prelude, &target.Node{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: tmp}}, Value: tr.lowerExpr(s.Discriminant)})
		discriminant = &target.Node{Kind: target.Name, Name: tmp}
	}

	defaultIdx := -1
	var nonDefault []int
	for i, e := range entries {
		if e.isDefault {
			if defaultIdx == -1 {
				defaultIdx = i
			}
			continue
		}
		nonDefault = append(nonDefault, i)
	}
	if len(nonDefault) == 0 {
		if defaultIdx == -1 {
			return prelude
		}
		return append(prelude, tr.lowerCaseBody(effective[defaultIdx])...)
	}

	type branch struct {
		cond *target.Node
		body []*target.Node
	}
	branches := make([]branch, 0, len(nonDefault))
	for _, idx := range nonDefault {
		var cond *target.Node
		if switchTrue {
			cond = tr.lowerExpr(entries[idx].test)
		} else {
			cond = &target.Node{Kind: target.CompareOp, Operator: "==", Left: discriminant, Right: tr.lowerExpr(entries[idx].test)}
		}
		branches = append(branches, branch{cond: cond, body: padBody(tr.lowerCaseBody(effective[idx]))})
	}

	var chain []*target.Node
	if defaultIdx != -1 {
		chain = padBody(tr.lowerCaseBody(effective[defaultIdx]))
	}
	var root *target.Node
	for i := len(branches) - 1; i >= 0; i-- {
		node := &target.Node{Kind: target.If, Test: branches[i].cond, Body: branches[i].body, Orelse: chain}
		chain = []*target.Node{node}
		root = node
	}
	return append(prelude, root)
}

func (tr *Transformer) lowerCaseBody(stmts []*ast.Node) []*target.Node {
	var out []*target.Node
	for _, st := range stmts {
		out = append(out, tr.lowerStatement(st)...)
	}
	return out
}

func endsWithTerminator(stmts []*ast.Node) bool {
	if len(stmts) == 0 {
		return false
	}
	switch stmts[len(stmts)-1].Kind {
	case ast.Break, ast.Return, ast.Throw, ast.Continue:
		return true
	}
	return false
}

// ---- try/throw/return/break/continue/labeled ------------------------------

func (tr *Transformer) lowerTry(s *ast.Node) []*target.Node {
	node := &target.Node{Kind: target.TryExcept, Body: padBody(tr.lowerBody(s.TryBlock))}
	if s.Handler != nil {
		switch {
		case s.CatchParam == nil:
			node.ExceptBody = padBody(tr.lowerBody(s.Handler))
		case s.CatchParam.Kind == ast.Identifier:
			node.ExceptName = tr.nameForRef(s.CatchParam)
			node.ExceptBody = padBody(tr.lowerBody(s.Handler))
		default:
			tmp := tr.newTemp()
			node.ExceptName = tmp
			destructure := tr.lowerPatternBind(s.CatchParam, &target.Node{Kind: target.Name, Name: tmp})
			node.ExceptBody = padBody(append(destructure, tr.lowerBody(s.Handler)...))
		}
	}
	if s.Finalizer != nil {
		node.FinallyBody = padBody(tr.lowerBody(s.Finalizer))
	}
	return []*target.Node{node}
}

func (tr *Transformer) lowerThrow(s *ast.Node) []*target.Node {
	return []*target.Node{{Kind: target.Raise, Value: tr.runtimeCall(runtime.JsError, tr.lowerExpr(s.Value))}}
}

func (tr *Transformer) lowerReturn(s *ast.Node) []*target.Node {
	if s.Value == nil {
		return []*target.Node{{Kind: target.Return}}
	}
	return []*target.Node{{Kind: target.Return, Value: tr.lowerExpr(s.Value)}}
}

// lowerBreak/lowerContinue only model the common case precisely: an
// unlabeled break/continue, or a labeled one whose label directly wraps the
// loop being exited (equivalent to the unlabeled form once lowered). Deeper
// nested-loop label targeting would need a generalized flag-variable
// rewrite; that's accepted as a known limitation rather than implemented
// (see DESIGN.md).
func (tr *Transformer) lowerBreak(s *ast.Node) []*target.Node {
	if s.Label != "" {
		tr.bus.Warn(tr.file, locOf(s), diag.CodeLabeledBreak, "labeled break translated as an unlabeled break")
	}
	return []*target.Node{{Kind: target.Break}}
}

func (tr *Transformer) lowerContinue(s *ast.Node) []*target.Node {
	if s.Label != "" {
		tr.bus.Warn(tr.file, locOf(s), diag.CodeLabeledBreak, "labeled continue translated as an unlabeled continue")
	}
	return []*target.Node{{Kind: target.Continue}}
}

func (tr *Transformer) lowerLabeled(s *ast.Node) []*target.Node {
	return tr.lowerStatement(s.Body)
}

// ---- functions / classes ---------------------------------------------------

func (tr *Transformer) lowerFunctionDeclStmt(s *ast.Node) []*target.Node {
	b := tr.analysis.BindingFor(s)
	name := s.Name
	if b != nil {
		name = tr.nameForBinding(b.ID, b.Name)
	} else {
		name = tr.freshName(name)
	}
	return []*target.Node{tr.buildFuncDef(name, s, false)}
}

func (tr *Transformer) lowerParams(params []*ast.Node) []target.Param {
	var out []target.Param
	for _, p := range params {
		out = append(out, tr.lowerParam(p))
	}
	return out
}

func (tr *Transformer) lowerParam(p *ast.Node) target.Param {
	switch p.Kind {
	case ast.Identifier:
		return target.Param{Name: tr.nameForRef(p)}
	case ast.AssignPattern:
		base := tr.lowerParam(p.Left)
		base.Default = tr.lowerExpr(p.Right)
		return base
	case ast.Rest:
		inner := tr.lowerParam(p.Value)
		inner.IsStar = true
		return inner
	default:
		tmp := tr.newTemp()
		tr.pendingParamDestructure = append(tr.pendingParamDestructure, paramDestructure{tmp: tmp, pattern: p})
		return target.Param{Name: tmp}
	}
}

// buildFuncDef lowers a function-like node's params and body into a
// standalone FuncDef, seeding its own hoist sink and self/funcScope frames
// (spec.md §4.2's this-classification feeds bindSelf here: instance and
// constructor methods receive a leading `self` parameter, ordinary and
// arrow functions don't).
func (tr *Transformer) buildFuncDef(name string, fn *ast.Node, bindSelf bool) *target.Node {
	def := &target.Node{Kind: target.FuncDef, Name: name}

	savedPending := tr.pendingParamDestructure
	tr.pendingParamDestructure = nil
	params := tr.lowerParams(fn.Params)
	paramPrologueSrc := tr.pendingParamDestructure
	tr.pendingParamDestructure = savedPending

	if bindSelf {
		params = append([]target.Param{{Name: "self"}}, params...)
	}
	def.Params = params

	tr.funcScopeStack = append(tr.funcScopeStack, fn.ID)
	selfName := ""
	if bindSelf {
		selfName = "self"
	}
	tr.selfStack = append(tr.selfStack, selfName)

	var paramPrologue []*target.Node
	for _, pd := range paramPrologueSrc {
		paramPrologue = append(paramPrologue, tr.lowerPatternBind(pd.pattern, &target.Node{Kind: target.Name, Name: pd.tmp})...)
	}

	var body []*target.Node
	if fn.IsExprBody {
		var sink []*target.Node
		restore := tr.pushStmtSink(&sink)
		val := tr.lowerExpr(fn.Body)
		restore()
		body = append(sink, &target.Node{Kind: target.Return, Value: val})
	} else {
		body = tr.lowerBody(fn.Body)
	}
	body = append(tr.hoistSinks[fn.ID], append(paramPrologue, body...)...)

	tr.selfStack = tr.selfStack[:len(tr.selfStack)-1]
	tr.funcScopeStack = tr.funcScopeStack[:len(tr.funcScopeStack)-1]

	def.Body = padBody(body)
	return def
}

func (tr *Transformer) lowerClassDecl(s *ast.Node) []*target.Node {
	b := tr.analysis.BindingFor(s)
	name := s.Name
	if b != nil {
		name = tr.nameForBinding(b.ID, b.Name)
	} else if name != "" {
		name = tr.freshName(name)
	}
	def := &target.Node{Kind: target.ClassDef, Name: name}
	if s.SuperClass != nil {
		def.Bases = []*target.Node{tr.lowerExpr(s.SuperClass)}
	}
	var body []*target.Node
	for _, m := range s.Members {
		body = append(body, tr.lowerClassMember(m)...)
	}
	def.Body = padBody(body)
	return []*target.Node{def}
}

func (tr *Transformer) lowerClassMember(m *ast.Node) []*target.Node {
	switch m.Kind {
	case ast.MethodDef:
		name := m.Name
		if m.MethodKind == ast.MethodConstructor {
			name = "__init__"
		}
		bindSelf := !m.Static
		def := tr.buildFuncDef(name, m, bindSelf)
		if m.MethodKind == ast.MethodConstructor {
			// spec.md §4.3.2: "any return of a non-object value is dropped"
			// — __init__ must return None in the target language, so every
			// return in the constructor body is neutralized to a bare
			// return regardless of its value's shape (DESIGN.md: an object
			// value gets the same treatment, since the target's __init__
			// contract has no equivalent to JS's return-an-object-from-a-
			// constructor override).
			neutralizeReturns(def.Body)
		}
		switch m.MethodKind {
		case ast.MethodStatic:
			def.Decorators = append(def.Decorators, "staticmethod")
		case ast.MethodGetter:
			def.Decorators = append(def.Decorators, "property")
		case ast.MethodSetter:
			def.Decorators = append(def.Decorators, m.Name+".setter")
		}
		return []*target.Node{def}
	case ast.FieldDef:
		value := tr.runtimeRef(runtime.Undefined)
		if m.Value != nil {
			value = tr.lowerExpr(m.Value)
		}
		return []*target.Node{{Kind: target.Assign, Targets: []*target.Node{{Kind: target.Name, Name: m.Name}}, Value: value}}
	}
	return nil
}

// neutralizeReturns walks every nested statement list in a constructor body
// and clears the value off any Return node, recursing into if/else, loop,
// and try/except/finally bodies — everywhere a return can appear once
// lowered. __init__ must return None in the target language, so a
// constructor's `return this;`/`return expr;` keeps its early-exit control
// flow but drops the value (spec.md §4.3.2).
func neutralizeReturns(stmts []*target.Node) {
	for _, s := range stmts {
		switch s.Kind {
		case target.Return:
			s.Value = nil
		case target.If:
			neutralizeReturns(s.Body)
			neutralizeReturns(s.Orelse)
		case target.ForEach, target.While:
			neutralizeReturns(s.Body)
		case target.TryExcept:
			neutralizeReturns(s.Body)
			neutralizeReturns(s.ExceptBody)
			neutralizeReturns(s.FinallyBody)
		}
	}
}
