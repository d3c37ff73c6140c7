// Package ast defines the source AST: a closed tagged union of JavaScript
// node kinds produced by pkg/parser and consumed by pkg/scope and
// pkg/transform. Every node is a *Node discriminated by Kind; there is no
// open-ended interface hierarchy (design notes, spec.md §9).
package ast

// Kind discriminates the closed set of source-AST node shapes.
type Kind string

const (
	Program Kind = "Program"

	// Declarations
	FunctionDecl Kind = "FunctionDecl"
	ClassDecl    Kind = "ClassDecl"
	VarDecl      Kind = "VarDecl"      // one declarator list; DeclKind = var|let|const
	VarDeclarator Kind = "VarDeclarator"
	MethodDef    Kind = "MethodDef" // instance/static/constructor method inside a class body
	FieldDef     Kind = "FieldDef"  // class field (public_field_definition)
	Param        Kind = "Param"     // formal parameter, possibly a pattern with Default/Rest

	// Functions
	FunctionExpr  Kind = "FunctionExpr"
	ArrowFunction Kind = "ArrowFunction"

	// Literals
	NumberLit      Kind = "NumberLit"
	StringLit      Kind = "StringLit"
	BoolLit        Kind = "BoolLit"
	NullLit        Kind = "NullLit"
	UndefinedLit   Kind = "UndefinedLit"
	RegexLit       Kind = "RegexLit"
	TemplateLit    Kind = "TemplateLit"
	TemplateQuasi  Kind = "TemplateQuasi"

	Identifier Kind = "Identifier"
	ThisExpr   Kind = "ThisExpr"

	// Expressions
	Member      Kind = "Member" // Object, Property, Computed
	Call        Kind = "Call"
	New         Kind = "New"
	Assignment  Kind = "Assignment"  // Operator, Left, Right
	Update      Kind = "Update"      // Operator, Prefix, Value
	Unary       Kind = "Unary"       // Operator, Value
	Binary      Kind = "Binary"      // Operator, Left, Right
	Logical     Kind = "Logical"     // Operator (&&, ||, ??), Left, Right
	Conditional Kind = "Conditional" // Test, Consequent, Alternate
	Sequence    Kind = "Sequence"    // Expressions (comma operator)
	Spread      Kind = "Spread"      // Value
	Rest        Kind = "Rest"        // Value (binding pattern tail)

	ObjectLit Kind = "ObjectLit" // Properties
	Property  Kind = "Property"  // PropKind: init|shorthand|computed|getter|setter|spread; Key, Value
	ArrayLit  Kind = "ArrayLit"  // Elements (nil entries are elision holes)

	ObjectPattern Kind = "ObjectPattern" // destructuring target, Properties
	ArrayPattern  Kind = "ArrayPattern"  // destructuring target, Elements
	AssignPattern Kind = "AssignPattern" // pattern with default: Left (target), Right (default)

	// Statements
	Block       Kind = "Block"
	ExprStmt    Kind = "ExprStmt"
	If          Kind = "If"
	ForC        Kind = "ForC"
	ForIn       Kind = "ForIn"
	ForOf       Kind = "ForOf"
	While       Kind = "While"
	DoWhile     Kind = "DoWhile"
	Switch      Kind = "Switch"
	SwitchCase  Kind = "SwitchCase" // nil Test => default
	Try         Kind = "Try"
	Throw       Kind = "Throw"
	Return      Kind = "Return"
	Break       Kind = "Break"
	Continue    Kind = "Continue"
	Labeled     Kind = "Labeled"
	EmptyStmt   Kind = "EmptyStmt"

	// Modules / CommonJS
	ImportDecl      Kind = "ImportDecl"
	ImportSpecifier Kind = "ImportSpecifier" // Name (local), ImportedName; IsDefault, IsNamespace
	ExportDecl      Kind = "ExportDecl"      // IsDefault; Declaration and/or Specifiers
	ExportSpecifier Kind = "ExportSpecifier" // Name (local), ExportedName
)

// CommonJS forms (require(...) calls, module.exports = ..., exports.x = ...)
// are not distinct parser-level kinds: spec.md §3 describes them as
// "patterns recognized by shape", so they stay ordinary Call/Assignment/
// Member nodes and are pattern-matched by pkg/scope (module-shape
// detection) and pkg/transform (lowering) the way the teacher's
// inspector/jsx.Inspector recognizes useState-calls and JSX-returning
// functions by shape rather than by a dedicated grammar rule.

// VarKind enumerates the three declaration flavors spec.md §3 names.
type VarKind string

const (
	VarVar   VarKind = "var"
	VarLet   VarKind = "let"
	VarConst VarKind = "const"
)

// PropKind enumerates object-literal property kinds (spec.md §3).
type PropKind string

const (
	PropInit      PropKind = "init"
	PropShorthand PropKind = "shorthand"
	PropComputed  PropKind = "computed"
	PropGetter    PropKind = "getter"
	PropSetter    PropKind = "setter"
	PropSpread    PropKind = "spread"
	PropMethod    PropKind = "method"
)

// MethodKind enumerates class member kinds.
type MethodKind string

const (
	MethodInstance    MethodKind = "instance"
	MethodStatic      MethodKind = "static"
	MethodConstructor MethodKind = "constructor"
	MethodGetter      MethodKind = "getter"
	MethodSetter      MethodKind = "setter"
)

// ModuleShape classifies how the source declares imports/exports.
type ModuleShape string

const (
	ShapeScript    ModuleShape = "script"
	ShapeESM       ModuleShape = "esm"
	ShapeCommonJS  ModuleShape = "commonjs"
	ShapeMixed     ModuleShape = "mixed"
)
