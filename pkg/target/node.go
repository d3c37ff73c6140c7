// Package target defines the target AST: a second closed tagged union
// modeling the output scripting language (indented, statement-oriented,
// first-class functions/classes/dicts/lists). pkg/emit is the only
// consumer that walks it to produce text; pkg/transform is the only
// producer.
package target

// Kind discriminates the closed set of target-AST node shapes.
type Kind string

const (
	ModuleKind Kind = "Module"

	FuncDef  Kind = "FuncDef"
	Lambda   Kind = "Lambda"
	ClassDef Kind = "ClassDef"

	Assign    Kind = "Assign"
	AugAssign Kind = "AugAssign"
	ExprStmt  Kind = "ExprStmt"
	If        Kind = "If"
	ForEach   Kind = "ForEach"
	While     Kind = "While"
	TryExcept Kind = "TryExcept"
	Raise     Kind = "Raise"
	Return    Kind = "Return"
	Break     Kind = "Break"
	Continue  Kind = "Continue"
	Pass      Kind = "Pass"

	Call      Kind = "Call"
	Attribute Kind = "Attribute"
	Subscript Kind = "Subscript"
	Name      Kind = "Name"

	NumberLit Kind = "NumberLit"
	StringLit Kind = "StringLit"
	BoolLit   Kind = "BoolLit"
	NoneLit   Kind = "NoneLit"

	ListLit  Kind = "ListLit"
	DictLit  Kind = "DictLit"
	TupleLit Kind = "TupleLit"

	Conditional Kind = "Conditional"
	UnaryOp     Kind = "UnaryOp"
	BinOp       Kind = "BinOp"
	CompareOp   Kind = "CompareOp"
	BoolOp      Kind = "BoolOp"

	Import     Kind = "Import"
	ImportFrom Kind = "ImportFrom"
)

// Param is a target function/lambda parameter.
type Param struct {
	Name     string
	Default  *Node // nil if required
	IsStar   bool  // *args
	IsKwStar bool  // **kwargs
}

// SourceRef back-references a source-AST location for diagnostics/debugging.
type SourceRef struct {
	StartLine int
	StartCol  int
}

// ImportName is one imported binding in an ImportFrom node (name, optional
// alias).
type ImportName struct {
	Name  string
	Alias string // "" = no alias
}

// Node is the single concrete representation of every target-AST variant,
// discriminated by Kind, following the same one-struct-many-kinds shape as
// pkg/ast.Node and the teacher's graph.Type: every known kind is a variant,
// dispatched on Kind rather than on an open Go type hierarchy.
type Node struct {
	Kind Kind

	// Leading comments (diagnostics / lowering-degradation TODOs), emitted
	// as leading lines by pkg/emit.
	LeadingComments []string

	// Back-reference to the originating source location; nil for
	// synthesized nodes (temporaries, hoists, runtime-preamble imports).
	SourceLoc *SourceRef

	// Module
	Statements []*Node // ModuleKind top-level body

	// FuncDef / Lambda
	Name       string
	Params     []Param
	Decorators []string
	Body       []*Node // FuncDef/If/ForEach/While/TryExcept body statements
	LambdaBody *Node   // Lambda: single expression body

	// ClassDef
	Bases []*Node // base class list (Name/Attribute nodes)

	// Assign / AugAssign
	Targets  []*Node // Assign may target multiple names (a = b = expr)
	Operator string  // AugAssign/BinOp/CompareOp/BoolOp/UnaryOp operator text

	// shared binary-ish operand slots (Assign.Value, AugAssign.Left/Right,
	// BinOp/CompareOp/BoolOp Left/Right, UnaryOp.Operand via Left)
	Left  *Node
	Right *Node
	Value *Node // Assign RHS; Return/Raise argument; ExprStmt expression

	// If
	Test   *Node   // If/While/Conditional condition
	Orelse []*Node // If: else-branch body (may itself be a single nested If for elif)

	// ForEach
	Target *Node // loop variable name target
	Iter   *Node // iterable expression

	// TryExcept
	ExceptName  string // bound exception name, "" if unbound
	ExceptBody  []*Node
	FinallyBody []*Node

	// Call
	Func *Node
	Args []*Node

	// IsSpread marks an element of Args/Elements that should be printed
	// with a leading "*" (call-argument / literal spread, spec.md §4.3:
	// "Spread in calls/array literals").
	IsSpread bool

	// Attribute / Subscript
	Base  *Node // Attribute/Subscript base expression
	Attr  string
	Index *Node

	// Literals
	NumberText string // numeric literal rendered verbatim
	StringText string // string literal content, not yet quoted
	BoolValue  bool

	Elements []*Node // ListLit/TupleLit
	Keys     []*Node // DictLit
	Values   []*Node // DictLit values, parallel to Keys

	// Conditional expression (ternary): Test ? Consequent : OrelseExpr
	Consequent *Node
	OrelseExpr *Node

	// Import / ImportFrom
	Module  string
	Alias   string       // Import: "" = no alias
	Imports []ImportName // ImportFrom imported names
}
