package ast

// Location is the 1-based line/column span of a node in its source file,
// carried by every node for diagnostics and back-references from the
// target AST.
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	StartByte uint32
	EndByte   uint32
}

// Node is the single concrete representation of every source-AST variant.
// Kind selects which of the fields below are meaningful, mirroring the way
// the teacher's graph.Type carries kind-specific fields (ComponentType,
// KeyType) alongside a reflect.Kind discriminant rather than growing a
// separate Go type per variant.
//
// ID is a stable, process-local identifier used to key scope/binding maps
// and risk-set annotations (pkg/scope.AnalysisResult) without requiring the
// AST itself to be mutated.
type Node struct {
	ID   int
	Kind Kind
	Loc  Location

	// Identifiers, literals
	Name       string // Identifier name, label name, import/export local name
	StrValue   string // string/template-quasi literal text (already unescaped)
	NumValue   float64
	BoolValue  bool
	RegexBody  string
	RegexFlags string

	// Declarations
	DeclKind   VarKind // VarDecl
	Declarators []*Node // VarDecl -> []VarDeclarator
	Id         *Node   // VarDeclarator/Param/FunctionDecl name or binding pattern

	// Functions
	Params    []*Node // formal parameters (Identifier, ObjectPattern, ArrayPattern, AssignPattern, Rest)
	Body      *Node   // Block for functions/if/for/while bodies; single-expr Node for arrow-expression bodies
	IsExprBody bool   // true when Body is a bare expression (arrow shorthand)
	IsAsync   bool
	IsGenerator bool
	Static    bool
	MethodKind MethodKind // MethodDef/FieldDef

	// Classes
	SuperClass *Node   // ClassDecl extends clause
	Members    []*Node // ClassDecl -> []MethodDef|FieldDef

	// Expressions
	Object     *Node // Member.Object
	PropertyID *Node // Member.Property (Identifier when !Computed, expression when Computed)
	Computed   bool

	Callee    *Node // Call/New
	Arguments []*Node

	Operator string // Assignment/Update/Unary/Binary/Logical operator text
	Prefix   bool   // Update
	Left     *Node  // Assignment/Binary/Logical/AssignPattern target/ForIn-ForOf binding
	Right    *Node  // Assignment/Binary/Logical/AssignPattern default/ForIn-ForOf iterable
	Value    *Node  // Unary/Spread/Rest operand; Return/Throw argument; VarDeclarator initializer; Property value

	Test       *Node // Conditional/If/While/DoWhile/ForC
	Consequent *Node // Conditional/If
	Alternate  *Node // Conditional/If

	Expressions []*Node // Sequence; TemplateLit interpolations
	Quasis      []string // TemplateLit string chunks (len = len(Expressions)+1)

	Properties []*Node // ObjectLit/ObjectPattern -> []Property
	PropKind   PropKind // Property
	Key        *Node    // Property key (Identifier or computed expression)

	Elements []*Node // ArrayLit/ArrayPattern (nil entries are elision holes)

	// Statements
	Statements []*Node // Program/Block body
	Init       *Node   // ForC init (VarDecl or expression) or nil
	Update2    *Node   // ForC update expression (named Update2 to avoid colliding with Update kind use)

	Discriminant *Node   // Switch scrutinee
	Cases        []*Node // Switch -> []SwitchCase

	TryBlock   *Node // Try
	CatchParam *Node // Try (nil if no catch)
	Handler    *Node // Try catch block
	Finalizer  *Node // Try finally block

	Label string // Labeled/Break/Continue target name (empty if unlabeled)

	// Modules / CommonJS
	Source          string // ImportDecl/RequireCall module specifier
	Specifiers      []*Node // ImportDecl/ExportDecl -> []ImportSpecifier|ExportSpecifier
	IsDefault       bool
	IsNamespace     bool
	ImportedName    string // ImportSpecifier source-side name ("" for default/namespace)
	ExportedName    string // ExportSpecifier exported-side name
	Declaration     *Node  // ExportDecl wrapping a VarDecl/FunctionDecl/ClassDecl

	Raw string // verbatim source slice, used for fallback / diagnostics context
}

// IDGen issues stable, increasing node IDs for a single parse. Each call to
// parser.Parse owns its own generator so node IDs never leak state across
// unrelated parses in the same process (the pipeline is single-threaded and
// synchronous per spec.md §5, but a long-lived process may call Parse many
// times, e.g. the directory-mode CLI).
type IDGen struct {
	next int
}

// NewNode allocates a Node with the next ID from this generator.
func (g *IDGen) NewNode(kind Kind, loc Location) *Node {
	g.next++
	return &Node{ID: g.next, Kind: kind, Loc: loc}
}
