package transform

import (
	"github.com/viant/jstranslate/pkg/ast"
)

// targetReserved lists the target language's reserved words (spec.md §4.3.1,
// "Reserved-word identifiers"): a source identifier that collides with one of
// these is renamed by appending "_js" the first time it's bound.
var targetReserved = map[string]bool{
	"and": true, "or": true, "not": true, "is": true, "in": true,
	"if": true, "elif": true, "else": true, "for": true, "while": true,
	"def": true, "class": true, "return": true, "yield": true, "lambda": true,
	"pass": true, "break": true, "continue": true, "try": true, "except": true,
	"finally": true, "raise": true, "with": true, "as": true, "import": true,
	"from": true, "global": true, "nonlocal": true, "del": true, "assert": true,
	"True": true, "False": true, "None": true, "self": true, "print": true,
	"exec": true, "async": true, "await": true,
}

// nameForBinding returns the stable target-language identifier for a binding
// id, renaming on first use when the source name collides with a reserved
// word or one already claimed by another binding in the same file (spec.md
// §4.3.1). Every later reference to the same binding id gets the same name.
func (tr *Transformer) nameForBinding(bindingID int, sourceName string) string {
	if n, ok := tr.renames[bindingID]; ok {
		return n
	}
	name := tr.freshName(sourceName)
	tr.renames[bindingID] = name
	return name
}

// nameForRef resolves a reference/decl node to its binding and returns the
// renamed target identifier, falling back to the raw source name (with
// reserved-word escaping only, no dedup) for globals/builtins that carry no
// binding record.
func (tr *Transformer) nameForRef(n *ast.Node) string {
	if b := tr.analysis.BindingFor(n); b != nil {
		return tr.nameForBinding(b.ID, b.Name)
	}
	if targetReserved[n.Name] {
		return n.Name + "_js"
	}
	return n.Name
}

func (tr *Transformer) freshName(base string) string {
	name := base
	if targetReserved[name] || name == "" {
		name = name + "_js"
	}
	for tr.usedNames[name] {
		name = name + "_"
	}
	tr.usedNames[name] = true
	return name
}

func (tr *Transformer) uniqueModuleName(base string) string {
	return tr.freshName(base)
}
