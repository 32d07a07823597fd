// Package symtab builds a hierarchical symbol table from a parsed syntax
// tree and resolves identifier references against it. Build and Resolve are
// two separate passes so that forward references still bind.
package symtab

// SymbolKind classifies what a scope tree node declares.
type SymbolKind uint8

const (
	// KindRoot is the unnamed whole-file scope.
	KindRoot SymbolKind = iota
	KindModule
	KindPackage
	KindClass
	// KindGenerate is a generate block scope, labeled or synthesized.
	KindGenerate
	KindParameter
	// KindDataOrInstance covers nets, variables, ports and module instances.
	KindDataOrInstance
)

func (k SymbolKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindNames = [...]string{
	KindRoot:           "root",
	KindModule:         "module",
	KindPackage:        "package",
	KindClass:          "class",
	KindGenerate:       "generate",
	KindParameter:      "parameter",
	KindDataOrInstance: "data/net/instance",
}
