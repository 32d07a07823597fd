package symtab

import (
	"verisem/internal/cst"
	"verisem/internal/diag"
	"verisem/internal/source"
)

// SymbolTable ties one scope tree to the file it was built from. The tree
// is mutated only by Build and Resolve; consumers treat it as read-only.
// Node handles stay valid for the lifetime of the table.
type SymbolTable struct {
	Root *ScopeNode
	File *source.File
}

// Build walks the CST of one file and produces the scope tree with all
// reference chains captured but not yet resolved. Duplicate declarations
// are reported through the reporter; the first declaration wins.
func Build(root *cst.Branch, file *source.File, reporter diag.Reporter) *SymbolTable {
	b := &builder{file: file, reporter: reporter}
	b.scope = NewRoot(file)
	if root != nil {
		for _, child := range root.Children {
			b.buildItem(child)
		}
	}
	return &SymbolTable{Root: b.scope, File: file}
}

// Resolve binds every captured reference chain it can, in exactly one
// pre-order pass over the scope tree. Calling Resolve again neither changes
// any binding nor emits new diagnostics.
func (t *SymbolTable) Resolve(reporter diag.Reporter) {
	r := &resolver{reporter: reporter}
	t.Root.WalkScopes(func(scope *ScopeNode) {
		for _, refs := range scope.Info.PendingReferences {
			r.resolveChain(scope, refs)
		}
	})
}
