package symtab

import (
	"strings"
)

// unresolvedLabel marks chains that did not bind in ResolvedChainMap.
const unresolvedLabel = "<unresolved>"

// DumpScopeTree renders the scope tree as an indented listing of
// "name [kind]" lines, children in declaration order. Debug only.
func (t *SymbolTable) DumpScopeTree() string {
	var sb strings.Builder
	t.Root.render(&sb, 0)
	return sb.String()
}

// ResolvedChainMap maps every captured chain's leaf identifier to the full
// path of the symbol it resolved to. Chains sharing a leaf identifier keep
// the last one visited. Debug only.
func (t *SymbolTable) ResolvedChainMap() map[string]string {
	out := make(map[string]string)
	t.Root.WalkScopes(func(scope *ScopeNode) {
		for _, refs := range scope.Info.PendingReferences {
			leaf := refs.LastLeaf()
			if leaf == nil {
				continue
			}
			path := unresolvedLabel
			if leaf.Resolved() {
				path = leaf.Component.ResolvedSymbol.FullPath()
			}
			out[leaf.Component.Identifier] = path
		}
	})
	return out
}
