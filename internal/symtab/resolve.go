package symtab

import (
	"fmt"

	"verisem/internal/diag"
	"verisem/internal/source"
)

// resolver binds reference components in one pre-order pass. A component
// whose parent stayed unresolved is left unresolved silently; only the root
// cause of a failed chain is diagnosed.
type resolver struct {
	reporter diag.Reporter
}

func (r *resolver) report(code diag.Code, span source.Span, msg string) {
	if r.reporter == nil {
		return
	}
	r.reporter.Report(code, diag.SevError, span, msg, nil)
}

func (r *resolver) resolveChain(owner *ScopeNode, refs *DependentReferences) {
	if refs == nil || refs.Root == nil {
		return
	}
	r.resolveNode(owner, nil, refs.Root)
}

// resolveNode resolves one component, then its children. Children are never
// visited under an unresolved parent, which keeps diagnostics from
// cascading. Already-resolved components are skipped, so a second Resolve
// run changes nothing.
func (r *resolver) resolveNode(owner *ScopeNode, parent, node *ReferenceComponentNode) {
	comp := &node.Component
	if comp.ResolvedSymbol == nil && !r.bind(owner, parent, comp) {
		return
	}
	for _, child := range node.Children {
		r.resolveNode(owner, node, child)
	}
}

// bind applies the lookup rule for the component's kind. It returns false
// when the subtree below must stay unresolved.
func (r *resolver) bind(owner *ScopeNode, parent *ReferenceComponentNode, comp *ReferenceComponent) bool {
	switch comp.Kind {
	case RefUnqualified:
		found := owner.LookupUpward(comp.Identifier)
		if found == nil {
			r.report(diag.SymUnresolvedSymbol, comp.Span,
				fmt.Sprintf("unable to resolve symbol %q from context %s",
					comp.Identifier, owner.FullPath()))
			return false
		}
		comp.ResolvedSymbol = found
		return true

	case RefDirectMember:
		if parent == nil || !parent.Resolved() {
			return false
		}
		scope := parent.Component.ResolvedSymbol
		found := scope.FindDirectChild(comp.Identifier)
		if found == nil {
			r.report(diag.SymUnresolvedMember, comp.Span,
				fmt.Sprintf("no member symbol %q in parent scope %s",
					comp.Identifier, scopeLabel(scope)))
			return false
		}
		comp.ResolvedSymbol = found
		return true

	case RefMemberOfTypeOfParent:
		if parent == nil || !parent.Resolved() {
			return false
		}
		typeRef := parent.Component.ResolvedSymbol.Info.DeclaredType.UserDefinedType
		if typeRef == nil || !typeRef.Resolved() {
			// Primitive or still-unresolved type: nothing to search,
			// nothing to report.
			return false
		}
		typeScope := typeRef.Component.ResolvedSymbol
		found := typeScope.FindDirectChild(comp.Identifier)
		if found == nil {
			r.report(diag.SymUnresolvedMember, comp.Span,
				fmt.Sprintf("no member symbol %q in parent scope %s",
					comp.Identifier, scopeLabel(typeScope)))
			return false
		}
		comp.ResolvedSymbol = found
		return true

	default:
		panic(fmt.Sprintf("symtab: unknown reference kind %d", comp.Kind))
	}
}

func scopeLabel(s *ScopeNode) string {
	if s.Key == "" {
		return "$root"
	}
	return s.Key
}
