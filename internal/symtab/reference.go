package symtab

import (
	"strings"

	"verisem/internal/source"
)

// RefKind tells the resolver which lookup rule binds one reference
// component.
type RefKind uint8

const (
	// RefUnqualified is a chain root resolved by upward lexical lookup.
	RefUnqualified RefKind = iota
	// RefDirectMember is a "::" component resolved inside the parent's
	// resolved scope.
	RefDirectMember
	// RefMemberOfTypeOfParent is a "." component resolved inside the type
	// of the parent's resolved symbol.
	RefMemberOfTypeOfParent
)

func (k RefKind) String() string {
	switch k {
	case RefUnqualified:
		return "unqualified"
	case RefDirectMember:
		return "::"
	case RefMemberOfTypeOfParent:
		return "."
	default:
		return "unknown"
	}
}

// ReferenceComponent is one segment of a reference expression. Once
// ResolvedSymbol is set it is never cleared; it always points into the same
// scope tree the chain is attached to.
type ReferenceComponent struct {
	Identifier     string
	Kind           RefKind
	Span           source.Span
	ResolvedSymbol *ScopeNode
}

// ReferenceComponentNode is a node of a (possibly branching) reference
// tree. Sibling order is insertion order.
type ReferenceComponentNode struct {
	Component ReferenceComponent
	Children  []*ReferenceComponentNode
}

// Resolved reports whether this component has been bound.
func (n *ReferenceComponentNode) Resolved() bool {
	return n.Component.ResolvedSymbol != nil
}

// WalkPreOrder visits the node then its children; children are skipped when
// fn returns false for their parent.
func (n *ReferenceComponentNode) WalkPreOrder(fn func(*ReferenceComponentNode) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.WalkPreOrder(fn)
	}
}

// DependentReferences owns one reference tree captured from a single
// use-site expression. An instance with no root is empty and non-actionable;
// the builder discards it instead of attaching it to a scope.
type DependentReferences struct {
	Root *ReferenceComponentNode

	// lastLeaf tracks the deepest node of the plain chain. Nodes attached
	// at a branch point (named arguments) never move it, so it always
	// names the component the next "::" or "." extends.
	lastLeaf *ReferenceComponentNode
}

// Empty reports whether no identifier has been captured yet.
func (d *DependentReferences) Empty() bool {
	return d.Root == nil
}

// Push extends the deepest leaf of the chain with a new component; on an
// empty chain the component becomes the root. Returns the new node.
func (d *DependentReferences) Push(comp ReferenceComponent) *ReferenceComponentNode {
	node := &ReferenceComponentNode{Component: comp}
	if d.Root == nil {
		if comp.Kind != RefUnqualified && comp.ResolvedSymbol == nil {
			panic("symtab: chain root must be unqualified")
		}
		d.Root = node
	} else {
		if comp.Kind == RefUnqualified {
			panic("symtab: non-root component must not be unqualified")
		}
		d.lastLeaf.Children = append(d.lastLeaf.Children, node)
	}
	d.lastLeaf = node
	return node
}

// AttachAtBranchPoint inserts a sibling component directly under the branch
// point, preserving insertion order. Used for named ports and named
// parameter assignments.
func (d *DependentReferences) AttachAtBranchPoint(bp *ReferenceComponentNode, comp ReferenceComponent) *ReferenceComponentNode {
	if bp == nil {
		panic("symtab: nil branch point")
	}
	node := &ReferenceComponentNode{Component: comp}
	bp.Children = append(bp.Children, node)
	return node
}

// LastLeaf returns the deepest node of the plain chain, ignoring components
// attached at branch points. For a type reference like A#(.B(1))::C this is
// C, the component that names the declared type.
func (d *DependentReferences) LastLeaf() *ReferenceComponentNode {
	return d.lastLeaf
}

// String renders the plain chain for debugging, e.g. "pkg::cls.field".
func (d *DependentReferences) String() string {
	if d.Root == nil {
		return ""
	}
	var sb strings.Builder
	for n := d.Root; n != nil; {
		if n != d.Root {
			sb.WriteString(n.Component.Kind.String())
		}
		sb.WriteString(n.Component.Identifier)
		next := (*ReferenceComponentNode)(nil)
		if len(n.Children) > 0 {
			// The chain continuation is the last child; earlier children
			// are branch-point siblings.
			tail := n.Children[len(n.Children)-1]
			if n != d.lastLeaf {
				next = tail
			}
		}
		n = next
	}
	return sb.String()
}
