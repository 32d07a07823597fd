package symtab

import (
	"fmt"
	"strings"

	"verisem/internal/cst"
	"verisem/internal/source"
)

// anonPrefix starts every synthesized scope name. "%" cannot occur in a
// source identifier, so synthesized names can never collide with user code.
const anonPrefix = "%anon"

// DeclarationTypeInfo records the type ascribed to a typed declaration.
type DeclarationTypeInfo struct {
	// SyntaxOrigin is the type subtree, nil for implicitly typed symbols.
	SyntaxOrigin cst.Node
	// UserDefinedType points at the reference component that names a
	// user-defined type; nil for primitive types. Non-owning.
	UserDefinedType *ReferenceComponentNode
}

// SymbolInfo is the payload of one scope tree node.
type SymbolInfo struct {
	Kind SymbolKind
	// File stamps diagnostics with the declaring file.
	File *source.File
	// SyntaxOrigin is the CST node that declared this symbol. Non-owning.
	SyntaxOrigin cst.Node
	DeclaredType DeclarationTypeInfo
	// PendingReferences holds every reference tree rooted in this scope,
	// in capture order. The resolver consumes them in this order.
	PendingReferences []*DependentReferences

	anonCounter int
}

// ScopeNode is one node of the scope tree. Nodes are individually heap
// allocated so handles stay valid while sibling maps keep growing.
type ScopeNode struct {
	// Key is the declared name; empty only for the root.
	Key    string
	Parent *ScopeNode
	Info   SymbolInfo

	children map[string]*ScopeNode
	order    []string
}

// NewRoot creates the unnamed whole-file scope.
func NewRoot(file *source.File) *ScopeNode {
	return &ScopeNode{
		Info: SymbolInfo{Kind: KindRoot, File: file},
	}
}

// Declare inserts a child named name if no direct child has that name yet.
// It returns the inserted or pre-existing node and whether insertion
// happened. On collision the first declaration wins and the existing node is
// left untouched.
func (s *ScopeNode) Declare(name string, info SymbolInfo) (*ScopeNode, bool) {
	if existing, ok := s.children[name]; ok {
		return existing, false
	}
	node := &ScopeNode{Key: name, Parent: s, Info: info}
	if s.children == nil {
		s.children = make(map[string]*ScopeNode)
	}
	s.children[name] = node
	s.order = append(s.order, name)
	return node, true
}

// FindDirectChild looks name up in this scope only, no upward search.
func (s *ScopeNode) FindDirectChild(name string) *ScopeNode {
	return s.children[name]
}

// LookupUpward walks from this scope to the root and returns the first
// direct child named name, nearest scope first.
func (s *ScopeNode) LookupUpward(name string) *ScopeNode {
	for scope := s; scope != nil; scope = scope.Parent {
		if child := scope.FindDirectChild(name); child != nil {
			return child
		}
	}
	return nil
}

// CreateAnonymousName synthesizes a scope name for an unlabeled construct,
// unique within this scope and impossible to spell in source.
func (s *ScopeNode) CreateAnonymousName(base string) string {
	name := fmt.Sprintf("%s-%s-%d", anonPrefix, base, s.Info.anonCounter)
	s.Info.anonCounter++
	return name
}

// FullPath renders the scope's path from the root, "$root" for the root
// itself, joined with "::".
func (s *ScopeNode) FullPath() string {
	if s.Parent == nil {
		return "$root"
	}
	return s.Parent.FullPath() + "::" + s.Key
}

// ChildNames returns direct child names in declaration order.
func (s *ScopeNode) ChildNames() []string {
	return s.order
}

// NumChildren returns the number of direct children.
func (s *ScopeNode) NumChildren() int {
	return len(s.order)
}

// WalkScopes visits this scope then its children in declaration order.
func (s *ScopeNode) WalkScopes(fn func(*ScopeNode)) {
	fn(s)
	for _, name := range s.order {
		s.children[name].WalkScopes(fn)
	}
}

// render writes an indented subtree description, for debug dumps.
func (s *ScopeNode) render(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
	key := s.Key
	if key == "" {
		key = "$root"
	}
	fmt.Fprintf(sb, "%s [%s]\n", key, s.Info.Kind)
	for _, name := range s.order {
		s.children[name].render(sb, depth+1)
	}
}
