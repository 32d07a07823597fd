// Package cst models the concrete syntax tree handed to the symbol table:
// a tree of exactly two node kinds, tagged branches and token-carrying
// leaves, preserving every significant token of the source.
package cst

import (
	"verisem/internal/source"
	"verisem/internal/token"
)

// Node is either a *Branch or a *Leaf.
type Node interface {
	Span() source.Span
}

// Branch is an internal node tagged with a construct kind.
type Branch struct {
	Tag      Tag
	Children []Node
}

// Leaf wraps a single token.
type Leaf struct {
	Tok token.Token
}

// NewBranch builds a branch from ordered children.
func NewBranch(tag Tag, children ...Node) *Branch {
	return &Branch{Tag: tag, Children: children}
}

// NewLeaf wraps a token into a leaf node.
func NewLeaf(tok token.Token) *Leaf {
	return &Leaf{Tok: tok}
}

func (b *Branch) Span() source.Span {
	var span source.Span
	first := true
	for _, child := range b.Children {
		if child == nil {
			continue
		}
		cs := child.Span()
		if cs.Empty() && cs.File == 0 && cs.Start == 0 {
			continue
		}
		if first {
			span = cs
			first = false
		} else {
			span = span.Cover(cs)
		}
	}
	return span
}

func (l *Leaf) Span() source.Span {
	return l.Tok.Span
}

// Append adds a child, keeping source order.
func (b *Branch) Append(children ...Node) {
	b.Children = append(b.Children, children...)
}

// Is reports whether the node is a branch with the given tag.
func Is(n Node, tag Tag) bool {
	br, ok := n.(*Branch)
	return ok && br.Tag == tag
}

// AsBranch narrows a node to a branch, or nil.
func AsBranch(n Node) *Branch {
	if br, ok := n.(*Branch); ok {
		return br
	}
	return nil
}

// AsLeaf narrows a node to a leaf, or nil.
func AsLeaf(n Node) *Leaf {
	if l, ok := n.(*Leaf); ok {
		return l
	}
	return nil
}

// LeftmostLeaf returns the first leaf in source order, or nil for an empty
// subtree.
func LeftmostLeaf(n Node) *Leaf {
	switch v := n.(type) {
	case *Leaf:
		return v
	case *Branch:
		for _, child := range v.Children {
			if leaf := LeftmostLeaf(child); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}
