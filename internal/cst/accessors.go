package cst

import (
	"verisem/internal/token"
)

// Per-construct accessors. The symbol table builder treats these as black
// boxes: it never inspects child positions of a tagged branch directly.

// firstIdentLeaf returns the first direct child leaf holding an identifier.
func firstIdentLeaf(b *Branch) *Leaf {
	for _, child := range b.Children {
		if leaf := AsLeaf(child); leaf != nil && leaf.Tok.Kind == token.Ident {
			return leaf
		}
	}
	return nil
}

// DeclaredName returns the name leaf of a module, package or class
// declaration.
func DeclaredName(b *Branch) *Leaf {
	switch b.Tag {
	case TagModuleDeclaration, TagPackageDeclaration, TagClassDeclaration:
		return firstIdentLeaf(b)
	default:
		return nil
	}
}

// ParamName returns the declared name leaf of a param declaration: the first
// identifier leaf that is a direct child (type and value subtrees are
// branches and therefore skipped).
func ParamName(b *Branch) *Leaf {
	if b.Tag != TagParamDeclaration {
		return nil
	}
	return firstIdentLeaf(b)
}

// VariableName returns the declared name of one net/variable.
func VariableName(b *Branch) *Leaf {
	if b.Tag != TagVariable {
		return nil
	}
	return firstIdentLeaf(b)
}

// InstanceName returns the instance name of a gate/module instance.
func InstanceName(b *Branch) *Leaf {
	if b.Tag != TagInstance {
		return nil
	}
	return firstIdentLeaf(b)
}

// PortName returns the declared name of a module port declaration.
func PortName(b *Branch) *Leaf {
	if b.Tag != TagPortDeclaration {
		return nil
	}
	return firstIdentLeaf(b)
}

// ConnectionName returns the formal name of a named port connection or named
// parameter assignment (the identifier after the leading dot).
func ConnectionName(b *Branch) *Leaf {
	if b.Tag != TagNamedPortConnection && b.Tag != TagNamedParamAssignment {
		return nil
	}
	return firstIdentLeaf(b)
}

// GenerateIfBody returns the generate block of an if clause.
func GenerateIfBody(b *Branch) *Branch {
	if b.Tag != TagGenerateIfClause {
		return nil
	}
	for _, child := range b.Children {
		if br := AsBranch(child); br != nil && br.Tag == TagGenerateBlock {
			return br
		}
	}
	return nil
}

// GenerateElseBody returns the body of an else clause: either a generate
// block or, for else-if chains, a nested conditional generate construct.
func GenerateElseBody(b *Branch) *Branch {
	if b.Tag != TagGenerateElseClause {
		return nil
	}
	for _, child := range b.Children {
		if br := AsBranch(child); br != nil &&
			(br.Tag == TagGenerateBlock || br.Tag == TagConditionalGenerate) {
			return br
		}
	}
	return nil
}

// GenerateBlockLabel returns the label leaf of "begin : label", or nil for
// an unlabeled block.
func GenerateBlockLabel(b *Branch) *Leaf {
	if b.Tag != TagGenerateBlock {
		return nil
	}
	sawColon := false
	for _, child := range b.Children {
		leaf := AsLeaf(child)
		if leaf == nil {
			// Label precedes any nested branch.
			return nil
		}
		switch {
		case leaf.Tok.Kind == token.KwBegin:
			continue
		case leaf.Tok.Kind == token.Colon:
			sawColon = true
		case sawColon && leaf.Tok.Kind == token.Ident:
			return leaf
		default:
			return nil
		}
	}
	return nil
}

// NamedConnections counts named connections/assignments directly inside a
// connection or parameter list; used to size reference siblings in advance.
func NamedConnections(b *Branch) int {
	if b.Tag != TagPortConnectionList && b.Tag != TagActualParameterList {
		return 0
	}
	n := 0
	for _, child := range b.Children {
		if br := AsBranch(child); br != nil &&
			(br.Tag == TagNamedPortConnection || br.Tag == TagNamedParamAssignment) {
			n++
		}
	}
	return n
}
