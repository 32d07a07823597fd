package token

import (
	"verisem/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwModule && t.Kind <= KwAssign
}

// IsPrimitiveType reports whether the token names a built-in data type.
func (t Token) IsPrimitiveType() bool {
	switch t.Kind {
	case KwWire, KwReg, KwLogic, KwInt, KwInteger, KwBit, KwByte, KwReal:
		return true
	default:
		return false
	}
}

// IsHierarchyOperator reports whether the token separates reference
// components ('.' or '::').
func (t Token) IsHierarchyOperator() bool {
	return t.Kind == Dot || t.Kind == ColonColon
}
