package diag

import (
	"fmt"
)

// Code identifies a diagnostic category. Codes are grouped by phase:
// 1xxx lexical, 2xxx syntactic, 3xxx symbol table, 7xxx I/O.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectSemicolon    Code = 2003
	SynUnclosedDelimiter  Code = 2004
	SynUnexpectedTopLevel Code = 2005
	SynExpectEndKeyword   Code = 2006

	// Symbol table
	SymDuplicateSymbol  Code = 3001
	SymUnresolvedSymbol Code = 3002
	SymUnresolvedMember Code = 3003

	// I/O
	IOLoadFileError Code = 7001
)

func (c Code) String() string {
	return fmt.Sprintf("V%04d", uint16(c))
}

// Phase returns a short label for the code's phase group.
func (c Code) Phase() string {
	switch {
	case c >= 1000 && c < 2000:
		return "lex"
	case c >= 2000 && c < 3000:
		return "syntax"
	case c >= 3000 && c < 4000:
		return "symbols"
	case c >= 7000 && c < 8000:
		return "io"
	default:
		return "unknown"
	}
}
