package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number represents any numeric literal, including sized ones like 8'hFF.
	Number
	// String represents a string literal.
	String

	// Keywords.
	KwModule     // module
	KwEndmodule  // endmodule
	KwPackage    // package
	KwEndpackage // endpackage
	KwClass      // class
	KwEndclass   // endclass
	KwGenerate   // generate
	KwEndgenerate
	KwIf
	KwElse
	KwBegin
	KwEnd
	KwParameter  // parameter
	KwLocalparam // localparam
	KwWire
	KwReg
	KwLogic
	KwInt
	KwInteger
	KwBit
	KwByte
	KwReal
	KwInput
	KwOutput
	KwInout
	KwAssign

	// Operators and punctuation.
	Dot        // .
	ColonColon // ::
	Colon      // :
	Semicolon  // ;
	Comma      // ,
	Hash       // #
	Assign     // =
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Lt         // <
	Gt         // >
	At         // @
	Question   // ?
	Bang       // !
	Amp        // &
	Pipe       // |
	Caret      // ^
	Tilde      // ~
	Percent    // %
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "eof",
	Ident:         "ident",
	Number:        "number",
	String:        "string",
	KwModule:      "module",
	KwEndmodule:   "endmodule",
	KwPackage:     "package",
	KwEndpackage:  "endpackage",
	KwClass:       "class",
	KwEndclass:    "endclass",
	KwGenerate:    "generate",
	KwEndgenerate: "endgenerate",
	KwIf:          "if",
	KwElse:        "else",
	KwBegin:       "begin",
	KwEnd:         "end",
	KwParameter:   "parameter",
	KwLocalparam:  "localparam",
	KwWire:        "wire",
	KwReg:         "reg",
	KwLogic:       "logic",
	KwInt:         "int",
	KwInteger:     "integer",
	KwBit:         "bit",
	KwByte:        "byte",
	KwReal:        "real",
	KwInput:       "input",
	KwOutput:      "output",
	KwInout:       "inout",
	KwAssign:      "assign",
	Dot:           ".",
	ColonColon:    "::",
	Colon:         ":",
	Semicolon:     ";",
	Comma:         ",",
	Hash:          "#",
	Assign:        "=",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	LBrace:        "{",
	RBrace:        "}",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Lt:            "<",
	Gt:            ">",
	At:            "@",
	Question:      "?",
	Bang:          "!",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Percent:       "%",
}
