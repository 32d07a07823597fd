package token

var keywords = map[string]Kind{
	"module":      KwModule,
	"endmodule":   KwEndmodule,
	"package":     KwPackage,
	"endpackage":  KwEndpackage,
	"class":       KwClass,
	"endclass":    KwEndclass,
	"generate":    KwGenerate,
	"endgenerate": KwEndgenerate,
	"if":          KwIf,
	"else":        KwElse,
	"begin":       KwBegin,
	"end":         KwEnd,
	"parameter":   KwParameter,
	"localparam":  KwLocalparam,
	"wire":        KwWire,
	"reg":         KwReg,
	"logic":       KwLogic,
	"int":         KwInt,
	"integer":     KwInteger,
	"bit":         KwBit,
	"byte":        KwByte,
	"real":        KwReal,
	"input":       KwInput,
	"output":      KwOutput,
	"inout":       KwInout,
	"assign":      KwAssign,
}

// LookupKeyword maps an identifier spelling to its keyword kind, or Ident.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
