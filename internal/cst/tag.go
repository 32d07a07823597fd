package cst

// Tag classifies a branch node of the concrete syntax tree. The enum is
// closed: the parser emits only these tags and the symbol table builder
// switches over them exhaustively.
type Tag uint8

const (
	TagInvalid Tag = iota
	// TagFile is the root node of one parsed source file.
	TagFile

	// Scoped declarations.
	TagModuleDeclaration
	TagPackageDeclaration
	TagClassDeclaration
	TagGenerateRegion       // generate ... endgenerate
	TagConditionalGenerate  // if (...) body [else body]
	TagGenerateIfClause     // if (...) body
	TagGenerateElseClause   // else body
	TagGenerateBlock        // begin [: label] ... end

	// Non-scoped declarations.
	TagParameterPortList // #(parameter ...) on a module header
	TagPortDeclarationList
	TagPortDeclaration // input logic a
	TagParamDeclaration
	TagDataDeclaration // <type> names-or-instances ;
	TagVariable        // one declared net/variable name
	TagInstance        // one instance: name ( connections )

	// Connections and arguments.
	TagPortConnectionList
	TagNamedPortConnection  // .port(expr)
	TagActualParameterList  // #( ... )
	TagNamedParamAssignment // .PARAM(expr)

	// Types and expressions.
	TagDataType
	TagPackedDimensions
	TagReference // identifier chain: a, a.b, a::b
	TagExpression
	TagAssignStatement
)

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "invalid"
}

var tagNames = [...]string{
	TagInvalid:              "invalid",
	TagFile:                 "file",
	TagModuleDeclaration:    "module-declaration",
	TagPackageDeclaration:   "package-declaration",
	TagClassDeclaration:     "class-declaration",
	TagGenerateRegion:       "generate-region",
	TagConditionalGenerate:  "conditional-generate",
	TagGenerateIfClause:     "generate-if-clause",
	TagGenerateElseClause:   "generate-else-clause",
	TagGenerateBlock:        "generate-block",
	TagParameterPortList:    "parameter-port-list",
	TagPortDeclarationList:  "port-declaration-list",
	TagPortDeclaration:      "port-declaration",
	TagParamDeclaration:     "param-declaration",
	TagDataDeclaration:      "data-declaration",
	TagVariable:             "variable",
	TagInstance:             "instance",
	TagPortConnectionList:   "port-connection-list",
	TagNamedPortConnection:  "named-port-connection",
	TagActualParameterList:  "actual-parameter-list",
	TagNamedParamAssignment: "named-param-assignment",
	TagDataType:             "data-type",
	TagPackedDimensions:     "packed-dimensions",
	TagReference:            "reference",
	TagExpression:           "expression",
	TagAssignStatement:      "assign-statement",
}
