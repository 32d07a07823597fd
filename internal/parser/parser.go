// Package parser builds the concrete syntax tree for the supported
// SystemVerilog subset: modules, packages, classes, generate constructs,
// parameters, nets/variables, instances with named connections, and
// assignment statements with qualified references.
package parser

import (
	"fmt"

	"verisem/internal/cst"
	"verisem/internal/diag"
	"verisem/internal/lexer"
	"verisem/internal/source"
	"verisem/internal/token"
)

// Options configures a parse run.
type Options struct {
	Reporter diag.Reporter
}

// Parser is a recursive-descent parser over the lexer's token stream.
type Parser struct {
	lx   *lexer.Lexer
	opts Options
	tok  token.Token // current token
}

// New creates a parser for one file.
func New(file *source.File, opts Options) *Parser {
	p := &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		opts: opts,
	}
	p.advance()
	return p
}

// ParseFile parses a whole source file into a TagFile branch.
func ParseFile(file *source.File, opts Options) *cst.Branch {
	p := New(file, opts)
	return p.parseFile()
}

func (p *Parser) advance() {
	p.tok = p.lx.Next()
}

func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// eat consumes the current token as a leaf.
func (p *Parser) eat() *cst.Leaf {
	leaf := cst.NewLeaf(p.tok)
	p.advance()
	return leaf
}

// expect consumes a token of the given kind or reports and synthesizes one.
func (p *Parser) expect(kind token.Kind, code diag.Code) *cst.Leaf {
	if p.at(kind) {
		return p.eat()
	}
	p.report(code, p.tok.Span,
		fmt.Sprintf("expected %q, found %q", kind.String(), p.tok.Text))
	// Synthesize an empty leaf at the current position so the tree stays
	// structurally complete.
	return cst.NewLeaf(token.Token{
		Kind: kind,
		Span: source.Span{File: p.tok.Span.File, Start: p.tok.Span.Start, End: p.tok.Span.Start},
	})
}

func (p *Parser) report(code diag.Code, span source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, span, msg, nil)
}

// skipTo advances until one of the kinds (or EOF) is current.
func (p *Parser) skipTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseFile() *cst.Branch {
	file := cst.NewBranch(cst.TagFile)
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.KwModule:
			file.Append(p.parseModule())
		case token.KwPackage:
			file.Append(p.parsePackage())
		case token.KwClass:
			file.Append(p.parseClass())
		default:
			p.report(diag.SynUnexpectedTopLevel, p.tok.Span,
				fmt.Sprintf("unexpected token %q at top level", p.tok.Text))
			p.advance()
		}
	}
	return file
}

func (p *Parser) parseModule() *cst.Branch {
	b := cst.NewBranch(cst.TagModuleDeclaration, p.eat()) // 'module'
	b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))

	if p.at(token.Hash) {
		b.Append(p.parseParameterPortList())
	}
	if p.at(token.LParen) {
		b.Append(p.parsePortDeclarationList())
	}
	b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))

	for !p.at(token.KwEndmodule) && !p.at(token.EOF) {
		b.Append(p.parseModuleItem())
	}
	b.Append(p.expect(token.KwEndmodule, diag.SynExpectEndKeyword))
	return b
}

func (p *Parser) parsePackage() *cst.Branch {
	b := cst.NewBranch(cst.TagPackageDeclaration, p.eat()) // 'package'
	b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))

	for !p.at(token.KwEndpackage) && !p.at(token.EOF) {
		b.Append(p.parseModuleItem())
	}
	b.Append(p.expect(token.KwEndpackage, diag.SynExpectEndKeyword))
	return b
}

func (p *Parser) parseClass() *cst.Branch {
	b := cst.NewBranch(cst.TagClassDeclaration, p.eat()) // 'class'
	b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))

	for !p.at(token.KwEndclass) && !p.at(token.EOF) {
		b.Append(p.parseModuleItem())
	}
	b.Append(p.expect(token.KwEndclass, diag.SynExpectEndKeyword))
	return b
}

// parseModuleItem parses one item of a module, package, class or generate
// body.
func (p *Parser) parseModuleItem() cst.Node {
	switch p.tok.Kind {
	case token.KwParameter, token.KwLocalparam:
		return p.parseParamDeclaration(true)
	case token.KwClass:
		return p.parseClass()
	case token.KwModule:
		// Nested module declarations are not supported; recover at its end.
		p.report(diag.SynUnexpectedToken, p.tok.Span, "nested module declaration")
		p.skipTo(token.KwEndmodule)
		if p.at(token.KwEndmodule) {
			p.advance()
		}
		return cst.NewBranch(cst.TagInvalid)
	case token.KwGenerate:
		return p.parseGenerateRegion()
	case token.KwIf:
		return p.parseConditionalGenerate()
	case token.KwAssign:
		return p.parseAssignStatement()
	case token.KwWire, token.KwReg, token.KwLogic, token.KwInt, token.KwInteger,
		token.KwBit, token.KwByte, token.KwReal:
		return p.parseDataDeclaration(p.parsePrimitiveType())
	case token.Ident:
		return p.parseIdentLeadItem()
	default:
		p.report(diag.SynUnexpectedToken, p.tok.Span,
			fmt.Sprintf("unexpected token %q", p.tok.Text))
		p.advance()
		return cst.NewBranch(cst.TagInvalid)
	}
}

// parseIdentLeadItem disambiguates items that start with an identifier:
// a data declaration with a user-defined type ("my_t x;"), an instantiation
// ("my_mod u0 (...);"), or an assignment statement ("x.y = e;").
func (p *Parser) parseIdentLeadItem() cst.Node {
	ref := p.parseReference(true)

	if p.at(token.Assign) {
		// The chain was an lvalue.
		b := cst.NewBranch(cst.TagAssignStatement,
			cst.NewBranch(cst.TagExpression, ref))
		b.Append(p.eat()) // '='
		b.Append(p.parseExpression())
		b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))
		return b
	}

	// Otherwise the chain was a declared type.
	dt := cst.NewBranch(cst.TagDataType, ref)
	for p.at(token.LBracket) {
		dt.Append(p.parsePackedDimensions())
	}
	return p.parseDataDeclaration(dt)
}

// parsePrimitiveType consumes a built-in type keyword with optional packed
// dimensions.
func (p *Parser) parsePrimitiveType() *cst.Branch {
	dt := cst.NewBranch(cst.TagDataType, p.eat())
	for p.at(token.LBracket) {
		dt.Append(p.parsePackedDimensions())
	}
	return dt
}

func (p *Parser) parsePackedDimensions() *cst.Branch {
	b := cst.NewBranch(cst.TagPackedDimensions, p.eat()) // '['
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.LBracket:
			depth++
		case token.RBracket:
			depth--
		}
		b.Append(p.eat())
	}
	return b
}

// parseDataDeclaration parses the declared names (or instances) that follow
// an already-parsed data type.
func (p *Parser) parseDataDeclaration(dt *cst.Branch) *cst.Branch {
	b := cst.NewBranch(cst.TagDataDeclaration, dt)
	for {
		name := p.expect(token.Ident, diag.SynExpectIdentifier)
		if p.at(token.LParen) {
			inst := cst.NewBranch(cst.TagInstance, name)
			inst.Append(p.parsePortConnectionList())
			b.Append(inst)
		} else {
			v := cst.NewBranch(cst.TagVariable, name)
			for p.at(token.LBracket) {
				v.Append(p.parsePackedDimensions())
			}
			if p.at(token.Assign) {
				v.Append(p.eat())
				v.Append(p.parseExpression())
			}
			b.Append(v)
		}
		if !p.at(token.Comma) {
			break
		}
		b.Append(p.eat()) // ','
	}
	b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))
	return b
}

// parseParamDeclaration parses "parameter [type] name = expr" with an
// optional trailing semicolon (absent inside parameter port lists).
func (p *Parser) parseParamDeclaration(wantSemi bool) *cst.Branch {
	b := cst.NewBranch(cst.TagParamDeclaration, p.eat()) // parameter|localparam

	switch {
	case p.tok.IsPrimitiveType():
		b.Append(p.parsePrimitiveType())
		b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	case p.at(token.Ident):
		// Either "parameter name = ..." or "parameter type_t name = ...".
		first := p.eat()
		if p.at(token.Ident) || p.at(token.ColonColon) || p.at(token.Hash) {
			// The first identifier opens a type reference.
			ref := cst.NewBranch(cst.TagReference, first)
			p.extendReference(ref, true)
			b.Append(cst.NewBranch(cst.TagDataType, ref))
			b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
		} else {
			b.Append(first)
		}
	default:
		b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	}

	if p.at(token.Assign) {
		b.Append(p.eat())
		b.Append(p.parseExpression())
	}
	if wantSemi {
		b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))
	}
	return b
}

func (p *Parser) parseParameterPortList() *cst.Branch {
	b := cst.NewBranch(cst.TagParameterPortList, p.eat()) // '#'
	b.Append(p.expect(token.LParen, diag.SynUnclosedDelimiter))
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.KwParameter) || p.at(token.KwLocalparam) {
			b.Append(p.parseParamDeclaration(false))
		} else {
			p.report(diag.SynUnexpectedToken, p.tok.Span,
				fmt.Sprintf("unexpected token %q in parameter ports", p.tok.Text))
			p.advance()
			continue
		}
		if p.at(token.Comma) {
			b.Append(p.eat())
		}
	}
	b.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
	return b
}

func (p *Parser) parsePortDeclarationList() *cst.Branch {
	b := cst.NewBranch(cst.TagPortDeclarationList, p.eat()) // '('
	for !p.at(token.RParen) && !p.at(token.EOF) {
		b.Append(p.parsePortDeclaration())
		if p.at(token.Comma) {
			b.Append(p.eat())
		}
	}
	b.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
	return b
}

func (p *Parser) parsePortDeclaration() *cst.Branch {
	b := cst.NewBranch(cst.TagPortDeclaration)
	if p.at(token.KwInput) || p.at(token.KwOutput) || p.at(token.KwInout) {
		b.Append(p.eat())
	}
	switch {
	case p.tok.IsPrimitiveType():
		b.Append(p.parsePrimitiveType())
		b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	case p.at(token.Ident):
		first := p.eat()
		if p.at(token.Ident) || p.at(token.ColonColon) {
			ref := cst.NewBranch(cst.TagReference, first)
			p.extendReference(ref, false)
			b.Append(cst.NewBranch(cst.TagDataType, ref))
			b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
		} else {
			// Untyped port: the identifier is the port name itself.
			b.Append(first)
		}
	default:
		b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	}
	return b
}

func (p *Parser) parseGenerateRegion() *cst.Branch {
	b := cst.NewBranch(cst.TagGenerateRegion, p.eat()) // 'generate'
	for !p.at(token.KwEndgenerate) && !p.at(token.EOF) {
		b.Append(p.parseModuleItem())
	}
	b.Append(p.expect(token.KwEndgenerate, diag.SynExpectEndKeyword))
	return b
}

func (p *Parser) parseConditionalGenerate() *cst.Branch {
	b := cst.NewBranch(cst.TagConditionalGenerate)

	ifClause := cst.NewBranch(cst.TagGenerateIfClause, p.eat()) // 'if'
	ifClause.Append(p.expect(token.LParen, diag.SynUnclosedDelimiter))
	ifClause.Append(p.parseExpression())
	ifClause.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
	ifClause.Append(p.parseGenerateBody())
	b.Append(ifClause)

	if p.at(token.KwElse) {
		elseClause := cst.NewBranch(cst.TagGenerateElseClause, p.eat())
		if p.at(token.KwIf) {
			// else-if chain: nested conditional, no block of its own.
			elseClause.Append(p.parseConditionalGenerate())
		} else {
			elseClause.Append(p.parseGenerateBody())
		}
		b.Append(elseClause)
	}
	return b
}

// parseGenerateBody parses "begin [: label] items end" or a single item,
// always producing a TagGenerateBlock.
func (p *Parser) parseGenerateBody() *cst.Branch {
	if !p.at(token.KwBegin) {
		return cst.NewBranch(cst.TagGenerateBlock, p.parseModuleItem())
	}
	b := cst.NewBranch(cst.TagGenerateBlock, p.eat()) // 'begin'
	if p.at(token.Colon) {
		b.Append(p.eat())
		b.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
	}
	for !p.at(token.KwEnd) && !p.at(token.EOF) {
		b.Append(p.parseModuleItem())
	}
	b.Append(p.expect(token.KwEnd, diag.SynExpectEndKeyword))
	return b
}

func (p *Parser) parseAssignStatement() *cst.Branch {
	b := cst.NewBranch(cst.TagAssignStatement, p.eat()) // 'assign'
	b.Append(cst.NewBranch(cst.TagExpression, p.parseReference(false)))
	b.Append(p.expect(token.Assign, diag.SynUnexpectedToken))
	b.Append(p.parseExpression())
	b.Append(p.expect(token.Semicolon, diag.SynExpectSemicolon))
	return b
}

func (p *Parser) parsePortConnectionList() *cst.Branch {
	b := cst.NewBranch(cst.TagPortConnectionList, p.eat()) // '('
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Dot) {
			conn := cst.NewBranch(cst.TagNamedPortConnection, p.eat())
			conn.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
			conn.Append(p.expect(token.LParen, diag.SynUnclosedDelimiter))
			if !p.at(token.RParen) {
				conn.Append(p.parseExpression())
			}
			conn.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
			b.Append(conn)
		} else {
			b.Append(p.parseExpression())
		}
		if p.at(token.Comma) {
			b.Append(p.eat())
		}
	}
	b.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
	return b
}

func (p *Parser) parseActualParameterList() *cst.Branch {
	b := cst.NewBranch(cst.TagActualParameterList, p.eat()) // '#'
	b.Append(p.expect(token.LParen, diag.SynUnclosedDelimiter))
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Dot) {
			assign := cst.NewBranch(cst.TagNamedParamAssignment, p.eat())
			assign.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
			assign.Append(p.expect(token.LParen, diag.SynUnclosedDelimiter))
			if !p.at(token.RParen) {
				assign.Append(p.parseExpression())
			}
			assign.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
			b.Append(assign)
		} else {
			b.Append(p.parseExpression())
		}
		if p.at(token.Comma) {
			b.Append(p.eat())
		}
	}
	b.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
	return b
}

// parseReference parses an identifier chain "a", "a::b", "a.b", optionally
// with actual parameter lists when allowParams is set (type references).
func (p *Parser) parseReference(allowParams bool) *cst.Branch {
	ref := cst.NewBranch(cst.TagReference,
		p.expect(token.Ident, diag.SynExpectIdentifier))
	p.extendReference(ref, allowParams)
	return ref
}

func (p *Parser) extendReference(ref *cst.Branch, allowParams bool) {
	for {
		switch {
		case allowParams && p.at(token.Hash):
			ref.Append(p.parseActualParameterList())
		case p.at(token.ColonColon) || p.at(token.Dot):
			ref.Append(p.eat())
			ref.Append(p.expect(token.Ident, diag.SynExpectIdentifier))
		default:
			return
		}
	}
}

// parseExpression parses a flat binary expression; operands are literals,
// parenthesized subexpressions, or reference chains.
func (p *Parser) parseExpression() *cst.Branch {
	b := cst.NewBranch(cst.TagExpression)
	p.parseOperand(b)
	for p.atBinaryOperator() {
		b.Append(p.eat())
		p.parseOperand(b)
	}
	return b
}

func (p *Parser) parseOperand(b *cst.Branch) {
	switch p.tok.Kind {
	case token.Number, token.String:
		b.Append(p.eat())
	case token.Minus, token.Bang, token.Tilde:
		b.Append(p.eat())
		p.parseOperand(b)
	case token.LParen:
		b.Append(p.eat())
		b.Append(p.parseExpression())
		b.Append(p.expect(token.RParen, diag.SynUnclosedDelimiter))
	case token.Ident:
		b.Append(p.parseReference(false))
	default:
		p.report(diag.SynUnexpectedToken, p.tok.Span,
			fmt.Sprintf("expected expression, found %q", p.tok.Text))
		p.advance()
	}
}

func (p *Parser) atBinaryOperator() bool {
	switch p.tok.Kind {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Lt, token.Gt, token.Amp, token.Pipe, token.Caret:
		return true
	default:
		return false
	}
}
