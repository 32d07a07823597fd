package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"verisem/internal/diag"
	"verisem/internal/source"
	"verisem/internal/token"
)

// Options configures a lexer instance.
type Options struct {
	Reporter diag.Reporter
}

// Lexer produces tokens for the SystemVerilog subset, one at a time.
type Lexer struct {
	file *source.File
	off  uint32
	opts Options
	look *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '\'':
		// Unsized based literal like 'b0101 or '0.
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) eof() bool {
	return int(lx.off) >= len(lx.file.Content)
}

func (lx *Lexer) peek() byte {
	return lx.file.Content[lx.off]
}

func (lx *Lexer) peekAt(n uint32) (byte, bool) {
	idx := lx.off + n
	if int(idx) >= len(lx.file.Content) {
		return 0, false
	}
	return lx.file.Content[idx], true
}

func (lx *Lexer) bump() {
	lx.off++
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.off, End: lx.off}
}

func (lx *Lexer) spanFrom(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.off}
}

func (lx *Lexer) text(span source.Span) string {
	return string(lx.file.Content[span.Start:span.End])
}

// skipTrivia consumes whitespace and comments, reporting unterminated block
// comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.bump()
		case ch == '/':
			next, ok := lx.peekAt(1)
			if !ok {
				return
			}
			switch next {
			case '/':
				for !lx.eof() && lx.peek() != '\n' {
					lx.bump()
				}
			case '*':
				start := lx.off
				lx.bump()
				lx.bump()
				closed := false
				for !lx.eof() {
					if lx.peek() == '*' {
						if n, ok := lx.peekAt(1); ok && n == '/' {
							lx.bump()
							lx.bump()
							closed = true
							break
						}
					}
					lx.bump()
				}
				if !closed {
					lx.report(diag.LexUnterminatedBlockComment, lx.spanFrom(start),
						"unterminated block comment")
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.off
	for !lx.eof() && isIdentContinue(lx.peek()) {
		lx.bump()
	}
	span := lx.spanFrom(start)
	text := lx.text(span)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: span,
		Text: text,
	}
}

// scanNumber consumes decimal literals and based literals like 12'hAB_CD.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.off
	for !lx.eof() && (isDigit(lx.peek()) || lx.peek() == '_') {
		lx.bump()
	}
	if !lx.eof() && lx.peek() == '\'' {
		lx.bump()
		if !lx.eof() && isBaseChar(lx.peek()) {
			lx.bump()
		}
		digits := 0
		for !lx.eof() && (isAlnum(lx.peek()) || lx.peek() == '_') {
			lx.bump()
			digits++
		}
		if digits == 0 {
			span := lx.spanFrom(start)
			lx.report(diag.LexBadNumber, span, "based literal is missing digits")
			return token.Token{Kind: token.Invalid, Span: span, Text: lx.text(span)}
		}
	} else if !lx.eof() && lx.peek() == '.' {
		// Real literal: 3.14
		if n, ok := lx.peekAt(1); ok && isDigit(n) {
			lx.bump()
			for !lx.eof() && isDigit(lx.peek()) {
				lx.bump()
			}
		}
	}
	span := lx.spanFrom(start)
	return token.Token{Kind: token.Number, Span: span, Text: lx.text(span)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.off
	lx.bump() // opening quote
	for !lx.eof() {
		ch := lx.peek()
		if ch == '\\' {
			lx.bump()
			if !lx.eof() {
				lx.bump()
			}
			continue
		}
		if ch == '"' {
			lx.bump()
			span := lx.spanFrom(start)
			return token.Token{Kind: token.String, Span: span, Text: lx.text(span)}
		}
		if ch == '\n' {
			break
		}
		lx.bump()
	}
	span := lx.spanFrom(start)
	lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.text(span)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.off
	ch := lx.peek()
	lx.bump()

	kind := token.Invalid
	switch ch {
	case '.':
		kind = token.Dot
	case ':':
		if n, ok := lx.peekAt(0); ok && n == ':' {
			lx.bump()
			kind = token.ColonColon
		} else {
			kind = token.Colon
		}
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '#':
		kind = token.Hash
	case '=':
		kind = token.Assign
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '@':
		kind = token.At
	case '?':
		kind = token.Question
	case '!':
		kind = token.Bang
	case '&':
		kind = token.Amp
	case '|':
		kind = token.Pipe
	case '^':
		kind = token.Caret
	case '~':
		kind = token.Tilde
	case '%':
		kind = token.Percent
	}

	span := lx.spanFrom(start)
	text := lx.text(span)
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, span, fmt.Sprintf("unknown character %q", text))
	}
	return token.Token{Kind: kind, Span: span, Text: text}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, span, msg, nil)
}

// Tokenize scans the whole file and returns all tokens including EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	hint, err := safecast.Conv[uint32](len(file.Content) / 4)
	if err != nil {
		hint = 64
	}
	tokens := make([]token.Token, 0, hint+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlnum(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isBaseChar(ch byte) bool {
	switch ch {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H', 's', 'S':
		return true
	default:
		return false
	}
}
