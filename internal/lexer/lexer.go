// Package lexer turns C# source text into a token stream. Whitespace,
// comments and directive lines never become tokens: they are collected as
// trivia and attached to the token that follows them.
package lexer

import (
	"strings"
	"unicode"

	"github.com/pthm/csquid/internal/token"
)

// Lexer tokenizes C# source code
type Lexer struct {
	src       []rune
	pos       int
	line      int
	column    int
	lineStart bool // only whitespace seen since the last newline
	trivia    []token.Trivia
	tokens    []token.Token

	// Active, when set, is called after each directive line and reports
	// whether the source following it is compiled. Lines of an inactive
	// region are read as skipped text up to the next directive line.
	Active func(directive token.Trivia) bool
}

// New creates a new lexer for the given source
func New(src string) *Lexer {
	return &Lexer{
		src:       []rune(src),
		line:      1,
		column:    1,
		lineStart: true,
	}
}

// Lex tokenizes src. It never fails: characters that start no token are
// returned as Unknown tokens.
func Lex(src string) []token.Token {
	return New(src).Tokenize()
}

// LexConditional tokenizes src, consulting active after every directive
// line so that inactive regions are never tokenized.
func LexConditional(src string, active func(directive token.Trivia) bool) []token.Token {
	l := New(src)
	l.Active = active
	return l.Tokenize()
}

// Tokenize processes the entire input and returns all tokens, ending with EOF
func (l *Lexer) Tokenize() []token.Token {
	for {
		l.readTrivia()
		if l.pos >= len(l.src) {
			break
		}
		l.readToken()
	}

	l.tokens = append(l.tokens, token.Token{
		Kind:   token.EOF,
		Line:   l.line,
		Column: l.column,
		Trivia: l.trivia,
	})
	l.trivia = nil
	return l.tokens
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *Lexer) cur() rune {
	return l.peekAt(0)
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.column = 1
		l.lineStart = true
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	i := 0
	for _, r := range s {
		if l.peekAt(i) != r {
			return false
		}
		i++
	}
	return true
}

// readTrivia consumes whitespace, comments and directive lines.
func (l *Lexer) readTrivia() {
	for l.pos < len(l.src) {
		ch := l.cur()
		startPos, line, col := l.pos, l.line, l.column

		switch {
		case isWhitespace(ch):
			lineStart := l.lineStart
			for l.pos < len(l.src) && isWhitespace(l.cur()) {
				l.advance()
			}
			if !strings.ContainsRune(string(l.src[startPos:l.pos]), '\n') {
				l.lineStart = lineStart
			}
			l.addTrivia(token.Whitespace, startPos, line, col)

		case ch == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && !isNewline(l.cur()) {
				l.advance()
			}
			l.addTrivia(token.Comment, startPos, line, col)

		case ch == '/' && l.peekAt(1) == '*':
			l.advanceN(2)
			for l.pos < len(l.src) && !(l.cur() == '*' && l.peekAt(1) == '/') {
				l.advance()
			}
			l.advanceN(2)
			l.lineStart = false
			l.addTrivia(token.Comment, startPos, line, col)

		case ch == '#' && l.lineStart:
			for l.pos < len(l.src) && !isNewline(l.cur()) {
				l.advance()
			}
			l.addTrivia(token.Directive, startPos, line, col)
			if l.Active != nil && !l.Active(l.trivia[len(l.trivia)-1]) {
				l.skipInactive()
			}

		default:
			return
		}
	}
}

// skipInactive reads whole lines as skipped text until the next line
// starting with '#'.
func (l *Lexer) skipInactive() {
	for l.pos < len(l.src) {
		startPos, line, col := l.pos, l.line, l.column
		if isWhitespace(l.cur()) {
			for l.pos < len(l.src) && isWhitespace(l.cur()) {
				l.advance()
			}
			l.addTrivia(token.Whitespace, startPos, line, col)
			continue
		}
		if l.cur() == '#' && l.lineStart {
			return
		}
		for l.pos < len(l.src) && !isNewline(l.cur()) {
			l.advance()
		}
		l.addTrivia(token.SkippedText, startPos, line, col)
	}
}

func (l *Lexer) addTrivia(kind token.TriviaKind, start, line, col int) {
	l.trivia = append(l.trivia, token.Trivia{
		Kind:   kind,
		Text:   string(l.src[start:l.pos]),
		Line:   line,
		Column: col,
	})
}

func (l *Lexer) readToken() {
	ch := l.cur()
	start, line, col := l.pos, l.line, l.column
	l.lineStart = false

	kind := token.Unknown
	lit := token.NotLiteral

	switch {
	case ch == '$' && (l.peekAt(1) == '"' || (l.peekAt(1) == '@' && l.peekAt(2) == '"')):
		kind, lit = l.readInterpolated()
	case ch == '@' && l.peekAt(1) == '$' && l.peekAt(2) == '"':
		kind, lit = l.readInterpolated()
	case ch == '@' && l.peekAt(1) == '"':
		l.advance()
		kind, lit = l.readVerbatimString()
	case ch == '@' && isIdentStart(l.peekAt(1)):
		l.advance()
		l.readIdentifierRest()
		kind = token.Identifier
	case isIdentStart(ch):
		l.readIdentifierRest()
		if token.IsKeyword(string(l.src[start:l.pos])) {
			kind = token.Keyword
		} else {
			kind = token.Identifier
		}
	case isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))):
		kind, lit = l.readNumber()
	case ch == '"':
		kind, lit = l.readQuoted('"', token.StringLiteral)
	case ch == '\'':
		kind, lit = l.readQuoted('\'', token.CharacterLiteral)
	default:
		if p := l.matchPunctuator(); p != "" {
			l.advanceN(len([]rune(p)))
			kind = token.Punctuator
		} else {
			l.advance()
		}
	}

	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Literal: lit,
		Text:    string(l.src[start:l.pos]),
		Line:    line,
		Column:  col,
		Trivia:  l.trivia,
	})
	l.trivia = nil
}

func (l *Lexer) matchPunctuator() string {
	for _, p := range token.Punctuators() {
		if !l.hasPrefix(p) {
			continue
		}
		// "a ? .5 : b" is a conditional, not a null-conditional access
		if p == "?." && isDigit(l.peekAt(2)) {
			continue
		}
		return p
	}
	return ""
}

func (l *Lexer) readIdentifierRest() {
	for l.pos < len(l.src) && isIdentPart(l.cur()) {
		l.advance()
	}
}

func (l *Lexer) readNumber() (token.Kind, token.LiteralKind) {
	lit := token.IntegerLiteral

	if l.cur() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.cur()) || l.cur() == '_' {
			l.advance()
		}
		l.readIntegerSuffix()
		return token.Literal, lit
	}
	if l.cur() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.advanceN(2)
		for l.cur() == '0' || l.cur() == '1' || l.cur() == '_' {
			l.advance()
		}
		l.readIntegerSuffix()
		return token.Literal, lit
	}

	l.readDigits()
	if l.cur() == '.' && isDigit(l.peekAt(1)) {
		lit = token.RealLiteral
		l.advance()
		l.readDigits()
	}
	if l.cur() == 'e' || l.cur() == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			lit = token.RealLiteral
			l.advanceN(2)
			l.readDigits()
		}
	}
	switch unicode.ToLower(l.cur()) {
	case 'f', 'd', 'm':
		lit = token.RealLiteral
		l.advance()
	default:
		if lit == token.IntegerLiteral {
			l.readIntegerSuffix()
		}
	}
	return token.Literal, lit
}

func (l *Lexer) readDigits() {
	for isDigit(l.cur()) || l.cur() == '_' {
		l.advance()
	}
}

func (l *Lexer) readIntegerSuffix() {
	for i := 0; i < 2; i++ {
		switch l.cur() {
		case 'u', 'U', 'l', 'L':
			l.advance()
		default:
			return
		}
	}
}

// readQuoted reads a regular string or character literal. An unterminated
// literal stops at the end of the line and is reported as Unknown.
func (l *Lexer) readQuoted(quote rune, lit token.LiteralKind) (token.Kind, token.LiteralKind) {
	l.advance()
	for l.pos < len(l.src) {
		ch := l.cur()
		switch {
		case ch == '\\':
			l.advance()
			if l.pos < len(l.src) && !isNewline(l.cur()) {
				l.advance()
			}
		case ch == quote:
			l.advance()
			return token.Literal, lit
		case isNewline(ch):
			return token.Unknown, token.NotLiteral
		default:
			l.advance()
		}
	}
	return token.Unknown, token.NotLiteral
}

// readVerbatimString reads @"..." where "" is an escaped quote. The
// position is on the opening quote.
func (l *Lexer) readVerbatimString() (token.Kind, token.LiteralKind) {
	l.advance()
	for l.pos < len(l.src) {
		if l.cur() == '"' {
			if l.peekAt(1) == '"' {
				l.advanceN(2)
				continue
			}
			l.advance()
			return token.Literal, token.VerbatimStringLiteral
		}
		l.advance()
	}
	return token.Unknown, token.NotLiteral
}

// readInterpolated reads $"...", $@"..." and @$"..." as a single literal,
// balancing braces of the embedded expressions.
func (l *Lexer) readInterpolated() (token.Kind, token.LiteralKind) {
	verbatim := false
	for l.cur() != '"' {
		if l.cur() == '@' {
			verbatim = true
		}
		l.advance()
	}
	l.advance()

	for l.pos < len(l.src) {
		ch := l.cur()
		switch {
		case ch == '"' && verbatim && l.peekAt(1) == '"':
			l.advanceN(2)
		case ch == '"':
			l.advance()
			return token.Literal, token.InterpolatedStringLiteral
		case ch == '\\' && !verbatim:
			l.advanceN(2)
		case ch == '{' && l.peekAt(1) == '{':
			l.advanceN(2)
		case ch == '{':
			if !l.skipHole() {
				return token.Unknown, token.NotLiteral
			}
		case isNewline(ch) && !verbatim:
			return token.Unknown, token.NotLiteral
		default:
			l.advance()
		}
	}
	return token.Unknown, token.NotLiteral
}

// skipHole consumes an interpolation hole starting at '{'.
func (l *Lexer) skipHole() bool {
	depth := 0
	for l.pos < len(l.src) {
		ch := l.cur()
		switch {
		case ch == '{':
			depth++
			l.advance()
		case ch == '}':
			depth--
			l.advance()
			if depth == 0 {
				return true
			}
		case ch == '$' && l.peekAt(1) == '"':
			if kind, _ := l.readInterpolated(); kind == token.Unknown {
				return false
			}
		case ch == '@' && l.peekAt(1) == '"':
			l.advance()
			if kind, _ := l.readVerbatimString(); kind == token.Unknown {
				return false
			}
		case ch == '"' || ch == '\'':
			if kind, _ := l.readQuoted(ch, token.StringLiteral); kind == token.Unknown {
				return false
			}
		default:
			l.advance()
		}
	}
	return false
}

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f', '\u00a0', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, ch)
}

func isNewline(ch rune) bool {
	return ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) ||
		unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch) || unicode.Is(unicode.Pc, ch)
}
