package grammar

import (
	"fmt"
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
)

// Expr is a parsing expression. Matching returns the position after the
// match and the nodes it produced.
type Expr interface {
	match(p *Parser, pos int) (int, []*ast.Node, bool)
	String() string
}

// toExpr converts a combinator argument: Expr as is, RuleType to a rule
// reference, and string to a keyword, punctuator or contextual word.
func toExpr(item any) Expr {
	switch v := item.(type) {
	case Expr:
		return v
	case ast.RuleType:
		return ruleRef(v)
	case string:
		switch {
		case token.IsKeyword(v):
			return Keyword(v)
		case isPunctuator(v):
			return Punct(v)
		default:
			return Word(v)
		}
	default:
		panic(fmt.Sprintf("grammar: unsupported expression %T", item))
	}
}

func toExprs(items []any) []Expr {
	out := make([]Expr, len(items))
	for i, it := range items {
		out[i] = toExpr(it)
	}
	return out
}

func isPunctuator(s string) bool {
	for _, p := range token.Punctuators() {
		if p == s {
			return true
		}
	}
	return false
}

func single(items []any) Expr {
	if len(items) == 1 {
		return toExpr(items[0])
	}
	return Seq(items...)
}

// tokenExpr matches one token
type tokenExpr struct {
	desc string
	test func(tok *token.Token) bool
}

func (e *tokenExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	tok := &p.tokens[pos]
	if tok.Kind != token.EOF && e.test(tok) {
		return pos + 1, []*ast.Node{ast.NewTerminal(tok)}, true
	}
	p.fail(pos, e.desc)
	return pos, nil, false
}

func (e *tokenExpr) String() string {
	return e.desc
}

// Keyword matches a reserved keyword
func Keyword(text string) Expr {
	return &tokenExpr{
		desc: fmt.Sprintf("%q", text),
		test: func(tok *token.Token) bool {
			return tok.Kind == token.Keyword && tok.Text == text
		},
	}
}

// Punct matches a punctuator
func Punct(text string) Expr {
	return &tokenExpr{
		desc: fmt.Sprintf("%q", text),
		test: func(tok *token.Token) bool {
			return tok.Kind == token.Punctuator && tok.Text == text
		},
	}
}

// Word matches an identifier with the given text (a contextual keyword)
func Word(text string) Expr {
	return &tokenExpr{
		desc: fmt.Sprintf("%q", text),
		test: func(tok *token.Token) bool {
			return tok.Kind == token.Identifier && tok.Text == text
		},
	}
}

// Kind matches any token of the given kind
func Kind(k token.Kind) Expr {
	return &tokenExpr{
		desc: strings.ToUpper(k.String()),
		test: func(tok *token.Token) bool {
			return tok.Kind == k
		},
	}
}

// IdentifierExcept matches an identifier whose text is not in words
func IdentifierExcept(words ...string) Expr {
	return &tokenExpr{
		desc: "IDENTIFIER",
		test: func(tok *token.Token) bool {
			if tok.Kind != token.Identifier {
				return false
			}
			for _, w := range words {
				if tok.Text == w {
					return false
				}
			}
			return true
		},
	}
}

// OneOfKeywords matches any of the given keywords
func OneOfKeywords(words ...string) Expr {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return &tokenExpr{
		desc: "one of " + strings.Join(words, " "),
		test: func(tok *token.Token) bool {
			return tok.Kind == token.Keyword && set[tok.Text]
		},
	}
}

// AnyToken matches any token except EOF
func AnyToken() Expr {
	return &tokenExpr{
		desc: "any token",
		test: func(*token.Token) bool { return true },
	}
}

type textExpr struct {
	text string
}

func (e *textExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	tok := &p.tokens[pos]
	if tok.Kind != token.EOF && tok.Text == e.text {
		return pos + 1, []*ast.Node{ast.NewTerminal(tok)}, true
	}
	p.fail(pos, fmt.Sprintf("%q", e.text))
	return pos, nil, false
}

func (e *textExpr) String() string {
	return fmt.Sprintf("%q", e.text)
}

// Text matches any token whose text equals s regardless of its kind. Mocked
// rules use it to accept their own name.
func Text(s string) Expr {
	return &textExpr{text: s}
}

type eofExpr struct{}

func (eofExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	tok := &p.tokens[pos]
	if tok.Kind == token.EOF {
		return pos + 1, []*ast.Node{ast.NewTerminal(tok)}, true
	}
	p.fail(pos, "EOF")
	return pos, nil, false
}

func (eofExpr) String() string {
	return "EOF"
}

// EOF matches the end of the token stream
func EOF() Expr {
	return eofExpr{}
}

type seqExpr struct {
	items []Expr
}

func (e *seqExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	var nodes []*ast.Node
	cur := pos
	for _, it := range e.items {
		next, ns, ok := it.match(p, cur)
		if !ok {
			return pos, nil, false
		}
		nodes = append(nodes, ns...)
		cur = next
	}
	return cur, nodes, true
}

func (e *seqExpr) String() string {
	return "seq(" + joinExprs(e.items) + ")"
}

// Seq matches all items in order
func Seq(items ...any) Expr {
	return &seqExpr{items: toExprs(items)}
}

type firstOfExpr struct {
	items []Expr
}

func (e *firstOfExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	for _, it := range e.items {
		if next, ns, ok := it.match(p, pos); ok {
			return next, ns, true
		}
	}
	return pos, nil, false
}

func (e *firstOfExpr) String() string {
	return "firstOf(" + joinExprs(e.items) + ")"
}

// FirstOf tries each alternative in order; the first match wins
func FirstOf(items ...any) Expr {
	return &firstOfExpr{items: toExprs(items)}
}

type repeatExpr struct {
	item Expr
	min  int
	max  int // 0 means unbounded
}

func (e *repeatExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	var nodes []*ast.Node
	cur := pos
	count := 0
	for e.max == 0 || count < e.max {
		next, ns, ok := e.item.match(p, cur)
		if !ok || next == cur {
			break
		}
		nodes = append(nodes, ns...)
		cur = next
		count++
	}
	if count < e.min {
		return pos, nil, false
	}
	return cur, nodes, true
}

func (e *repeatExpr) String() string {
	switch {
	case e.max == 1:
		return "opt(" + e.item.String() + ")"
	case e.min == 1:
		return "oneOrMore(" + e.item.String() + ")"
	default:
		return "zeroOrMore(" + e.item.String() + ")"
	}
}

// Opt matches its items zero or one time
func Opt(items ...any) Expr {
	return &repeatExpr{item: single(items), max: 1}
}

// ZeroOrMore matches its items repeatedly
func ZeroOrMore(items ...any) Expr {
	return &repeatExpr{item: single(items)}
}

// OneOrMore matches its items at least once
func OneOrMore(items ...any) Expr {
	return &repeatExpr{item: single(items), min: 1}
}

type predicateExpr struct {
	item   Expr
	negate bool
}

func (e *predicateExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	p.predicates++
	_, _, ok := e.item.match(p, pos)
	p.predicates--
	if ok != e.negate {
		return pos, nil, true
	}
	return pos, nil, false
}

func (e *predicateExpr) String() string {
	if e.negate {
		return "not(" + e.item.String() + ")"
	}
	return "next(" + e.item.String() + ")"
}

// Next succeeds without consuming input when its items match
func Next(items ...any) Expr {
	return &predicateExpr{item: single(items)}
}

// Not succeeds without consuming input when its items do not match
func Not(items ...any) Expr {
	return &predicateExpr{item: single(items), negate: true}
}

type adjacentExpr struct {
	texts []string
}

func (e *adjacentExpr) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	if pos+len(e.texts) > len(p.tokens) {
		p.fail(pos, e.String())
		return pos, nil, false
	}
	nodes := make([]*ast.Node, 0, len(e.texts))
	for i, text := range e.texts {
		tok := &p.tokens[pos+i]
		if tok.Kind != token.Punctuator || tok.Text != text {
			p.fail(pos, e.String())
			return pos, nil, false
		}
		if i > 0 {
			prev := &p.tokens[pos+i-1]
			if len(tok.Trivia) > 0 || tok.Line != prev.Line || tok.Column != prev.Column+len([]rune(prev.Text)) {
				p.fail(pos, e.String())
				return pos, nil, false
			}
		}
		nodes = append(nodes, ast.NewTerminal(tok))
	}
	return pos + len(e.texts), nodes, true
}

func (e *adjacentExpr) String() string {
	return fmt.Sprintf("%q", strings.Join(e.texts, ""))
}

// Adjacent matches punctuators written with nothing between them. The
// lexer emits ">>" as two ">" tokens; Adjacent(">", ">") joins them back.
func Adjacent(texts ...string) Expr {
	return &adjacentExpr{texts: texts}
}

type ruleRef ast.RuleType

func (r ruleRef) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	return p.grammar.Rule(ast.RuleType(r)).match(p, pos)
}

func (r ruleRef) String() string {
	return ast.RuleType(r).String()
}

func joinExprs(items []Expr) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
