package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
)

// ParseError reports the furthest position the parser reached, the tokens
// it could have accepted there, and the token it found instead.
type ParseError struct {
	Line     int
	Column   int
	Expected []string
	Found    string
}

func (e *ParseError) Error() string {
	expected := "nothing"
	switch len(e.Expected) {
	case 0:
	case 1:
		expected = e.Expected[0]
	default:
		expected = "one of " + strings.Join(e.Expected, ", ")
	}
	return fmt.Sprintf("parse error at line %d column %d: expected %s but found %s",
		e.Line, e.Column, expected, e.Found)
}

// memoKey separates results computed under a predicate, where failures
// are not recorded, from those that must replay their expected set.
type memoKey struct {
	typ  ast.RuleType
	pos  int
	pred bool
}

type memoEntry struct {
	end      int
	nodes    []*ast.Node
	ok       bool
	failPos  int
	failDesc []string
}

// Parser holds the state of one parse
type Parser struct {
	grammar    *Grammar
	tokens     []token.Token
	memo       map[memoKey]memoEntry
	furthest   int
	expected   []string
	predicates int
}

// Parse parses tokens, which must end with EOF, starting from the root
// rule. The whole stream must be consumed.
func (g *Grammar) Parse(tokens []token.Token, root ast.RuleType) (*ast.Node, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens, token.Token{Kind: token.EOF, Line: 1, Column: 1})
	}

	p := &Parser{
		grammar:  g,
		tokens:   tokens,
		memo:     make(map[memoKey]memoEntry),
		furthest: -1,
	}

	end, nodes, ok := g.Rule(root).match(p, 0)
	if ok && end < len(tokens) && tokens[end].Kind != token.EOF {
		p.fail(end, "EOF")
		ok = false
	}
	if !ok || len(nodes) != 1 {
		return nil, p.error()
	}

	result := nodes[0]
	ast.Link(result)
	return result, nil
}

func (p *Parser) fail(pos int, desc ...string) {
	if p.predicates > 0 || len(desc) == 0 {
		return
	}
	if pos > p.furthest {
		p.furthest = pos
		p.expected = p.expected[:0]
	}
	if pos == p.furthest {
		p.expected = append(p.expected, desc...)
	}
}

type mark struct {
	furthest int
	expected int
}

func (p *Parser) mark() mark {
	return mark{furthest: p.furthest, expected: len(p.expected)}
}

// since returns the failures recorded after m that are still at the
// furthest position, so a memoized failure can replay them.
func (p *Parser) since(m mark) (int, []string) {
	if p.furthest < 0 {
		return 0, nil
	}
	if p.furthest == m.furthest {
		return p.furthest, append([]string(nil), p.expected[m.expected:]...)
	}
	return p.furthest, append([]string(nil), p.expected...)
}

func (p *Parser) error() *ParseError {
	pos := p.furthest
	if pos < 0 {
		pos = 0
	}
	if pos >= len(p.tokens) {
		pos = len(p.tokens) - 1
	}
	tok := p.tokens[pos]

	found := "EOF"
	if tok.Kind != token.EOF {
		found = fmt.Sprintf("%q", tok.Text)
	}

	seen := make(map[string]bool)
	var expected []string
	for _, e := range p.expected {
		if !seen[e] {
			seen[e] = true
			expected = append(expected, e)
		}
	}
	sort.Strings(expected)

	return &ParseError{
		Line:     tok.Line,
		Column:   tok.Column,
		Expected: expected,
		Found:    found,
	}
}
