// Package grammar provides parsing-expression combinators and a rule
// registry keyed by ast.RuleType. Rules are always reached through the
// registry, so a test can swap a rule's production for a stub with Mock
// and every other rule picks the stub up.
package grammar

import (
	"fmt"

	"github.com/pthm/csquid/internal/ast"
)

// Rule is a named production
type Rule struct {
	typ            ast.RuleType
	body           Expr
	def            Expr
	skipIfOneChild bool
}

// Type returns the rule type of nodes built by the rule
func (r *Rule) Type() ast.RuleType {
	return r.typ
}

// Mocked reports whether the rule is currently replaced by a stub
func (r *Rule) Mocked() bool {
	return r.def != r.body
}

func (r *Rule) String() string {
	return r.typ.String()
}

func (r *Rule) match(p *Parser, pos int) (int, []*ast.Node, bool) {
	key := memoKey{typ: r.typ, pos: pos, pred: p.predicates > 0}
	if m, ok := p.memo[key]; ok {
		if !m.ok {
			// replay the failure so the expected set stays complete
			p.fail(m.failPos, m.failDesc...)
		}
		return m.end, m.nodes, m.ok
	}
	if r.def == nil {
		panic(fmt.Sprintf("grammar: rule %s has no definition", r.typ))
	}

	mark := p.mark()
	end, children, ok := r.def.match(p, pos)
	var nodes []*ast.Node
	if ok {
		if r.skipIfOneChild && len(children) == 1 {
			nodes = children
		} else {
			nodes = []*ast.Node{ast.New(r.typ, children)}
		}
	} else {
		end = pos
	}

	entry := memoEntry{end: end, nodes: nodes, ok: ok}
	if !ok {
		entry.failPos, entry.failDesc = p.since(mark)
	}
	p.memo[key] = entry
	return end, nodes, ok
}

// Grammar is a registry of rules
type Grammar struct {
	rules []*Rule
}

// New creates an empty grammar
func New() *Grammar {
	return &Grammar{rules: make([]*Rule, ast.Count())}
}

// Rule returns the rule for t, creating an undefined rule on first use so
// productions may refer to rules defined later.
func (g *Grammar) Rule(t ast.RuleType) *Rule {
	r := g.rules[t]
	if r == nil {
		r = &Rule{typ: t}
		g.rules[t] = r
	}
	return r
}

// Define sets the production of t to the sequence of items
func (g *Grammar) Define(t ast.RuleType, items ...any) *Rule {
	r := g.Rule(t)
	r.body = single(items)
	r.def = r.body
	return r
}

// SkipIfOneChild makes the rule return its only child instead of wrapping it
func (r *Rule) SkipIfOneChild() *Rule {
	r.skipIfOneChild = true
	return r
}

// Mock replaces the production of t with a stub accepting a single token
// whose text is the rule name, e.g. "ifStatement".
func (g *Grammar) Mock(t ast.RuleType) {
	r := g.Rule(t)
	r.def = Text(t.String())
}

// Unmock restores the production of t
func (g *Grammar) Unmock(t ast.RuleType) {
	r := g.Rule(t)
	r.def = r.body
}

// Defined reports whether t has a production
func (g *Grammar) Defined(t ast.RuleType) bool {
	r := g.rules[t]
	return r != nil && r.body != nil
}
