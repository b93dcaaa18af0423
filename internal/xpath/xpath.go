package xpath

import (
	"github.com/pthm/csquid/internal/ast"
)

// Query is a compiled XPath expression. It is immutable and safe for
// concurrent use.
type Query struct {
	source string
	root   expr
}

// Compile parses query
func Compile(query string) (*Query, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	p := &parser{query: query, tokens: tokens}
	if p.peek().kind == tkEOF {
		return nil, p.errorf("empty query")
	}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tkEOF {
		return nil, p.errorf("unexpected %q", p.peek().text)
	}
	return &Query{source: query, root: root}, nil
}

// MustCompile is like Compile but panics on an invalid query
func MustCompile(query string) *Query {
	q, err := Compile(query)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) String() string {
	return q.source
}

// Result is the value of a query. Node-set results carry their nodes in
// document order; other results are reduced to a boolean.
type Result struct {
	Nodes     []*ast.Node
	IsNodeSet bool
	Bool      bool
}

// Evaluate runs the query against the tree rooted at root. Relative paths
// start from root.
func (q *Query) Evaluate(root *ast.Node) Result {
	ev := newEvaluator(root)
	v := q.root.eval(ev, evalContext{node: root, pos: 1, size: 1})
	if ns, ok := v.(nodeSet); ok {
		return Result{Nodes: ns, IsNodeSet: true, Bool: len(ns) > 0}
	}
	return Result{Bool: toBool(v)}
}

// Select returns the nodes selected by the query, or nil when the query
// does not produce a node set
func (q *Query) Select(root *ast.Node) []*ast.Node {
	return q.Evaluate(root).Nodes
}
