// Package ast holds the syntax tree produced by the parser. Nodes are built
// bottom-up, linked to their parents once, and never mutated afterwards.
package ast

import (
	"strings"

	"github.com/pthm/csquid/internal/token"
)

// Node is a syntax tree node. Terminal nodes wrap a single token; other
// nodes own their children in source order.
type Node struct {
	Type     RuleType
	tok      *token.Token
	children []*Node
	parent   *Node
	index    int
}

// NewTerminal wraps a token
func NewTerminal(tok *token.Token) *Node {
	return &Node{Type: Terminal, tok: tok}
}

// New creates a non-terminal node. Parent links are set by Link.
func New(t RuleType, children []*Node) *Node {
	return &Node{Type: t, children: children}
}

// Link sets parent and sibling-index links for the whole tree rooted at n.
// It is called once by the parser after the tree is complete.
func Link(root *Node) {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i, c := range n.children {
			c.parent = n
			c.index = i
			stack = append(stack, c)
		}
	}
}

// IsTerminal reports whether n wraps a token
func (n *Node) IsTerminal() bool {
	return n.Type == Terminal
}

// Is reports whether the node has one of the given rule types
func (n *Node) Is(types ...RuleType) bool {
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}
	return false
}

// IsToken reports whether n is a terminal whose token text is one of texts
func (n *Node) IsToken(texts ...string) bool {
	if n.tok == nil || n.Type != Terminal {
		return false
	}
	for _, s := range texts {
		if n.tok.Text == s {
			return true
		}
	}
	return false
}

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// Child returns the i-th child or nil
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) Parent() *Node {
	return n.parent
}

// ChildrenOfType returns the direct children with the given type
func (n *Node) ChildrenOfType(t RuleType) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first direct child with one of the given types
func (n *Node) FirstChild(types ...RuleType) *Node {
	for _, c := range n.children {
		if c.Is(types...) {
			return c
		}
	}
	return nil
}

// LastChild returns the last direct child, or nil for a leaf
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// FirstAncestor returns the nearest ancestor with one of the given types
func (n *Node) FirstAncestor(types ...RuleType) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.Is(types...) {
			return p
		}
	}
	return nil
}

// FirstDescendant returns the first node in pre-order below n with one of
// the given types
func (n *Node) FirstDescendant(types ...RuleType) *Node {
	var found *Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if found != nil {
				return false
			}
			if d.Is(types...) {
				found = d
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Descendants returns every node below n with the given type, in source order
func (n *Node) Descendants(t RuleType) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if d.Type == t {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// PreviousSibling returns the sibling just before n
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.children[n.index-1]
}

// NextSibling returns the sibling just after n
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[n.index+1]
}

// Token returns the first token covered by the node, or nil for a node
// that matched no input.
func (n *Node) Token() *token.Token {
	for cur := n; cur != nil; {
		if cur.tok != nil {
			return cur.tok
		}
		if len(cur.children) == 0 {
			return nil
		}
		cur = cur.children[0]
	}
	return nil
}

// LastToken returns the last token covered by the node
func (n *Node) LastToken() *token.Token {
	for cur := n; cur != nil; {
		if cur.tok != nil {
			return cur.tok
		}
		if len(cur.children) == 0 {
			return nil
		}
		cur = cur.children[len(cur.children)-1]
	}
	return nil
}

// Line returns the line of the node's first token, or 0
func (n *Node) Line() int {
	if tok := n.Token(); tok != nil {
		return tok.Line
	}
	return 0
}

// EndLine returns the last line spanned by the node
func (n *Node) EndLine() int {
	if tok := n.LastToken(); tok != nil {
		return tok.EndLine()
	}
	return 0
}

// TokenValue returns the text of the node's first token
func (n *Node) TokenValue() string {
	if tok := n.Token(); tok != nil {
		return tok.Text
	}
	return ""
}

// Name returns the rule name, or the upper-cased token kind for terminals
// (IDENTIFIER, KEYWORD, PUNCTUATOR, LITERAL, EOF, UNKNOWN).
func (n *Node) Name() string {
	if n.Type == Terminal && n.tok != nil {
		return strings.ToUpper(n.tok.Kind.String())
	}
	return n.Type.String()
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// Tokens returns the tokens covered by the node in source order
func (n *Node) Tokens() []*token.Token {
	var out []*token.Token
	n.Walk(func(d *Node) bool {
		if d.tok != nil {
			out = append(out, d.tok)
		}
		return true
	})
	return out
}

// Text joins the node's token texts with single spaces
func (n *Node) Text() string {
	toks := n.Tokens()
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind != token.EOF {
			parts = append(parts, tok.Text)
		}
	}
	return strings.Join(parts, " ")
}

// String renders the subtree as an s-expression, e.g.
// (classDeclaration class C (classBody { })).
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.tok != nil {
		sb.WriteString(n.tok.Text)
		return
	}
	sb.WriteString("(")
	sb.WriteString(n.Type.String())
	for _, c := range n.children {
		if c.tok != nil && c.tok.Kind == token.EOF {
			continue
		}
		sb.WriteString(" ")
		c.write(sb)
	}
	sb.WriteString(")")
}
