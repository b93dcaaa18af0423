// Package visit walks a syntax tree once and dispatches each node and token
// to the visitors subscribed to it.
package visit

import (
	"fmt"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
)

// Visitor declares the rule types it observes. A visitor implements any of
// NodeVisitor, LeaveVisitor, TokenVisitor and FileVisitor.
type Visitor interface {
	Subscribe() []ast.RuleType
}

// NodeVisitor is called before the children of a subscribed node
type NodeVisitor interface {
	VisitNode(ctx *Context, n *ast.Node)
}

// LeaveVisitor is called after the children of a subscribed node
type LeaveVisitor interface {
	LeaveNode(ctx *Context, n *ast.Node)
}

// TokenVisitor sees every token of the file in source order, EOF last.
// Token visitors need not subscribe to any rule type.
type TokenVisitor interface {
	VisitToken(ctx *Context, tok *token.Token)
}

// FileVisitor brackets the walk of a file
type FileVisitor interface {
	VisitFile(ctx *Context, root *ast.Node)
	LeaveFile(ctx *Context, root *ast.Node)
}

// Named is implemented by visitors that report under a stable name
type Named interface {
	Name() string
}

// VisitorError records a visitor that panicked. The visitor is disabled for
// the rest of the file.
type VisitorError struct {
	Visitor string
	Line    int
	Cause   error
}

func (e *VisitorError) Error() string {
	return fmt.Sprintf("visitor %s failed at line %d: %v", e.Visitor, e.Line, e.Cause)
}

func (e *VisitorError) Unwrap() error {
	return e.Cause
}

// visitorName returns the name used in logs and errors
func visitorName(v Visitor) string {
	if n, ok := v.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
