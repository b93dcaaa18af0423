package metrics

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/visit"
)

var complexityTypes = []ast.RuleType{
	ast.IfStatement,
	ast.SwitchStatement,
	ast.LabeledStatement,
	ast.WhileStatement,
	ast.DoStatement,
	ast.ForStatement,
	ast.ForeachStatement,
	ast.ReturnStatement,
	ast.MethodBody,
	ast.AccessorBody,
	ast.AddAccessorDeclaration,
	ast.RemoveAccessorDeclaration,
	ast.OperatorBody,
	ast.ConstructorBody,
	ast.StaticConstructorBody,
	ast.DestructorBody,
}

// memberBodies are the bodies whose trailing return is the implicit exit
// already counted by the body itself
var memberBodies = []ast.RuleType{
	ast.MethodBody,
	ast.AccessorBody,
	ast.OperatorBody,
	ast.ConstructorBody,
	ast.StaticConstructorBody,
	ast.DestructorBody,
}

// AddsComplexity reports whether n is a branch point
func AddsComplexity(n *ast.Node) bool {
	switch n.Type {
	case ast.Terminal:
		if n.IsToken("case") {
			// "goto case" is a jump, not a label
			return n.Parent() != nil && n.Parent().Is(ast.SwitchLabel)
		}
		return n.IsToken("&&", "||")
	case ast.ReturnStatement:
		return !isTrailingReturn(n)
	case ast.MethodBody, ast.AccessorBody, ast.OperatorBody,
		ast.ConstructorBody, ast.StaticConstructorBody, ast.DestructorBody:
		return !n.Child(0).IsToken(";")
	default:
		return n.Is(complexityTypes...)
	}
}

// isTrailingReturn reports whether a return is the last statement of a
// member body's block
func isTrailingReturn(n *ast.Node) bool {
	block := n.Parent()
	if block == nil || block.Type != ast.Block {
		return false
	}
	if next := n.NextSibling(); next == nil || !next.IsToken("}") {
		return false
	}
	body := block.Parent()
	return body != nil && body.Is(memberBodies...)
}

// Complexity returns the cyclomatic complexity of the subtree rooted at n
func Complexity(n *ast.Node) int {
	total := 0
	n.Walk(func(d *ast.Node) bool {
		if AddsComplexity(d) {
			total++
		}
		return true
	})
	return total
}

// ComplexityVisitor computes COMPLEXITY
type ComplexityVisitor struct{}

func NewComplexityVisitor() *ComplexityVisitor {
	return &ComplexityVisitor{}
}

func (v *ComplexityVisitor) Name() string {
	return "complexity"
}

func (v *ComplexityVisitor) Subscribe() []ast.RuleType {
	return append([]ast.RuleType{ast.Terminal}, complexityTypes...)
}

func (v *ComplexityVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	if AddsComplexity(n) {
		ctx.Scope().Add(source.Complexity, 1)
	}
}
