package rules

import (
	"fmt"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/visit"
)

// NestingDepthCheck flags control flow nested deeper than the maximum.
// An "else if" continues its parent if rather than nesting inside it.
type NestingDepthCheck struct {
	Maximum int
}

func (c *NestingDepthCheck) Name() string {
	return "nesting-depth"
}

func (c *NestingDepthCheck) Description() string {
	return "Control flow statements should not be nested too deeply"
}

func (c *NestingDepthCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Critical,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "maximum", Description: "Maximum authorized nesting depth", Default: "3"},
		},
	}
}

func (c *NestingDepthCheck) Configure(params Params) error {
	maximum, err := params.Int(c, "maximum")
	if err != nil {
		return err
	}
	c.Maximum = maximum
	return nil
}

func (c *NestingDepthCheck) NewVisitor(id string) visit.Visitor {
	return &nestingVisitor{checkVisitor: checkVisitor{id}, maximum: c.Maximum}
}

type nestingVisitor struct {
	checkVisitor
	maximum int
	depth   int
}

func (v *nestingVisitor) Subscribe() []ast.RuleType {
	return []ast.RuleType{
		ast.IfStatement,
		ast.SwitchStatement,
		ast.ForStatement,
		ast.ForeachStatement,
		ast.WhileStatement,
		ast.DoStatement,
		ast.TryStatement,
	}
}

func (v *nestingVisitor) VisitFile(ctx *visit.Context, root *ast.Node) {
	v.depth = 0
}

func (v *nestingVisitor) LeaveFile(ctx *visit.Context, root *ast.Node) {}

func (v *nestingVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	if isElseIf(n) {
		return
	}
	v.depth++
	if v.depth == v.maximum+1 {
		ctx.Report(v.id, n.Line(), fmt.Sprintf(
			"Refactor this code to not nest more than %d if/switch/for/foreach/while/do/try statements.", v.maximum))
	}
}

func (v *nestingVisitor) LeaveNode(ctx *visit.Context, n *ast.Node) {
	if !isElseIf(n) {
		v.depth--
	}
}

func isElseIf(n *ast.Node) bool {
	prev := n.PreviousSibling()
	return n.Is(ast.IfStatement) && prev != nil && prev.IsToken("else")
}
