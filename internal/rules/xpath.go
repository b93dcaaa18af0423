package rules

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/visit"
	"github.com/pthm/csquid/internal/xpath"
)

// XPathCheck reports the nodes selected by an XPath query. A query that
// yields a boolean reports once on the file when true.
type XPathCheck struct {
	Query   *xpath.Query
	Message string
}

func (c *XPathCheck) Name() string {
	return "xpath"
}

func (c *XPathCheck) Description() string {
	return "Code matching an XPath query over the syntax tree"
}

func (c *XPathCheck) Config() CheckConfig {
	return CheckConfig{
		Severity: Major,
		Params: []Param{
			{Name: "xpathQuery", Description: "XPath query evaluated against each file's tree", Required: true},
			{Name: "message", Description: "Message reported on each match", Default: "The XPath expression matches this piece of code."},
		},
	}
}

func (c *XPathCheck) Configure(params Params) error {
	raw, err := params.String(c, "xpathQuery", true)
	if err != nil {
		return err
	}
	q, err := xpath.Compile(raw)
	if err != nil {
		return &ConfigError{Check: c.Name(), Param: "xpathQuery", Value: raw, Err: err}
	}
	msg, err := params.String(c, "message", true)
	if err != nil {
		return err
	}
	c.Query, c.Message = q, msg
	return nil
}

func (c *XPathCheck) NewVisitor(id string) visit.Visitor {
	return &xpathVisitor{checkVisitor: checkVisitor{id}, query: c.Query, message: c.Message}
}

type xpathVisitor struct {
	checkVisitor
	query   *xpath.Query
	message string
}

func (v *xpathVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *xpathVisitor) VisitFile(ctx *visit.Context, root *ast.Node) {}

// LeaveFile evaluates the query once the whole tree has been seen. Matches
// inside a type or member are still reported on the file scope.
func (v *xpathVisitor) LeaveFile(ctx *visit.Context, root *ast.Node) {
	res := v.query.Evaluate(root)
	if !res.IsNodeSet {
		if res.Bool {
			ctx.Report(v.id, 0, v.message)
		}
		return
	}
	for _, n := range res.Nodes {
		ctx.Report(v.id, n.Line(), v.message)
	}
}
