package rules

import (
	"fmt"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/metrics"
	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/visit"
)

// UndocumentedAPICheck reports public declarations without a preceding
// comment
type UndocumentedAPICheck struct{}

func (c *UndocumentedAPICheck) Name() string {
	return "undocumented-api"
}

func (c *UndocumentedAPICheck) Description() string {
	return "Public types and members should be documented"
}

func (c *UndocumentedAPICheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Minor,
		FileCategories: []parser.FileCategory{parser.FileCategorySource},
	}
}

func (c *UndocumentedAPICheck) Configure(params Params) error {
	return nil
}

func (c *UndocumentedAPICheck) NewVisitor(id string) visit.Visitor {
	return &undocumentedVisitor{checkVisitor{id}}
}

type undocumentedVisitor struct {
	checkVisitor
}

func (v *undocumentedVisitor) Subscribe() []ast.RuleType {
	return metrics.APITypes
}

func (v *undocumentedVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	if metrics.IsPublicAPI(n) && !metrics.IsDocumented(n) {
		ctx.Report(v.id, n.Line(), fmt.Sprintf("Document this public %s.", metrics.DeclarationKind(n)))
	}
}
