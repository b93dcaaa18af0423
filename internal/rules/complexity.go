package rules

import (
	"fmt"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/metrics"
	"github.com/pthm/csquid/internal/visit"
)

// checkVisitor carries the id a visitor reports under
type checkVisitor struct {
	id string
}

func (v checkVisitor) Name() string {
	return v.id
}

var functionTypes = []ast.RuleType{
	ast.MethodDeclaration,
	ast.ConstructorDeclaration,
	ast.StaticConstructorDeclaration,
	ast.DestructorDeclaration,
	ast.OperatorDeclaration,
	ast.GetAccessorDeclaration,
	ast.SetAccessorDeclaration,
	ast.AddAccessorDeclaration,
	ast.RemoveAccessorDeclaration,
}

// FunctionComplexityCheck flags methods and accessors whose cyclomatic
// complexity exceeds the maximum
type FunctionComplexityCheck struct {
	Maximum int
}

func (c *FunctionComplexityCheck) Name() string {
	return "function-complexity"
}

func (c *FunctionComplexityCheck) Description() string {
	return "Methods should not be too complex"
}

func (c *FunctionComplexityCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Major,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "maximum", Description: "Maximum authorized complexity", Default: "10"},
		},
	}
}

func (c *FunctionComplexityCheck) Configure(params Params) error {
	maximum, err := params.Int(c, "maximum")
	if err != nil {
		return err
	}
	c.Maximum = maximum
	return nil
}

func (c *FunctionComplexityCheck) NewVisitor(id string) visit.Visitor {
	return &complexityVisitor{
		checkVisitor: checkVisitor{id},
		types:        functionTypes,
		maximum:      c.Maximum,
		format:       "The Cyclomatic Complexity of this method is %d which is greater than %d authorized.",
	}
}

// ClassComplexityCheck flags types whose total complexity exceeds the
// maximum. Nested types count toward their enclosing type.
type ClassComplexityCheck struct {
	Maximum int
}

func (c *ClassComplexityCheck) Name() string {
	return "class-complexity"
}

func (c *ClassComplexityCheck) Description() string {
	return "Classes should not be too complex"
}

func (c *ClassComplexityCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Major,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "maximum", Description: "Maximum authorized complexity", Default: "200"},
		},
	}
}

func (c *ClassComplexityCheck) Configure(params Params) error {
	maximum, err := params.Int(c, "maximum")
	if err != nil {
		return err
	}
	c.Maximum = maximum
	return nil
}

func (c *ClassComplexityCheck) NewVisitor(id string) visit.Visitor {
	return &complexityVisitor{
		checkVisitor: checkVisitor{id},
		types:        []ast.RuleType{ast.ClassDeclaration, ast.StructDeclaration, ast.RecordDeclaration},
		maximum:      c.Maximum,
		format:       "The Cyclomatic Complexity of this class is %d which is greater than %d authorized.",
	}
}

type complexityVisitor struct {
	checkVisitor
	types   []ast.RuleType
	maximum int
	format  string
}

func (v *complexityVisitor) Subscribe() []ast.RuleType {
	return v.types
}

func (v *complexityVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	if complexity := metrics.Complexity(n); complexity > v.maximum {
		ctx.Report(v.id, n.Line(), fmt.Sprintf(v.format, complexity, v.maximum))
	}
}
