package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
	"github.com/pthm/csquid/internal/visit"
)

// FileLOCCheck flags files with too many lines of code
type FileLOCCheck struct {
	Maximum int
}

func (c *FileLOCCheck) Name() string {
	return "file-loc"
}

func (c *FileLOCCheck) Description() string {
	return "Files should not have too many lines of code"
}

func (c *FileLOCCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Major,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "maximum", Description: "Maximum authorized lines of code", Default: "1000"},
		},
	}
}

func (c *FileLOCCheck) Configure(params Params) error {
	maximum, err := params.Int(c, "maximum")
	if err != nil {
		return err
	}
	c.Maximum = maximum
	return nil
}

func (c *FileLOCCheck) NewVisitor(id string) visit.Visitor {
	return &fileLOCVisitor{checkVisitor: checkVisitor{id}, maximum: c.Maximum}
}

type fileLOCVisitor struct {
	checkVisitor
	maximum  int
	lastLine int
	loc      int
}

func (v *fileLOCVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *fileLOCVisitor) VisitFile(ctx *visit.Context, root *ast.Node) {
	v.lastLine, v.loc = 0, 0
}

func (v *fileLOCVisitor) VisitToken(ctx *visit.Context, tok *token.Token) {
	if tok.Kind == token.EOF {
		return
	}
	if tok.Line > v.lastLine {
		v.loc++
	}
	v.lastLine = tok.EndLine()
}

func (v *fileLOCVisitor) LeaveFile(ctx *visit.Context, root *ast.Node) {
	if v.loc > v.maximum {
		ctx.Report(v.id, 0, fmt.Sprintf(
			"This file has %d lines of code, which is greater than %d authorized. Split it into smaller files.",
			v.loc, v.maximum))
	}
}

// LineLengthCheck flags physical lines longer than the maximum, counted in
// characters
type LineLengthCheck struct {
	Maximum int
}

func (c *LineLengthCheck) Name() string {
	return "line-length"
}

func (c *LineLengthCheck) Description() string {
	return "Lines should not be too long"
}

func (c *LineLengthCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Minor,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "maximum", Description: "Maximum authorized line length", Default: "120"},
		},
	}
}

func (c *LineLengthCheck) Configure(params Params) error {
	maximum, err := params.Int(c, "maximum")
	if err != nil {
		return err
	}
	c.Maximum = maximum
	return nil
}

func (c *LineLengthCheck) NewVisitor(id string) visit.Visitor {
	return &lineLengthVisitor{checkVisitor: checkVisitor{id}, maximum: c.Maximum}
}

type lineLengthVisitor struct {
	checkVisitor
	maximum int
}

func (v *lineLengthVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *lineLengthVisitor) VisitFile(ctx *visit.Context, root *ast.Node) {
	for i, line := range ctx.Lines {
		if n := utf8.RuneCountInString(line); n > v.maximum {
			ctx.Report(v.id, i+1, fmt.Sprintf(
				"Split this %d characters long line (which is greater than %d authorized).", n, v.maximum))
		}
	}
}

func (v *lineLengthVisitor) LeaveFile(ctx *visit.Context, root *ast.Node) {}

// ParameterCountCheck flags methods, constructors, delegates and local
// functions declaring too many parameters
type ParameterCountCheck struct {
	Maximum int
}

func (c *ParameterCountCheck) Name() string {
	return "parameter-count"
}

func (c *ParameterCountCheck) Description() string {
	return "Methods should not have too many parameters"
}

func (c *ParameterCountCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Major,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "maximum", Description: "Maximum authorized number of parameters", Default: "7"},
		},
	}
}

func (c *ParameterCountCheck) Configure(params Params) error {
	maximum, err := params.Int(c, "maximum")
	if err != nil {
		return err
	}
	c.Maximum = maximum
	return nil
}

func (c *ParameterCountCheck) NewVisitor(id string) visit.Visitor {
	return &parameterCountVisitor{checkVisitor: checkVisitor{id}, maximum: c.Maximum}
}

type parameterCountVisitor struct {
	checkVisitor
	maximum int
}

func (v *parameterCountVisitor) Subscribe() []ast.RuleType {
	return []ast.RuleType{
		ast.MethodDeclaration,
		ast.ConstructorDeclaration,
		ast.OperatorDeclaration,
		ast.IndexerDeclaration,
		ast.DelegateDeclaration,
		ast.InterfaceMethodDeclaration,
		ast.InterfaceIndexerDeclaration,
		ast.LocalFunctionDeclaration,
	}
}

func (v *parameterCountVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	if count := ParameterCount(n); count > v.maximum {
		ctx.Report(v.id, n.Line(), fmt.Sprintf(
			"Method has %d parameters, which is greater than %d authorized.", count, v.maximum))
	}
}

// ParameterCount returns the number of formal parameters a declaration
// takes, including a params array
func ParameterCount(n *ast.Node) int {
	list := n.FirstChild(ast.FormalParameterList)
	if list == nil {
		return 0
	}
	return len(list.ChildrenOfType(ast.FixedParameter)) + len(list.ChildrenOfType(ast.ParameterArray))
}
