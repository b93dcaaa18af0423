package metrics

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/token"
	"github.com/pthm/csquid/internal/visit"
)

// LinesVisitor computes LINES and LINES_OF_CODE
type LinesVisitor struct {
	lastLine int
}

func NewLinesVisitor() *LinesVisitor {
	return &LinesVisitor{}
}

func (v *LinesVisitor) Name() string {
	return "lines"
}

func (v *LinesVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *LinesVisitor) VisitFile(ctx *visit.Context, root *ast.Node) {
	v.lastLine = 0
}

func (v *LinesVisitor) LeaveFile(ctx *visit.Context, root *ast.Node) {}

func (v *LinesVisitor) VisitToken(ctx *visit.Context, tok *token.Token) {
	if tok.Kind == token.EOF {
		ctx.FileScope().Add(source.Lines, tok.Line)
		return
	}
	if tok.Line > v.lastLine {
		ctx.Scope().Add(source.LinesOfCode, 1)
	}
	v.lastLine = tok.EndLine()
}
