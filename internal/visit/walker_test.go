package visit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/token"
)

const widget = `namespace App.Core
{
    public class Widget
    {
        public Widget() { }

        public int Size { get { return 1; } set { } }

        public static Widget operator +(Widget a, Widget b) { return a; }

        void Render()
        {
            if (true) { return; }
        }
    }
}
`

func mustParse(t *testing.T, src string) *parser.ParsedFile {
	t.Helper()
	file, err := parser.ParseString(src, parser.Options{})
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return file
}

// recorder logs every hook it receives
type recorder struct {
	name  string
	types []ast.RuleType
	log   *[]string
}

func (r *recorder) Subscribe() []ast.RuleType { return r.types }

func (r *recorder) VisitNode(ctx *Context, n *ast.Node) {
	*r.log = append(*r.log, fmt.Sprintf("%s>%s", r.name, n.Type))
}

func (r *recorder) LeaveNode(ctx *Context, n *ast.Node) {
	*r.log = append(*r.log, fmt.Sprintf("%s<%s", r.name, n.Type))
}

func (r *recorder) VisitFile(ctx *Context, root *ast.Node) {
	*r.log = append(*r.log, r.name+">file")
}

func (r *recorder) LeaveFile(ctx *Context, root *ast.Node) {
	*r.log = append(*r.log, r.name+"<file")
}

func TestWalkOrder(t *testing.T) {
	file := mustParse(t, "class A { } class B { void M() { } }")

	var log []string
	a := &recorder{name: "a", types: []ast.RuleType{ast.ClassDeclaration, ast.MethodDeclaration}, log: &log}
	b := &recorder{name: "b", types: []ast.RuleType{ast.ClassDeclaration}, log: &log}

	NewWalker(a, b).Walk(NewContext("", file.Lines), file.Root)

	want := []string{
		"a>file", "b>file",
		"a>classDeclaration", "b>classDeclaration", "a<classDeclaration", "b<classDeclaration",
		"a>classDeclaration", "b>classDeclaration",
		"a>methodDeclaration", "a<methodDeclaration",
		"a<classDeclaration", "b<classDeclaration",
		"a<file", "b<file",
	}
	if got := strings.Join(log, " "); got != strings.Join(want, " ") {
		t.Errorf("hooks =\n%s\nwant\n%s", got, strings.Join(want, " "))
	}
}

type tokenCounter struct {
	texts []string
	last  token.Kind
}

func (c *tokenCounter) Subscribe() []ast.RuleType { return nil }

func (c *tokenCounter) VisitToken(ctx *Context, tok *token.Token) {
	c.texts = append(c.texts, tok.Text)
	c.last = tok.Kind
}

func TestTokenVisitorSeesEOFLast(t *testing.T) {
	file := mustParse(t, "class C { }\n// trailing\n")
	tc := &tokenCounter{}
	NewWalker(tc).Walk(NewContext("", file.Lines), file.Root)

	if got := strings.Join(tc.texts, " "); got != "class C { } " {
		t.Errorf("tokens = %q, want %q", got, "class C { } ")
	}
	if tc.last != token.EOF {
		t.Errorf("last token kind = %v, want EOF", tc.last)
	}
}

// scopeRecorder records the scope path current at each subscribed node
type scopeRecorder struct {
	paths []string
}

func (p *scopeRecorder) Subscribe() []ast.RuleType {
	return []ast.RuleType{ast.Block, ast.AccessorBody}
}

func (p *scopeRecorder) VisitNode(ctx *Context, n *ast.Node) {
	s := ctx.Scope()
	p.paths = append(p.paths, fmt.Sprintf("%d:%s:%s", n.Line(), s.Kind, strings.Join(s.Path()[1:], "/")))
}

func TestWalkTracksScopes(t *testing.T) {
	file := mustParse(t, widget)
	recorder := &scopeRecorder{}
	ctx := NewContext("Widget.cs", file.Lines)
	NewWalker(recorder).Walk(ctx, file.Root)

	want := []string{
		"5:member:App.Core/Widget/Widget",
		"7:member:App.Core/Widget/Size/get",
		"7:member:App.Core/Widget/Size/get",
		"7:member:App.Core/Widget/Size/set",
		"7:member:App.Core/Widget/Size/set",
		"9:member:App.Core/Widget/operator+",
		"12:member:App.Core/Widget/Render",
		"13:member:App.Core/Widget/Render",
	}
	if got := strings.Join(recorder.paths, "\n"); got != strings.Join(want, "\n") {
		t.Errorf("scopes =\n%s\nwant\n%s", got, strings.Join(want, "\n"))
	}

	ns := ctx.FileScope().Children()
	if len(ns) != 1 || ns[0].Kind != source.ScopeNamespace || ns[0].Line != 1 {
		t.Fatalf("file children = %v", ns)
	}
	if got := len(ns[0].Children()[0].Children()); got != 4 {
		t.Errorf("members of Widget = %d, want 4", got)
	}
	if !ctx.FileScope().Locked() {
		t.Error("file scope not locked after Walk()")
	}
}

type reporter struct{}

func (reporter) Name() string              { return "reporter" }
func (reporter) Subscribe() []ast.RuleType { return []ast.RuleType{ast.MethodDeclaration} }
func (reporter) VisitNode(ctx *Context, n *ast.Node) {
	ctx.Report("method-report", n.Line(), "method "+ScopeName(n))
	ctx.Report("method-report", 0, "file level")
}

func TestReportTargetsCurrentScope(t *testing.T) {
	file := mustParse(t, "class C {\n void M() { }\n}")
	ctx := NewContext("C.cs", file.Lines)
	NewWalker(reporter{}).Walk(ctx, file.Root)

	member := ctx.FileScope().Children()[0].Children()[0]
	if got := len(member.Messages()); got != 1 || member.Messages()[0].Line != 2 {
		t.Errorf("member messages = %v", member.Messages())
	}
	if got := len(ctx.FileScope().Messages()); got != 1 {
		t.Errorf("file messages = %d, want 1", got)
	}
}

type panicker struct {
	calls int
}

func (p *panicker) Name() string              { return "panicker" }
func (p *panicker) Subscribe() []ast.RuleType { return []ast.RuleType{ast.MethodDeclaration} }

func (p *panicker) VisitNode(ctx *Context, n *ast.Node) {
	p.calls++
	panic(errors.New("boom"))
}

type methodCounter struct{}

func (methodCounter) Subscribe() []ast.RuleType { return []ast.RuleType{ast.MethodDeclaration} }

func (methodCounter) VisitNode(ctx *Context, n *ast.Node) {
	ctx.FileScope().Add(source.Methods, 1)
}

func TestPanickingVisitorIsIsolated(t *testing.T) {
	file := mustParse(t, "class C {\n void A() { }\n void B() { }\n}")
	p := &panicker{}
	ctx := NewContext("C.cs", file.Lines)
	errs := NewWalker(p, methodCounter{}).Walk(ctx, file.Root)

	if p.calls != 1 {
		t.Errorf("panicking visitor called %d times, want 1", p.calls)
	}
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want 1", errs)
	}
	if errs[0].Visitor != "panicker" || errs[0].Line != 2 || errs[0].Cause.Error() != "boom" {
		t.Errorf("error = %+v", errs[0])
	}
	if got := ctx.FileScope().Get(source.Methods); got != 2 {
		t.Errorf("METHODS = %d, want 2", got)
	}
}

func TestContextSuppressed(t *testing.T) {
	ctx := NewContext("", []string{"a", "b"})
	ctx.Suppress(9)
	ctx.Suppress(2)
	ctx.Suppress(9)

	if got := fmt.Sprint(ctx.Suppressed()); got != "[2 9]" {
		t.Errorf("Suppressed() = %s, want [2 9]", got)
	}
	if got := ctx.Line(2); got != "b" {
		t.Errorf("Line(2) = %q, want b", got)
	}
	if got := ctx.Line(3); got != "" {
		t.Errorf("Line(3) = %q, want empty", got)
	}
}
