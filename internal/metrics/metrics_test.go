package metrics

import (
	"fmt"
	"testing"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/token"
	"github.com/pthm/csquid/internal/visit"
)

func analyze(t *testing.T, src string) *visit.Context {
	t.Helper()
	file, err := parser.ParseString(src, parser.Options{})
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	ctx := visit.NewContext("Test.cs", file.Lines)
	if errs := visit.NewWalker(Defaults(Options{})...).Walk(ctx, file.Root); len(errs) > 0 {
		t.Fatalf("Walk() visitor errors = %v", errs)
	}
	return ctx
}

func TestLines(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		lines     int
		linesCode int
	}{
		{"empty", "", 1, 0},
		{"comments only", "// one\n// two\n", 3, 0},
		{"class", "// header\nclass C\n{\n\n    int x; // trailing\n}\n", 7, 4},
		{"one line", "class C { int x; int y; }", 1, 1},
		{"verbatim string", "class C {\n string s = @\"a\nb\nc\"; int y;\n}", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := analyze(t, tt.src).FileScope()
			if got := scope.Total(source.Lines); got != tt.lines {
				t.Errorf("LINES = %d, want %d", got, tt.lines)
			}
			if got := scope.Total(source.LinesOfCode); got != tt.linesCode {
				t.Errorf("LINES_OF_CODE = %d, want %d", got, tt.linesCode)
			}
			if scope.Total(source.LinesOfCode) > scope.Total(source.Lines) {
				t.Error("LINES_OF_CODE > LINES")
			}
		})
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"empty method", "class C { void M() { } }", 1},
		{"trailing return", "class C { void M() { return; } }", 1},
		{"if", "class C { void M() { if (a) { } } }", 2},
		{"early return", "class C { int M() { if (a) { return 1; } return 2; } }", 3},
		{"switch cases", "class C { void M() { switch (a) { case 1: break; case 2: break; default: break; } } }", 4},
		{"goto case is not a label", "class C { void M() { switch (x) { case 1: goto case 2; case 2: break; } } }", 4},
		{"logical operators", "class C { bool M() => a && b || c; }", 3},
		{"abstract method", "class C { abstract void M(); }", 0},
		{"loops", "class C { void M() { while (a) { } do { } while (b); for (;;) { } foreach (var x in xs) { } } }", 5},
		{"property accessors", "class C { int P { get { return 1; } set { } } }", 2},
		{"auto property", "class C { int P { get; set; } }", 0},
		{"event accessors", "class C { event E X { add { } remove { } } }", 2},
		{"labeled return", "class C { void M() { l: return; } }", 3},
		{"constructor", "class C { C() { } static C() { } ~C() { } }", 3},
		{"operator", "class C { public static C operator +(C a, C b) { return a; } }", 1},
		{"shift is not logical", "class C { int M() => a >> b; }", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := analyze(t, tt.src)
			if got := ctx.FileScope().Total(source.Complexity); got != tt.want {
				t.Errorf("COMPLEXITY = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComplexityMatchesVisitor(t *testing.T) {
	src := "class C {\n int M() {\n  if (a && b) { return 1; }\n  for (;;) { }\n  return 2;\n }\n}"
	file, err := parser.ParseString(src, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	method := file.Root.FirstDescendant(ast.MethodDeclaration)
	if got := Complexity(method); got != 5 {
		t.Errorf("Complexity(method) = %d, want 5", got)
	}

	ctx := analyze(t, src)
	member := ctx.FileScope().Children()[0].Children()[0]
	if got := member.Get(source.Complexity); got != 5 {
		t.Errorf("member COMPLEXITY = %d, want 5", got)
	}
}

func TestComments(t *testing.T) {
	src := `// header is exempt
class C
{
    // plain words here
    //
    // int x = 1;
    /* block
     * second line
     */
    void M() { } // NOSONAR
}
`
	ctx := analyze(t, src)
	scope := ctx.FileScope()

	tests := []struct {
		metric source.Metric
		want   int
	}{
		{source.CommentLines, 3},
		{source.CommentBlankLines, 2},
		{source.CommentedOutCodeLines, 1},
	}
	for _, tt := range tests {
		if got := scope.Total(tt.metric); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.metric, got, tt.want)
		}
	}
	if got := fmt.Sprint(ctx.Suppressed()); got != "[10]" {
		t.Errorf("Suppressed() = %s, want [10]", got)
	}
}

func TestCommentsCustomSuppressionTag(t *testing.T) {
	file, err := parser.ParseString("class C {\n int x; // skip-check\n int y; // NOSONAR\n}", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx := visit.NewContext("", file.Lines)
	visit.NewWalker(Defaults(Options{SuppressionTag: "skip-check"})...).Walk(ctx, file.Root)

	if got := fmt.Sprint(ctx.Suppressed()); got != "[2]" {
		t.Errorf("Suppressed() = %s, want [2]", got)
	}
	if got := ctx.FileScope().Total(source.CommentLines); got != 1 {
		t.Errorf("COMMENT_LINES = %d, want 1", got)
	}
}

func TestCommentedOutCodeWithSuppressionTag(t *testing.T) {
	ctx := analyze(t, "class C {\n int x; // i++; NOSONAR\n}")

	if got := ctx.FileScope().Total(source.CommentedOutCodeLines); got != 1 {
		t.Errorf("COMMENTED_OUT_CODE_LINES = %d, want 1", got)
	}
	if got := ctx.Suppressed(); len(got) != 0 {
		t.Errorf("Suppressed() = %v, want none", got)
	}
}

func TestCommentLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"// hello", []string{"hello"}},
		{"/// <summary>", []string{"<summary>"}},
		{"/* one */", []string{"one"}},
		{"/**\n * a\n * b\n */", []string{"", "a", "b", ""}},
	}

	for _, tt := range tests {
		lines := CommentLines(token.Trivia{Kind: token.Comment, Text: tt.text, Line: 4})
		if len(lines) != len(tt.want) {
			t.Errorf("CommentLines(%q) = %v, want %q", tt.text, lines, tt.want)
			continue
		}
		for i, l := range lines {
			if l.Text != tt.want[i] || l.Line != 4+i {
				t.Errorf("CommentLines(%q)[%d] = %+v, want %q at %d", tt.text, i, l, tt.want[i], 4+i)
			}
		}
	}
}

func TestPublicAPI(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		api, doced int
	}{
		{
			"methods",
			"class Outer\n{\n    // documented\n    public void A() { }\n    public void B() { }\n    void C() { }\n}",
			2, 1,
		},
		{
			"public interface members",
			"public interface I { void M(); int P { get; } }",
			3, 0,
		},
		{
			"internal interface",
			"interface J { void M(); }",
			0, 0,
		},
		{
			"documented type",
			"using System;\n/// <summary>Widget</summary>\n[Serializable]\npublic class W { public int F; }",
			2, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := analyze(t, tt.src).FileScope()
			if got := scope.Total(source.PublicAPI); got != tt.api {
				t.Errorf("PUBLIC_API = %d, want %d", got, tt.api)
			}
			if got := scope.Total(source.PublicDocAPI); got != tt.doced {
				t.Errorf("PUBLIC_DOC_API = %d, want %d", got, tt.doced)
			}
		})
	}
}

func TestCounters(t *testing.T) {
	src := `namespace N {
  class A {
    int P { get; set; }
    A() { }
    void M() { int x = 1; x++; if (x > 1) return; }
  }
  struct S { }
  public record R(int X);
}`
	ctx := analyze(t, src)
	scope := ctx.FileScope()

	tests := []struct {
		metric source.Metric
		want   int
	}{
		{source.Statements, 4},
		{source.Accessors, 2},
		{source.Classes, 3},
		{source.Methods, 2},
		{source.Namespaces, 1},
		{source.PublicAPI, 1},
	}
	for _, tt := range tests {
		if got := scope.Total(tt.metric); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.metric, got, tt.want)
		}
	}

	types := scope.Children()[0].Children()
	if len(types) != 3 || types[2].Name != "R" {
		t.Errorf("type scopes = %v, want A, S and R", types)
	}
}
