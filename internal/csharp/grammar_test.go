package csharp

import (
	"errors"
	"testing"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/grammar"
	"github.com/pthm/csquid/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	root, err := Grammar().Parse(lexer.Lex(src), ast.CompilationUnit)
	if err != nil {
		t.Fatalf("Parse() error = %v\nsource:\n%s", err, src)
	}
	return root
}

func TestParseCompilationUnits(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"usings", "using System;\nusing IO = System.IO;\nusing static System.Math;\n"},
		{"global attribute", "[assembly: AssemblyTitle(\"x\")]\nnamespace N { }"},
		{"file scoped namespace", "namespace N;\nclass C { }"},
		{"class members", `
namespace N {
  [Serializable]
  public class C : Base, IThing {
    private int x = 1;
    public const int Max = 10;
    public int X { get; private set; }
    public int Y => x;
    public event EventHandler Changed;
    static C() { }
    public C(int x) : base(x) { this.x = x; }
    ~C() { }
    public int this[int i] { get { return i; } }
    public static C operator +(C a, C b) => a;
    public static implicit operator int(C c) => c.x;
    [Obsolete("no")]
    protected virtual void M(ref int a, out int b, params object[] rest) { b = a; }
    public T Get<T>() where T : class, new() { return default(T); }
  }
}`},
		{"other types", `
public interface IThing { void M(); int P { get; } event EventHandler E; }
public struct S { public int A; }
public enum E { A, B = 2, }
public delegate void D(int x);
public partial class P { }
`},
		{"statements", `
class C {
  async Task<int> Run(int[] items) {
    int total = 0, count;
    const int limit = 3;
    var (a, b) = pair;
    for (int i = 0; i < items.Length; i++) { total += items[i]; }
    foreach (var item in items) Console.WriteLine(item);
    while (total > 0) total--;
    do { total++; } while (total < 10);
    switch (total) {
      case 1: return 1;
      case 2:
      case 3: break;
      case int n when n > 100: goto default;
      default: return 0;
    }
    try { Throw(); } catch (IOException e) when (e != null) { throw; } catch { } finally { }
    lock (this) { }
    using (var s = Open()) { }
    using var r = Open();
    checked { total = total * 2; }
    label: total = 1;
    await Task.Delay(1);
    int Local(int v) => v * 2;
    return total >> 1;
  }
  IEnumerable<int> Gen() { yield return 1; yield break; }
}`},
		{"expressions", `
class C {
  void M() {
    Dictionary<string, List<int>> d = new Dictionary<string, List<int>>();
    int? n = null;
    var z = a ? b : c;
    var w = a is string s ? s : "";
    var y = (int)x + (a) - b;
    var l = list.Where(v => v > 1).Select((v, i) => new { v, i }).ToList();
    var q = from c in cs where c.X > 1 orderby c.Y descending select c;
    var arr = new int[] { 1, 2, 3 };
    var m = new int[5, 2];
    var o = new Foo { A = 1, B = { 2 } };
    var t = (1, "two");
    var s2 = $"{x} and {y}";
    x >>= 2;
    x ??= y ?? throw new ArgumentNullException(nameof(y));
    Func<int, int> f = delegate(int k) { return k; };
    Action act = async () => { await Task.Yield(); };
    var g = Foo<int>(1);
    var h = typeof(List<>);
    var e = obj?.Name?.Length ?? 0;
    x = !flag && ~mask == 0 || sizeof(int) > 2;
  }
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.src)
			if root.Type != ast.CompilationUnit {
				t.Errorf("root type = %v, want compilationUnit", root.Type)
			}
		})
	}
}

func TestReturnIsDirectChildOfBlock(t *testing.T) {
	root := mustParse(t, "class C { int M() { return 1; } }")
	ret := root.FirstDescendant(ast.ReturnStatement)
	if ret == nil {
		t.Fatal("no return statement")
	}
	if p := ret.Parent(); p.Type != ast.Block {
		t.Errorf("return parent = %v, want block", p.Type)
	}
	if ret.NextSibling() == nil || !ret.NextSibling().IsToken("}") {
		t.Error("return statement is not the last statement of its block")
	}
}

func TestElseIfChain(t *testing.T) {
	root := mustParse(t, "class C { void M() { if (a) x(); else if (b) y(); else z(); } }")
	ifs := root.Descendants(ast.IfStatement)
	if len(ifs) != 2 {
		t.Fatalf("if statements = %d, want 2", len(ifs))
	}
	if prev := ifs[0].PreviousSibling(); prev != nil && prev.IsToken("else") {
		t.Error("outer if is preceded by else")
	}
	if prev := ifs[1].PreviousSibling(); prev == nil || !prev.IsToken("else") {
		t.Error("inner if is not preceded by else")
	}
}

func TestRecordDeclarations(t *testing.T) {
	root := mustParse(t, `
public record Point(int X, int Y);
public sealed record class Person(string Name) : Entity(Name), IPerson
{
    public record Address(string City);
    public string Upper => Name.ToUpper();
}
public readonly record struct Size(int W, int H) { }
public partial record Tagged<T> where T : class;
`)
	records := root.Descendants(ast.RecordDeclaration)
	if len(records) != 5 {
		t.Fatalf("records = %d, want 5", len(records))
	}
	if root.FirstDescendant(ast.RecordBase) == nil {
		t.Error("no record base for Person")
	}
	if got := len(root.Descendants(ast.MethodDeclaration)); got != 0 {
		t.Errorf("methods = %d, want 0: nested records must not read as methods", got)
	}
}

func TestSwitchExpression(t *testing.T) {
	root := mustParse(t, `
class C {
  string M(object o, int n) {
    var size = n switch
    {
        < 0 => "negative",
        0 => "zero",
        int v when v > 100 => "large",
        int v when flag => "flagged",
        _ => "small",
    };
    return o switch { string s => s, null => throw new ArgumentNullException(), _ => size } + "!";
  }
}`)
	switches := root.Descendants(ast.SwitchExpression)
	if len(switches) != 2 {
		t.Fatalf("switch expressions = %d, want 2", len(switches))
	}
	if got := len(switches[0].ChildrenOfType(ast.SwitchExpressionArm)); got != 5 {
		t.Errorf("arms = %d, want 5", got)
	}
	if got := len(root.Descendants(ast.AdditiveExpression)); got != 1 {
		t.Errorf("additive expressions = %d, want 1", got)
	}
}

func TestStaticConstructor(t *testing.T) {
	root := mustParse(t, "class C { public static C() { } public static void Main() { } }")
	members := root.Descendants(ast.ClassMemberDeclaration)
	if len(members) != 2 {
		t.Fatalf("members = %d, want 2", len(members))
	}
	if members[0].FirstChild(ast.StaticConstructorDeclaration) == nil {
		t.Errorf("first member = %s, want a static constructor", members[0])
	}
	if got := len(members[0].ChildrenOfType(ast.Modifier)); got != 2 {
		t.Errorf("static constructor modifiers = %d, want 2", got)
	}
	if members[1].FirstChild(ast.MethodDeclaration) == nil {
		t.Errorf("second member = %s, want a method", members[1])
	}
}

func TestShiftIsJoinedFromAdjacentTokens(t *testing.T) {
	root := mustParse(t, "class C { void M() { x = a >> 2; y = a > b; List<List<int>> l; } }")
	if got := len(root.Descendants(ast.ShiftExpression)); got != 1 {
		t.Errorf("shift expressions = %d, want 1", got)
	}
	if got := len(root.Descendants(ast.RelationalExpression)); got != 1 {
		t.Errorf("relational expressions = %d, want 1", got)
	}
}

func TestCastDisambiguation(t *testing.T) {
	tests := []struct {
		expr  string
		casts int
	}{
		{"(int)x", 1},
		{"(Foo)x", 1},
		{"(Foo)(x)", 1},
		{"(a) - b", 0},
		{"(a) + (b)", 0},
		{"(int)-x", 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			root := mustParse(t, "class C { object o = "+tt.expr+"; }")
			if got := len(root.Descendants(ast.CastExpression)); got != tt.casts {
				t.Errorf("casts in %q = %d, want %d", tt.expr, got, tt.casts)
			}
		})
	}
}

func TestNullableTypeVersusConditional(t *testing.T) {
	root := mustParse(t, "class C { void M() { int? a = b ? c : d; } }")
	if got := len(root.Descendants(ast.ConditionalExpression)); got != 1 {
		t.Errorf("conditional expressions = %d, want 1", got)
	}
	decl := root.FirstDescendant(ast.LocalVariableDeclaration)
	if decl == nil {
		t.Fatal("no local variable declaration")
	}
	if got := decl.FirstChild(ast.Type).Text(); got != "int ?" {
		t.Errorf("declared type = %q, want %q", got, "int ?")
	}
}

func TestMockedRules(t *testing.T) {
	g := NewGrammar()
	g.Mock(ast.Expression)
	g.Mock(ast.EmbeddedStatement)

	root, err := g.Parse(lexer.Lex("while (expression) embeddedStatement"), ast.WhileStatement)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := "(whileStatement while ( expression ) embeddedStatement)"
	if got := root.String(); got != want {
		t.Errorf("Parse() = %s, want %s", got, want)
	}

	if _, err := g.Parse(lexer.Lex("while (x) y;"), ast.WhileStatement); err == nil {
		t.Error("Parse() of real input succeeded while mocked")
	}

	g.Unmock(ast.Expression)
	g.Unmock(ast.EmbeddedStatement)
	if _, err := g.Parse(lexer.Lex("while (x) y();"), ast.WhileStatement); err != nil {
		t.Errorf("Parse() after Unmock error = %v", err)
	}
}

func TestMockDoesNotLeakIntoSharedGrammar(t *testing.T) {
	g := NewGrammar()
	g.Mock(ast.Block)
	if Grammar().Rule(ast.Block).Mocked() {
		t.Error("mocking a fresh grammar changed the shared one")
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Grammar().Parse(lexer.Lex("class C { void M() { int x = ; } }"), ast.CompilationUnit)
	var pe *grammar.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *grammar.ParseError", err)
	}
	if pe.Line != 1 || pe.Column != 30 {
		t.Errorf("position = %d:%d, want 1:30", pe.Line, pe.Column)
	}
	if pe.Found != `";"` {
		t.Errorf("Found = %s, want %q", pe.Found, `";"`)
	}
	if len(pe.Expected) == 0 {
		t.Error("Expected is empty")
	}
}
