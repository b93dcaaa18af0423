package grammar

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/token"
)

// blockGrammar is a tiny grammar: a block of "return;" or "name;" statements
func blockGrammar() *Grammar {
	g := New()
	g.Define(ast.Block, "{", ZeroOrMore(ast.Statement), "}")
	g.Define(ast.Statement, FirstOf(
		Seq("return", ";"),
		Seq(Kind(token.Identifier), ";"),
	))
	return g
}

func parse(t *testing.T, g *Grammar, src string, root ast.RuleType) (*ast.Node, error) {
	t.Helper()
	return g.Parse(lexer.Lex(src), root)
}

func TestParseSequences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{ }", "(block { })"},
		{"{ a; }", "(block { (statement a ;) })"},
		{"{ a; return; b; }", "(block { (statement a ;) (statement return ;) (statement b ;) })"},
	}

	g := blockGrammar()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := parse(t, g, tt.input, ast.Block)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := root.String(); got != tt.want {
				t.Errorf("Parse() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseLinksParents(t *testing.T) {
	root, err := parse(t, blockGrammar(), "{ a; b; }", ast.Block)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	stmts := root.ChildrenOfType(ast.Statement)
	if len(stmts) != 2 {
		t.Fatalf("statements = %d, want 2", len(stmts))
	}
	if stmts[0].Parent() != root {
		t.Error("statement parent is not the block")
	}
	if stmts[1].PreviousSibling() != stmts[0] {
		t.Error("second statement's previous sibling is not the first statement")
	}
}

func TestSkipIfOneChild(t *testing.T) {
	g := New()
	g.Define(ast.Block, "{", ZeroOrMore(ast.Statement), "}")
	g.Define(ast.Statement, FirstOf(ast.ReturnStatement, ast.ExpressionStatement)).SkipIfOneChild()
	g.Define(ast.ReturnStatement, "return", ";")
	g.Define(ast.ExpressionStatement, Kind(token.Identifier), ";")

	root, err := parse(t, g, "{ return; x; }", ast.Block)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := "(block { (returnStatement return ;) (expressionStatement x ;) })"
	if got := root.String(); got != want {
		t.Errorf("Parse() = %s, want %s", got, want)
	}
}

func TestPredicates(t *testing.T) {
	g := New()
	// a name not followed by '(' and followed by ';'
	g.Define(ast.SimpleName, Kind(token.Identifier), Not("("), Next(";"), ";")

	if _, err := parse(t, g, "a;", ast.SimpleName); err != nil {
		t.Errorf("Parse(a;) error = %v", err)
	}
	if _, err := parse(t, g, "a(;", ast.SimpleName); err == nil {
		t.Error("Parse(a(;) succeeded, want error")
	}
}

func TestOptAndOneOrMore(t *testing.T) {
	g := New()
	g.Define(ast.QualifiedIdentifier, OneOrMore(Kind(token.Identifier), Opt(".")))

	root, err := parse(t, g, "a . b c", ast.QualifiedIdentifier)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := len(root.Children()); got != 4 {
		t.Errorf("children = %d, want 4", got)
	}
	if _, err := parse(t, g, ".", ast.QualifiedIdentifier); err == nil {
		t.Error("Parse(.) succeeded, want error")
	}
}

func TestAdjacent(t *testing.T) {
	g := New()
	g.Define(ast.ShiftExpression, Kind(token.Literal), Adjacent(">", ">"), Kind(token.Literal))

	root, err := parse(t, g, "1 >> 2", ast.ShiftExpression)
	if err != nil {
		t.Fatalf("Parse(1 >> 2) error = %v", err)
	}
	if got, want := root.String(), "(shiftExpression 1 > > 2)"; got != want {
		t.Errorf("Parse() = %s, want %s", got, want)
	}

	for _, in := range []string{"1 > > 2", "1 >/**/> 2"} {
		if _, err := parse(t, g, in, ast.ShiftExpression); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		column   int
		expected []string
		found    string
	}{
		{"missing semicolon", "{ a; b c }", 1, 8, []string{`";"`}, `"c"`},
		{"bad statement", "{ a; 1 }", 1, 6, []string{`"return"`, `"}"`, "IDENTIFIER"}, `"1"`},
		{"trailing input", "{ } x", 1, 5, []string{"EOF"}, `"x"`},
		{"unexpected end", "{\n a;\n", 3, 1, []string{`"return"`, `"}"`, "IDENTIFIER"}, "EOF"},
	}

	g := blockGrammar()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, g, tt.input, ast.Block)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", pe.Line, pe.Column, tt.line, tt.column)
			}
			if !reflect.DeepEqual(pe.Expected, tt.expected) {
				t.Errorf("Expected = %v, want %v", pe.Expected, tt.expected)
			}
			if pe.Found != tt.found {
				t.Errorf("Found = %s, want %s", pe.Found, tt.found)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := parse(t, blockGrammar(), "{ a; b c }", ast.Block)
	want := `parse error at line 1 column 8: expected ";" but found "c"`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %s", err, want)
	}
}

func TestPredicateFailuresAreReplayedOutside(t *testing.T) {
	g := New()
	g.Define(ast.Block, Opt(Next(ast.Statement, "q")), ast.Statement)
	g.Define(ast.Statement, "a", "b")

	_, err := parse(t, g, "a c", ast.Block)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if want := []string{`"b"`}; !reflect.DeepEqual(pe.Expected, want) {
		t.Errorf("Expected = %v, want %v", pe.Expected, want)
	}
}

func TestMock(t *testing.T) {
	g := blockGrammar()
	g.Mock(ast.Statement)
	if !g.Rule(ast.Statement).Mocked() {
		t.Fatal("Mocked() = false after Mock")
	}

	root, err := parse(t, g, "{ statement statement }", ast.Block)
	if err != nil {
		t.Fatalf("Parse() with mock error = %v", err)
	}
	want := "(block { (statement statement) (statement statement) })"
	if got := root.String(); got != want {
		t.Errorf("Parse() = %s, want %s", got, want)
	}

	g.Unmock(ast.Statement)
	if g.Rule(ast.Statement).Mocked() {
		t.Error("Mocked() = true after Unmock")
	}
	if _, err := parse(t, g, "{ statement statement }", ast.Block); err == nil {
		t.Error("Parse() after Unmock succeeded, want error")
	}
	if _, err := parse(t, g, "{ a; }", ast.Block); err != nil {
		t.Errorf("Parse() after Unmock error = %v", err)
	}
}

func TestUndefinedRulePanics(t *testing.T) {
	g := New()
	g.Define(ast.Block, "{", ast.Statement, "}")

	defer func() {
		if recover() == nil {
			t.Error("Parse() with undefined rule did not panic")
		}
	}()
	_, _ = parse(t, g, "{ x }", ast.Block)
}

func TestDefined(t *testing.T) {
	g := blockGrammar()
	if !g.Defined(ast.Block) {
		t.Error("Defined(block) = false")
	}
	if g.Defined(ast.IfStatement) {
		t.Error("Defined(ifStatement) = true")
	}
}
