package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
)

func leaf(kind token.Kind, text string, line int) *ast.Node {
	return ast.NewTerminal(&token.Token{Kind: kind, Text: text, Line: line, Column: 1})
}

func sampleTree() *ast.Node {
	root := ast.New(ast.CompilationUnit, []*ast.Node{
		ast.New(ast.ClassDeclaration, []*ast.Node{
			leaf(token.Keyword, "class", 1),
			leaf(token.Identifier, "C", 1),
			ast.New(ast.ClassBody, []*ast.Node{
				leaf(token.Punctuator, "{", 2),
				leaf(token.Punctuator, "}", 3),
			}),
		}),
		leaf(token.EOF, "", 3),
	})
	ast.Link(root)
	return root
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTree(&buf, sampleTree(), true); err != nil {
		t.Fatalf("PrintTree() error = %v", err)
	}
	want := `compilationUnit :1
  classDeclaration :1
    KEYWORD "class"
    IDENTIFIER "C"
    classBody :2
      PUNCTUATOR "{"
      PUNCTUATOR "}"
`
	if got := buf.String(); got != want {
		t.Errorf("PrintTree() =\n%s\nwant\n%s", got, want)
	}

	buf.Reset()
	if err := PrintTree(&buf, sampleTree(), false); err != nil {
		t.Fatalf("PrintTree() error = %v", err)
	}
	want = "compilationUnit :1\n  classDeclaration :1\n    classBody :2\n"
	if got := buf.String(); got != want {
		t.Errorf("PrintTree(no tokens) =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeModelNavigation(t *testing.T) {
	m := NewTreeModel(sampleTree(), "C.cs")

	// compilationUnit, classDeclaration, class, C, classBody, {, }
	if got := len(m.nodes); got != 7 {
		t.Fatalf("visible nodes = %d, want 7", got)
	}

	press := func(m TreeModel, k string) TreeModel {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		return next.(TreeModel)
	}

	m = press(m, "j")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	// collapse classDeclaration
	m = press(m, "h")
	if got := len(m.nodes); got != 2 {
		t.Errorf("visible nodes after collapse = %d, want 2", got)
	}

	m = press(m, "l")
	m = press(m, "t")
	// tokens hidden: compilationUnit, classDeclaration, classBody
	if got := len(m.nodes); got != 3 {
		t.Errorf("visible nodes without tokens = %d, want 3", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor after toggle = %d, want 0", m.cursor)
	}
}
