package xpath

import (
	"errors"
	"strings"
	"testing"

	"github.com/pthm/csquid/internal/ast"
	csparser "github.com/pthm/csquid/internal/parser"
)

const sample = `namespace App
{
    class A
    {
        void One() { if (x) { } }
        void Two() { }
        int Three() { return 3; }
    }

    class B { }
}
`

func parseSample(t *testing.T) *ast.Node {
	t.Helper()
	file, err := csparser.ParseString(sample, csparser.Options{})
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return file.Root
}

func describe(nodes []*ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Name() + ":" + n.TokenValue()
	}
	return strings.Join(parts, " ")
}

func TestSelect(t *testing.T) {
	root := parseSample(t)

	tests := []struct {
		query string
		want  string
	}{
		{"/compilationUnit", "compilationUnit:namespace"},
		{"/", "compilationUnit:namespace"},
		{"//classDeclaration", "classDeclaration:class classDeclaration:class"},
		{"//classDeclaration[count(.//methodDeclaration) > 2]", "classDeclaration:class"},
		{"//methodDeclaration/memberName/IDENTIFIER", "IDENTIFIER:One IDENTIFIER:Two IDENTIFIER:Three"},
		{"//memberName[IDENTIFIER/@tokenValue = 'Two']", "memberName:Two"},
		{"//memberName[@tokenValue != 'Two']", "memberName:One memberName:Three"},
		{"//classBody/classMemberDeclaration[1]/methodDeclaration/memberName", "memberName:One"},
		{"//classMemberDeclaration[last()]//memberName", "memberName:Three"},
		{"//ifStatement/ancestor::methodDeclaration/memberName", "memberName:One"},
		{"//returnStatement/..", "block:{"},
		{"//classDeclaration[IDENTIFIER/@tokenValue = 'A']/following-sibling::*", ""},
		{"//memberName[starts-with(@tokenValue, 'T')]", "memberName:Two memberName:Three"},
		{"//memberName[contains(@tokenValue, 'hre')]", "memberName:Three"},
		{"//ifStatement | //returnStatement", "ifStatement:if returnStatement:return"},
		{"//methodDeclaration[not(.//ifStatement)]/memberName", "memberName:Two memberName:Three"},
		{"//methodDeclaration[memberName/@tokenLine = 6]/memberName", "memberName:Two"},
		{"//*[@name = 'namespaceDeclaration']", "namespaceDeclaration:namespace"},
		{"//whileStatement", ""},
		{"count(//classDeclaration)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Compile(tt.query)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got := describe(q.Select(root)); got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateScalar(t *testing.T) {
	root := parseSample(t)

	tests := []struct {
		query string
		want  bool
	}{
		{"count(//classDeclaration) = 2", true},
		{"count(//classDeclaration) > 2", false},
		{"//whileStatement", false},
		{"not(//whileStatement)", true},
		{"//ifStatement and //returnStatement", true},
		{"//whileStatement or //doStatement", false},
		{"//whileStatement = false()", true},
		{"string-length('abc') = 3", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := MustCompile(tt.query).Evaluate(root)
			if res.Bool != tt.want {
				t.Errorf("Evaluate().Bool = %v, want %v", res.Bool, tt.want)
			}
		})
	}

	if res := MustCompile("count(//classDeclaration)").Evaluate(root); res.IsNodeSet {
		t.Error("count() result reported as a node set")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []string{
		"",
		"//",
		"//classDeclaration[",
		"//foo(",
		"unknown(1)",
		"count(1, 2)",
		"//classDeclaration/@nope",
		"sideways::classDeclaration",
		"'unterminated",
		"//a # b",
	}

	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			_, err := Compile(query)
			var syntax *SyntaxError
			if !errors.As(err, &syntax) {
				t.Errorf("Compile(%q) error = %v, want *SyntaxError", query, err)
			}
		})
	}
}
