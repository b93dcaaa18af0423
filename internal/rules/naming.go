package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/token"
	"github.com/pthm/csquid/internal/visit"
)

// namingTargets maps a target to the declarations it names
var namingTargets = map[string][]ast.RuleType{
	"class":     {ast.ClassDeclaration, ast.StructDeclaration, ast.RecordDeclaration},
	"interface": {ast.InterfaceDeclaration},
	"method":    {ast.MethodDeclaration, ast.InterfaceMethodDeclaration, ast.LocalFunctionDeclaration},
	"property":  {ast.PropertyDeclaration, ast.InterfacePropertyDeclaration},
	"field":     {ast.FieldDeclaration},
	"namespace": {ast.NamespaceDeclaration},
	"parameter": {ast.FixedParameter, ast.ParameterArray},
	"local":     {ast.LocalVariableDeclarator},
}

// NamingTargets returns the accepted values of the naming target parameter
func NamingTargets() []string {
	out := make([]string, 0, len(namingTargets))
	for t := range namingTargets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// NamingCheck reports declarations whose name does not fully match a
// regular expression
type NamingCheck struct {
	Target string
	Format *regexp.Regexp
	raw    string
}

func (c *NamingCheck) Name() string {
	return "naming"
}

func (c *NamingCheck) Description() string {
	return "Declared names should follow a naming convention"
}

func (c *NamingCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Minor,
		FileCategories: defaultCategories,
		Params: []Param{
			{Name: "target", Description: "Declarations to check: " + strings.Join(NamingTargets(), ", "), Default: "class"},
			{Name: "format", Description: "Regular expression names must match", Default: "[A-Z][a-zA-Z0-9]*"},
		},
	}
}

func (c *NamingCheck) Configure(params Params) error {
	target, err := params.String(c, "target", true)
	if err != nil {
		return err
	}
	if _, ok := namingTargets[target]; !ok {
		return &ConfigError{Check: c.Name(), Param: "target", Value: target, Err: fmt.Errorf("unknown naming target")}
	}
	re, err := params.Regexp(c, "format", true)
	if err != nil {
		return err
	}
	c.Target, c.Format = target, re
	c.raw, _ = params.value(c, "format")
	return nil
}

func (c *NamingCheck) NewVisitor(id string) visit.Visitor {
	return &namingVisitor{
		checkVisitor: checkVisitor{id},
		target:       c.Target,
		types:        namingTargets[c.Target],
		format:       c.Format,
		raw:          c.raw,
	}
}

type namingVisitor struct {
	checkVisitor
	target string
	types  []ast.RuleType
	format *regexp.Regexp
	raw    string
}

func (v *namingVisitor) Subscribe() []ast.RuleType {
	return v.types
}

func (v *namingVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	for _, name := range declaredNames(n) {
		if !v.format.MatchString(name.Text) {
			ctx.Report(v.id, name.Line, fmt.Sprintf(
				"Rename this %s \"%s\" to match the regular expression: %s", v.target, name.Text, v.raw))
		}
	}
}

// declaredNames returns the identifier tokens a declaration introduces. A
// namespace introduces each part of its qualified name; a field one name
// per declarator.
func declaredNames(n *ast.Node) []*token.Token {
	switch n.Type {
	case ast.NamespaceDeclaration:
		return identifiers(n.FirstChild(ast.QualifiedIdentifier))
	case ast.MethodDeclaration, ast.PropertyDeclaration:
		ids := identifiers(n.FirstChild(ast.MemberName))
		if len(ids) == 0 {
			return nil
		}
		// an explicit interface implementation declares only the last part
		return ids[len(ids)-1:]
	case ast.FieldDeclaration:
		var out []*token.Token
		for _, decl := range n.ChildrenOfType(ast.VariableDeclarator) {
			if ids := identifiers(decl); len(ids) > 0 {
				out = append(out, ids[0])
			}
		}
		return out
	case ast.RecordDeclaration:
		if name := visit.RecordName(n); name != nil {
			return []*token.Token{name}
		}
		return nil
	case ast.LocalFunctionDeclaration:
		// contextual modifiers such as async lex as identifiers
		ids := identifiers(n)
		if len(ids) == 0 {
			return nil
		}
		return ids[len(ids)-1:]
	}
	ids := identifiers(n)
	if len(ids) == 0 {
		return nil
	}
	return ids[:1]
}

// identifiers returns the identifier tokens among n's direct children
func identifiers(n *ast.Node) []*token.Token {
	if n == nil {
		return nil
	}
	var out []*token.Token
	for _, c := range n.Children() {
		if c.IsTerminal() && c.Token().Kind == token.Identifier {
			out = append(out, c.Token())
		}
	}
	return out
}
