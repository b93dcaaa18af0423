package visit

import (
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/token"
)

var scopeKinds = map[ast.RuleType]source.ScopeKind{
	ast.NamespaceDeclaration: source.ScopeNamespace,

	ast.ClassDeclaration:     source.ScopeType,
	ast.StructDeclaration:    source.ScopeType,
	ast.RecordDeclaration:    source.ScopeType,
	ast.InterfaceDeclaration: source.ScopeType,
	ast.EnumDeclaration:      source.ScopeType,
	ast.DelegateDeclaration:  source.ScopeType,

	ast.MethodDeclaration:            source.ScopeMember,
	ast.ConstructorDeclaration:       source.ScopeMember,
	ast.StaticConstructorDeclaration: source.ScopeMember,
	ast.DestructorDeclaration:        source.ScopeMember,
	ast.OperatorDeclaration:          source.ScopeMember,
	ast.PropertyDeclaration:          source.ScopeMember,
	ast.IndexerDeclaration:           source.ScopeMember,
	ast.EventDeclaration:             source.ScopeMember,
	ast.GetAccessorDeclaration:       source.ScopeMember,
	ast.SetAccessorDeclaration:       source.ScopeMember,
	ast.AddAccessorDeclaration:       source.ScopeMember,
	ast.RemoveAccessorDeclaration:    source.ScopeMember,
	ast.InterfaceMethodDeclaration:   source.ScopeMember,
	ast.InterfacePropertyDeclaration: source.ScopeMember,
	ast.InterfaceIndexerDeclaration:  source.ScopeMember,
	ast.InterfaceEventDeclaration:    source.ScopeMember,
}

// ScopeKindOf returns the kind of scope a node opens, if any
func ScopeKindOf(t ast.RuleType) (source.ScopeKind, bool) {
	k, ok := scopeKinds[t]
	return k, ok
}

// ScopeName returns the display name of a scope-opening declaration
func ScopeName(n *ast.Node) string {
	switch n.Type {
	case ast.NamespaceDeclaration:
		return joined(n.FirstChild(ast.QualifiedIdentifier))
	case ast.MethodDeclaration, ast.PropertyDeclaration:
		return joined(n.FirstChild(ast.MemberName))
	case ast.DestructorDeclaration:
		return "~" + firstIdentifier(n)
	case ast.RecordDeclaration:
		if name := RecordName(n); name != nil {
			return name.Text
		}
		return ""
	case ast.OperatorDeclaration:
		return operatorName(n)
	case ast.IndexerDeclaration, ast.InterfaceIndexerDeclaration:
		return "this[]"
	case ast.EventDeclaration:
		if name := n.FirstChild(ast.MemberName); name != nil {
			return joined(name)
		}
		if decl := n.FirstChild(ast.VariableDeclarator); decl != nil {
			return decl.TokenValue()
		}
		return ""
	case ast.GetAccessorDeclaration, ast.SetAccessorDeclaration,
		ast.AddAccessorDeclaration, ast.RemoveAccessorDeclaration:
		for _, c := range n.Children() {
			if c.IsToken("get", "set", "init", "add", "remove") {
				return c.TokenValue()
			}
		}
		return ""
	default:
		return firstIdentifier(n)
	}
}

// RecordName returns the declared name of a record. The contextual
// keyword "record" is itself an identifier token.
func RecordName(n *ast.Node) *token.Token {
	for _, c := range n.Children()[1:] {
		if c.IsTerminal() && c.Token().Kind == token.Identifier {
			return c.Token()
		}
	}
	return nil
}

// firstIdentifier returns the first identifier token among n's direct
// children, which is the declared name for types and constructors
func firstIdentifier(n *ast.Node) string {
	for _, c := range n.Children() {
		if c.IsTerminal() && c.Token().Kind == token.Identifier {
			return c.Token().Text
		}
	}
	return ""
}

func operatorName(n *ast.Node) string {
	children := n.Children()
	for i, c := range children {
		if !c.IsToken("operator") {
			continue
		}
		if i > 0 && children[i-1].IsToken("implicit", "explicit") {
			return children[i-1].TokenValue() + " operator " + joined(children[i+1])
		}
		var sb strings.Builder
		sb.WriteString("operator")
		for _, op := range children[i+1:] {
			if op.IsToken("(") {
				break
			}
			sb.WriteString(op.TokenValue())
		}
		return sb.String()
	}
	return "operator"
}

// joined concatenates the token texts of n, e.g. "App.Core"
func joined(n *ast.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for _, tok := range n.Tokens() {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}
