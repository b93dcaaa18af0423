package metrics

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/visit"
)

// APITypes are the declarations considered for PUBLIC_API
var APITypes = []ast.RuleType{
	ast.ClassDeclaration,
	ast.StructDeclaration,
	ast.RecordDeclaration,
	ast.InterfaceDeclaration,
	ast.EnumDeclaration,
	ast.DelegateDeclaration,
	ast.ConstantDeclaration,
	ast.FieldDeclaration,
	ast.MethodDeclaration,
	ast.PropertyDeclaration,
	ast.EventDeclaration,
	ast.IndexerDeclaration,
	ast.OperatorDeclaration,
	ast.ConstructorDeclaration,
	ast.InterfaceMethodDeclaration,
	ast.InterfacePropertyDeclaration,
	ast.InterfaceEventDeclaration,
	ast.InterfaceIndexerDeclaration,
}

var interfaceMembers = []ast.RuleType{
	ast.InterfaceMethodDeclaration,
	ast.InterfacePropertyDeclaration,
	ast.InterfaceEventDeclaration,
	ast.InterfaceIndexerDeclaration,
}

var declarationKinds = map[ast.RuleType]string{
	ast.ClassDeclaration:             "class",
	ast.StructDeclaration:            "struct",
	ast.RecordDeclaration:            "record",
	ast.InterfaceDeclaration:         "interface",
	ast.EnumDeclaration:              "enum",
	ast.DelegateDeclaration:          "delegate",
	ast.ConstantDeclaration:          "constant",
	ast.FieldDeclaration:             "field",
	ast.MethodDeclaration:            "method",
	ast.PropertyDeclaration:          "property",
	ast.EventDeclaration:             "event",
	ast.IndexerDeclaration:           "indexer",
	ast.OperatorDeclaration:          "operator",
	ast.ConstructorDeclaration:       "constructor",
	ast.InterfaceMethodDeclaration:   "method",
	ast.InterfacePropertyDeclaration: "property",
	ast.InterfaceEventDeclaration:    "event",
	ast.InterfaceIndexerDeclaration:  "indexer",
}

// DeclarationKind names a declaration for messages, e.g. "method"
func DeclarationKind(n *ast.Node) string {
	if k, ok := declarationKinds[n.Type]; ok {
		return k
	}
	return n.Type.String()
}

// declarationHost returns the node holding a declaration's attributes and
// modifiers, or the declaration itself
func declarationHost(n *ast.Node) *ast.Node {
	if p := n.Parent(); p != nil && p.Is(ast.TypeDeclaration, ast.ClassMemberDeclaration, ast.InterfaceMemberDeclaration) {
		return p
	}
	return n
}

// HasModifier reports whether the declaration carries the modifier keyword
func HasModifier(n *ast.Node, keyword string) bool {
	for _, m := range declarationHost(n).ChildrenOfType(ast.Modifier) {
		if m.Child(0).IsToken(keyword) {
			return true
		}
	}
	return false
}

// IsPublicAPI reports whether the declaration is part of the public API.
// Interface members take the visibility of their interface.
func IsPublicAPI(n *ast.Node) bool {
	if !n.Is(APITypes...) {
		return false
	}
	if n.Is(interfaceMembers...) {
		iface := n.FirstAncestor(ast.InterfaceDeclaration)
		return iface != nil && HasModifier(iface, "public")
	}
	return HasModifier(n, "public")
}

// IsDocumented reports whether comments precede the declaration, including
// its attributes and modifiers
func IsDocumented(n *ast.Node) bool {
	tok := declarationHost(n).Token()
	return tok != nil && tok.HasComment()
}

// PublicAPIVisitor computes PUBLIC_API and PUBLIC_DOC_API
type PublicAPIVisitor struct{}

func NewPublicAPIVisitor() *PublicAPIVisitor {
	return &PublicAPIVisitor{}
}

func (v *PublicAPIVisitor) Name() string {
	return "public-api"
}

func (v *PublicAPIVisitor) Subscribe() []ast.RuleType {
	return APITypes
}

func (v *PublicAPIVisitor) VisitNode(ctx *visit.Context, n *ast.Node) {
	if !IsPublicAPI(n) {
		return
	}
	ctx.Scope().Add(source.PublicAPI, 1)
	if IsDocumented(n) {
		ctx.Scope().Add(source.PublicDocAPI, 1)
	}
}
