// Package csharp defines the C# grammar on top of the grammar package.
package csharp

import (
	"sync"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/grammar"
	"github.com/pthm/csquid/internal/token"
)

var (
	shared     *grammar.Grammar
	sharedOnce sync.Once
)

// Grammar returns the production grammar, built once and shared. It must
// not be mocked; tests that mock rules use NewGrammar.
func Grammar() *grammar.Grammar {
	sharedOnce.Do(func() {
		shared = NewGrammar()
	})
	return shared
}

// NewGrammar builds a fresh C# grammar
func NewGrammar() *grammar.Grammar {
	g := grammar.New()
	declarations(g)
	types(g)
	classMembers(g)
	interfaces(g)
	statements(g)
	expressions(g)
	return g
}

var (
	identifier = grammar.Kind(token.Identifier)
	literal    = grammar.Kind(token.Literal)
)

// body is the shared shape of method, accessor, operator and constructor
// bodies: a block, a lone semicolon or an expression body.
func body() grammar.Expr {
	return grammar.FirstOf(
		ast.Block,
		";",
		grammar.Seq("=>", ast.Expression, ";"),
	)
}

func declarations(g *grammar.Grammar) {
	namespaceMember := grammar.FirstOf(ast.NamespaceDeclaration, ast.TypeDeclaration)
	globalAttribute := grammar.Seq(
		grammar.Next("[", grammar.FirstOf("assembly", "module"), ":"),
		ast.AttributeSection,
	)

	g.Define(ast.CompilationUnit,
		grammar.ZeroOrMore(ast.ExternAliasDirective),
		grammar.ZeroOrMore(ast.UsingDirective),
		grammar.ZeroOrMore(globalAttribute),
		grammar.ZeroOrMore(namespaceMember),
		grammar.EOF(),
	)
	g.Define(ast.ExternAliasDirective, "extern", "alias", identifier, ";")
	g.Define(ast.UsingDirective,
		"using",
		grammar.FirstOf(
			grammar.Seq(identifier, "=", ast.NamespaceOrTypeName),
			grammar.Seq(grammar.Opt("static"), ast.NamespaceOrTypeName),
		),
		";",
	)
	g.Define(ast.NamespaceDeclaration, "namespace", ast.QualifiedIdentifier,
		grammar.FirstOf(
			grammar.Seq(ast.NamespaceBody, grammar.Opt(";")),
			";",
		),
	)
	g.Define(ast.QualifiedIdentifier, identifier, grammar.ZeroOrMore(".", identifier))
	g.Define(ast.NamespaceBody,
		"{",
		grammar.ZeroOrMore(ast.ExternAliasDirective),
		grammar.ZeroOrMore(ast.UsingDirective),
		grammar.ZeroOrMore(namespaceMember),
		"}",
	)
	g.Define(ast.TypeDeclaration,
		grammar.Opt(ast.Attributes),
		grammar.ZeroOrMore(ast.Modifier),
		grammar.FirstOf(
			ast.ClassDeclaration,
			ast.StructDeclaration,
			ast.RecordDeclaration,
			ast.InterfaceDeclaration,
			ast.EnumDeclaration,
			ast.DelegateDeclaration,
		),
	)
	g.Define(ast.Modifier, grammar.FirstOf(
		grammar.OneOfKeywords("new", "public", "protected", "internal", "private",
			"abstract", "sealed", "static", "readonly", "volatile", "virtual",
			"override", "extern", "unsafe"),
		grammar.Seq("partial", grammar.Next(grammar.FirstOf("class", "struct", "interface", "record", "void"))),
		grammar.Seq("async", grammar.Next(grammar.FirstOf(identifier, ast.PredefinedType, "void"))),
		grammar.Seq("ref", grammar.Next("struct")),
	))

	g.Define(ast.Attributes, grammar.OneOrMore(ast.AttributeSection))
	g.Define(ast.AttributeSection,
		"[",
		grammar.Opt(ast.AttributeTargetSpecifier),
		ast.Attribute,
		grammar.ZeroOrMore(",", ast.Attribute),
		grammar.Opt(","),
		"]",
	)
	g.Define(ast.AttributeTargetSpecifier, grammar.FirstOf(identifier, "return", "event"), ":")
	g.Define(ast.Attribute, ast.NamespaceOrTypeName, grammar.Opt(ast.AttributeArguments))
	g.Define(ast.AttributeArguments,
		"(",
		grammar.Opt(ast.Argument, grammar.ZeroOrMore(",", ast.Argument)),
		")",
	)

	g.Define(ast.ClassDeclaration,
		"class", identifier,
		grammar.Opt(ast.TypeParameterList),
		grammar.Opt(ast.ClassBase),
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		ast.ClassBody,
		grammar.Opt(";"),
	)
	g.Define(ast.ClassBase, ":", ast.Type, grammar.ZeroOrMore(",", ast.Type))
	g.Define(ast.TypeParameterList, "<", ast.TypeParameter, grammar.ZeroOrMore(",", ast.TypeParameter), ">")
	g.Define(ast.TypeParameter, grammar.Opt(ast.Attributes), grammar.Opt(grammar.FirstOf("in", "out")), identifier)
	constraint := grammar.FirstOf("class", "struct", grammar.Seq("new", "(", ")"), ast.Type)
	g.Define(ast.TypeParameterConstraintsClause,
		"where", identifier, ":", constraint, grammar.ZeroOrMore(",", constraint),
	)
	g.Define(ast.ClassBody, "{", grammar.ZeroOrMore(ast.ClassMemberDeclaration), "}")

	g.Define(ast.StructDeclaration,
		"struct", identifier,
		grammar.Opt(ast.TypeParameterList),
		grammar.Opt(ast.ClassBase),
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		ast.StructBody,
		grammar.Opt(";"),
	)
	g.Define(ast.StructBody, "{", grammar.ZeroOrMore(ast.ClassMemberDeclaration), "}")

	g.Define(ast.RecordDeclaration,
		"record", grammar.Opt(grammar.FirstOf("class", "struct")), identifier,
		grammar.Opt(ast.TypeParameterList),
		grammar.Opt("(", grammar.Opt(ast.FormalParameterList), ")"),
		grammar.Opt(ast.RecordBase),
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		grammar.FirstOf(grammar.Seq(ast.ClassBody, grammar.Opt(";")), ";"),
	)
	g.Define(ast.RecordBase, ":", ast.Type, grammar.Opt(ast.ArgumentList), grammar.ZeroOrMore(",", ast.Type))

	g.Define(ast.EnumDeclaration, "enum", identifier, grammar.Opt(ast.EnumBase), ast.EnumBody, grammar.Opt(";"))
	g.Define(ast.EnumBase, ":", ast.Type)
	g.Define(ast.EnumBody,
		"{",
		grammar.Opt(ast.EnumMemberDeclaration, grammar.ZeroOrMore(",", ast.EnumMemberDeclaration)),
		grammar.Opt(","),
		"}",
	)
	g.Define(ast.EnumMemberDeclaration, grammar.Opt(ast.Attributes), identifier, grammar.Opt("=", ast.Expression))

	g.Define(ast.DelegateDeclaration,
		"delegate", ast.ReturnType, identifier,
		grammar.Opt(ast.TypeParameterList),
		"(", grammar.Opt(ast.FormalParameterList), ")",
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		";",
	)
}

func types(g *grammar.Grammar) {
	g.Define(ast.Type,
		grammar.FirstOf(ast.PredefinedType, ast.TupleType, ast.NamespaceOrTypeName),
		grammar.ZeroOrMore(grammar.FirstOf(
			// int? x = c ? a : b; the '?' of a conditional is not a nullable marker
			grammar.Seq("?", grammar.Not(ast.Expression, ":")),
			"*",
			ast.RankSpecifier,
		)),
	)
	g.Define(ast.PredefinedType, grammar.OneOfKeywords(
		"bool", "byte", "char", "decimal", "double", "float", "int", "long",
		"object", "sbyte", "short", "string", "uint", "ulong", "ushort",
	))
	g.Define(ast.NamespaceOrTypeName,
		grammar.Opt(identifier, "::"),
		identifier,
		grammar.Opt(ast.TypeArgumentList),
		grammar.ZeroOrMore(".", identifier, grammar.Opt(ast.TypeArgumentList)),
	)
	g.Define(ast.TypeArgumentList,
		"<",
		grammar.FirstOf(
			grammar.Seq(ast.Type, grammar.ZeroOrMore(",", ast.Type)),
			grammar.ZeroOrMore(","),
		),
		">",
	)
	g.Define(ast.RankSpecifier, "[", grammar.ZeroOrMore(","), "]")
	tupleElement := grammar.Seq(ast.Type, grammar.Opt(identifier))
	g.Define(ast.TupleType, "(", tupleElement, grammar.OneOrMore(",", tupleElement), ")")
	g.Define(ast.ReturnType, grammar.FirstOf("void", ast.Type))
}

func classMembers(g *grammar.Grammar) {
	g.Define(ast.ClassMemberDeclaration, grammar.FirstOf(
		grammar.Seq(
			grammar.Opt(ast.Attributes),
			grammar.ZeroOrMore(grammar.Not("static"), ast.Modifier),
			grammar.Next("static"),
			ast.Modifier,
			grammar.ZeroOrMore(ast.Modifier),
			ast.StaticConstructorDeclaration,
		),
		grammar.Seq(
			grammar.Opt(ast.Attributes),
			grammar.ZeroOrMore(ast.Modifier),
			grammar.FirstOf(
				// before methods: "record R(int X);" also reads as a method returning record
				ast.RecordDeclaration,
				ast.ConstantDeclaration,
				ast.EventDeclaration,
				ast.DestructorDeclaration,
				ast.OperatorDeclaration,
				ast.ConstructorDeclaration,
				ast.MethodDeclaration,
				ast.PropertyDeclaration,
				ast.IndexerDeclaration,
				ast.FieldDeclaration,
				ast.ClassDeclaration,
				ast.StructDeclaration,
				ast.InterfaceDeclaration,
				ast.EnumDeclaration,
				ast.DelegateDeclaration,
			),
		),
	))

	g.Define(ast.ConstantDeclaration,
		"const", ast.Type, ast.VariableDeclarator,
		grammar.ZeroOrMore(",", ast.VariableDeclarator),
		";",
	)
	g.Define(ast.FieldDeclaration,
		ast.Type, ast.VariableDeclarator,
		grammar.ZeroOrMore(",", ast.VariableDeclarator),
		";",
	)
	g.Define(ast.VariableDeclarator, identifier, grammar.Opt("=", ast.VariableInitializer))
	g.Define(ast.VariableInitializer, grammar.FirstOf(ast.ArrayInitializer, ast.Expression))

	g.Define(ast.MethodDeclaration,
		ast.ReturnType, ast.MemberName,
		grammar.Opt(ast.TypeParameterList),
		"(", grammar.Opt(ast.FormalParameterList), ")",
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		ast.MethodBody,
	)
	g.Define(ast.MemberName,
		identifier,
		grammar.ZeroOrMore(grammar.Opt(ast.TypeArgumentList), ".", identifier),
	)
	g.Define(ast.FormalParameterList, grammar.FirstOf(
		grammar.Seq(
			ast.FixedParameter,
			grammar.ZeroOrMore(",", ast.FixedParameter),
			grammar.Opt(",", ast.ParameterArray),
		),
		ast.ParameterArray,
	))
	g.Define(ast.FixedParameter,
		grammar.Opt(ast.Attributes),
		grammar.ZeroOrMore(ast.ParameterModifier),
		ast.Type, identifier,
		grammar.Opt("=", ast.Expression),
	)
	g.Define(ast.ParameterModifier, grammar.FirstOf("ref", "out", "in", "this"))
	g.Define(ast.ParameterArray, grammar.Opt(ast.Attributes), "params", ast.Type, identifier)
	g.Define(ast.MethodBody, body())

	g.Define(ast.PropertyDeclaration,
		ast.Type, ast.MemberName,
		grammar.FirstOf(
			grammar.Seq("{", ast.AccessorDeclarations, "}", grammar.Opt("=", ast.VariableInitializer, ";")),
			grammar.Seq("=>", ast.Expression, ";"),
		),
	)
	g.Define(ast.AccessorDeclarations, grammar.FirstOf(
		grammar.Seq(ast.GetAccessorDeclaration, grammar.Opt(ast.SetAccessorDeclaration)),
		grammar.Seq(ast.SetAccessorDeclaration, grammar.Opt(ast.GetAccessorDeclaration)),
	))
	g.Define(ast.GetAccessorDeclaration,
		grammar.Opt(ast.Attributes), grammar.ZeroOrMore(ast.Modifier), "get", ast.AccessorBody,
	)
	g.Define(ast.SetAccessorDeclaration,
		grammar.Opt(ast.Attributes), grammar.ZeroOrMore(ast.Modifier),
		grammar.FirstOf("set", "init"), ast.AccessorBody,
	)
	g.Define(ast.AccessorBody, body())

	g.Define(ast.EventDeclaration,
		"event", ast.Type,
		grammar.FirstOf(
			grammar.Seq(ast.MemberName, "{", ast.EventAccessorDeclarations, "}"),
			grammar.Seq(ast.VariableDeclarator, grammar.ZeroOrMore(",", ast.VariableDeclarator), ";"),
		),
	)
	g.Define(ast.EventAccessorDeclarations, grammar.FirstOf(
		grammar.Seq(ast.AddAccessorDeclaration, ast.RemoveAccessorDeclaration),
		grammar.Seq(ast.RemoveAccessorDeclaration, ast.AddAccessorDeclaration),
	))
	eventBody := grammar.FirstOf(ast.Block, grammar.Seq("=>", ast.Expression, ";"))
	g.Define(ast.AddAccessorDeclaration, grammar.Opt(ast.Attributes), "add", eventBody)
	g.Define(ast.RemoveAccessorDeclaration, grammar.Opt(ast.Attributes), "remove", eventBody)

	g.Define(ast.IndexerDeclaration,
		ast.Type,
		grammar.ZeroOrMore(identifier, grammar.Opt(ast.TypeArgumentList), "."),
		"this", "[", ast.FormalParameterList, "]",
		grammar.FirstOf(
			grammar.Seq("{", ast.AccessorDeclarations, "}"),
			grammar.Seq("=>", ast.Expression, ";"),
		),
	)

	overloadable := grammar.FirstOf(
		grammar.Adjacent(">", ">"),
		"++", "--", "+", "-", "!", "~", "true", "false", "*", "/", "%",
		"&", "|", "^", "<<", "==", "!=", ">=", "<=", ">", "<",
	)
	g.Define(ast.OperatorDeclaration,
		grammar.FirstOf(
			grammar.Seq(grammar.FirstOf("implicit", "explicit"), "operator", ast.Type),
			grammar.Seq(ast.Type, "operator", overloadable),
		),
		"(", ast.FormalParameterList, ")",
		ast.OperatorBody,
	)
	g.Define(ast.OperatorBody, body())

	g.Define(ast.ConstructorDeclaration,
		identifier, "(", grammar.Opt(ast.FormalParameterList), ")",
		grammar.Opt(ast.ConstructorInitializer),
		ast.ConstructorBody,
	)
	g.Define(ast.ConstructorInitializer, ":", grammar.FirstOf("base", "this"), ast.ArgumentList)
	g.Define(ast.ConstructorBody, body())
	g.Define(ast.StaticConstructorDeclaration, identifier, "(", ")", ast.StaticConstructorBody)
	g.Define(ast.StaticConstructorBody, body())
	g.Define(ast.DestructorDeclaration, "~", identifier, "(", ")", ast.DestructorBody)
	g.Define(ast.DestructorBody, body())
}

func interfaces(g *grammar.Grammar) {
	g.Define(ast.InterfaceDeclaration,
		"interface", identifier,
		grammar.Opt(ast.TypeParameterList),
		grammar.Opt(ast.InterfaceBase),
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		ast.InterfaceBody,
		grammar.Opt(";"),
	)
	g.Define(ast.InterfaceBase, ":", ast.Type, grammar.ZeroOrMore(",", ast.Type))
	g.Define(ast.InterfaceBody, "{", grammar.ZeroOrMore(ast.InterfaceMemberDeclaration), "}")
	g.Define(ast.InterfaceMemberDeclaration,
		grammar.Opt(ast.Attributes),
		grammar.ZeroOrMore(ast.Modifier),
		grammar.FirstOf(
			ast.InterfaceEventDeclaration,
			ast.InterfaceMethodDeclaration,
			ast.InterfacePropertyDeclaration,
			ast.InterfaceIndexerDeclaration,
		),
	)
	g.Define(ast.InterfaceMethodDeclaration,
		ast.ReturnType, identifier,
		grammar.Opt(ast.TypeParameterList),
		"(", grammar.Opt(ast.FormalParameterList), ")",
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		ast.MethodBody,
	)
	g.Define(ast.InterfacePropertyDeclaration, ast.Type, identifier, "{", ast.InterfaceAccessors, "}")
	g.Define(ast.InterfaceAccessors, grammar.FirstOf(
		grammar.Seq(grammar.Opt(ast.Attributes), "get", ";",
			grammar.Opt(grammar.Opt(ast.Attributes), "set", ";")),
		grammar.Seq(grammar.Opt(ast.Attributes), "set", ";",
			grammar.Opt(grammar.Opt(ast.Attributes), "get", ";")),
	))
	g.Define(ast.InterfaceEventDeclaration, "event", ast.Type, identifier, ";")
	g.Define(ast.InterfaceIndexerDeclaration,
		ast.Type, "this", "[", ast.FormalParameterList, "]",
		"{", ast.InterfaceAccessors, "}",
	)
}
