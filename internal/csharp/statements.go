package csharp

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/grammar"
)

func statements(g *grammar.Grammar) {
	g.Define(ast.Block, "{", grammar.ZeroOrMore(ast.Statement), "}")
	g.Define(ast.Statement, grammar.FirstOf(
		ast.LabeledStatement,
		ast.DeclarationStatement,
		ast.EmbeddedStatement,
	)).SkipIfOneChild()
	g.Define(ast.LabeledStatement, identifier, ":", ast.Statement)

	g.Define(ast.DeclarationStatement, grammar.FirstOf(
		grammar.Seq(grammar.FirstOf(ast.LocalVariableDeclaration, ast.LocalConstantDeclaration), ";"),
		ast.LocalFunctionDeclaration,
	))
	designation := grammar.Seq("(", identifier, grammar.OneOrMore(",", identifier), ")")
	g.Define(ast.LocalVariableDeclaration, grammar.FirstOf(
		grammar.Seq(
			grammar.Not("await"),
			ast.Type, ast.LocalVariableDeclarator,
			grammar.ZeroOrMore(",", ast.LocalVariableDeclarator),
		),
		grammar.Seq("var", designation, "=", ast.Expression),
	))
	g.Define(ast.LocalVariableDeclarator, identifier, grammar.Opt("=", ast.VariableInitializer))
	g.Define(ast.LocalConstantDeclaration,
		"const", ast.Type, ast.VariableDeclarator,
		grammar.ZeroOrMore(",", ast.VariableDeclarator),
	)
	g.Define(ast.LocalFunctionDeclaration,
		grammar.ZeroOrMore(grammar.FirstOf("static", "unsafe", grammar.Seq("async", grammar.Not("=>")))),
		ast.ReturnType, identifier,
		grammar.Opt(ast.TypeParameterList),
		"(", grammar.Opt(ast.FormalParameterList), ")",
		grammar.ZeroOrMore(ast.TypeParameterConstraintsClause),
		grammar.Next(grammar.FirstOf("{", "=>")),
		ast.MethodBody,
	)

	g.Define(ast.EmbeddedStatement, grammar.FirstOf(
		ast.Block,
		ast.EmptyStatement,
		ast.IfStatement,
		ast.SwitchStatement,
		ast.WhileStatement,
		ast.DoStatement,
		ast.ForStatement,
		ast.ForeachStatement,
		ast.BreakStatement,
		ast.ContinueStatement,
		ast.GotoStatement,
		ast.ReturnStatement,
		ast.ThrowStatement,
		ast.TryStatement,
		ast.CheckedStatement,
		ast.UncheckedStatement,
		ast.LockStatement,
		ast.UsingStatement,
		ast.YieldStatement,
		ast.UnsafeStatement,
		ast.FixedStatement,
		ast.ExpressionStatement,
	)).SkipIfOneChild()

	g.Define(ast.EmptyStatement, ";")
	g.Define(ast.ExpressionStatement, ast.Expression, ";")
	g.Define(ast.IfStatement,
		"if", "(", ast.Expression, ")", ast.EmbeddedStatement,
		grammar.Opt("else", ast.EmbeddedStatement),
	)

	g.Define(ast.SwitchStatement, "switch", "(", ast.Expression, ")", ast.SwitchBlock)
	g.Define(ast.SwitchBlock, "{", grammar.ZeroOrMore(ast.SwitchSection), "}")
	g.Define(ast.SwitchSection, grammar.OneOrMore(ast.SwitchLabel), grammar.OneOrMore(ast.Statement))
	g.Define(ast.SwitchLabel, grammar.FirstOf(
		grammar.Seq(
			"case",
			grammar.FirstOf(grammar.Seq(ast.Type, identifier), ast.Expression),
			grammar.Opt("when", ast.Expression),
			":",
		),
		grammar.Seq("default", ":"),
	))

	g.Define(ast.WhileStatement, "while", "(", ast.Expression, ")", ast.EmbeddedStatement)
	g.Define(ast.DoStatement, "do", ast.EmbeddedStatement, "while", "(", ast.Expression, ")", ";")
	g.Define(ast.ForStatement,
		"for", "(",
		grammar.Opt(ast.ForInitializer), ";",
		grammar.Opt(ast.ForCondition), ";",
		grammar.Opt(ast.ForIterator),
		")", ast.EmbeddedStatement,
	)
	g.Define(ast.ForInitializer, grammar.FirstOf(
		ast.LocalVariableDeclaration,
		grammar.Seq(ast.Expression, grammar.ZeroOrMore(",", ast.Expression)),
	))
	g.Define(ast.ForCondition, ast.Expression)
	g.Define(ast.ForIterator, ast.Expression, grammar.ZeroOrMore(",", ast.Expression))
	g.Define(ast.ForeachStatement,
		"foreach", "(",
		grammar.FirstOf(
			grammar.Seq(ast.Type, identifier),
			grammar.Seq("var", designation),
		),
		"in", ast.Expression, ")",
		ast.EmbeddedStatement,
	)

	g.Define(ast.BreakStatement, "break", ";")
	g.Define(ast.ContinueStatement, "continue", ";")
	g.Define(ast.GotoStatement,
		"goto",
		grammar.FirstOf(grammar.Seq("case", ast.Expression), "default", identifier),
		";",
	)
	g.Define(ast.ReturnStatement, "return", grammar.Opt(ast.Expression), ";")
	g.Define(ast.ThrowStatement, "throw", grammar.Opt(ast.Expression), ";")

	g.Define(ast.TryStatement,
		"try", ast.Block,
		grammar.FirstOf(
			grammar.Seq(grammar.OneOrMore(ast.CatchClause), grammar.Opt(ast.FinallyClause)),
			ast.FinallyClause,
		),
	)
	g.Define(ast.CatchClause,
		"catch",
		grammar.Opt("(", ast.Type, grammar.Opt(identifier), ")"),
		grammar.Opt(ast.ExceptionFilter),
		ast.Block,
	)
	g.Define(ast.ExceptionFilter, "when", "(", ast.Expression, ")")
	g.Define(ast.FinallyClause, "finally", ast.Block)

	g.Define(ast.CheckedStatement, "checked", ast.Block)
	g.Define(ast.UncheckedStatement, "unchecked", ast.Block)
	g.Define(ast.LockStatement, "lock", "(", ast.Expression, ")", ast.EmbeddedStatement)
	g.Define(ast.UsingStatement, "using", grammar.FirstOf(
		grammar.Seq("(", grammar.FirstOf(ast.LocalVariableDeclaration, ast.Expression), ")", ast.EmbeddedStatement),
		grammar.Seq(ast.LocalVariableDeclaration, ";"),
	))
	g.Define(ast.YieldStatement, "yield", grammar.FirstOf(grammar.Seq("return", ast.Expression), "break"), ";")
	g.Define(ast.UnsafeStatement, "unsafe", ast.Block)
	g.Define(ast.FixedStatement,
		"fixed", "(", ast.Type, ast.VariableDeclarator,
		grammar.ZeroOrMore(",", ast.VariableDeclarator),
		")", ast.EmbeddedStatement,
	)
}
