package csharp

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/grammar"
)

// binary defines a left-associative binary operator level
func binary(g *grammar.Grammar, t, operand ast.RuleType, ops ...any) {
	g.Define(t, operand, grammar.ZeroOrMore(grammar.FirstOf(ops...), operand)).SkipIfOneChild()
}

func expressions(g *grammar.Grammar) {
	g.Define(ast.Expression, grammar.FirstOf(
		ast.AssignmentExpression,
		ast.LambdaExpression,
		ast.QueryExpression,
		ast.ConditionalExpression,
	)).SkipIfOneChild()

	g.Define(ast.AssignmentExpression,
		ast.UnaryExpression,
		grammar.FirstOf(
			"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", "??=",
			grammar.Adjacent(">", ">="),
		),
		grammar.FirstOf(ast.ThrowExpression, ast.Expression),
	)

	lambdaBody := grammar.FirstOf(ast.Block, ast.Expression)
	g.Define(ast.LambdaExpression,
		grammar.Opt("async", grammar.Next(grammar.FirstOf(identifier, "("))),
		ast.LambdaParameters, "=>", lambdaBody,
	)
	g.Define(ast.LambdaParameters, grammar.FirstOf(
		identifier,
		grammar.Seq("(", grammar.Opt(ast.LambdaParameter, grammar.ZeroOrMore(",", ast.LambdaParameter)), ")"),
	))
	g.Define(ast.LambdaParameter,
		grammar.Opt(ast.ParameterModifier),
		grammar.Opt(ast.Type, grammar.Next(identifier)),
		identifier,
	)
	g.Define(ast.AnonymousMethodExpression,
		grammar.Opt("async"),
		"delegate",
		grammar.Opt("(", grammar.Opt(ast.FormalParameterList), ")"),
		ast.Block,
	)

	queries(g)

	branch := grammar.FirstOf(ast.ThrowExpression, ast.Expression)
	g.Define(ast.ConditionalExpression,
		ast.NullCoalescingExpression,
		grammar.Opt("?", branch, ":", branch),
	).SkipIfOneChild()
	g.Define(ast.NullCoalescingExpression,
		ast.ConditionalOrExpression,
		grammar.Opt("??", grammar.FirstOf(ast.ThrowExpression, ast.NullCoalescingExpression)),
	).SkipIfOneChild()
	g.Define(ast.ThrowExpression, "throw", ast.Expression)

	binary(g, ast.ConditionalOrExpression, ast.ConditionalAndExpression, "||")
	binary(g, ast.ConditionalAndExpression, ast.InclusiveOrExpression, "&&")
	binary(g, ast.InclusiveOrExpression, ast.ExclusiveOrExpression, "|")
	binary(g, ast.ExclusiveOrExpression, ast.AndExpression, "^")
	binary(g, ast.AndExpression, ast.EqualityExpression, "&")
	binary(g, ast.EqualityExpression, ast.RelationalExpression, "==", "!=")

	g.Define(ast.RelationalExpression,
		ast.ShiftExpression,
		grammar.ZeroOrMore(grammar.FirstOf(
			grammar.Seq(grammar.FirstOf("<=", ">=", "<", ">"), ast.ShiftExpression),
			grammar.Seq("is", grammar.FirstOf(
				grammar.Seq(ast.Type, grammar.Opt(identifier)),
				ast.ShiftExpression,
			)),
			grammar.Seq("as", ast.Type),
		)),
	).SkipIfOneChild()

	binary(g, ast.ShiftExpression, ast.AdditiveExpression, "<<", grammar.Adjacent(">", ">"))
	binary(g, ast.AdditiveExpression, ast.MultiplicativeExpression, "+", "-")
	binary(g, ast.MultiplicativeExpression, ast.SwitchExpression, "*", "/", "%")

	g.Define(ast.SwitchExpression,
		ast.UnaryExpression,
		grammar.Opt(
			"switch", "{",
			grammar.Opt(ast.SwitchExpressionArm, grammar.ZeroOrMore(",", ast.SwitchExpressionArm)),
			grammar.Opt(","),
			"}",
		),
	).SkipIfOneChild()
	pattern := grammar.FirstOf(
		grammar.Seq(grammar.FirstOf("<=", ">=", "<", ">"), ast.ShiftExpression),
		grammar.Seq(ast.Type, identifier, grammar.Next(grammar.FirstOf("=>", "when"))),
		ast.ConditionalExpression,
	)
	// a guard or pattern never holds a lambda, so "x => ..." is not misread
	g.Define(ast.SwitchExpressionArm,
		pattern,
		grammar.Opt("when", ast.ConditionalExpression),
		"=>",
		grammar.FirstOf(ast.ThrowExpression, ast.Expression),
	)

	g.Define(ast.UnaryExpression, grammar.FirstOf(
		ast.CastExpression,
		ast.AwaitExpression,
		ast.PreIncrementExpression,
		ast.PreDecrementExpression,
		grammar.Seq(grammar.FirstOf("+", "-", "!", "~", "&", "*"), ast.UnaryExpression),
		ast.PrimaryExpression,
	)).SkipIfOneChild()
	g.Define(ast.PreIncrementExpression, "++", ast.UnaryExpression)
	g.Define(ast.PreDecrementExpression, "--", ast.UnaryExpression)
	g.Define(ast.AwaitExpression, "await", ast.UnaryExpression)

	// (T)x is a cast when T is a predefined type or the token after the
	// closing parenthesis cannot continue a parenthesized expression.
	castFollow := grammar.FirstOf(
		"~", "!", "(", identifier, literal,
		grammar.OneOfKeywords("this", "base", "new", "typeof", "default", "checked",
			"unchecked", "sizeof", "true", "false", "null", "delegate", "stackalloc",
			"bool", "byte", "char", "decimal", "double", "float", "int", "long",
			"object", "sbyte", "short", "string", "uint", "ulong", "ushort"),
	)
	g.Define(ast.CastExpression, grammar.FirstOf(
		grammar.Seq("(", grammar.Next(ast.PredefinedType), ast.Type, ")", ast.UnaryExpression),
		grammar.Seq("(", ast.Type, ")", grammar.Next(castFollow), ast.UnaryExpression),
	))

	primary(g)
}

func queries(g *grammar.Grammar) {
	rangeVariable := grammar.Seq(grammar.Opt(ast.Type, grammar.Next(identifier)), identifier)

	g.Define(ast.QueryExpression, ast.FromClause, ast.QueryBody)
	g.Define(ast.FromClause, "from", rangeVariable, "in", ast.Expression)
	g.Define(ast.QueryBody,
		grammar.ZeroOrMore(grammar.FirstOf(
			ast.FromClause,
			ast.LetClause,
			ast.WhereClause,
			ast.JoinClause,
			ast.OrderbyClause,
		)),
		grammar.FirstOf(ast.SelectClause, ast.GroupClause),
		grammar.Opt(ast.QueryContinuation),
	)
	g.Define(ast.LetClause, "let", identifier, "=", ast.Expression)
	g.Define(ast.WhereClause, "where", ast.Expression)
	g.Define(ast.JoinClause,
		"join", rangeVariable, "in", ast.Expression,
		"on", ast.Expression, "equals", ast.Expression,
		grammar.Opt("into", identifier),
	)
	g.Define(ast.OrderbyClause, "orderby", ast.Ordering, grammar.ZeroOrMore(",", ast.Ordering))
	g.Define(ast.Ordering, ast.Expression, grammar.Opt(grammar.FirstOf("ascending", "descending")))
	g.Define(ast.SelectClause, "select", ast.Expression)
	g.Define(ast.GroupClause, "group", ast.Expression, "by", ast.Expression)
	g.Define(ast.QueryContinuation, "into", identifier, ast.QueryBody)
}

func primary(g *grammar.Grammar) {
	// type arguments in an expression only bind when followed by a token
	// that cannot start an operand, so a < b > c stays a comparison
	typeArguments := grammar.Seq(
		ast.TypeArgumentList,
		grammar.Next(grammar.FirstOf(
			"(", ")", "]", "}", ":", ";", ",", ".", "?", "==", "!=", "|", "^",
			"&&", "||", "&", "[", grammar.EOF(),
		)),
	)

	g.Define(ast.PrimaryExpression,
		grammar.FirstOf(
			literal, "true", "false", "null",
			ast.TupleExpression,
			ast.ParenthesizedExpression,
			ast.ThisAccess,
			ast.BaseAccess,
			ast.ArrayCreationExpression,
			ast.AnonymousObjectCreationExpression,
			ast.ObjectCreationExpression,
			ast.TypeofExpression,
			ast.DefaultValueExpression,
			ast.CheckedExpression,
			ast.UncheckedExpression,
			ast.SizeofExpression,
			ast.NameofExpression,
			ast.AnonymousMethodExpression,
			ast.StackallocExpression,
			ast.PredefinedType,
			ast.SimpleName,
		),
		grammar.ZeroOrMore(grammar.FirstOf(
			ast.MemberAccess,
			ast.ArgumentList,
			ast.ElementAccess,
			ast.PostIncrementExpression,
			ast.PostDecrementExpression,
			grammar.Seq("!", grammar.Next(grammar.FirstOf(".", "?.", ")", ";", ",", "]", "["))),
		)),
	).SkipIfOneChild()

	g.Define(ast.SimpleName, grammar.Opt(identifier, "::"), identifier, grammar.Opt(typeArguments))
	g.Define(ast.MemberAccess, grammar.FirstOf(".", "?.", "->"), identifier, grammar.Opt(typeArguments))
	g.Define(ast.ArgumentList, "(", grammar.Opt(ast.Argument, grammar.ZeroOrMore(",", ast.Argument)), ")")
	g.Define(ast.Argument,
		grammar.Opt(identifier, ":"),
		grammar.FirstOf(
			grammar.Seq(
				grammar.FirstOf("ref", "out", "in"),
				grammar.FirstOf(
					grammar.Seq(ast.Type, identifier, grammar.Next(grammar.FirstOf(",", ")"))),
					ast.Expression,
				),
			),
			ast.Expression,
		),
	)
	g.Define(ast.ElementAccess,
		grammar.Opt("?", grammar.Next("[")),
		"[", ast.Argument, grammar.ZeroOrMore(",", ast.Argument), "]",
	)
	g.Define(ast.PostIncrementExpression, "++")
	g.Define(ast.PostDecrementExpression, "--")

	g.Define(ast.TupleExpression, "(", ast.Argument, grammar.OneOrMore(",", ast.Argument), ")")
	g.Define(ast.ParenthesizedExpression, "(", ast.Expression, ")")
	g.Define(ast.ThisAccess, "this")
	g.Define(ast.BaseAccess, "base")

	g.Define(ast.ArrayCreationExpression, grammar.FirstOf(
		grammar.Seq(
			"new", ast.Type,
			"[", ast.Expression, grammar.ZeroOrMore(",", ast.Expression), "]",
			grammar.ZeroOrMore(ast.RankSpecifier),
			grammar.Opt(ast.ArrayInitializer),
		),
		grammar.Seq("new", ast.Type, grammar.Next("{"), ast.ArrayInitializer),
		grammar.Seq("new", ast.RankSpecifier, ast.ArrayInitializer),
	))
	g.Define(ast.ArrayInitializer,
		"{",
		grammar.Opt(ast.VariableInitializer, grammar.ZeroOrMore(",", ast.VariableInitializer)),
		grammar.Opt(","),
		"}",
	)
	g.Define(ast.ObjectCreationExpression, grammar.FirstOf(
		grammar.Seq("new", ast.Type, grammar.FirstOf(
			grammar.Seq(ast.ArgumentList, grammar.Opt(ast.ObjectOrCollectionInitializer)),
			ast.ObjectOrCollectionInitializer,
		)),
		grammar.Seq("new", ast.ArgumentList, grammar.Opt(ast.ObjectOrCollectionInitializer)),
	))
	initializerElement := grammar.FirstOf(ast.MemberInitializer, ast.ElementInitializer)
	g.Define(ast.ObjectOrCollectionInitializer,
		"{",
		grammar.Opt(initializerElement, grammar.ZeroOrMore(",", initializerElement)),
		grammar.Opt(","),
		"}",
	)
	g.Define(ast.MemberInitializer,
		grammar.FirstOf(identifier, grammar.Seq("[", ast.Argument, grammar.ZeroOrMore(",", ast.Argument), "]")),
		"=",
		grammar.FirstOf(ast.ObjectOrCollectionInitializer, ast.Expression),
	)
	g.Define(ast.ElementInitializer, grammar.FirstOf(
		grammar.Seq("{", ast.Expression, grammar.ZeroOrMore(",", ast.Expression), "}"),
		ast.Expression,
	))
	g.Define(ast.AnonymousObjectCreationExpression,
		"new", "{",
		grammar.Opt(ast.MemberDeclarator, grammar.ZeroOrMore(",", ast.MemberDeclarator)),
		grammar.Opt(","),
		"}",
	)
	g.Define(ast.MemberDeclarator, grammar.FirstOf(
		grammar.Seq(identifier, "=", ast.Expression),
		ast.Expression,
	))

	g.Define(ast.TypeofExpression, "typeof", "(", grammar.FirstOf("void", ast.Type), ")")
	g.Define(ast.DefaultValueExpression, "default", grammar.Opt("(", ast.Type, ")"))
	g.Define(ast.CheckedExpression, "checked", "(", ast.Expression, ")")
	g.Define(ast.UncheckedExpression, "unchecked", "(", ast.Expression, ")")
	g.Define(ast.SizeofExpression, "sizeof", "(", ast.Type, ")")
	g.Define(ast.NameofExpression, "nameof", "(", ast.Expression, ")")
	g.Define(ast.StackallocExpression,
		"stackalloc", ast.Type,
		grammar.Opt("[", ast.Expression, "]"),
		grammar.Opt(ast.ArrayInitializer),
	)
}
