// Package metrics holds the visitors that compute source.Metric values.
// Each visitor adds to the scope current at the node or token it observes,
// so file totals are the sum over the scope tree.
package metrics

import (
	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/classifier"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/visit"
)

// DefaultSuppressionTag marks comment lines whose violations are suppressed
const DefaultSuppressionTag = "NOSONAR"

// Options configures the metric visitors
type Options struct {
	// SuppressionTag overrides DefaultSuppressionTag
	SuppressionTag string
	// Recognizer overrides the C# commented-out code recognizer
	Recognizer *classifier.CodeRecognizer
}

func (o Options) suppressionTag() string {
	if o.SuppressionTag == "" {
		return DefaultSuppressionTag
	}
	return o.SuppressionTag
}

func (o Options) recognizer() *classifier.CodeRecognizer {
	if o.Recognizer == nil {
		return classifier.NewCSharpRecognizer()
	}
	return o.Recognizer
}

// Defaults returns a fresh instance of every metric visitor. Visitors keep
// per-file state, so each walker needs its own set.
func Defaults(opts Options) []visit.Visitor {
	return []visit.Visitor{
		NewLinesVisitor(),
		NewCommentsVisitor(opts.suppressionTag(), opts.recognizer()),
		NewComplexityVisitor(),
		NewCounter("statements", source.Statements, StatementTypes...),
		NewCounter("accessors", source.Accessors, AccessorTypes...),
		NewCounter("classes", source.Classes, TypeDeclarationTypes...),
		NewCounter("methods", source.Methods, MethodTypes...),
		NewCounter("namespaces", source.Namespaces, ast.NamespaceDeclaration),
		NewPublicAPIVisitor(),
	}
}

var (
	// StatementTypes are the nodes counted as STATEMENTS
	StatementTypes = []ast.RuleType{
		ast.LabeledStatement, ast.DeclarationStatement, ast.EmptyStatement,
		ast.ExpressionStatement, ast.IfStatement, ast.SwitchStatement,
		ast.WhileStatement, ast.DoStatement, ast.ForStatement,
		ast.ForeachStatement, ast.BreakStatement, ast.ContinueStatement,
		ast.GotoStatement, ast.ReturnStatement, ast.ThrowStatement,
		ast.TryStatement, ast.CheckedStatement, ast.UncheckedStatement,
		ast.LockStatement, ast.UsingStatement, ast.YieldStatement,
		ast.UnsafeStatement, ast.FixedStatement,
	}

	AccessorTypes = []ast.RuleType{
		ast.GetAccessorDeclaration, ast.SetAccessorDeclaration,
		ast.AddAccessorDeclaration, ast.RemoveAccessorDeclaration,
	}

	TypeDeclarationTypes = []ast.RuleType{
		ast.ClassDeclaration, ast.StructDeclaration, ast.RecordDeclaration,
		ast.InterfaceDeclaration, ast.EnumDeclaration, ast.DelegateDeclaration,
	}

	MethodTypes = []ast.RuleType{
		ast.MethodDeclaration, ast.ConstructorDeclaration,
		ast.StaticConstructorDeclaration, ast.DestructorDeclaration,
		ast.OperatorDeclaration, ast.InterfaceMethodDeclaration,
	}
)

// Counter adds one to a metric for every node of its rule types
type Counter struct {
	name   string
	metric source.Metric
	types  []ast.RuleType
}

// NewCounter creates a counter visitor
func NewCounter(name string, metric source.Metric, types ...ast.RuleType) *Counter {
	return &Counter{name: name, metric: metric, types: types}
}

func (c *Counter) Name() string {
	return c.name
}

func (c *Counter) Subscribe() []ast.RuleType {
	return c.types
}

func (c *Counter) VisitNode(ctx *visit.Context, n *ast.Node) {
	ctx.Scope().Add(c.metric, 1)
}
