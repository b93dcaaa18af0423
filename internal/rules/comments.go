package rules

import (
	"regexp"
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/classifier"
	"github.com/pthm/csquid/internal/metrics"
	"github.com/pthm/csquid/internal/token"
	"github.com/pthm/csquid/internal/visit"
)

// CommentRegexCheck reports every comment line matching a regular
// expression, typically TODO or FIXME markers. Header comments are
// included.
type CommentRegexCheck struct {
	Pattern *regexp.Regexp
	Message string
}

func (c *CommentRegexCheck) Name() string {
	return "comment-regex"
}

func (c *CommentRegexCheck) Description() string {
	return "Comments matching a regular expression"
}

func (c *CommentRegexCheck) Config() CheckConfig {
	return CheckConfig{
		Severity: Major,
		Params: []Param{
			{Name: "regularExpression", Description: "Regular expression matched against each comment line", Required: true},
			{Name: "message", Description: "Message reported on matching lines", Default: "The regular expression matches this comment."},
		},
	}
}

func (c *CommentRegexCheck) Configure(params Params) error {
	re, err := params.Regexp(c, "regularExpression", false)
	if err != nil {
		return err
	}
	msg, err := params.String(c, "message", true)
	if err != nil {
		return err
	}
	c.Pattern, c.Message = re, msg
	return nil
}

func (c *CommentRegexCheck) NewVisitor(id string) visit.Visitor {
	return &commentRegexVisitor{checkVisitor: checkVisitor{id}, pattern: c.Pattern, message: c.Message}
}

type commentRegexVisitor struct {
	checkVisitor
	pattern *regexp.Regexp
	message string
}

func (v *commentRegexVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *commentRegexVisitor) VisitToken(ctx *visit.Context, tok *token.Token) {
	for _, tr := range tok.Comments() {
		for _, cl := range metrics.CommentLines(tr) {
			if v.pattern.MatchString(cl.Text) {
				ctx.Report(v.id, cl.Line, v.message)
			}
		}
	}
}

// CommentedOutCodeCheck reports comments that look like code, once per
// comment. Documentation comments and the file header are skipped.
type CommentedOutCodeCheck struct {
	Recognizer *classifier.CodeRecognizer
}

func (c *CommentedOutCodeCheck) Name() string {
	return "commented-out-code"
}

func (c *CommentedOutCodeCheck) Description() string {
	return "Sections of code should not be commented out"
}

func (c *CommentedOutCodeCheck) Config() CheckConfig {
	return CheckConfig{
		Severity:       Major,
		FileCategories: defaultCategories,
	}
}

func (c *CommentedOutCodeCheck) Configure(params Params) error {
	c.Recognizer = classifier.NewCSharpRecognizer()
	return nil
}

func (c *CommentedOutCodeCheck) NewVisitor(id string) visit.Visitor {
	recognizer := c.Recognizer
	if recognizer == nil {
		recognizer = classifier.NewCSharpRecognizer()
	}
	return &commentedCodeVisitor{checkVisitor: checkVisitor{id}, recognizer: recognizer}
}

type commentedCodeVisitor struct {
	checkVisitor
	recognizer *classifier.CodeRecognizer
}

func (v *commentedCodeVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *commentedCodeVisitor) VisitToken(ctx *visit.Context, tok *token.Token) {
	if metrics.IsHeader(tok) {
		return
	}
	for _, tr := range tok.Comments() {
		if isDocComment(tr.Text) {
			continue
		}
		for _, cl := range metrics.CommentLines(tr) {
			if cl.Text != "" && v.recognizer.IsLineOfCode(cl.Text) {
				ctx.Report(v.id, cl.Line, "Remove this commented out code.")
				break
			}
		}
	}
}

func isDocComment(text string) bool {
	return (strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")) ||
		(strings.HasPrefix(text, "/**") && text != "/**/")
}
