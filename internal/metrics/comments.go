package metrics

import (
	"strings"

	"github.com/pthm/csquid/internal/ast"
	"github.com/pthm/csquid/internal/classifier"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/token"
	"github.com/pthm/csquid/internal/visit"
)

// CommentLine is one line of comment text with its delimiters stripped
type CommentLine struct {
	Line int
	Text string
}

// CommentLines strips the delimiters of a comment trivia and splits it into
// lines. A block comment's leading '*' margins are removed.
func CommentLines(tr token.Trivia) []CommentLine {
	text := tr.Text
	block := strings.HasPrefix(text, "/*")
	if block {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	} else {
		text = strings.TrimLeft(text, "/")
	}

	raw := strings.Split(text, "\n")
	out := make([]CommentLine, 0, len(raw))
	for i, line := range raw {
		line = strings.TrimSpace(line)
		if block {
			line = strings.TrimSpace(strings.TrimLeft(line, "*"))
		}
		out = append(out, CommentLine{Line: tr.Line + i, Text: line})
	}
	return out
}

// IsHeader reports whether tok is the first token of the file. Its
// leading comments form the file header.
func IsHeader(tok *token.Token) bool {
	line, col := tok.Line, tok.Column
	if len(tok.Trivia) > 0 {
		line, col = tok.Trivia[0].Line, tok.Trivia[0].Column
	}
	return line == 1 && col == 1
}

// CommentsVisitor classifies comment lines into COMMENT_LINES,
// COMMENT_BLANK_LINES and COMMENTED_OUT_CODE_LINES, and records the lines
// carrying the suppression tag
type CommentsVisitor struct {
	tag        string
	recognizer *classifier.CodeRecognizer
}

func NewCommentsVisitor(tag string, recognizer *classifier.CodeRecognizer) *CommentsVisitor {
	return &CommentsVisitor{tag: tag, recognizer: recognizer}
}

func (v *CommentsVisitor) Name() string {
	return "comments"
}

func (v *CommentsVisitor) Subscribe() []ast.RuleType {
	return nil
}

func (v *CommentsVisitor) VisitToken(ctx *visit.Context, tok *token.Token) {
	if IsHeader(tok) {
		return
	}
	scope := ctx.Scope()
	for _, tr := range tok.Comments() {
		for _, cl := range CommentLines(tr) {
			switch {
			case cl.Text == "":
				scope.Add(source.CommentBlankLines, 1)
			case v.recognizer.IsLineOfCode(cl.Text):
				scope.Add(source.CommentedOutCodeLines, 1)
			case strings.Contains(cl.Text, v.tag):
				ctx.Suppress(cl.Line)
			default:
				scope.Add(source.CommentLines, 1)
			}
		}
	}
}
