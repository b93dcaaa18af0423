package token

import (
	"fmt"
	"strings"
)

// Kind classifies a token
type Kind int

const (
	Identifier Kind = iota
	Keyword
	Punctuator
	Literal
	EOF
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Punctuator:
		return "punctuator"
	case Literal:
		return "literal"
	case EOF:
		return "eof"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// LiteralKind refines Literal tokens
type LiteralKind int

const (
	NotLiteral LiteralKind = iota
	IntegerLiteral
	RealLiteral
	CharacterLiteral
	StringLiteral
	VerbatimStringLiteral
	InterpolatedStringLiteral
)

func (l LiteralKind) String() string {
	switch l {
	case IntegerLiteral:
		return "integer"
	case RealLiteral:
		return "real"
	case CharacterLiteral:
		return "character"
	case StringLiteral:
		return "string"
	case VerbatimStringLiteral:
		return "verbatim-string"
	case InterpolatedStringLiteral:
		return "interpolated-string"
	default:
		return "none"
	}
}

// TriviaKind classifies non-code content attached to a token
type TriviaKind int

const (
	Comment TriviaKind = iota
	Whitespace
	Directive
	SkippedText
)

func (k TriviaKind) String() string {
	switch k {
	case Comment:
		return "comment"
	case Whitespace:
		return "whitespace"
	case Directive:
		return "directive"
	case SkippedText:
		return "skipped"
	default:
		return "invalid"
	}
}

// Trivia is comment, whitespace, directive or skipped text preceding a token.
type Trivia struct {
	Kind   TriviaKind
	Text   string
	Line   int
	Column int
}

// IsComment reports whether the trivia is a comment
func (t Trivia) IsComment() bool {
	return t.Kind == Comment
}

// EndLine returns the line on which the trivia text ends.
func (t Trivia) EndLine() int {
	return t.Line + strings.Count(t.Text, "\n")
}

// Token is a lexical unit of C# source. Line and Column are 1-based.
type Token struct {
	Kind    Kind
	Literal LiteralKind
	Text    string
	Line    int
	Column  int
	Trivia  []Trivia
}

// EndLine returns the line of the token's last character. Verbatim strings
// may span several lines.
func (t Token) EndLine() int {
	return t.Line + strings.Count(t.Text, "\n")
}

// HasComment reports whether any comment trivia precedes the token
func (t Token) HasComment() bool {
	for _, tr := range t.Trivia {
		if tr.Kind == Comment {
			return true
		}
	}
	return false
}

// Comments returns the comment trivia preceding the token
func (t Token) Comments() []Trivia {
	var out []Trivia
	for _, tr := range t.Trivia {
		if tr.Kind == Comment {
			out = append(out, tr)
		}
	}
	return out
}

// Is reports whether the token is one of the given punctuators or keywords.
func (t Token) Is(texts ...string) bool {
	if t.Kind != Punctuator && t.Kind != Keyword {
		return false
	}
	for _, s := range texts {
		if t.Text == s {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Text, t.Line, t.Column)
}

// Source reconstructs the text covered by tokens including all trivia.
func Source(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		for _, tr := range tok.Trivia {
			sb.WriteString(tr.Text)
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}
