// Package preprocessor evaluates C# conditional compilation. Tokens in
// inactive regions are folded into skipped-text trivia of the next active
// token, so the output stream still reproduces the source text.
package preprocessor

import (
	"fmt"
	"strings"

	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/token"
)

// Error reports a malformed or unbalanced directive
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// State is the state of one conditional group
type State int

const (
	Active State = iota
	InactiveNotYetTaken
	InactiveAlreadyTaken
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case InactiveNotYetTaken:
		return "inactive-not-yet-taken"
	case InactiveAlreadyTaken:
		return "inactive-already-taken"
	default:
		return "unknown"
	}
}

type frame struct {
	state   State
	sawElse bool
	line    int
}

// Preprocessor holds the conditional stack and the symbol environment
type Preprocessor struct {
	symbols map[string]bool
	stack   []frame
}

// New creates a preprocessor with the given symbols defined
func New(defines []string) *Preprocessor {
	p := &Preprocessor{symbols: make(map[string]bool)}
	for _, d := range defines {
		if d = strings.TrimSpace(d); d != "" {
			p.symbols[d] = true
		}
	}
	return p
}

// Process filters tokens with a fresh preprocessor
func Process(tokens []token.Token, defines []string) ([]token.Token, error) {
	return New(defines).Process(tokens)
}

// Lex tokenizes src and filters it with a fresh preprocessor
func Lex(src string, defines []string) ([]token.Token, error) {
	return New(defines).Lex(src)
}

// Lex tokenizes src without tokenizing inactive regions, then filters the
// result. The lexer follows a copy of the conditional state; the filtering
// pass replays the same directives and reports their errors.
func (p *Preprocessor) Lex(src string) ([]token.Token, error) {
	shadow := p.clone()
	tokens := lexer.LexConditional(src, func(tr token.Trivia) bool {
		if _, err := shadow.directive(tr); err != nil {
			return true
		}
		return shadow.active()
	})
	return p.Process(tokens)
}

func (p *Preprocessor) clone() *Preprocessor {
	c := &Preprocessor{
		symbols: make(map[string]bool, len(p.symbols)),
		stack:   append([]frame(nil), p.stack...),
	}
	for s := range p.symbols {
		c.symbols[s] = true
	}
	return c
}

// Defined reports whether a symbol is currently defined
func (p *Preprocessor) Defined(symbol string) bool {
	return p.symbols[symbol]
}

// Depth returns the number of open conditional groups
func (p *Preprocessor) Depth() int {
	return len(p.stack)
}

func (p *Preprocessor) active() bool {
	return len(p.stack) == 0 || p.stack[len(p.stack)-1].state == Active
}

// Process consumes the raw token stream and returns the active tokens.
func (p *Preprocessor) Process(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	var pending []token.Trivia

	for _, tok := range tokens {
		for _, tr := range tok.Trivia {
			if tr.Kind != token.Directive {
				if !p.active() && tr.Kind == token.Comment {
					tr.Kind = token.SkippedText
				}
				pending = append(pending, tr)
				continue
			}
			keep, err := p.directive(tr)
			if err != nil {
				return nil, err
			}
			if !keep {
				tr.Kind = token.SkippedText
			}
			pending = append(pending, tr)
		}

		if tok.Kind == token.EOF {
			if len(p.stack) > 0 {
				top := p.stack[len(p.stack)-1]
				return nil, &Error{Line: top.line, Message: "#endif directive expected"}
			}
			tok.Trivia = pending
			out = append(out, tok)
			break
		}

		if p.active() {
			tok.Trivia = pending
			pending = nil
			out = append(out, tok)
			continue
		}
		pending = append(pending, token.Trivia{
			Kind:   token.SkippedText,
			Text:   tok.Text,
			Line:   tok.Line,
			Column: tok.Column,
		})
	}

	return out, nil
}

// directive applies one directive line. It reports whether the line stays a
// directive; lines inside inactive regions that do not affect the
// conditional stack become skipped text.
func (p *Preprocessor) directive(tr token.Trivia) (bool, error) {
	name, rest := splitDirective(tr.Text)

	switch name {
	case "if":
		if !p.active() {
			p.stack = append(p.stack, frame{state: InactiveAlreadyTaken, line: tr.Line})
			return true, nil
		}
		ok, err := p.eval(rest, tr.Line)
		if err != nil {
			return false, err
		}
		state := InactiveNotYetTaken
		if ok {
			state = Active
		}
		p.stack = append(p.stack, frame{state: state, line: tr.Line})
		return true, nil

	case "elif":
		top, err := p.top("#elif", tr.Line)
		if err != nil {
			return false, err
		}
		if top.sawElse {
			return false, &Error{Line: tr.Line, Message: "#elif after #else"}
		}
		switch top.state {
		case Active:
			top.state = InactiveAlreadyTaken
		case InactiveNotYetTaken:
			ok, err := p.eval(rest, tr.Line)
			if err != nil {
				return false, err
			}
			if ok {
				top.state = Active
			}
		}
		return true, nil

	case "else":
		top, err := p.top("#else", tr.Line)
		if err != nil {
			return false, err
		}
		if top.sawElse {
			return false, &Error{Line: tr.Line, Message: "duplicate #else"}
		}
		top.sawElse = true
		switch top.state {
		case Active:
			top.state = InactiveAlreadyTaken
		case InactiveNotYetTaken:
			top.state = Active
		}
		return true, nil

	case "endif":
		if _, err := p.top("#endif", tr.Line); err != nil {
			return false, err
		}
		p.stack = p.stack[:len(p.stack)-1]
		return true, nil
	}

	if !p.active() {
		return false, nil
	}

	switch name {
	case "define", "undef":
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return false, &Error{Line: tr.Line, Message: fmt.Sprintf("#%s requires a symbol", name)}
		}
		if name == "define" {
			p.symbols[fields[0]] = true
		} else {
			delete(p.symbols, fields[0])
		}
	}
	return true, nil
}

func (p *Preprocessor) top(directive string, line int) (*frame, error) {
	if len(p.stack) == 0 {
		return nil, &Error{Line: line, Message: fmt.Sprintf("unexpected %s", directive)}
	}
	return &p.stack[len(p.stack)-1], nil
}

// splitDirective returns the directive name and its argument text with any
// trailing single-line comment removed.
func splitDirective(text string) (string, string) {
	s := strings.TrimLeft(strings.TrimPrefix(text, "#"), " \t")
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z') {
		i++
	}
	name, rest := s[:i], s[i:]
	if idx := strings.Index(rest, "//"); idx >= 0 {
		rest = rest[:idx]
	}
	return name, strings.TrimSpace(rest)
}
