// Package xpath evaluates a subset of XPath 1.0 over the syntax tree.
//
// Element names are rule names (classDeclaration, ifStatement) and, for
// tokens, the upper-cased token kind (IDENTIFIER, KEYWORD). Supported: the
// child, descendant, descendant-or-self, self, parent, ancestor,
// ancestor-or-self, following-sibling and preceding-sibling axes with their
// abbreviations, predicates, unions, comparisons, and/or, and the
// attributes @tokenValue, @tokenLine, @tokenColumn and @name.
package xpath

import (
	"fmt"
	"strconv"
)

// SyntaxError reports an invalid query
type SyntaxError struct {
	Query   string
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid xpath %q at offset %d: %s", e.Query, e.Offset, e.Message)
}

type parser struct {
	query  string
	tokens []qtoken
	pos    int
}

func (p *parser) peek() qtoken {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) qtoken {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) next() qtoken {
	tok := p.tokens[p.pos]
	if tok.kind != tkEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(text string) bool {
	tok := p.peek()
	return tok.kind == tkOp && tok.text == text
}

func (p *parser) isWord(text string) bool {
	tok := p.peek()
	return tok.kind == tkName && tok.text == text
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Query: p.query, Offset: p.peek().pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(op string) error {
	if !p.isOp(op) {
		return p.errorf("expected %q", op)
	}
	p.next()
	return nil
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isWord("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{or: true, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.isWord("and") {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{left: left, right: right}
	}
	return left, nil
}

var comparisonOps = map[string]bool{"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	for tok := p.peek(); tok.kind == tkOp && comparisonOps[tok.text]; tok = p.peek() {
		p.next()
		right, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		left = &compareExpr{op: tok.text, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnion() (expr, error) {
	first, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if !p.isOp("|") {
		return first, nil
	}
	union := &unionExpr{parts: []expr{first}}
	for p.isOp("|") {
		p.next()
		part, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		union.parts = append(union.parts, part)
	}
	return union, nil
}

func (p *parser) canStartStep() bool {
	tok := p.peek()
	if tok.kind == tkName {
		return true
	}
	return tok.kind == tkOp && (tok.text == "*" || tok.text == "." || tok.text == ".." || tok.text == "@")
}

func (p *parser) isFunctionCall() bool {
	tok := p.peek()
	return tok.kind == tkName && tok.text != "node" &&
		p.peekAt(1).kind == tkOp && p.peekAt(1).text == "("
}

func (p *parser) parsePath() (expr, error) {
	path := &pathExpr{}

	switch {
	case p.isOp("/"):
		p.next()
		path.absolute = true
		if !p.canStartStep() {
			return path, nil
		}
	case p.isOp("//"):
		p.next()
		path.absolute = true
		path.steps = append(path.steps, descendantOrSelf())
	case p.peek().kind == tkString, p.peek().kind == tkNumber, p.isOp("("), p.isFunctionCall():
		primary, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if !p.isOp("/") && !p.isOp("//") {
			return primary, nil
		}
		path.filter = primary
		if p.next().text == "//" {
			path.steps = append(path.steps, descendantOrSelf())
		}
	}

	for {
		st, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		path.steps = append(path.steps, st)
		if st.attr != "" {
			break
		}
		if p.isOp("/") {
			p.next()
		} else if p.isOp("//") {
			p.next()
			path.steps = append(path.steps, descendantOrSelf())
		} else {
			break
		}
	}
	return path, nil
}

func descendantOrSelf() *step {
	return &step{axis: axisDescendantOrSelf, test: anyNode}
}

var axes = map[string]axis{
	"child":              axisChild,
	"descendant":         axisDescendant,
	"descendant-or-self": axisDescendantOrSelf,
	"self":               axisSelf,
	"parent":             axisParent,
	"ancestor":           axisAncestor,
	"ancestor-or-self":   axisAncestorOrSelf,
	"following-sibling":  axisFollowingSibling,
	"preceding-sibling":  axisPrecedingSibling,
}

var attributes = map[string]bool{"tokenValue": true, "tokenLine": true, "tokenColumn": true, "name": true}

func (p *parser) parseStep() (*step, error) {
	switch {
	case p.isOp("."):
		p.next()
		return &step{axis: axisSelf, test: anyNode}, nil
	case p.isOp(".."):
		p.next()
		return &step{axis: axisParent, test: anyNode}, nil
	case p.isOp("@"):
		p.next()
		tok := p.next()
		if tok.kind != tkName || !attributes[tok.text] {
			return nil, &SyntaxError{Query: p.query, Offset: tok.pos, Message: fmt.Sprintf("unknown attribute %q", tok.text)}
		}
		return &step{attr: tok.text}, nil
	}

	st := &step{axis: axisChild}
	if p.peek().kind == tkName && p.peekAt(1).kind == tkOp && p.peekAt(1).text == "::" {
		name := p.next()
		ax, ok := axes[name.text]
		if !ok {
			return nil, &SyntaxError{Query: p.query, Offset: name.pos, Message: fmt.Sprintf("unknown axis %q", name.text)}
		}
		st.axis = ax
		p.next()
	}

	switch tok := p.peek(); {
	case tok.kind == tkOp && tok.text == "*":
		p.next()
		st.test = anyNode
	case tok.kind == tkName && tok.text == "node" && p.peekAt(1).text == "(":
		p.next()
		p.next()
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		st.test = anyNode
	case tok.kind == tkName:
		p.next()
		st.test = tok.text
	default:
		return nil, p.errorf("expected a node test")
	}

	for p.isOp("[") {
		p.next()
		pred, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		st.predicates = append(st.predicates, pred)
	}
	return st, nil
}

func (p *parser) parsePrimary() (expr, error) {
	tok := p.next()
	switch {
	case tok.kind == tkString:
		return literalExpr{value: tok.text}, nil
	case tok.kind == tkNumber:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, &SyntaxError{Query: p.query, Offset: tok.pos, Message: "invalid number " + tok.text}
		}
		return literalExpr{value: f}, nil
	case tok.kind == tkOp && tok.text == "(":
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return inner, p.expect(")")
	}

	fn, ok := functions[tok.text]
	if !ok {
		return nil, &SyntaxError{Query: p.query, Offset: tok.pos, Message: fmt.Sprintf("unknown function %s()", tok.text)}
	}
	p.next()
	call := &callExpr{name: tok.text, fn: fn}
	for !p.isOp(")") {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
		if !p.isOp(",") {
			break
		}
		p.next()
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(call.args) < fn.minArgs || len(call.args) > fn.maxArgs {
		return nil, &SyntaxError{Query: p.query, Offset: tok.pos, Message: fmt.Sprintf("wrong number of arguments to %s()", tok.text)}
	}
	return call, nil
}
