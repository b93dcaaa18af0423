package preprocessor

import (
	"fmt"
	"unicode"
)

// exprParser evaluates #if/#elif conditions:
//
//	or    := and ('||' and)*
//	and   := eq ('&&' eq)*
//	eq    := unary (('==' | '!=') unary)*
//	unary := '!' unary | 'true' | 'false' | symbol | '(' or ')'
type exprParser struct {
	toks    []string
	pos     int
	symbols map[string]bool
}

func (p *Preprocessor) eval(expr string, line int) (bool, error) {
	toks, err := splitExpr(expr)
	if err != nil {
		return false, &Error{Line: line, Message: err.Error()}
	}
	if len(toks) == 0 {
		return false, &Error{Line: line, Message: "expression expected"}
	}

	ep := &exprParser{toks: toks, symbols: p.symbols}
	v, err := ep.or()
	if err == nil && ep.pos < len(ep.toks) {
		err = fmt.Errorf("unexpected %q in expression", ep.toks[ep.pos])
	}
	if err != nil {
		return false, &Error{Line: line, Message: err.Error()}
	}
	return v, nil
}

func (ep *exprParser) peek() string {
	if ep.pos < len(ep.toks) {
		return ep.toks[ep.pos]
	}
	return ""
}

func (ep *exprParser) or() (bool, error) {
	v, err := ep.and()
	if err != nil {
		return false, err
	}
	for ep.peek() == "||" {
		ep.pos++
		r, err := ep.and()
		if err != nil {
			return false, err
		}
		v = v || r
	}
	return v, nil
}

func (ep *exprParser) and() (bool, error) {
	v, err := ep.eq()
	if err != nil {
		return false, err
	}
	for ep.peek() == "&&" {
		ep.pos++
		r, err := ep.eq()
		if err != nil {
			return false, err
		}
		v = v && r
	}
	return v, nil
}

func (ep *exprParser) eq() (bool, error) {
	v, err := ep.unary()
	if err != nil {
		return false, err
	}
	for ep.peek() == "==" || ep.peek() == "!=" {
		op := ep.peek()
		ep.pos++
		r, err := ep.unary()
		if err != nil {
			return false, err
		}
		if op == "==" {
			v = v == r
		} else {
			v = v != r
		}
	}
	return v, nil
}

func (ep *exprParser) unary() (bool, error) {
	tok := ep.peek()
	switch {
	case tok == "":
		return false, fmt.Errorf("unexpected end of expression")
	case tok == "!":
		ep.pos++
		v, err := ep.unary()
		return !v, err
	case tok == "(":
		ep.pos++
		v, err := ep.or()
		if err != nil {
			return false, err
		}
		if ep.peek() != ")" {
			return false, fmt.Errorf("')' expected")
		}
		ep.pos++
		return v, nil
	case tok == "true":
		ep.pos++
		return true, nil
	case tok == "false":
		ep.pos++
		return false, nil
	case isSymbol(tok):
		ep.pos++
		return ep.symbols[tok], nil
	default:
		return false, fmt.Errorf("unexpected %q in expression", tok)
	}
}

func splitExpr(s string) ([]string, error) {
	var toks []string
	rs := []rune(s)
	for i := 0; i < len(rs); {
		ch := rs[i]
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '(' || ch == ')':
			toks = append(toks, string(ch))
			i++
		case ch == '!':
			if i+1 < len(rs) && rs[i+1] == '=' {
				toks = append(toks, "!=")
				i += 2
			} else {
				toks = append(toks, "!")
				i++
			}
		case ch == '=' || ch == '&' || ch == '|':
			if i+1 >= len(rs) || rs[i+1] != ch {
				return nil, fmt.Errorf("invalid operator %q in expression", string(ch))
			}
			toks = append(toks, string([]rune{ch, ch}))
			i += 2
		case ch == '_' || unicode.IsLetter(ch):
			j := i
			for j < len(rs) && (rs[j] == '_' || unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		default:
			return nil, fmt.Errorf("invalid character %q in expression", string(ch))
		}
	}
	return toks, nil
}

func isSymbol(s string) bool {
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return s != ""
}
