package xpath

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkName
	tkString
	tkNumber
	tkOp
)

type qtoken struct {
	kind tokenKind
	text string
	pos  int
}

var operators = []string{"//", "::", "..", "!=", "<=", ">=", "/", "[", "]", "(", ")", "@", ",", "|", "=", "<", ">", "*", "."}

func tokenize(query string) ([]qtoken, error) {
	var out []qtoken
	i := 0
	for i < len(query) {
		ch := rune(query[i])
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '\'' || ch == '"':
			end := strings.IndexRune(query[i+1:], ch)
			if end < 0 {
				return nil, &SyntaxError{Query: query, Offset: i, Message: "unterminated string literal"}
			}
			out = append(out, qtoken{kind: tkString, text: query[i+1 : i+1+end], pos: i})
			i += end + 2
		case ch >= '0' && ch <= '9':
			start := i
			for i < len(query) && (query[i] >= '0' && query[i] <= '9' || query[i] == '.') {
				i++
			}
			out = append(out, qtoken{kind: tkNumber, text: query[start:i], pos: start})
		case isNameStart(ch):
			start := i
			for i < len(query) && isNamePart(rune(query[i])) {
				i++
			}
			out = append(out, qtoken{kind: tkName, text: query[start:i], pos: start})
		default:
			op := ""
			for _, candidate := range operators {
				if strings.HasPrefix(query[i:], candidate) {
					op = candidate
					break
				}
			}
			if op == "" {
				return nil, &SyntaxError{Query: query, Offset: i, Message: fmt.Sprintf("unexpected character %q", ch)}
			}
			out = append(out, qtoken{kind: tkOp, text: op, pos: i})
			i += len(op)
		}
	}
	return append(out, qtoken{kind: tkEOF, pos: len(query)}), nil
}

func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isNamePart(ch rune) bool {
	return isNameStart(ch) || ch == '-' || unicode.IsDigit(ch)
}
