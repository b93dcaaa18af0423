package xpath

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pthm/csquid/internal/ast"
)

type axis int

const (
	axisChild axis = iota
	axisDescendant
	axisDescendantOrSelf
	axisSelf
	axisParent
	axisAncestor
	axisAncestorOrSelf
	axisFollowingSibling
	axisPrecedingSibling
)

const anyNode = "*"

// Values are nodeSet, stringSet (attribute values), string, float64 or bool
type (
	nodeSet   []*ast.Node
	stringSet []string
)

// evalContext is the focus of an evaluation. A nil node is the document,
// whose only child is the tree root.
type evalContext struct {
	node      *ast.Node
	pos, size int
}

type expr interface {
	eval(ev *evaluator, c evalContext) any
}

type evaluator struct {
	root  *ast.Node
	order map[*ast.Node]int
}

func newEvaluator(root *ast.Node) *evaluator {
	ev := &evaluator{root: root, order: make(map[*ast.Node]int)}
	i := 0
	root.Walk(func(n *ast.Node) bool {
		ev.order[n] = i
		i++
		return true
	})
	return ev
}

// documentOrder sorts nodes and drops duplicates and the document itself
func (ev *evaluator) documentOrder(nodes []*ast.Node) []*ast.Node {
	seen := make(map[*ast.Node]bool, len(nodes))
	out := make([]*ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return ev.order[out[i]] < ev.order[out[j]]
	})
	return out
}

type literalExpr struct {
	value any
}

func (e literalExpr) eval(ev *evaluator, c evalContext) any {
	return e.value
}

type logicalExpr struct {
	or          bool
	left, right expr
}

func (e *logicalExpr) eval(ev *evaluator, c evalContext) any {
	l := toBool(e.left.eval(ev, c))
	if e.or {
		return l || toBool(e.right.eval(ev, c))
	}
	return l && toBool(e.right.eval(ev, c))
}

type unionExpr struct {
	parts []expr
}

func (e *unionExpr) eval(ev *evaluator, c evalContext) any {
	var all []*ast.Node
	for _, part := range e.parts {
		if ns, ok := part.eval(ev, c).(nodeSet); ok {
			all = append(all, ns...)
		}
	}
	return nodeSet(ev.documentOrder(all))
}

type step struct {
	axis       axis
	test       string
	attr       string
	predicates []expr
}

type pathExpr struct {
	absolute bool
	filter   expr
	steps    []*step
}

func (e *pathExpr) eval(ev *evaluator, c evalContext) any {
	var current []*ast.Node
	switch {
	case e.filter != nil:
		ns, ok := e.filter.eval(ev, c).(nodeSet)
		if !ok {
			return nodeSet(nil)
		}
		current = ns
	case e.absolute && len(e.steps) == 0:
		return nodeSet{ev.root}
	case e.absolute:
		current = []*ast.Node{nil}
	default:
		current = []*ast.Node{c.node}
	}

	for _, st := range e.steps {
		if st.attr != "" {
			var values stringSet
			for _, n := range current {
				if n != nil {
					values = append(values, attribute(n, st.attr))
				}
			}
			return values
		}
		var next []*ast.Node
		for _, n := range current {
			next = append(next, st.apply(ev, n)...)
		}
		current = ev.documentOrder(next)
	}
	return nodeSet(current)
}

func attribute(n *ast.Node, name string) string {
	switch name {
	case "tokenValue":
		return n.TokenValue()
	case "tokenLine":
		return strconv.Itoa(n.Line())
	case "tokenColumn":
		if tok := n.Token(); tok != nil {
			return strconv.Itoa(tok.Column)
		}
		return "0"
	default:
		return n.Name()
	}
}

// apply selects the step's nodes from context n, in axis order, and
// filters them through the predicates
func (st *step) apply(ev *evaluator, n *ast.Node) []*ast.Node {
	var candidates []*ast.Node
	for _, m := range ev.axis(st.axis, n) {
		if m != nil && (st.test == anyNode || m.Name() == st.test) {
			candidates = append(candidates, m)
		}
	}

	for _, pred := range st.predicates {
		var kept []*ast.Node
		for i, m := range candidates {
			v := pred.eval(ev, evalContext{node: m, pos: i + 1, size: len(candidates)})
			if num, ok := v.(float64); ok {
				if num == float64(i+1) {
					kept = append(kept, m)
				}
				continue
			}
			if toBool(v) {
				kept = append(kept, m)
			}
		}
		candidates = kept
	}
	return candidates
}

func (ev *evaluator) axis(a axis, n *ast.Node) []*ast.Node {
	switch a {
	case axisChild:
		if n == nil {
			return []*ast.Node{ev.root}
		}
		return n.Children()
	case axisDescendant, axisDescendantOrSelf:
		var out []*ast.Node
		if a == axisDescendantOrSelf {
			out = append(out, n)
		}
		if n == nil {
			return append(out, subtree(ev.root)...)
		}
		for _, c := range n.Children() {
			out = append(out, subtree(c)...)
		}
		return out
	case axisSelf:
		return []*ast.Node{n}
	case axisParent:
		if n == nil {
			return nil
		}
		return []*ast.Node{n.Parent()}
	case axisAncestor, axisAncestorOrSelf:
		if n == nil {
			return nil
		}
		var out []*ast.Node
		if a == axisAncestorOrSelf {
			out = append(out, n)
		}
		for p := n.Parent(); p != nil; p = p.Parent() {
			out = append(out, p)
		}
		return out
	case axisFollowingSibling:
		var out []*ast.Node
		for s := siblingOf(n, 1); s != nil; s = s.NextSibling() {
			out = append(out, s)
		}
		return out
	case axisPrecedingSibling:
		var out []*ast.Node
		for s := siblingOf(n, -1); s != nil; s = s.PreviousSibling() {
			out = append(out, s)
		}
		return out
	}
	return nil
}

// subtree returns n and its descendants in document order
func subtree(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	n.Walk(func(d *ast.Node) bool {
		out = append(out, d)
		return true
	})
	return out
}

func siblingOf(n *ast.Node, dir int) *ast.Node {
	if n == nil {
		return nil
	}
	if dir > 0 {
		return n.NextSibling()
	}
	return n.PreviousSibling()
}

type compareExpr struct {
	op          string
	left, right expr
}

func (e *compareExpr) eval(ev *evaluator, c evalContext) any {
	return compare(e.op, e.left.eval(ev, c), e.right.eval(ev, c))
}

// compare follows XPath rules: a set compares true when any member does
func compare(op string, l, r any) bool {
	_, lb := l.(bool)
	_, rb := r.(bool)
	if (lb || rb) && (op == "=" || op == "!=") {
		return (toBool(l) == toBool(r)) == (op == "=")
	}

	if ls, ok := members(l); ok {
		for _, s := range ls {
			if compare(op, s, r) {
				return true
			}
		}
		return false
	}
	if rs, ok := members(r); ok {
		for _, s := range rs {
			if compare(op, l, s) {
				return true
			}
		}
		return false
	}

	switch op {
	case "=", "!=":
		var equal bool
		_, lf := l.(float64)
		_, rf := r.(float64)
		switch {
		case lf || rf:
			equal = toNumber(l) == toNumber(r)
		default:
			equal = toString(l) == toString(r)
		}
		return equal == (op == "=")
	case "<":
		return toNumber(l) < toNumber(r)
	case "<=":
		return toNumber(l) <= toNumber(r)
	case ">":
		return toNumber(l) > toNumber(r)
	case ">=":
		return toNumber(l) >= toNumber(r)
	}
	return false
}

// members expands a set into its string values
func members(v any) ([]string, bool) {
	switch s := v.(type) {
	case nodeSet:
		out := make([]string, len(s))
		for i, n := range s {
			out[i] = stringValue(n)
		}
		return out, true
	case stringSet:
		return s, true
	}
	return nil, false
}

func stringValue(n *ast.Node) string {
	if n.IsTerminal() {
		return n.TokenValue()
	}
	return n.Text()
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	case nodeSet:
		return len(x) > 0
	case stringSet:
		return len(x) > 0
	}
	return false
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nodeSet:
		if len(x) == 0 {
			return ""
		}
		return stringValue(x[0])
	case stringSet:
		if len(x) == 0 {
			return ""
		}
		return x[0]
	}
	return ""
}

func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(toString(v)), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

type function struct {
	minArgs, maxArgs int
	call             func(c evalContext, args []any) any
}

var functions = map[string]function{
	"count": {1, 1, func(c evalContext, args []any) any {
		if s, ok := members(args[0]); ok {
			return float64(len(s))
		}
		return float64(0)
	}},
	"not": {1, 1, func(c evalContext, args []any) any {
		return !toBool(args[0])
	}},
	"boolean": {1, 1, func(c evalContext, args []any) any {
		return toBool(args[0])
	}},
	"string": {1, 1, func(c evalContext, args []any) any {
		return toString(args[0])
	}},
	"number": {1, 1, func(c evalContext, args []any) any {
		return toNumber(args[0])
	}},
	"true": {0, 0, func(c evalContext, args []any) any {
		return true
	}},
	"false": {0, 0, func(c evalContext, args []any) any {
		return false
	}},
	"contains": {2, 2, func(c evalContext, args []any) any {
		return strings.Contains(toString(args[0]), toString(args[1]))
	}},
	"starts-with": {2, 2, func(c evalContext, args []any) any {
		return strings.HasPrefix(toString(args[0]), toString(args[1]))
	}},
	"ends-with": {2, 2, func(c evalContext, args []any) any {
		return strings.HasSuffix(toString(args[0]), toString(args[1]))
	}},
	"string-length": {1, 1, func(c evalContext, args []any) any {
		return float64(len([]rune(toString(args[0]))))
	}},
	"position": {0, 0, func(c evalContext, args []any) any {
		return float64(c.pos)
	}},
	"last": {0, 0, func(c evalContext, args []any) any {
		return float64(c.size)
	}},
	"name": {0, 0, func(c evalContext, args []any) any {
		if c.node == nil {
			return ""
		}
		return c.node.Name()
	}},
}

type callExpr struct {
	name string
	fn   function
	args []expr
}

func (e *callExpr) eval(ev *evaluator, c evalContext) any {
	args := make([]any, len(e.args))
	for i, a := range e.args {
		args[i] = a.eval(ev, c)
	}
	return e.fn.call(c, args)
}
