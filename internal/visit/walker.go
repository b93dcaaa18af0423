package visit

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pthm/csquid/internal/ast"
)

// Walker dispatches one depth-first traversal to a fixed set of visitors.
// A Walker holds no per-file state beyond its visitors, and is not safe for
// concurrent use because visitors are not.
type Walker struct {
	visitors []Visitor
	enter    [][]int
	leave    [][]int
	tokens   []int
	files    []int
}

// NewWalker builds the dispatch table for the visitors. Visitors observing
// the same node run in the order given here.
func NewWalker(visitors ...Visitor) *Walker {
	w := &Walker{
		visitors: visitors,
		enter:    make([][]int, ast.Count()),
		leave:    make([][]int, ast.Count()),
	}

	for i, v := range visitors {
		_, isNode := v.(NodeVisitor)
		_, isLeave := v.(LeaveVisitor)
		for _, t := range v.Subscribe() {
			if int(t) < 0 || int(t) >= len(w.enter) {
				continue
			}
			if isNode {
				w.enter[t] = append(w.enter[t], i)
			}
			if isLeave {
				w.leave[t] = append(w.leave[t], i)
			}
		}
		if _, ok := v.(TokenVisitor); ok {
			w.tokens = append(w.tokens, i)
		}
		if _, ok := v.(FileVisitor); ok {
			w.files = append(w.files, i)
		}
	}

	return w
}

// Visitors returns the registered visitors
func (w *Walker) Visitors() []Visitor {
	return w.visitors
}

// Walk traverses the tree rooted at root and locks the file scope when
// done. It returns one error per visitor that panicked.
func (w *Walker) Walk(ctx *Context, root *ast.Node) []VisitorError {
	wk := &walk{
		Walker:   w,
		ctx:      ctx,
		disabled: make([]bool, len(w.visitors)),
	}

	for _, i := range w.files {
		wk.call(i, root, func() { w.visitors[i].(FileVisitor).VisitFile(ctx, root) })
	}

	wk.node(root)

	for _, i := range w.files {
		wk.call(i, root, func() { w.visitors[i].(FileVisitor).LeaveFile(ctx, root) })
	}

	ctx.FileScope().Lock()
	return wk.errs
}

type walk struct {
	*Walker
	ctx      *Context
	disabled []bool
	errs     []VisitorError
}

func (wk *walk) node(n *ast.Node) {
	kind, opensScope := ScopeKindOf(n.Type)
	if opensScope {
		wk.ctx.push(kind, ScopeName(n), n.Line())
	}

	for _, i := range wk.enter[n.Type] {
		wk.call(i, n, func() { wk.visitors[i].(NodeVisitor).VisitNode(wk.ctx, n) })
	}

	if n.IsTerminal() {
		if tok := n.Token(); tok != nil {
			for _, i := range wk.tokens {
				wk.call(i, n, func() { wk.visitors[i].(TokenVisitor).VisitToken(wk.ctx, tok) })
			}
		}
	}

	for _, c := range n.Children() {
		wk.node(c)
	}

	for _, i := range wk.leave[n.Type] {
		wk.call(i, n, func() { wk.visitors[i].(LeaveVisitor).LeaveNode(wk.ctx, n) })
	}

	if opensScope {
		wk.ctx.pop()
	}
}

// call runs one visitor hook. A panic disables the visitor for the rest of
// the file and is recorded instead of propagated.
func (wk *walk) call(i int, n *ast.Node, fn func()) {
	if wk.disabled[i] {
		return
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		name := visitorName(wk.visitors[i])
		wk.disabled[i] = true
		wk.errs = append(wk.errs, VisitorError{Visitor: name, Line: n.Line(), Cause: cause})

		log.Error().
			Err(cause).
			Str("file", wk.ctx.Path).
			Str("visitor", name).
			Str("node", n.Name()).
			Int("line", n.Line()).
			Msg("Visitor failed, disabled for the rest of the file")
	}()
	fn()
}
