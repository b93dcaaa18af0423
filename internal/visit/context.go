package visit

import (
	"sort"

	"github.com/pthm/csquid/internal/source"
)

// Context is the per-file state shared by the visitors of one walk
type Context struct {
	Path  string
	Lines []string

	file       *source.Scope
	stack      []*source.Scope
	suppressed map[int]bool
}

// NewContext creates the context for one file. The file scope is open
// until the walk completes.
func NewContext(path string, lines []string) *Context {
	file := source.NewFileScope(path)
	return &Context{
		Path:       path,
		Lines:      lines,
		file:       file,
		stack:      []*source.Scope{file},
		suppressed: make(map[int]bool),
	}
}

// Scope returns the innermost scope enclosing the current node
func (c *Context) Scope() *source.Scope {
	return c.stack[len(c.stack)-1]
}

func (c *Context) FileScope() *source.Scope {
	return c.file
}

// Report records a check message on the current scope. Line 0 reports on
// the whole file.
func (c *Context) Report(check string, line int, msg string) {
	scope := c.Scope()
	if line == 0 {
		scope = c.file
	}
	scope.AddMessage(source.CheckMessage{CheckID: check, Line: line, Message: msg})
}

// Suppress marks a line as carrying the suppression tag
func (c *Context) Suppress(line int) {
	c.suppressed[line] = true
}

// Suppressed returns the suppressed lines in ascending order
func (c *Context) Suppressed() []int {
	lines := make([]int, 0, len(c.suppressed))
	for l := range c.suppressed {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Line returns the text of 1-based line n, or "" when out of range
func (c *Context) Line(n int) string {
	if n < 1 || n > len(c.Lines) {
		return ""
	}
	return c.Lines[n-1]
}

func (c *Context) push(kind source.ScopeKind, name string, line int) {
	c.stack = append(c.stack, c.Scope().NewChild(kind, name, line))
}

func (c *Context) pop() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}
