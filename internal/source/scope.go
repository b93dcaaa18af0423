package source

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLocked is the panic value (wrapped) for a write to a locked scope.
// Scopes are locked when the walk of their file completes.
var ErrLocked = errors.New("scope is locked")

// ScopeKind is the level of a scope in the aggregation tree
type ScopeKind int

const (
	ScopeFile ScopeKind = iota
	ScopeNamespace
	ScopeType
	ScopeMember
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeNamespace:
		return "namespace"
	case ScopeType:
		return "type"
	case ScopeMember:
		return "member"
	default:
		return "unknown"
	}
}

// CheckMessage is one violation reported by a check. Line 0 means the
// message concerns the whole file.
type CheckMessage struct {
	CheckID string
	Line    int
	Message string
}

func (m CheckMessage) String() string {
	if m.Line == 0 {
		return fmt.Sprintf("[%s] %s", m.CheckID, m.Message)
	}
	return fmt.Sprintf("%d: [%s] %s", m.Line, m.CheckID, m.Message)
}

// Scope aggregates metric counters and check messages for one file,
// namespace, type or member.
type Scope struct {
	Kind ScopeKind
	Name string
	Line int

	counters [metricCount]int
	messages []CheckMessage
	children []*Scope
	parent   *Scope
	locked   bool
}

// NewFileScope creates the root scope of a file
func NewFileScope(path string) *Scope {
	return &Scope{Kind: ScopeFile, Name: path, Line: 1}
}

// NewChild appends a child scope
func (s *Scope) NewChild(kind ScopeKind, name string, line int) *Scope {
	s.mustBeOpen("add a child to")
	child := &Scope{Kind: kind, Name: name, Line: line, parent: s}
	s.children = append(s.children, child)
	return child
}

func (s *Scope) mustBeOpen(op string) {
	if s.locked {
		panic(fmt.Errorf("%w: cannot %s %s %q", ErrLocked, op, s.Kind, s.Name))
	}
}

// Add increments metric m by n
func (s *Scope) Add(m Metric, n int) {
	s.mustBeOpen("update")
	s.counters[m] += n
}

// Get returns the scope's own value of m, excluding children
func (s *Scope) Get(m Metric) int {
	return s.counters[m]
}

// Total returns the value of m summed over the scope and its descendants
func (s *Scope) Total(m Metric) int {
	total := 0
	s.Walk(func(d *Scope) bool {
		total += d.counters[m]
		return true
	})
	return total
}

// Totals returns Total for every metric
func (s *Scope) Totals() map[Metric]int {
	out := make(map[Metric]int, metricCount)
	for _, m := range Metrics() {
		out[m] = s.Total(m)
	}
	return out
}

// AddMessage records a check message on the scope
func (s *Scope) AddMessage(msg CheckMessage) {
	s.mustBeOpen("add a message to")
	s.messages = append(s.messages, msg)
}

// Messages returns the scope's own messages in the order they were added
func (s *Scope) Messages() []CheckMessage {
	return s.messages
}

// AllMessages returns the messages of the scope and its descendants ordered
// by line. File-level messages (line 0) come first.
func (s *Scope) AllMessages() []CheckMessage {
	var out []CheckMessage
	s.Walk(func(d *Scope) bool {
		out = append(out, d.messages...)
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}

// Lock freezes the scope and all its descendants
func (s *Scope) Lock() {
	s.Walk(func(d *Scope) bool {
		d.locked = true
		return true
	})
}

func (s *Scope) Locked() bool {
	return s.locked
}

func (s *Scope) Children() []*Scope {
	return s.children
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Walk visits the scope and its descendants depth-first. Returning false
// from fn skips the children of the current scope.
func (s *Scope) Walk(fn func(*Scope) bool) {
	if !fn(s) {
		return
	}
	for _, c := range s.children {
		c.Walk(fn)
	}
}

// Path returns the names from the file scope down to s, e.g.
// ["Foo.cs", "App.Core", "Widget", "Render"]
func (s *Scope) Path() []string {
	var names []string
	for cur := s; cur != nil; cur = cur.parent {
		names = append([]string{cur.Name}, names...)
	}
	return names
}
