package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrFrozen is returned by IndexBuilder.Add once the index has been frozen
var ErrFrozen = errors.New("index is frozen")

// IndexBuilder collects file scopes for a project. It is filled by a single
// writer and then frozen into a read-only Index.
type IndexBuilder struct {
	files  map[string]*Scope
	frozen bool
}

// NewIndexBuilder creates an empty builder
func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{files: make(map[string]*Scope)}
}

// Add registers the scope of a file. The scope must be a locked file scope.
func (b *IndexBuilder) Add(path string, scope *Scope) error {
	if b.frozen {
		return fmt.Errorf("add %s: %w", path, ErrFrozen)
	}
	if scope == nil || scope.Kind != ScopeFile {
		return fmt.Errorf("add %s: not a file scope", path)
	}
	if !scope.Locked() {
		return fmt.Errorf("add %s: scope is still open", path)
	}
	if _, exists := b.files[path]; exists {
		return fmt.Errorf("add %s: duplicate file", path)
	}
	b.files[path] = scope
	return nil
}

// Frozen reports whether Freeze has been called
func (b *IndexBuilder) Frozen() bool {
	return b.frozen
}

// Freeze ends the write phase and returns the read-only index. Any later
// Add fails with ErrFrozen.
func (b *IndexBuilder) Freeze() *Index {
	b.frozen = true

	paths := make([]string, 0, len(b.files))
	files := make(map[string]*Scope, len(b.files))
	for p, s := range b.files {
		paths = append(paths, p)
		files[p] = s
	}
	sort.Strings(paths)
	return &Index{files: files, paths: paths}
}

// Index is the frozen set of file scopes of a project
type Index struct {
	files map[string]*Scope
	paths []string
}

// File returns the scope of the file at path
func (i *Index) File(path string) (*Scope, bool) {
	s, ok := i.files[path]
	return s, ok
}

// Paths returns the indexed file paths in lexical order
func (i *Index) Paths() []string {
	return i.paths
}

func (i *Index) Len() int {
	return len(i.paths)
}

// Total sums metric m over every file
func (i *Index) Total(m Metric) int {
	total := 0
	for _, p := range i.paths {
		total += i.files[p].Total(m)
	}
	return total
}

// DirTotals sums metric m per directory, keyed by the slash-separated
// directory of each file
func (i *Index) DirTotals(m Metric) map[string]int {
	out := make(map[string]int)
	for _, p := range i.paths {
		dir := filepath.ToSlash(filepath.Dir(p))
		out[dir] += i.files[p].Total(m)
	}
	return out
}

// Find returns the scopes of every file whose path has the given prefix
func (i *Index) Find(prefix string) []*Scope {
	var out []*Scope
	for _, p := range i.paths {
		if strings.HasPrefix(p, prefix) {
			out = append(out, i.files[p])
		}
	}
	return out
}
