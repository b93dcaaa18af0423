package source

import (
	"errors"
	"testing"
)

func buildScopes() (*Scope, *Scope, *Scope) {
	file := NewFileScope("Widget.cs")
	ns := file.NewChild(ScopeNamespace, "App", 1)
	typ := ns.NewChild(ScopeType, "Widget", 3)
	m1 := typ.NewChild(ScopeMember, "Render", 5)
	m2 := typ.NewChild(ScopeMember, "Dispose", 12)

	file.Add(Lines, 20)
	file.Add(LinesOfCode, 15)
	typ.Add(Complexity, 1)
	m1.Add(Complexity, 4)
	m2.Add(Complexity, 2)

	m2.AddMessage(CheckMessage{CheckID: "b", Line: 12, Message: "second"})
	m1.AddMessage(CheckMessage{CheckID: "a", Line: 5, Message: "first"})
	file.AddMessage(CheckMessage{CheckID: "file-loc", Message: "file level"})
	return file, typ, m1
}

func TestScopeCounters(t *testing.T) {
	file, typ, m1 := buildScopes()

	tests := []struct {
		name  string
		scope *Scope
		get   int
		total int
	}{
		{"file", file, 0, 7},
		{"type", typ, 1, 7},
		{"member", m1, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Get(Complexity); got != tt.get {
				t.Errorf("Get(COMPLEXITY) = %d, want %d", got, tt.get)
			}
			if got := tt.scope.Total(Complexity); got != tt.total {
				t.Errorf("Total(COMPLEXITY) = %d, want %d", got, tt.total)
			}
		})
	}

	totals := file.Totals()
	if totals[Lines] != 20 || totals[LinesOfCode] != 15 {
		t.Errorf("Totals() = %v", totals)
	}
}

func TestScopeMessagesOrdered(t *testing.T) {
	file, _, m1 := buildScopes()

	all := file.AllMessages()
	want := []int{0, 5, 12}
	if len(all) != len(want) {
		t.Fatalf("AllMessages() = %v", all)
	}
	for i, line := range want {
		if all[i].Line != line {
			t.Errorf("AllMessages()[%d].Line = %d, want %d", i, all[i].Line, line)
		}
	}
	if got := len(m1.Messages()); got != 1 {
		t.Errorf("Messages() = %d, want 1", got)
	}
	if got, want := all[1].String(), "5: [a] first"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := all[0].String(), "[file-loc] file level"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScopeTree(t *testing.T) {
	file, typ, m1 := buildScopes()
	if m1.Parent() != typ {
		t.Error("member parent is not the type")
	}
	if got := len(typ.Children()); got != 2 {
		t.Errorf("type children = %d, want 2", got)
	}
	path := m1.Path()
	if len(path) != 4 || path[0] != "Widget.cs" || path[3] != "Render" {
		t.Errorf("Path() = %v", path)
	}

	var kinds []ScopeKind
	file.Walk(func(s *Scope) bool {
		kinds = append(kinds, s.Kind)
		return s.Kind != ScopeType
	})
	if len(kinds) != 3 || kinds[2] != ScopeType {
		t.Errorf("Walk() kinds = %v, want file, namespace, type", kinds)
	}
}

func TestScopeLock(t *testing.T) {
	file, typ, m1 := buildScopes()
	file.Lock()

	if !file.Locked() || !m1.Locked() {
		t.Fatal("Lock() did not lock descendants")
	}

	writes := map[string]func(){
		"Add":        func() { m1.Add(Complexity, 1) },
		"AddMessage": func() { typ.AddMessage(CheckMessage{CheckID: "x"}) },
		"NewChild":   func() { typ.NewChild(ScopeMember, "Late", 30) },
	}
	for name, write := range writes {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrLocked) {
					t.Errorf("%s after Lock() panicked with %v, want ErrLocked", name, r)
				}
			}()
			write()
		})
	}

	if got := m1.Get(Complexity); got != 4 {
		t.Errorf("Get(COMPLEXITY) after failed write = %d, want 4", got)
	}
}

func TestMetricNames(t *testing.T) {
	tests := []struct {
		m    Metric
		want string
	}{
		{Lines, "LINES"},
		{LinesOfCode, "LINES_OF_CODE"},
		{CommentedOutCodeLines, "COMMENTED_OUT_CODE_LINES"},
		{Namespaces, "NAMESPACES"},
		{Metric(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Metric(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
	for _, m := range Metrics() {
		if got, ok := ParseMetric(m.String()); !ok || got != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m, got, ok)
		}
	}
}

func TestIndexTwoPhase(t *testing.T) {
	b := NewIndexBuilder()

	a := NewFileScope("src/a/A.cs")
	a.Add(LinesOfCode, 10)
	a.Lock()
	c := NewFileScope("src/b/C.cs")
	c.Add(LinesOfCode, 5)
	c.Lock()

	if err := b.Add("src/b/C.cs", c); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := b.Add("src/a/A.cs", a); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := b.Add("src/a/A.cs", a); err == nil {
		t.Error("Add() of a duplicate path succeeded")
	}
	open := NewFileScope("open.cs")
	if err := b.Add("open.cs", open); err == nil {
		t.Error("Add() of an unlocked scope succeeded")
	}

	idx := b.Freeze()
	if !b.Frozen() {
		t.Error("Frozen() = false after Freeze()")
	}

	late := NewFileScope("late.cs")
	late.Lock()
	if err := b.Add("late.cs", late); !errors.Is(err, ErrFrozen) {
		t.Errorf("Add() after Freeze() error = %v, want ErrFrozen", err)
	}

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if paths := idx.Paths(); paths[0] != "src/a/A.cs" || paths[1] != "src/b/C.cs" {
		t.Errorf("Paths() = %v, want sorted", paths)
	}
	if got := idx.Total(LinesOfCode); got != 15 {
		t.Errorf("Total(LINES_OF_CODE) = %d, want 15", got)
	}
	if got := idx.DirTotals(LinesOfCode)["src/a"]; got != 10 {
		t.Errorf("DirTotals()[src/a] = %d, want 10", got)
	}
	if got := len(idx.Find("src/b/")); got != 1 {
		t.Errorf("Find(src/b/) = %d, want 1", got)
	}
	if _, ok := idx.File("late.cs"); ok {
		t.Error("File(late.cs) found a file added after freezing")
	}
}
