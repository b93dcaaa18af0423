package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/visit"
)

// ErrUnknownCheck is wrapped by the ConfigError for an unregistered check
var ErrUnknownCheck = errors.New("unknown check")

// Registry holds the constructors of all known checks
type Registry struct {
	names  []string
	checks map[string]func() Check
}

// NewRegistry creates a new check registry
func NewRegistry() *Registry {
	return &Registry{
		checks: make(map[string]func() Check),
	}
}

// Register adds a check constructor to the registry
func (r *Registry) Register(newCheck func() Check) {
	name := newCheck().Name()
	if _, ok := r.checks[name]; !ok {
		r.names = append(r.names, name)
	}
	r.checks[name] = newCheck
}

// Get returns a new, unconfigured instance of the named check, or nil
func (r *Registry) Get(name string) Check {
	newCheck, ok := r.checks[name]
	if !ok {
		return nil
	}
	return newCheck()
}

// Checks returns an unconfigured instance of every check in registration
// order
func (r *Registry) Checks() []Check {
	out := make([]Check, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.checks[name]())
	}
	return out
}

// DefaultRegistry returns a registry with all built-in checks
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(func() Check { return &ParsingErrorCheck{} })

	// size and complexity
	r.Register(func() Check { return &FunctionComplexityCheck{} })
	r.Register(func() Check { return &ClassComplexityCheck{} })
	r.Register(func() Check { return &FileLOCCheck{} })
	r.Register(func() Check { return &LineLengthCheck{} })
	r.Register(func() Check { return &ParameterCountCheck{} })
	r.Register(func() Check { return &NestingDepthCheck{} })

	// templates, configured per profile entry
	r.Register(func() Check { return &CommentRegexCheck{} })
	r.Register(func() Check { return &XPathCheck{} })
	r.Register(func() Check { return &NamingCheck{} })

	// comments and documentation
	r.Register(func() Check { return &CommentedOutCodeCheck{} })
	r.Register(func() Check { return &UndocumentedAPICheck{} })

	return r
}

// Spec is one check entry of a profile
type Spec struct {
	// Check names the registered check
	Check string
	// ID identifies the configured instance in messages. Defaults to Check.
	ID string
	// Severity overrides the check's default severity when set
	Severity string
	Params   Params
}

// Active is a configured check instance
type Active struct {
	ID       string
	Check    Check
	Severity Severity
}

// Suite is the compiled, immutable set of active checks. It is shared by
// all workers; each worker asks it for its own visitors.
type Suite struct {
	active []Active
	byID   map[string]int
}

// Compile configures every spec. It fails on the first invalid entry, so
// configuration errors surface before any file is parsed.
func (r *Registry) Compile(specs []Spec) (*Suite, error) {
	s := &Suite{byID: make(map[string]int)}
	for _, spec := range specs {
		check := r.Get(spec.Check)
		if check == nil {
			return nil, &ConfigError{Check: spec.Check, Err: ErrUnknownCheck}
		}
		if err := spec.Params.checkUnknown(check); err != nil {
			return nil, err
		}
		if err := check.Configure(spec.Params); err != nil {
			return nil, err
		}

		id := spec.ID
		if id == "" {
			id = spec.Check
		}
		if _, dup := s.byID[id]; dup {
			return nil, &ConfigError{Check: spec.Check, Param: "id", Value: id, Err: fmt.Errorf("duplicate check id")}
		}

		sev := check.Config().Severity
		if spec.Severity != "" {
			parsed, ok := ParseSeverity(spec.Severity)
			if !ok {
				return nil, &ConfigError{Check: spec.Check, Param: "severity", Value: spec.Severity, Err: fmt.Errorf("unknown severity")}
			}
			sev = parsed
		}

		s.byID[id] = len(s.active)
		s.active = append(s.active, Active{ID: id, Check: check, Severity: sev})
	}
	return s, nil
}

// Checks returns the active checks in profile order
func (s *Suite) Checks() []Active {
	return s.active
}

// Lookup returns the active check with the given id
func (s *Suite) Lookup(id string) (Active, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Active{}, false
	}
	return s.active[i], true
}

// IDs returns the active check ids, sorted
func (s *Suite) IDs() []string {
	ids := make([]string, 0, len(s.active))
	for _, a := range s.active {
		ids = append(ids, a.ID)
	}
	sort.Strings(ids)
	return ids
}

// Visitors returns fresh visitors for the checks that apply to files of
// the given category
func (s *Suite) Visitors(cat parser.FileCategory) []visit.Visitor {
	var out []visit.Visitor
	for _, a := range s.active {
		if !a.Check.Config().AppliesTo(cat) {
			continue
		}
		if v := a.Check.NewVisitor(a.ID); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// ParsingErrorID returns the id parse failures are reported under, if the
// parsing-error check is active
func (s *Suite) ParsingErrorID() (string, bool) {
	for _, a := range s.active {
		if _, ok := a.Check.(*ParsingErrorCheck); ok {
			return a.ID, true
		}
	}
	return "", false
}
