// Package rules holds the quality checks. A check is configured once from
// its parameters and then hands out visitors with fresh per-file state, so
// any number of files can be analyzed concurrently.
package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/visit"
)

// Severity represents the severity level of a check's messages
type Severity int

const (
	Info Severity = iota
	Minor
	Major
	Critical
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Minor:
		return "minor"
	case Major:
		return "major"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity is the inverse of Severity.String
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range []Severity{Info, Minor, Major, Critical} {
		if sev.String() == s {
			return sev, true
		}
	}
	return Info, false
}

// Param describes one configurable parameter of a check
type Param struct {
	Name        string
	Description string
	// Default is used when the profile leaves the parameter out. An empty
	// default on a Required parameter means it must be set.
	Default  string
	Required bool
}

// CheckConfig defines how a check should be invoked
type CheckConfig struct {
	Severity Severity

	// FileCategories specifies which file types this check applies to.
	// Empty slice means all file types.
	FileCategories []parser.FileCategory

	Params []Param
}

// AppliesTo reports whether the check runs on files of the category
func (c CheckConfig) AppliesTo(cat parser.FileCategory) bool {
	if len(c.FileCategories) == 0 {
		return true
	}
	for _, fc := range c.FileCategories {
		if fc == cat {
			return true
		}
	}
	return false
}

// Check defines the interface for quality checks
type Check interface {
	// Name returns the unique identifier of the check kind
	Name() string

	// Description returns a human-readable description
	Description() string

	// Config returns the check's configuration
	Config() CheckConfig

	// Configure validates params and applies them. It is called once,
	// before any file is analyzed, and returns a *ConfigError on bad input.
	Configure(params Params) error

	// NewVisitor returns a visitor with fresh per-file state reporting
	// under id. Checks that are not driven by the tree walk return nil.
	NewVisitor(id string) visit.Visitor
}

// ConfigError reports an invalid check configuration
type ConfigError struct {
	Check string
	Param string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("check %q: %v", e.Check, e.Err)
	}
	return fmt.Sprintf("check %q: parameter %s=%q: %v", e.Check, e.Param, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Params holds the raw parameter values of one configured check
type Params map[string]string

// value returns the configured value or the parameter's default
func (p Params) value(check Check, name string) (string, bool) {
	if v, ok := p[name]; ok {
		return v, true
	}
	for _, param := range check.Config().Params {
		if param.Name == name {
			return param.Default, param.Default != ""
		}
	}
	return "", false
}

// Int returns a positive integer parameter
func (p Params) Int(check Check, name string) (int, error) {
	raw, _ := p.value(check, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigError{Check: check.Name(), Param: name, Value: raw, Err: fmt.Errorf("not a number")}
	}
	if n <= 0 {
		return 0, &ConfigError{Check: check.Name(), Param: name, Value: raw, Err: fmt.Errorf("must be positive")}
	}
	return n, nil
}

// String returns a parameter, failing when a required one is empty
func (p Params) String(check Check, name string, required bool) (string, error) {
	v, ok := p.value(check, name)
	if required && (!ok || v == "") {
		return "", &ConfigError{Check: check.Name(), Param: name, Err: fmt.Errorf("required")}
	}
	return v, nil
}

// Regexp compiles a required regular expression parameter. Whole reports
// whether the expression must match the entire input.
func (p Params) Regexp(check Check, name string, whole bool) (*regexp.Regexp, error) {
	raw, err := p.String(check, name, true)
	if err != nil {
		return nil, err
	}
	expr := raw
	if whole {
		expr = `^(?:` + raw + `)$`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		// report the original expression, not the anchored one
		if _, rawErr := regexp.Compile(raw); rawErr != nil {
			err = rawErr
		}
		return nil, &ConfigError{Check: check.Name(), Param: name, Value: raw, Err: err}
	}
	return re, nil
}

// checkUnknown rejects parameters the check does not declare
func (p Params) checkUnknown(check Check) error {
	declared := make(map[string]bool)
	for _, param := range check.Config().Params {
		declared[param.Name] = true
	}
	for name, v := range p {
		if !declared[name] {
			return &ConfigError{Check: check.Name(), Param: name, Value: v, Err: fmt.Errorf("unknown parameter")}
		}
	}
	return nil
}

// defaultCategories is where most checks run: generated code is skipped
var defaultCategories = []parser.FileCategory{
	parser.FileCategorySource,
	parser.FileCategoryTest,
}
