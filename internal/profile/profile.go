// Package profile loads check profiles: named YAML documents listing the
// checks to run and their parameters. Built-in profiles are embedded; custom
// ones are read from disk. Every document is validated against a JSON
// Schema before it is decoded.
package profile

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/csquid/internal/rules"
)

// Default is the profile used when none is configured
const Default = "default"

//go:embed profiles/*.yaml
var profileFS embed.FS

// Profile is a named list of check entries
type Profile struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Checks      []Entry `yaml:"checks"`

	// Source is the file the profile was loaded from, or "builtin"
	Source string `yaml:"-"`
}

// Entry configures one check instance
type Entry struct {
	Check    string         `yaml:"check"`
	ID       string         `yaml:"id"`
	Enabled  *bool          `yaml:"enabled"`
	Severity string         `yaml:"severity"`
	Params   map[string]any `yaml:"params"`
}

// IsEnabled reports whether the entry is active. Entries are enabled
// unless they say otherwise.
func (e Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// Specs returns the enabled entries as check specs
func (p *Profile) Specs() []rules.Spec {
	var specs []rules.Spec
	for _, e := range p.Checks {
		if !e.IsEnabled() {
			continue
		}
		params := make(rules.Params, len(e.Params))
		for k, v := range e.Params {
			params[k] = fmt.Sprint(v)
		}
		specs = append(specs, rules.Spec{
			Check:    e.Check,
			ID:       e.ID,
			Severity: e.Severity,
			Params:   params,
		})
	}
	return specs
}

// Compile configures the profile's checks against the registry
func (p *Profile) Compile(reg *rules.Registry) (*rules.Suite, error) {
	suite, err := reg.Compile(p.Specs())
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return suite, nil
}

// Load returns a built-in profile by name, or reads a profile file when
// name looks like a path
func Load(name string) (*Profile, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") || strings.ContainsRune(name, os.PathSeparator) {
		return LoadFile(name)
	}
	data, err := profileFS.ReadFile(path.Join("profiles", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown profile: %s (available: %s)", name, strings.Join(Available(), ", "))
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin profile %s: %w", name, err)
	}
	p.Source = "builtin"
	return p, nil
}

// LoadFile loads a profile from a YAML file
func LoadFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", filename, err)
	}
	p.Source = filename
	return p, nil
}

// Parse validates and decodes a profile document
func Parse(data []byte) (*Profile, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Available returns the names of the built-in profiles
func Available() []string {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".yaml"); ok && !entry.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
