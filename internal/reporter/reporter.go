// Package reporter renders the result of a project run for people and
// tools: terminal, JSON, Markdown and HTML.
package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/ui"
)

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the results of a project run
	Report(res *analyzer.Result) error
}

// Options controls what every reporter includes
type Options struct {
	// Suite resolves check ids to severities; nil reports everything as info
	Suite *rules.Suite
	// ShowSuppressed includes messages on lines carrying the suppression tag
	ShowSuppressed bool
	// Root is stripped from file paths when set
	Root string
}

// Issue is a check message resolved against its file and check
type Issue struct {
	File       string
	Line       int
	CheckID    string
	Severity   rules.Severity
	Message    string
	Suppressed bool
}

// Issues flattens the messages of every file in path then line order
func Issues(res *analyzer.Result, opts Options) []Issue {
	var out []Issue
	for _, f := range res.Files {
		for _, m := range f.Messages(opts.ShowSuppressed) {
			out = append(out, Issue{
				File:       displayPath(opts.Root, f.Path),
				Line:       m.Line,
				CheckID:    m.CheckID,
				Severity:   severityOf(opts.Suite, m.CheckID),
				Message:    m.Message,
				Suppressed: f.IsSuppressed(m),
			})
		}
	}
	return out
}

func displayPath(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

func severityOf(suite *rules.Suite, id string) rules.Severity {
	if suite == nil {
		return rules.Info
	}
	if a, ok := suite.Lookup(id); ok {
		return a.Severity
	}
	return rules.Info
}

// Exceeds reports whether any unsuppressed issue is at least as severe as
// threshold
func Exceeds(issues []Issue, threshold rules.Severity) bool {
	for _, is := range issues {
		if !is.Suppressed && is.Severity >= threshold {
			return true
		}
	}
	return false
}

// SeverityCounts counts unsuppressed issues per severity
func SeverityCounts(issues []Issue) map[rules.Severity]int {
	out := make(map[rules.Severity]int)
	for _, is := range issues {
		if !is.Suppressed {
			out[is.Severity]++
		}
	}
	return out
}

// groupByFile returns the issues per file and the files in order
func groupByFile(issues []Issue) ([]string, map[string][]Issue) {
	byFile := make(map[string][]Issue)
	for _, is := range issues {
		byFile[is.File] = append(byFile[is.File], is)
	}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, byFile
}

// New returns the reporter for a format name
func New(format string, w io.Writer, u *ui.UI, opts Options) (Reporter, error) {
	switch format {
	case "", "terminal":
		return NewTerminalReporter(w, u, opts), nil
	case "json":
		return NewJSONReporter(w, opts), nil
	case "markdown":
		return NewMarkdownReporter(w, opts), nil
	case "html":
		return NewHTMLReporter(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want terminal, json, markdown or html)", format)
	}
}

// Formats lists the accepted format names
func Formats() []string {
	return []string{"terminal", "json", "markdown", "html"}
}
