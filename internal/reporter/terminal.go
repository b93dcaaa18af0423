package reporter

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/ui"
)

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w    io.Writer
	ui   *ui.UI
	opts Options
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI, opts Options) *TerminalReporter {
	return &TerminalReporter{w: w, ui: u, opts: opts}
}

// Report outputs issues grouped by file, then failures and a summary
func (r *TerminalReporter) Report(res *analyzer.Result) error {
	s := r.ui.Styles
	issues := Issues(res, r.opts)

	files, byFile := groupByFile(issues)
	for _, file := range files {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render(path.Base(file)))
		fmt.Fprintln(r.w, s.Path.Render("  "+file))

		for _, issue := range byFile[file] {
			r.printIssue(issue)
		}
	}

	r.printFailures(res)
	r.printSummary(res, issues)
	return nil
}

func (r *TerminalReporter) printIssue(issue Issue) {
	s := r.ui.Styles
	style, icon := s.Severity(issue.Severity)

	location := path.Base(issue.File)
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, issue.Line)
	}

	fmt.Fprintf(r.w, "  %s %s%s", style.Render(icon), location, s.Check.Render(fmt.Sprintf(" [%s]", issue.CheckID)))
	if issue.Suppressed {
		fmt.Fprint(r.w, s.Dim.Render(" (suppressed)"))
	}
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "    %s\n", issue.Message)
}

// printFailures lists files that could not be decoded or read. Parse
// failures already appear as parsing-error issues when that check is
// active.
func (r *TerminalReporter) printFailures(res *analyzer.Result) {
	s := r.ui.Styles
	var skipped []*analyzer.FileResult
	for _, f := range res.Files {
		if f.Skipped() {
			skipped = append(skipped, f)
		}
	}
	if len(skipped) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Warning.Render(fmt.Sprintf("%s Skipped %d files:", s.IconWarning, len(skipped))))
	for _, f := range skipped {
		fmt.Fprintf(r.w, "  %s\n", displayPath(r.opts.Root, f.Path))
		fmt.Fprintln(r.w, s.Dim.Render("    "+f.Err.Error()))
	}
}

func (r *TerminalReporter) printSummary(res *analyzer.Result, issues []Issue) {
	s := r.ui.Styles
	summary := analyzer.ComputeSummary(res)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render(strings.Repeat("─", 37)))

	fmt.Fprintf(r.w, "Analyzed %d of %d files", summary.Analyzed, summary.TotalFiles)
	if summary.ParseFailures > 0 {
		fmt.Fprint(r.w, ", ", s.Major.Render(fmt.Sprintf("%d failed to parse", summary.ParseFailures)))
	}
	if summary.Skipped > 0 {
		fmt.Fprint(r.w, ", ", s.Warning.Render(fmt.Sprintf("%d skipped", summary.Skipped)))
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Dim.Render(fmt.Sprintf("%d lines of code, %d classes, %d methods, complexity %d",
		summary.Totals[source.LinesOfCode], summary.Totals[source.Classes],
		summary.Totals[source.Methods], summary.Totals[source.Complexity])))

	if summary.Messages == 0 {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" No issues found"))
		return
	}

	counts := SeverityCounts(issues)
	var parts []string
	for _, sev := range []rules.Severity{rules.Critical, rules.Major, rules.Minor, rules.Info} {
		if counts[sev] == 0 {
			continue
		}
		style, _ := s.Severity(sev)
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", counts[sev], sev)))
	}

	fmt.Fprintf(r.w, "Found %d issues: %s", summary.Messages, strings.Join(parts, ", "))
	if summary.Suppressed > 0 {
		fmt.Fprint(r.w, s.Dim.Render(fmt.Sprintf(" (%d suppressed)", summary.Suppressed)))
	}
	fmt.Fprintln(r.w)
}
