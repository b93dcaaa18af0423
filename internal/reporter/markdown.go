package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/source"
)

// MarkdownReporter writes a Markdown document suitable for pull request
// comments and job summaries
type MarkdownReporter struct {
	w    io.Writer
	opts Options
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(w io.Writer, opts Options) *MarkdownReporter {
	return &MarkdownReporter{w: w, opts: opts}
}

// Report writes the document
func (r *MarkdownReporter) Report(res *analyzer.Result) error {
	_, err := r.w.Write(renderMarkdown(res, r.opts))
	return err
}

var summaryMetrics = []source.Metric{
	source.Lines,
	source.LinesOfCode,
	source.Statements,
	source.Complexity,
	source.Classes,
	source.Methods,
	source.CommentLines,
	source.PublicAPI,
	source.PublicDocAPI,
}

func renderMarkdown(res *analyzer.Result, opts Options) []byte {
	var buf bytes.Buffer
	issues := Issues(res, opts)
	summary := analyzer.ComputeSummary(res)

	buf.WriteString("# Code Quality Report\n\n")
	fmt.Fprintf(&buf, "Analyzed **%d** of %d files", summary.Analyzed, summary.TotalFiles)
	if summary.ParseFailures > 0 {
		fmt.Fprintf(&buf, ", %d failed to parse", summary.ParseFailures)
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(&buf, ", %d skipped", summary.Skipped)
	}
	buf.WriteString(".\n\n")

	buf.WriteString("## Metrics\n\n")
	buf.WriteString("| Metric | Value |\n|---|---:|\n")
	for _, m := range summaryMetrics {
		fmt.Fprintf(&buf, "| %s | %d |\n", m, summary.Totals[m])
	}
	buf.WriteString("\n")

	buf.WriteString("## Issues\n\n")
	if len(issues) == 0 {
		buf.WriteString("No issues found.\n")
		return buf.Bytes()
	}

	counts := SeverityCounts(issues)
	var parts []string
	for _, sev := range []rules.Severity{rules.Critical, rules.Major, rules.Minor, rules.Info} {
		if counts[sev] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[sev], sev))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&buf, "%s.\n\n", strings.Join(parts, ", "))
	}

	files, byFile := groupByFile(issues)
	for _, file := range files {
		fmt.Fprintf(&buf, "### `%s`\n\n", file)
		buf.WriteString("| Line | Severity | Check | Message |\n|---:|---|---|---|\n")
		for _, is := range byFile[file] {
			line := "-"
			if is.Line > 0 {
				line = fmt.Sprint(is.Line)
			}
			sev := is.Severity.String()
			if is.Suppressed {
				sev += " (suppressed)"
			}
			fmt.Fprintf(&buf, "| %s | %s | `%s` | %s |\n", line, sev, is.CheckID, escapeCell(is.Message))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// escapeCell keeps a message inside one table cell
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
