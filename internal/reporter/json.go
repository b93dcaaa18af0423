package reporter

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/version"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w    io.Writer
	opts Options
	now  func() time.Time
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer, opts Options) *JSONReporter {
	return &JSONReporter{w: w, opts: opts, now: time.Now}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	RunID       string      `json:"runId"`
	Version     string      `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Issues      []JSONIssue `json:"issues"`
	Files       []JSONFile  `json:"files"`
	Summary     JSONSummary `json:"summary"`
}

// JSONIssue represents an issue in JSON format
type JSONIssue struct {
	Check      string `json:"check"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	File       string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Suppressed bool   `json:"suppressed,omitempty"`
}

// JSONFile carries the metrics of one file
type JSONFile struct {
	Path     string         `json:"path"`
	Category string         `json:"category"`
	Error    string         `json:"error,omitempty"`
	Skipped  bool           `json:"skipped,omitempty"`
	Metrics  map[string]int `json:"metrics,omitempty"`
}

// JSONSummary is the project-wide summary
type JSONSummary struct {
	TotalFiles    int            `json:"totalFiles"`
	Analyzed      int            `json:"analyzed"`
	ParseFailures int            `json:"parseFailures"`
	Skipped       int            `json:"skipped"`
	Issues        int            `json:"issues"`
	Suppressed    int            `json:"suppressed"`
	BySeverity    map[string]int `json:"bySeverity"`
	ByCheck       map[string]int `json:"byCheck"`
	Metrics       map[string]int `json:"metrics"`
}

// Report outputs the run as one JSON document
func (r *JSONReporter) Report(res *analyzer.Result) error {
	issues := Issues(res, r.opts)
	summary := analyzer.ComputeSummary(res)

	output := JSONOutput{
		RunID:       uuid.New().String(),
		Version:     version.Short(),
		GeneratedAt: r.now().UTC(),
		Issues:      make([]JSONIssue, 0, len(issues)),
		Files:       make([]JSONFile, 0, len(res.Files)),
		Summary: JSONSummary{
			TotalFiles:    summary.TotalFiles,
			Analyzed:      summary.Analyzed,
			ParseFailures: summary.ParseFailures,
			Skipped:       summary.Skipped,
			Issues:        summary.Messages,
			Suppressed:    summary.Suppressed,
			BySeverity:    make(map[string]int),
			ByCheck:       summary.MessagesByCheck,
			Metrics:       metricNames(summary.Totals),
		},
	}

	for _, issue := range issues {
		output.Issues = append(output.Issues, JSONIssue{
			Check:      issue.CheckID,
			Severity:   issue.Severity.String(),
			Message:    issue.Message,
			File:       issue.File,
			Line:       issue.Line,
			Suppressed: issue.Suppressed,
		})
	}
	for sev, n := range SeverityCounts(issues) {
		output.Summary.BySeverity[sev.String()] = n
	}

	for _, f := range res.Files {
		jf := JSONFile{
			Path:     displayPath(r.opts.Root, f.Path),
			Category: f.Category.String(),
			Skipped:  f.Skipped(),
		}
		if f.Err != nil {
			jf.Error = f.Err.Error()
		}
		if f.Scope != nil && f.Err == nil {
			jf.Metrics = metricNames(f.Scope.Totals())
		}
		output.Files = append(output.Files, jf)
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func metricNames(totals map[source.Metric]int) map[string]int {
	out := make(map[string]int, len(totals))
	for m, v := range totals {
		out[m.String()] = v
	}
	return out
}
