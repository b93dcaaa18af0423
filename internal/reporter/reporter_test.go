package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/profile"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/ui"
)

const widgetSource = `namespace App
{
    public class widget
    {
        // TODO remove
        public void Run() { }
    }
}
`

func runSample(t *testing.T) (*analyzer.Result, Options) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/Widget.cs": widgetSource,
		"src/Broken.cs": "class {\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p, err := profile.Load(profile.Default)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	suite, err := p.Compile(rules.DefaultRegistry())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	proj := &analyzer.Project{
		Roots:   []string{root},
		Scanner: analyzer.Scanner{Include: []string{"**/*.cs"}},
		Options: analyzer.Options{Suite: suite},
		Workers: 2,
	}
	res, err := proj.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res, Options{Suite: suite, Root: root}
}

func TestIssues(t *testing.T) {
	res, opts := runSample(t)
	issues := Issues(res, opts)

	want := []struct {
		file  string
		line  int
		check string
		sev   rules.Severity
	}{
		{"src/Broken.cs", 0, "parsing-error", rules.Critical},
		{"src/Widget.cs", 3, "class-name", rules.Minor},
		{"src/Widget.cs", 5, "todo-comment", rules.Info},
	}
	if len(issues) != len(want) {
		t.Fatalf("Issues() = %v, want %d issues", issues, len(want))
	}
	for i, w := range want {
		got := issues[i]
		if got.File != w.file || got.Line != w.line || got.CheckID != w.check || got.Severity != w.sev {
			t.Errorf("issue %d = %+v, want %s:%d [%s] %s", i, got, w.file, w.line, w.check, w.sev)
		}
	}

	if !Exceeds(issues, rules.Critical) {
		t.Error("Exceeds(critical) = false, want true")
	}
	if Exceeds(issues[1:], rules.Major) {
		t.Error("Exceeds(major) without the parse failure = true, want false")
	}

	counts := SeverityCounts(issues)
	if counts[rules.Critical] != 1 || counts[rules.Minor] != 1 || counts[rules.Info] != 1 {
		t.Errorf("SeverityCounts() = %v", counts)
	}
}

func TestTerminalReporter(t *testing.T) {
	res, opts := runSample(t)

	var buf bytes.Buffer
	u := ui.New(&buf, &buf, "terminal")
	if err := NewTerminalReporter(&buf, u, opts).Report(res); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"  src/Widget.cs",
		"MINOR: Widget.cs:3 [class-name]",
		`Rename this class "widget"`,
		"INFO: Widget.cs:5 [todo-comment]",
		"CRITICAL: Broken.cs [parsing-error]",
		"Analyzed 1 of 2 files, 1 failed to parse",
		"Found 3 issues: 1 critical, 1 minor, 1 info",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestJSONReporter(t *testing.T) {
	res, opts := runSample(t)

	var buf bytes.Buffer
	if err := NewJSONReporter(&buf, opts).Report(res); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, err := uuid.Parse(out.RunID); err != nil {
		t.Errorf("RunID = %q, want a UUID", out.RunID)
	}
	if got := len(out.Issues); got != 3 {
		t.Errorf("len(Issues) = %d, want 3", got)
	}
	if got := out.Summary.BySeverity["critical"]; got != 1 {
		t.Errorf("BySeverity[critical] = %d, want 1", got)
	}
	if got := out.Summary.ParseFailures; got != 1 {
		t.Errorf("ParseFailures = %d, want 1", got)
	}
	if got := len(out.Files); got != 2 {
		t.Fatalf("len(Files) = %d, want 2", got)
	}
	if out.Files[0].Error == "" || out.Files[0].Metrics != nil {
		t.Errorf("Files[0] = %+v, want an error and no metrics", out.Files[0])
	}
	if got := out.Files[1].Metrics[source.Classes.String()]; got != 1 {
		t.Errorf("Files[1] CLASSES = %d, want 1", got)
	}
}

func TestMarkdownAndHTMLReporters(t *testing.T) {
	res, opts := runSample(t)

	var md bytes.Buffer
	if err := NewMarkdownReporter(&md, opts).Report(res); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	for _, want := range []string{
		"# Code Quality Report",
		"### `src/Widget.cs`",
		"| 3 | minor | `class-name` |",
		"| - | critical | `parsing-error` |",
		"| CLASSES | 1 |",
	} {
		if !strings.Contains(md.String(), want) {
			t.Errorf("markdown missing %q\n%s", want, md.String())
		}
	}

	var html bytes.Buffer
	if err := NewHTMLReporter(&html, opts).Report(res); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<h1>Code Quality Report</h1>",
		"<table>",
		"<code>src/Widget.cs</code>",
		"</html>",
	} {
		if !strings.Contains(html.String(), want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestMetricsReporter(t *testing.T) {
	res, opts := runSample(t)

	var buf bytes.Buffer
	u := ui.New(&buf, &buf, "terminal")
	r := NewMetricsReporter(&buf, u, opts, []source.Metric{source.Classes, source.Methods})
	if err := r.Report(res); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header, Broken.cs, Widget.cs, separator, total
	if len(lines) != 5 {
		t.Fatalf("table has %d lines, want 5\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "PATH") || !strings.Contains(lines[0], "CLASSES") {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[2]); len(fields) != 3 || fields[0] != "src/Widget.cs" || fields[1] != "1" || fields[2] != "1" {
		t.Errorf("row = %q", lines[2])
	}
	if fields := strings.Fields(lines[4]); len(fields) != 3 || fields[0] != "TOTAL" || fields[1] != "1" {
		t.Errorf("total = %q", lines[4])
	}

	buf.Reset()
	r.ByDir, r.JSON = true, true
	if err := r.Report(res); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	var out struct {
		Entries []struct {
			Path    string         `json:"path"`
			Metrics map[string]int `json:"metrics"`
		} `json:"entries"`
		Totals map[string]int `json:"totals"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Entries) != 1 || out.Entries[0].Path != "src" {
		t.Errorf("Entries = %+v, want the src directory", out.Entries)
	}
	if out.Totals["METHODS"] != 1 {
		t.Errorf("Totals = %v", out.Totals)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New("xml", &bytes.Buffer{}, nil, Options{}); err == nil {
		t.Error("New(xml) error = nil, want an error")
	}
}
