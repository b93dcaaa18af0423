package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/ui"
)

// MetricsReporter prints metric totals per file or per directory
type MetricsReporter struct {
	w       io.Writer
	ui      *ui.UI
	opts    Options
	Metrics []source.Metric
	// ByDir aggregates per directory instead of per file
	ByDir bool
	JSON  bool
}

// NewMetricsReporter creates a metrics reporter for the given metrics;
// none means all of them
func NewMetricsReporter(w io.Writer, u *ui.UI, opts Options, metrics []source.Metric) *MetricsReporter {
	if len(metrics) == 0 {
		metrics = source.Metrics()
	}
	return &MetricsReporter{w: w, ui: u, opts: opts, Metrics: metrics}
}

type metricsRow struct {
	name   string
	values []int
}

// Report writes one row per file (or directory) and a total row
func (r *MetricsReporter) Report(res *analyzer.Result) error {
	rows := r.rows(res)
	totals := make([]int, len(r.Metrics))
	for i, m := range r.Metrics {
		totals[i] = res.Index.Total(m)
	}

	if r.JSON {
		return r.writeJSON(rows, totals)
	}
	return r.writeTable(rows, totals)
}

func (r *MetricsReporter) rows(res *analyzer.Result) []metricsRow {
	idx := res.Index
	if !r.ByDir {
		rows := make([]metricsRow, 0, idx.Len())
		for _, p := range idx.Paths() {
			scope, _ := idx.File(p)
			row := metricsRow{name: displayPath(r.opts.Root, p)}
			for _, m := range r.Metrics {
				row.values = append(row.values, scope.Total(m))
			}
			rows = append(rows, row)
		}
		return rows
	}

	byDir := make(map[string][]int)
	for i, m := range r.Metrics {
		for dir, v := range idx.DirTotals(m) {
			if byDir[dir] == nil {
				byDir[dir] = make([]int, len(r.Metrics))
			}
			byDir[dir][i] = v
		}
	}
	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	rows := make([]metricsRow, 0, len(dirs))
	for _, d := range dirs {
		rows = append(rows, metricsRow{name: displayPath(r.opts.Root, d), values: byDir[d]})
	}
	return rows
}

func (r *MetricsReporter) writeTable(rows []metricsRow, totals []int) error {
	s := r.ui.Styles

	widths := make([]int, len(r.Metrics)+1)
	widths[0] = len("TOTAL")
	for _, row := range rows {
		widths[0] = max(widths[0], len(row.name))
	}
	for i, m := range r.Metrics {
		widths[i+1] = max(len(m.String()), len(fmt.Sprint(totals[i])))
	}

	var header strings.Builder
	header.WriteString(fmt.Sprintf("%-*s", widths[0], "PATH"))
	for i, m := range r.Metrics {
		header.WriteString(fmt.Sprintf("  %*s", widths[i+1], m))
	}
	fmt.Fprintln(r.w, s.Header.Render(header.String()))

	line := func(name string, values []int) string {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%-*s", widths[0], name))
		for i, v := range values {
			sb.WriteString(fmt.Sprintf("  %*d", widths[i+1], v))
		}
		return sb.String()
	}

	for _, row := range rows {
		fmt.Fprintln(r.w, line(row.name, row.values))
	}
	fmt.Fprintln(r.w, s.Separator.Render(strings.Repeat("─", len(header.String()))))
	_, err := fmt.Fprintln(r.w, s.Header.Render(line("TOTAL", totals)))
	return err
}

func (r *MetricsReporter) writeJSON(rows []metricsRow, totals []int) error {
	named := func(values []int) map[string]int {
		out := make(map[string]int, len(values))
		for i, v := range values {
			out[r.Metrics[i].String()] = v
		}
		return out
	}

	type entry struct {
		Path    string         `json:"path"`
		Metrics map[string]int `json:"metrics"`
	}
	output := struct {
		Entries []entry        `json:"entries"`
		Totals  map[string]int `json:"totals"`
	}{
		Entries: make([]entry, 0, len(rows)),
		Totals:  named(totals),
	}
	for _, row := range rows {
		output.Entries = append(output.Entries, entry{Path: row.name, Metrics: named(row.values)})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
