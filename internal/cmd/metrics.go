package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/reporter"
	"github.com/pthm/csquid/internal/source"
	"github.com/pthm/csquid/internal/ui"
)

var (
	metricNames  []string
	metricsByDir bool
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [path...]",
	Short: "Print size and complexity metrics of C# sources",
	Long: `Compute the metrics of every matching C# file without running any
checks, and print them per file or per directory with project totals.

Available metrics:
  ` + strings.Join(metricList(), "\n  ") + `

Examples:
  csquid metrics .
  csquid metrics --metric LINES_OF_CODE --metric COMPLEXITY src/
  csquid metrics --by-dir --format json .`,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().StringSliceVarP(&metricNames, "metric", "m", nil, "Metrics to print (default: all)")
	metricsCmd.Flags().BoolVar(&metricsByDir, "by-dir", false, "Aggregate per directory")
	RootCmd.AddCommand(metricsCmd)
}

func metricList() []string {
	var names []string
	for _, m := range source.Metrics() {
		names = append(names, m.String())
	}
	return names
}

func runMetrics(cmd *cobra.Command, args []string) error {
	var selected []source.Metric
	for _, name := range metricNames {
		m, ok := source.ParseMetric(strings.ToUpper(name))
		if !ok {
			return fmt.Errorf("unknown metric %q", name)
		}
		selected = append(selected, m)
	}
	if format != "terminal" && format != "json" {
		return fmt.Errorf("metrics supports the terminal and json formats, got %q", format)
	}

	u := GetUI()
	proj, root, err := newProject(args, nil)
	if err != nil {
		return err
	}

	progress := u.StartProgress()
	defer progress.Done(nil)
	progress.SetStage(ui.StageScan)
	proj.OnStart = func(total int) {
		progress.SetFileCount(total)
		progress.SetStage(ui.StageAnalyze)
	}
	proj.OnFile = func(res *analyzer.FileResult) {
		progress.FileDone(res.Path)
	}

	res, err := proj.Run(cmd.Context())
	if err != nil {
		return err
	}
	progress.Done(nil)

	rep := reporter.NewMetricsReporter(cmd.OutOrStdout(), u, reporter.Options{Root: root}, selected)
	rep.ByDir = metricsByDir
	rep.JSON = format == "json"
	return rep.Report(res)
}
