package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/reporter"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/ui"
)

var (
	showSuppressed bool
	failOn         string
	outputPath     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Run the quality profile over C# sources",
	Long: `Parse every matching C# file under the given paths, compute its
metrics and report the messages of the checks in the quality profile.

Files that fail to parse are reported by the parsing-error check. Files
that cannot be decoded with the configured charset are skipped.

Examples:
  csquid analyze .
  csquid analyze --profile strict src/
  csquid analyze --format json . > report.json
  csquid analyze --format html -o report.html .`,
	Aliases: []string{"lint"},
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&showSuppressed, "show-suppressed", false, "Include messages on lines carrying the suppression tag")
	analyzeCmd.Flags().StringVar(&failOn, "fail-on", "major", "Exit non-zero when an issue of this severity or above is found (info, minor, major, critical, none)")
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	threshold, failEnabled, err := parseFailOn(failOn)
	if err != nil {
		return err
	}

	u := GetUI()

	progress := u.StartProgress()
	defer progress.Done(nil)

	progress.SetStage(ui.StageLoadProfile)
	p, suite, err := loadSuite()
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(u.ErrWriter, "Profile: %s (%d checks)\n", p.Name, len(suite.Checks()))
	}

	proj, root, err := newProject(args, suite)
	if err != nil {
		return err
	}
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
	for _, f := range res.Files {
		for _, ve := range f.VisitorErrors {
			log.Error().Str("file", f.Path).Str("visitor", ve.Visitor).Int("line", ve.Line).Err(ve.Cause).Msg("Visitor failed")
		}
	}

	// Stop progress before reporting
	progress.Done(nil)

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
		u = ui.New(f, u.ErrWriter, format)
	}

	opts := reporter.Options{Suite: suite, ShowSuppressed: showSuppressed, Root: root}
	rep, err := reporter.New(format, out, u, opts)
	if err != nil {
		return err
	}
	if err := rep.Report(res); err != nil {
		return err
	}

	if failEnabled && reporter.Exceeds(reporter.Issues(res, opts), threshold) {
		return fmt.Errorf("issues of severity %s or above found", threshold)
	}
	return nil
}

func parseFailOn(s string) (rules.Severity, bool, error) {
	if s == "none" {
		return 0, false, nil
	}
	sev, ok := rules.ParseSeverity(s)
	if !ok {
		return 0, false, fmt.Errorf("invalid --fail-on %q (want info, minor, major, critical or none)", s)
	}
	return sev, true, nil
}
