package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pthm/csquid/internal/analyzer"
	"github.com/pthm/csquid/internal/config"
	"github.com/pthm/csquid/internal/logging"
	"github.com/pthm/csquid/internal/metrics"
	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/profile"
	"github.com/pthm/csquid/internal/rules"
	"github.com/pthm/csquid/internal/ui"
)

var (
	// Global flags
	configPath string
	format     string
	verbose    bool

	v      = config.New()
	cfg    *config.Config
	globUI *ui.UI
)

// RootCmd is the csquid command tree
var RootCmd = &cobra.Command{
	Use:   "csquid",
	Short: "Static analysis and metrics for C# source code",
	Long: `csquid parses C# source files, computes size, complexity and
documentation metrics, and runs configurable quality checks on them.

Checks are selected by a quality profile: a YAML file listing checks
and their parameters. The built-in "default" profile is used when no
other profile is configured.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: csquid.yaml)")
	flags.StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json, markdown, html)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")

	flags.String("profile", "", "Quality profile name or file")
	flags.String("charset", "", "Source file encoding")
	flags.IntP("workers", "j", 0, "Number of files analyzed concurrently")
	flags.StringSlice("include", nil, "Glob patterns of files to analyze")
	flags.StringSlice("exclude", nil, "Glob patterns of files to skip")
	flags.StringSliceP("define", "D", nil, "Preprocessor symbols to define")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")

	bindFlags(flags, map[string]string{
		"profile":    "profile",
		"charset":    "charset",
		"workers":    "workers",
		"include":    "include",
		"exclude":    "exclude",
		"define":     "defines",
		"log-level":  "log.level",
		"log-format": "log.format",
	})
}

// bindFlags binds each flag to its config key. A flag overrides the
// config file and environment only when set.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if verbose {
		v.Set("log.level", "debug")
	}

	loaded, err := config.Load(v, configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logging.Setup(logging.Settings{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}
	if file := config.File(v); file != "" {
		log.Debug().Str("config", file).Msg("Loaded config file")
	}

	globUI = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
	return nil
}

// Execute runs the command tree
func Execute() error {
	return RootCmd.Execute()
}

// GetUI returns the UI configured for the running command
func GetUI() *ui.UI {
	if globUI == nil {
		globUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globUI
}

// Viper exposes the settings store for tests and embedding
func Viper() *viper.Viper {
	return v
}

// loadSuite loads the configured profile and compiles it against the
// built-in checks
func loadSuite() (*profile.Profile, *rules.Suite, error) {
	p, err := profile.Load(cfg.Profile)
	if err != nil {
		return nil, nil, err
	}
	suite, err := p.Compile(rules.DefaultRegistry())
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("profile", p.Name).Str("source", p.Source).Int("checks", len(suite.Checks())).Msg("Loaded profile")
	return p, suite, nil
}

func parseOptions() parser.Options {
	return parser.Options{Charset: cfg.Charset, Defines: cfg.Defines}
}

// newProject builds a project over the given paths, defaulting to the
// working directory. Reported paths are relative to the first one.
func newProject(args []string, suite *rules.Suite) (*analyzer.Project, string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	roots := make([]string, 0, len(args))
	for _, path := range args {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, "", fmt.Errorf("invalid path: %w", err)
		}
		roots = append(roots, abs)
	}

	displayRoot := roots[0]
	if info, err := os.Stat(displayRoot); err == nil && !info.IsDir() {
		displayRoot = filepath.Dir(displayRoot)
	}

	return &analyzer.Project{
		Roots:   roots,
		Scanner: analyzer.Scanner{Include: cfg.Include, Exclude: cfg.Exclude},
		Options: analyzer.Options{
			Parse:   parseOptions(),
			Metrics: metrics.Options{SuppressionTag: cfg.SuppressionTag},
			Suite:   suite,
		},
		Workers: cfg.Workers,
	}, displayRoot, nil
}
