package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/csquid/internal/profile"
	"github.com/pthm/csquid/internal/rules"
)

var checksSchema bool

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the available checks and the active profile",
	Long: `Lists every built-in check with its default severity and parameters,
then the check instances the configured profile enables.

Examples:
  csquid checks
  csquid checks --profile strict
  csquid checks --schema > profile.schema.json`,
	Args: cobra.NoArgs,
	RunE: runChecks,
}

func init() {
	checksCmd.Flags().BoolVar(&checksSchema, "schema", false, "Print the JSON Schema of profile files")
	RootCmd.AddCommand(checksCmd)
}

func runChecks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if checksSchema {
		_, err := out.Write(profile.Schema())
		return err
	}

	s := GetUI().Styles

	fmt.Fprintln(out, s.Header.Render("Available checks"))
	for _, c := range rules.DefaultRegistry().Checks() {
		conf := c.Config()
		style, _ := s.Severity(conf.Severity)
		fmt.Fprintf(out, "  %-20s %s  %s\n", c.Name(), style.Render(fmt.Sprintf("%-8s", conf.Severity)), c.Description())
		for _, p := range conf.Params {
			def := p.Default
			if p.Required {
				def = "required"
			}
			fmt.Fprintln(out, s.Dim.Render(fmt.Sprintf("      %s (%s): %s", p.Name, def, p.Description)))
		}
	}

	p, suite, err := loadSuite()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, s.Header.Render(fmt.Sprintf("Profile %s", p.Name)))
	if p.Description != "" {
		fmt.Fprintln(out, s.Subheader.Render("  "+p.Description))
	}
	fmt.Fprintln(out, s.Path.Render("  "+p.Source))
	for _, a := range suite.Checks() {
		style, icon := s.Severity(a.Severity)
		id := a.ID
		if id != a.Check.Name() {
			id = fmt.Sprintf("%s (%s)", a.ID, a.Check.Name())
		}
		fmt.Fprintf(out, "  %s %s\n", style.Render(icon), id)
	}

	var disabled []string
	for _, e := range p.Checks {
		if !e.IsEnabled() {
			name := e.ID
			if name == "" {
				name = e.Check
			}
			disabled = append(disabled, name)
		}
	}
	if len(disabled) > 0 {
		fmt.Fprintln(out, s.Dim.Render("  disabled: "+strings.Join(disabled, ", ")))
	}
	fmt.Fprintln(out, s.Dim.Render("  builtin profiles: "+strings.Join(profile.Available(), ", ")))
	return nil
}
