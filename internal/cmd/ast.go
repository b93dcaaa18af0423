package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pthm/csquid/internal/parser"
	"github.com/pthm/csquid/internal/ui"
	"github.com/pthm/csquid/internal/xpath"
)

var (
	astPrint    bool
	astNoTokens bool
	astSexpr    bool
	astQuery    string
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Browse the syntax tree of a C# file",
	Long: `Parses a C# file and displays its syntax tree.

Features:
  - Navigate the tree with arrow keys or vim bindings
  - Expand/collapse nodes to explore the hierarchy
  - Hide or show terminal tokens
  - See the lines spanned by each node

Controls:
  ↑/k, ↓/j    Navigate up/down
  ←/h, →/l    Collapse/expand nodes
  Enter/Space Toggle expand/collapse
  t           Toggle token display
  q           Quit

Examples:
  csquid ast Program.cs
  csquid ast --print --no-tokens Program.cs
  csquid ast --xpath "//methodDeclaration" Program.cs`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	astCmd.Flags().BoolVarP(&astPrint, "print", "p", false, "Print the tree to stdout instead of interactive mode")
	astCmd.Flags().BoolVar(&astNoTokens, "no-tokens", false, "Omit terminal tokens")
	astCmd.Flags().BoolVar(&astSexpr, "sexpr", false, "Print the tree as an s-expression")
	astCmd.Flags().StringVar(&astQuery, "xpath", "", "Print the nodes selected by an XPath query")
	RootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	u := GetUI()
	out := cmd.OutOrStdout()

	var query *xpath.Query
	if astQuery != "" {
		q, err := xpath.Compile(astQuery)
		if err != nil {
			return fmt.Errorf("invalid xpath query: %w", err)
		}
		query = q
	}

	file, err := parser.ParseFile(args[0], parseOptions())
	if err != nil {
		return err
	}

	switch {
	case query != nil:
		res := query.Evaluate(file.Root)
		if !res.IsNodeSet {
			fmt.Fprintln(out, res.Bool)
			return nil
		}
		for _, n := range res.Nodes {
			fmt.Fprintf(out, "%d: %s\n", n.Line(), n.Name())
		}
		return nil

	case astSexpr:
		fmt.Fprintln(out, file.Root.String())
		return nil

	case astPrint:
		return ui.PrintTree(out, file.Root, !astNoTokens)
	}

	if !u.IsInteractive() {
		return fmt.Errorf("ast command requires an interactive terminal (TTY). Use --print for non-interactive output")
	}

	model := ui.NewTreeModel(file.Root, args[0])
	if astNoTokens {
		next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
		model = next.(ui.TreeModel)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tree viewer: %w", err)
	}
	return nil
}
