package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/csquid/internal/lexer"
	"github.com/pthm/csquid/internal/preprocessor"
	"github.com/pthm/csquid/internal/token"
)

var (
	tokensRaw    bool
	tokensTrivia bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a C# file",
	Long: `Lexes a C# file and prints one token per line with its position.

By default the stream is shown after conditional compilation, as the
parser sees it. Use --raw for the lexer output before preprocessing.

Examples:
  csquid tokens Program.cs
  csquid tokens --trivia -D DEBUG Program.cs`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensRaw, "raw", false, "Print tokens before preprocessing")
	tokensCmd.Flags().BoolVar(&tokensTrivia, "trivia", false, "Print the trivia attached to each token")
	RootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	src, err := lexer.Decode(data, cfg.Charset)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var tokens []token.Token
	if tokensRaw {
		tokens = lexer.Lex(src)
	} else if tokens, err = preprocessor.Lex(src, cfg.Defines); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		if tokensTrivia {
			for _, tr := range tok.Trivia {
				if tr.Kind == token.Whitespace {
					continue
				}
				fmt.Fprintf(out, "%d:%d\t  %s %q\n", tr.Line, tr.Column, tr.Kind, tr.Text)
			}
		}
		kind := tok.Kind.String()
		if tok.Kind == token.Literal {
			kind += "/" + tok.Literal.String()
		}
		fmt.Fprintf(out, "%d:%d\t%s %q\n", tok.Line, tok.Column, kind, tok.Text)
	}
	return nil
}
