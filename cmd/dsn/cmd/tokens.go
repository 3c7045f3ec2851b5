package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsnlex"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <dsn_file>",
	Short: "Print the token stream of a DSN file",
	Long: `Tokenizes a DSN file and prints the resolved lexer directives followed
by one token per line: its tag, its text and its position.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	return printTokens(cmd.OutOrStdout(), args[0], string(data))
}

func printTokens(w io.Writer, filename, text string) error {
	lx, err := dsnlex.NewLexer(text, dsnlex.WithFilename(filename))
	if err != nil {
		return err
	}
	tokens, err := lx.Lex()
	if err != nil {
		return err
	}

	d := lx.Directives()
	if d.Quoting() {
		fmt.Fprintf(w, "string_quote: %q\n", d.Quote)
	} else {
		fmt.Fprintln(w, "string_quote: none")
	}
	fmt.Fprintf(w, "space_in_quoted_tokens: %v\n", d.SpaceInQuotes)
	fmt.Fprintf(w, "tokens: %d\n\n", len(tokens))

	for _, t := range tokens {
		fmt.Fprintf(w, "%-14s %-24q @%d:%d\n", t.Tok, t.Text, t.Pos.Line, t.Pos.Column)
	}
	return nil
}
