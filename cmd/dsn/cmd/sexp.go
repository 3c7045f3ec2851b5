package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsnlex"
)

var sexpCmd = &cobra.Command{
	Use:   "sexp <dsn_file>",
	Short: "Report the generic s-expression structure of a DSN file",
	Long: `Reads a DSN file as plain s-expressions, without the DSN grammar, and
reports the top-level expressions with their leaf counts. The quoting
directives are stripped first. Useful for checking whether a file that
fails to parse is at least balanced.`,
	Args: cobra.ExactArgs(1),
	RunE: runSexp,
}

func init() {
	rootCmd.AddCommand(sexpCmd)
}

func runSexp(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	return printSexp(cmd.OutOrStdout(), string(data))
}

func printSexp(w io.Writer, text string) error {
	_, stripped, err := dsnlex.Prescan(text)
	if err != nil {
		return err
	}

	sexps, err := sexp.ParseString(stripped)
	if err != nil {
		return fmt.Errorf("not a well-formed s-expression: %w", err)
	}

	fmt.Fprintf(w, "Parsed %d s-expressions\n", len(sexps))
	for i, s := range sexps {
		if s.IsLeaf() {
			fmt.Fprintf(w, "  #%d: leaf %s\n", i+1, preview(fmt.Sprint(s), 60))
			continue
		}
		fmt.Fprintf(w, "  #%d: list with %d leaves %s\n", i+1, s.LeafCount(), preview(fmt.Sprint(s), 60))
	}
	return nil
}

// preview shortens s to at most n runes
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
