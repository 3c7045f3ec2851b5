package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump <dsn_file>",
	Short: "Print the parsed document as YAML or JSON",
	Long: `Parses a DSN file and writes the resulting document to stdout.
The format defaults to the [output] format of the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "", "output format: yaml or json")
}

func runDump(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	format := dumpFormat
	if format == "" {
		format = cfg.Output.Format
	}
	return writeDocument(cmd.OutOrStdout(), doc, format)
}

func writeDocument(w io.Writer, doc *dsn.Document, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
