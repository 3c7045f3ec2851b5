package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
)

var infoCmd = &cobra.Command{
	Use:   "info <dsn_file>",
	Short: "Show a summary of a DSN file",
	Long: `Prints the design id, resolution, unit, the number of elements in each
section and the board extent.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), doc)
	return nil
}

func printInfo(w io.Writer, doc *dsn.Document) {
	stats := doc.Stats()

	fmt.Fprintf(w, "Design: %s\n", doc.ID)
	fmt.Fprintf(w, "  Resolution: %d per %s\n", doc.Resolution.Amount, doc.Resolution.Unit)
	fmt.Fprintf(w, "  Unit: %s\n", doc.Unit.Unit)
	fmt.Fprintf(w, "  Layers: %d\n", stats.Layers)
	for _, l := range doc.Structure.Layers {
		fmt.Fprintf(w, "    %-20s %s\n", l.Name, l.Type)
	}
	fmt.Fprintf(w, "  Images: %d\n", stats.Images)
	fmt.Fprintf(w, "  Padstacks: %d\n", stats.Padstacks)
	fmt.Fprintf(w, "  Components: %d (%d placed)\n", stats.Components, stats.Placements)
	fmt.Fprintf(w, "  Nets: %d (%d pins)\n", stats.Nets, stats.Pins)
	fmt.Fprintf(w, "  Classes: %d\n", stats.Classes)
	fmt.Fprintf(w, "  Rules: %d\n", stats.Rules)
	fmt.Fprintf(w, "  Boundaries: %d\n", stats.Boundaries)
	fmt.Fprintf(w, "  Keepouts: %d\n", stats.Keepouts)
	fmt.Fprintf(w, "  Wires: %d\n", stats.Wires)
	fmt.Fprintf(w, "  Vias: %d\n", stats.Vias)

	bbox := doc.BoundingBox()
	if bbox.IsEmpty() {
		fmt.Fprintln(w, "  Board size: unknown")
		return
	}
	fmt.Fprintf(w, "  Board size: %.2f x %.2f %s\n", bbox.Width(), bbox.Height(), doc.Unit.Unit)
	fmt.Fprintf(w, "  Board center: (%.2f, %.2f) %s\n", bbox.Center().X, bbox.Center().Y, doc.Unit.Unit)
}
