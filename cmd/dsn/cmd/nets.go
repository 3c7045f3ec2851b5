package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
)

var netsCmd = &cobra.Command{
	Use:   "nets <dsn_file> [net_id]",
	Short: "Show net information",
	Long: `Display information about nets in a DSN file.

Without net_id: Lists all nets with pin counts and class
With net_id: Shows the pins of that net and where they are placed`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)
}

func runNets(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	if len(args) >= 2 {
		return showNetDetails(cmd.OutOrStdout(), doc, args[1])
	}

	listAllNets(cmd.OutOrStdout(), doc)
	return nil
}

func listAllNets(w io.Writer, doc *dsn.Document) {
	fmt.Fprintf(w, "Design: %d nets\n\n", len(doc.Network.Nets))
	fmt.Fprintf(w, "%-30s %6s  %s\n", "Net", "Pins", "Class")
	fmt.Fprintln(w, "─────────────────────────────────────────────────────────")

	nets := make([]dsn.Net, len(doc.Network.Nets))
	copy(nets, doc.Network.Nets)
	sort.SliceStable(nets, func(i, j int) bool { return nets[i].ID < nets[j].ID })

	for _, net := range nets {
		class := "-"
		if c := doc.ClassForNet(net.ID); c != nil {
			class = c.ID
		}
		fmt.Fprintf(w, "%-30s %6d  %s\n", net.ID, len(net.Pins), class)
	}
}

func showNetDetails(w io.Writer, doc *dsn.Document, netID string) error {
	net := doc.NetByID(netID)
	if net == nil {
		return fmt.Errorf("net '%s' not found", netID)
	}

	fmt.Fprintf(w, "Net: %s\n", net.ID)
	if c := doc.ClassForNet(net.ID); c != nil {
		fmt.Fprintf(w, "Class: %s\n", c.ID)
		for _, r := range c.Rules {
			switch r.Kind {
			case dsn.RuleWidth:
				fmt.Fprintf(w, "  width %g\n", r.Width)
			case dsn.RuleClearance:
				if r.Clearance != nil {
					fmt.Fprintf(w, "  clearance %g %v\n", r.Clearance.Amount, r.Clearance.Types)
				}
			}
		}
	}

	placed := make(map[dsn.PinRef]dsn.PlacedPin)
	for _, p := range doc.PlacedPins() {
		placed[p.Ref] = p
	}

	fmt.Fprintf(w, "\nPins (%d):\n", len(net.Pins))
	for _, ref := range net.Pins {
		p, ok := placed[ref]
		if !ok {
			fmt.Fprintf(w, "  %-12s (not placed)\n", ref)
			continue
		}
		fmt.Fprintf(w, "  %-12s %-16s at (%.2f, %.2f) %s\n",
			ref, p.PadstackID, p.Pos.X, p.Pos.Y, p.Side)
	}
	return nil
}
