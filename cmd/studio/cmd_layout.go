package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"practicestudio/internal/grid"
	"practicestudio/internal/jsonutil"
	"practicestudio/internal/layout"
)

var (
	layoutWidth      int
	layoutBreakpoint string
	layoutFrom       string
	layoutJSON       bool
)

// layoutCmd previews a layout at a viewport width
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the grid placement of a layout at a viewport width",
	Long: `Projects a layout the way the dashboard would at the given viewport
width in pixels: picks the active breakpoint, clamps, places pending modules
at the bottom and compacts.

The layout is the configured starter unless --from names a JSON file holding
an array of instances (for example the "instances" of GET /api/layout).

--breakpoint picks a breakpoint by name instead of a width.

Examples:
  studio layout --width 800
  studio layout --breakpoint xs
  studio layout --width 480 --from saved.json --json`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().IntVar(&layoutWidth, "width", 0, "viewport width in pixels (default: the widest breakpoint)")
	layoutCmd.Flags().StringVar(&layoutBreakpoint, "breakpoint", "", "breakpoint name, e.g. sm (overrides --width)")
	layoutCmd.Flags().StringVar(&layoutFrom, "from", "", "JSON file with an array of instances")
	layoutCmd.Flags().BoolVar(&layoutJSON, "json", false, "print the frame as JSON")
}

func runLayout(cmd *cobra.Command, args []string) error {
	if layoutWidth < 0 {
		return fmt.Errorf("--width must not be negative")
	}
	instances := cfg.Starter
	if layoutFrom != "" {
		data, err := os.ReadFile(layoutFrom)
		if err != nil {
			return err
		}
		instances, err = jsonutil.UnmarshalArray[layout.Instance](data, "parse "+layoutFrom)
		if err != nil {
			return err
		}
	}
	// Validates the collection the same way the dashboard would.
	store, err := layout.NewStore(layout.WithInstances(instances))
	if err != nil {
		return err
	}

	bps := cfg.GridBreakpoints()
	width := layoutWidth
	switch {
	case layoutBreakpoint != "":
		bp, ok := bps.Lookup(layoutBreakpoint)
		if !ok {
			return fmt.Errorf("unknown breakpoint %q", layoutBreakpoint)
		}
		width = bp.MinWidth
	case width == 0:
		width = bps.Primary().MinWidth
	}
	frame := grid.Layout(store.List(), bps, width)

	out := cmd.OutOrStdout()
	if layoutJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(frame)
	}
	fmt.Fprintf(out, "breakpoint %s: %d columns (>= %dpx), %d rows\n",
		frame.Breakpoint.Name, frame.Breakpoint.Columns, frame.Breakpoint.MinWidth, frame.Rows)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tX\tY\tW\tH")
	for _, p := range frame.Placements {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n", p.ID, p.Kind, p.X, p.Y, p.W, p.H)
	}
	return w.Flush()
}
