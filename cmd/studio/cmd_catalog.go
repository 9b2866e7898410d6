package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"practicestudio/internal/widgets"
)

var catalogJSON bool

// catalogCmd lists the module kinds
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the module kinds that can be added to the dashboard",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	registry, err := widgets.NewRegistry()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if catalogJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(registry.Descriptors())
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tICON\tNAME")
	for _, d := range registry.Descriptors() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Kind, d.Icon, d.DisplayName)
	}
	return w.Flush()
}
