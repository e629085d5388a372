// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-site/internal/catalog"
	"github.com/pdiddy/scholar-site/internal/flow"
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Emit Sankey data linking research areas to publication years",
	Long: `Flow builds the area-to-year flow diagram from the cached publications:
one node per research area and per year, one link per (area, year) pair
weighted by the number of publications. Output is JSON for the renderer.`,
	RunE: runFlow,
}

func runFlow(cmd *cobra.Command, args []string) error {
	profile, _ := cmd.Flags().GetString("profile")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	pubs, tax, err := a.viewPublications(cmd.Context(), profile)
	if err != nil {
		return err
	}
	d := flow.Build(pubs, tax.AreaNames(), a.now().Year())
	if d.Empty() {
		fmt.Fprintln(diag, "flow: no publications to diagram")
	}
	return catalog.FormatJSON(d, cmd.OutOrStdout())
}

func init() {
	flowCmd.Flags().String("profile", "", "taxonomy profile to label with (default: classify.view_profile)")

	rootCmd.AddCommand(flowCmd)
}
