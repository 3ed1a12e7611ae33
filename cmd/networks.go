package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/ui"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported target networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range network.NewRegistry().All() {
			mark := "  "
			if d.Name == cfg.TargetNetwork {
				mark = ui.Success("*") + " "
			}
			explorer := "-"
			if len(d.BlockExplorerURLs) > 0 {
				explorer = d.BlockExplorerURLs[0]
			}
			fmt.Printf("%s%-14s %-10s %-24s %s\n",
				mark, d.Name, ui.Addr(d.ChainID), d.ChainName, ui.Meta(explorer))
		}
		return nil
	},
}
