package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Connect the wallet and show session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		orch, err := connectOrchestrator(ctx)
		if err != nil {
			return err
		}

		sess := orch.Session()
		account := sess.Account
		if name := orch.AccountName(ctx); name != "" {
			account += " (" + name + ")"
		}
		rows := [][2]string{
			{"Account", account},
			{"Network", orch.Target().ChainName},
			{"Chain ID", orch.Target().ChainID},
			{"Balance", balanceString(ctx, orch)},
		}
		if v := fiatString(ctx, orch); v != "" {
			rows = append(rows, [2]string{"Value", v})
		}
		fmt.Println(ui.KeyValueBlock("Session", rows))
		printLog(orch)
		return nil
	},
}
