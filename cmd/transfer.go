package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/provider"
	"github.com/hexlane/dappdesk/internal/ui"
)

var (
	transferTo     string
	transferAmount string
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Send native currency to a recipient",
	RunE: func(cmd *cobra.Command, args []string) error {
		if transferTo == "" {
			return fmt.Errorf("--to is required")
		}
		if transferAmount == "" {
			return fmt.Errorf("--amount is required")
		}
		amountWei, err := provider.DecimalToWei(transferAmount)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		orch, err := connectOrchestrator(ctx)
		if err != nil {
			return err
		}

		symbol := orch.Target().NativeCurrency.Symbol
		if !flagYes && !ui.Confirm(fmt.Sprintf("Send %s %s to %s?", transferAmount, symbol, transferTo)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Sending...")
		spin.Start()
		err = orch.TransferNative(ctx, transferTo, amountWei)
		spin.Stop()
		printLog(orch)
		return err
	},
}

func init() {
	transferCmd.Flags().StringVar(&transferTo, "to", "", "recipient address or ENS name")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "amount in native units, e.g. 0.1")
}
