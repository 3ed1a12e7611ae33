package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/config"
	"github.com/hexlane/dappdesk/internal/orchestrator"
	"github.com/hexlane/dappdesk/internal/provider"
	"github.com/hexlane/dappdesk/internal/ui"
)

var (
	swapContract string
	swapAmount   string
)

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Swap native currency for tokens at the fixed rate",
	Long: fmt.Sprintf(`Swap native currency for tokens. The token contract mints the caller
value × %d tokens; the amount shown here is the client-side estimate and
the contract remains authoritative.`, config.TokensPerNative),
	RunE: func(cmd *cobra.Command, args []string) error {
		if swapAmount == "" {
			return fmt.Errorf("--amount is required")
		}
		amountWei, err := provider.DecimalToWei(swapAmount)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		orch, err := connectOrchestrator(ctx)
		if err != nil {
			return err
		}
		if err := seedContract(orch, orchestrator.KindToken, swapContract); err != nil {
			return err
		}

		symbol := orch.Target().NativeCurrency.Symbol
		estimate := provider.FormatUnits(orchestrator.SwapDisplayAmount(amountWei), config.TokenDecimals)
		if !flagYes && !ui.Confirm(fmt.Sprintf("Swap %s %s for ~%s tokens?", swapAmount, symbol, estimate)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Swapping...")
		spin.Start()
		err = orch.Swap(ctx, amountWei)
		spin.Stop()
		printLog(orch)
		return err
	},
}

func init() {
	swapCmd.Flags().StringVar(&swapContract, "contract", "", "deployed token contract address")
	swapCmd.Flags().StringVar(&swapAmount, "amount", "", "native amount to swap, e.g. 0.5")
}
