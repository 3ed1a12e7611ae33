package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/orchestrator"
	"github.com/hexlane/dappdesk/internal/ui"
)

var mintContract string

var mintCmd = &cobra.Command{
	Use:   "mint <collectible|token>",
	Short: "Mint from a deployed built-in contract",
	Long: `Mint from a deployed contract. The collectible mints one unit to the
connected account; the token mints 100 whole tokens to the contract owner.

The contract address comes from the deployments manifest written by
deploy, or from --contract.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		orch, err := connectOrchestrator(ctx)
		if err != nil {
			return err
		}
		if err := seedContract(orch, kind, mintContract); err != nil {
			return err
		}

		spin := ui.NewSpinner("Minting...")
		spin.Start()
		if kind == orchestrator.KindCollectible {
			err = orch.MintCollectible(ctx)
		} else {
			err = orch.MintToken(ctx)
		}
		spin.Stop()
		printLog(orch)
		return err
	},
}

func init() {
	mintCmd.Flags().StringVar(&mintContract, "contract", "", "deployed contract address")
}
