package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.KeyValueBlock("Config", [][2]string{
			{"Target network", cfg.TargetNetwork},
			{"RPC override", orDash(cfg.RPCOverride)},
			{"Default wallet", orDash(cfg.DefaultWallet)},
			{"Directory", cfg.Dir()},
		}))
		return nil
	},
}

var configSetNetworkCmd = &cobra.Command{
	Use:   "set-network <slug>",
	Short: "Persist the target network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := network.NewRegistry().GetByName(args[0]); err != nil {
			return fmt.Errorf("unknown network %q — run `dappdesk networks`", args[0])
		}
		cfg.TargetNetwork = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Target network set to " + args[0]))
		return nil
	},
}

var configSetWalletCmd = &cobra.Command{
	Use:   "set-wallet <name>",
	Short: "Persist the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := walletManager().Get(args[0]); err != nil {
			return err
		}
		cfg.DefaultWallet = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Default wallet set to " + args[0]))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	configCmd.AddCommand(configSetNetworkCmd)
	configCmd.AddCommand(configSetWalletCmd)
}
