package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/config"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/hexlane/dappdesk/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	cfg         *config.Config
	flagNetwork string
	flagRPC     string
	flagWallet  string
	flagYes     bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "dappdesk",
	Short: "Deploy, mint, transfer and swap on a test network",
	Long: `dappdesk — terminal session for the built-in test-network contracts.

Each invocation connects the configured wallet, verifies the target
network (adding it to the provider if unknown), runs the requested
action, waits for one confirmation, and prints the activity log.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagNetwork != "" {
			cfg.TargetNetwork = flagNetwork
		}
		if flagRPC != "" {
			cfg.RPCOverride = flagRPC
		}
		if flagWallet != "" {
			cfg.DefaultWallet = flagWallet
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "", "config directory (default ~/.dappdesk)")
	rootCmd.PersistentFlags().StringVar(&flagNetwork, "network", "", "target network slug (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagRPC, "rpc", "", "node RPC URL override")
	rootCmd.PersistentFlags().StringVar(&flagWallet, "wallet", "", "wallet name (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(networksCmd)
	rootCmd.AddCommand(configCmd)
}
