package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hexlane/dappdesk/internal/ui"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing wallets",
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a wallet from a private key",
	Long: `Import a signing wallet. The key is read from a hidden prompt and
stored in the OS keychain; only the derived address is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		fmt.Print("Private key (hex): ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}

		mgr := walletManager()
		w, err := mgr.Import(name, string(keyBytes), walletKeystore())
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %q (%s)", w.Name, w.Address)))
		if w.IsDefault {
			fmt.Println(ui.Meta("Set as default wallet."))
		}
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets := walletManager().List()
		if len(wallets) == 0 {
			fmt.Println(ui.Meta("No wallets. Import one with `dappdesk wallet import <name>`."))
			return nil
		}
		for _, w := range wallets {
			mark := "  "
			if w.IsDefault {
				mark = ui.Success("*") + " "
			}
			fmt.Printf("%s%s  %s\n", mark, w.Name, ui.Addr(w.Address))
		}
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := walletManager()
		w, err := mgr.Get(name)
		if err != nil {
			return err
		}
		if !flagYes && !ui.Confirm(fmt.Sprintf("Remove wallet %q (%s)?", name, w.Address)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := walletKeystore().Delete(w.KeyRef); err != nil {
			fmt.Println(ui.Warn(fmt.Sprintf("could not remove key from keychain: %v", err)))
		}
		if err := mgr.Remove(name); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed %q", name)))
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletImportCmd)
	walletCmd.AddCommand(walletListCmd)
	walletCmd.AddCommand(walletRemoveCmd)
}
