package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the session: balance and activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		orch, err := connectOrchestrator(ctx)
		if err != nil {
			return err
		}

		fetch := func() ui.WatchSnapshot {
			snap := ui.WatchSnapshot{
				Network: orch.Target().ChainName,
				Busy:    orch.Busy(),
				Phase:   string(orch.Phase()),
				Balance: balanceString(ctx, orch),
				Entries: orch.Log().View(),
			}
			if sess := orch.Session(); sess != nil {
				snap.Account = sess.Account
			}
			return snap
		}

		p := tea.NewProgram(ui.NewWatchModel(fetch))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("watch UI: %w", err)
		}
		return nil
	},
}
