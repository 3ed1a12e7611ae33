package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hexlane/dappdesk/internal/contract"
	"github.com/hexlane/dappdesk/internal/deployments"
	"github.com/hexlane/dappdesk/internal/orchestrator"
	"github.com/hexlane/dappdesk/internal/ui"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <collectible|token>",
	Short: "Deploy a built-in contract and wait for confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		builtin, _ := contract.GetBuiltin(kind.BuiltinID())

		ctx := cmd.Context()
		orch, err := connectOrchestrator(ctx)
		if err != nil {
			return err
		}

		if !flagYes && !ui.Confirm(fmt.Sprintf("Deploy %s to %s?", builtin.Name, orch.Target().ChainName)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner(fmt.Sprintf("Deploying %s...", builtin.Name))
		spin.Start()
		err = orch.Deploy(ctx, kind)
		spin.Stop()
		printLog(orch)
		if err != nil {
			return err
		}

		addr, _ := orch.DeployedAddr(kind)
		rec := deployments.Record{Address: addr, DeployedAt: time.Now().UTC()}
		if err := deploymentStore().Put(cfg.TargetNetwork, string(kind), rec); err != nil {
			fmt.Println(ui.Warn("Could not record deployment: " + err.Error()))
		}
		fmt.Println(ui.KeyValueBlock("Deployed", [][2]string{
			{"Contract", addr},
			{"Explorer", orch.Target().AddressURL(addr)},
		}))
		fmt.Println(ui.Meta(fmt.Sprintf("Use it later: dappdesk mint %s", kind)))
		return nil
	},
}

func parseKind(s string) (orchestrator.Kind, error) {
	switch s {
	case "collectible", "nft":
		return orchestrator.KindCollectible, nil
	case "token":
		return orchestrator.KindToken, nil
	default:
		return "", fmt.Errorf("unknown contract kind %q (want collectible or token)", s)
	}
}
