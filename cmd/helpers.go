package cmd

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"

	"github.com/hexlane/dappdesk/internal/activity"
	"github.com/hexlane/dappdesk/internal/deployments"
	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/orchestrator"
	"github.com/hexlane/dappdesk/internal/price"
	"github.com/hexlane/dappdesk/internal/provider"
	"github.com/hexlane/dappdesk/internal/ui"
	"github.com/hexlane/dappdesk/internal/wallet"
)

const (
	walletsFileName     = "wallets.json"
	deploymentsFileName = "deployments.json"
)

func walletManager() *wallet.Manager {
	return wallet.NewManager(wallet.NewJSONStore(filepath.Join(cfg.Dir(), walletsFileName)))
}

func walletKeystore() *wallet.Keystore {
	return wallet.DefaultKeystore()
}

func deploymentStore() *deployments.Store {
	return deployments.NewStore(filepath.Join(cfg.Dir(), deploymentsFileName))
}

// seedContract resolves the contract address for kind: an explicit flag
// wins, otherwise the deployments manifest for the target network.
func seedContract(orch *orchestrator.Orchestrator, kind orchestrator.Kind, flagAddr string) error {
	addr := flagAddr
	if addr == "" {
		rec, ok := deploymentStore().Get(cfg.TargetNetwork, string(kind))
		if !ok {
			return fmt.Errorf("no %s deployed on %s; run `dappdesk deploy %s` or pass --contract",
				kind, cfg.TargetNetwork, kind)
		}
		addr = rec.Address
	}
	orch.RegisterDeployed(kind, addr)
	return nil
}

// resolveWallet picks the named wallet, or the default when no name is set.
func resolveWallet() (*wallet.Wallet, error) {
	mgr := walletManager()
	if cfg.DefaultWallet != "" {
		w, err := mgr.Get(cfg.DefaultWallet)
		if err != nil {
			return nil, fmt.Errorf("wallet %q not found — import one with `dappdesk wallet import`", cfg.DefaultWallet)
		}
		return w, nil
	}
	if w := mgr.Default(); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("no wallet configured — import one with `dappdesk wallet import`")
}

// buildOrchestrator wires config, wallet, provider, and reconciler into a
// fresh orchestrator. Each CLI invocation is one session.
func buildOrchestrator() (*orchestrator.Orchestrator, error) {
	reg := network.NewRegistry()
	target, err := reg.GetByName(cfg.TargetNetwork)
	if err != nil {
		return nil, fmt.Errorf("unknown network %q — run `dappdesk networks`", cfg.TargetNetwork)
	}

	rpcURL := cfg.RPCOverride
	if rpcURL == "" {
		rpcURL, err = network.PickRPC(context.Background(), target)
		if err != nil {
			return nil, fmt.Errorf("network %q: %w; pass --rpc", target.Name, err)
		}
	}

	w, err := resolveWallet()
	if err != nil {
		return nil, err
	}
	signer := wallet.NewSigner(w, wallet.DefaultKeystore())

	prov := provider.NewSigningProvider(provider.NewHTTPProvider(rpcURL), signer)
	endpoint := provider.NewEndpoint(prov)
	reconciler := network.NewReconciler(endpoint, target)

	return orchestrator.New(endpoint, reconciler, activity.NewLog()), nil
}

// connectOrchestrator builds the orchestrator and establishes the session.
func connectOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, error) {
	orch, err := buildOrchestrator()
	if err != nil {
		return nil, err
	}
	if err := orch.Connect(ctx); err != nil {
		printLog(orch)
		return nil, err
	}
	return orch, nil
}

// printLog dumps the session's activity log, most recent first.
func printLog(orch *orchestrator.Orchestrator) {
	fmt.Println()
	fmt.Println(ui.RenderLog(orch.Log().View()))
}

// balanceString formats the account balance, degrading to "?" on a failed
// read.
func balanceString(ctx context.Context, orch *orchestrator.Orchestrator) string {
	wei := orch.Balance(ctx)
	if wei == nil {
		return "?"
	}
	return provider.WeiToDecimal(wei) + " " + orch.Target().NativeCurrency.Symbol
}

// fiatString estimates the balance's fiat value, or "" when the balance or
// price feed is unavailable.
func fiatString(ctx context.Context, orch *orchestrator.Orchestrator) string {
	wei := orch.Balance(ctx)
	if wei == nil {
		return ""
	}
	p, err := price.NewFetcher("").Quote(ctx, orch.Target().NativeCurrency.Symbol)
	if err != nil {
		return ""
	}
	native, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
	return fmt.Sprintf("$%.2f", native*p)
}
