package orchestrator

import (
	"errors"

	"github.com/hexlane/dappdesk/internal/config"
	"github.com/hexlane/dappdesk/internal/contract"
	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/provider"
)

// ErrBusy is returned when an action is triggered while another is in
// flight. It is a no-op: nothing is logged and no RPC is issued.
var ErrBusy = errors.New("another action is in progress")

// PreflightError is a failed action precondition. Nothing was sent to the
// provider or the chain.
type PreflightError struct {
	Reason string
}

func (e *PreflightError) Error() string { return e.Reason }

// classify turns any action error into the single human-readable message
// that goes into the activity log.
func classify(err error) string {
	var (
		pre       *PreflightError
		reconcile *network.ReconcileError
		deploy    *contract.DeployError
		call      *contract.CallError
		rpcErr    *provider.RPCError
	)
	switch {
	case errors.Is(err, provider.ErrNoProvider):
		return "No wallet provider available. Install or enable one and retry."
	case provider.IsUserRejected(err):
		return "Request rejected in the wallet."
	case errors.As(err, &pre):
		return truncate(pre.Reason)
	case errors.As(err, &reconcile):
		return truncate("Network switch failed: " + reconcile.Err.Error())
	case errors.As(err, &deploy):
		return truncate("Deployment failed: " + deploy.Err.Error())
	case errors.As(err, &call):
		return truncate("Transaction failed: " + call.Err.Error())
	case errors.As(err, &rpcErr):
		return truncate("Provider error: " + rpcErr.Message)
	default:
		return truncate(err.Error())
	}
}

// truncate bounds a log message so a verbose RPC failure cannot swamp the
// activity log.
func truncate(msg string) string {
	runes := []rune(msg)
	if len(runes) <= config.MaxLogMessageLen {
		return msg
	}
	return string(runes[:config.MaxLogMessageLen-1]) + "…"
}
