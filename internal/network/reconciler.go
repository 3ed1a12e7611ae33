package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/hexlane/dappdesk/internal/provider"
)

// ReconcileError is a failed switch/add sequence for any reason other than
// the provider not knowing the chain (which triggers the add path).
type ReconcileError struct {
	Network string
	Err     error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("could not switch to %s: %v", e.Network, e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }

// Reconciler makes the endpoint's active network match a target network
// before any transaction is attempted.
type Reconciler struct {
	endpoint *provider.Endpoint
	target   *Descriptor
}

// NewReconciler creates a reconciler for target.
func NewReconciler(endpoint *provider.Endpoint, target *Descriptor) *Reconciler {
	return &Reconciler{endpoint: endpoint, target: target}
}

// Target returns the network being reconciled toward.
func (r *Reconciler) Target() *Descriptor { return r.target }

// Ensure checks the active chain id and, when it differs from the target,
// asks the provider to switch. A provider that does not recognize the
// chain (code 4902) is sent the full descriptor via wallet_addEthereumChain
// and then asked to switch exactly once more. If the ids already match, no
// further request is issued.
func (r *Reconciler) Ensure(ctx context.Context) error {
	current, err := r.endpoint.ChainID(ctx)
	if err != nil {
		return &ReconcileError{Network: r.target.ChainName, Err: err}
	}
	if r.target.Matches(current) {
		return nil
	}

	err = r.switchChain(ctx)
	if err == nil {
		return nil
	}

	var rpcErr *provider.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != provider.CodeUnrecognizedChain {
		return &ReconcileError{Network: r.target.ChainName, Err: err}
	}

	// Chain unknown to the provider: add it, then retry the switch once.
	if _, err := r.endpoint.Request(ctx, "wallet_addEthereumChain", r.target); err != nil {
		return &ReconcileError{Network: r.target.ChainName, Err: err}
	}
	if err := r.switchChain(ctx); err != nil {
		return &ReconcileError{Network: r.target.ChainName, Err: err}
	}
	return nil
}

func (r *Reconciler) switchChain(ctx context.Context) error {
	_, err := r.endpoint.Request(ctx, "wallet_switchEthereumChain",
		map[string]string{"chainId": r.target.ChainID})
	return err
}
