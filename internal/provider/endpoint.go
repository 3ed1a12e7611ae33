package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Endpoint is the single point of contact with the signing provider.
// It owns no session state; the orchestrator keeps the connected account.
type Endpoint struct {
	prov Provider
}

// NewEndpoint wraps a provider. prov may be nil (no wallet installed);
// every call then fails with ErrNoProvider without issuing any request.
func NewEndpoint(prov Provider) *Endpoint {
	return &Endpoint{prov: prov}
}

// Connect requests account authorization and returns the active account.
func (e *Endpoint) Connect(ctx context.Context) (string, error) {
	if e.prov == nil {
		return "", ErrNoProvider
	}
	raw, err := e.prov.Request(ctx, "eth_requestAccounts")
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == CodeUserRejected {
			return "", ErrUserRejected
		}
		return "", err
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return "", fmt.Errorf("parsing accounts: %w", err)
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("provider returned no accounts")
	}
	return accounts[0], nil
}

// ChainID reads the active network id (hex string) with no side effects.
func (e *Endpoint) ChainID(ctx context.Context) (string, error) {
	if e.prov == nil {
		return "", ErrNoProvider
	}
	raw, err := e.prov.Request(ctx, "eth_chainId")
	if err != nil {
		return "", err
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("parsing chain id: %w", err)
	}
	return id, nil
}

// NativeBalance reads the native balance in wei. Failures come back as
// *ReadError: non-fatal, the caller shows an unknown balance instead.
func (e *Endpoint) NativeBalance(ctx context.Context, account string) (*big.Int, error) {
	if e.prov == nil {
		return nil, &ReadError{Op: "balance", Err: ErrNoProvider}
	}
	raw, err := e.prov.Request(ctx, "eth_getBalance", account, "latest")
	if err != nil {
		return nil, &ReadError{Op: "balance", Err: err}
	}
	var hexStr string
	if err := json.Unmarshal(raw, &hexStr); err != nil {
		return nil, &ReadError{Op: "balance", Err: err}
	}
	wei, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return nil, &ReadError{Op: "balance", Err: fmt.Errorf("could not parse balance hex: %s", hexStr)}
	}
	return wei, nil
}

// Request is the generic escape hatch used by the network reconciler.
// Provider errors keep their structured *RPCError shape.
func (e *Endpoint) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if e.prov == nil {
		return nil, ErrNoProvider
	}
	return e.prov.Request(ctx, method, params...)
}
