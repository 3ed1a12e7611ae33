package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Provider is the injected signing provider: an opaque JSON-RPC endpoint
// that may prompt its user before honoring account or transaction requests.
// Provider-level failures are returned as *RPCError so callers can branch
// on the code instead of probing message text.
type Provider interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// Well-known provider error codes (EIP-1193 / EIP-3085).
const (
	CodeUserRejected      = 4001  // user declined the wallet prompt
	CodeUnrecognizedChain = 4902  // wallet_switchEthereumChain: chain not added
	CodeMethodNotFound    = -32601
)

// RPCError is a structured provider-level error (code + message).
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// Sentinel errors for the two connect failure modes.
var (
	ErrNoProvider   = errors.New("no signing provider available")
	ErrUserRejected = errors.New("request rejected by user")
)

// IsUserRejected reports whether err is a user-rejection, either the
// sentinel or a raw RPCError carrying code 4001.
func IsUserRejected(err error) bool {
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == CodeUserRejected
}

// ReadError marks a non-fatal read failure (e.g. a balance refresh).
// Callers degrade the displayed value instead of aborting the action.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }
