package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hexlane/dappdesk/internal/config"
	"github.com/hexlane/dappdesk/internal/provider"
)

// DeployError is a failed contract deployment: provider rejection, revert,
// or a confirmation wait that ran out of time.
type DeployError struct {
	TxHash string
	Err    error
}

func (e *DeployError) Error() string {
	if e.TxHash == "" {
		return fmt.Sprintf("deployment failed: %v", e.Err)
	}
	return fmt.Sprintf("deployment failed (tx %s): %v", e.TxHash, e.Err)
}

func (e *DeployError) Unwrap() error { return e.Err }

// CallError is a failed state-mutating contract call.
type CallError struct {
	Method string
	TxHash string
	Err    error
}

func (e *CallError) Error() string {
	if e.TxHash == "" {
		return fmt.Sprintf("%s failed: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("%s failed (tx %s): %v", e.Method, e.TxHash, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// TxResult is the outcome of a confirmed state-mutating call. Success is
// only reported once the transaction is mined, never on broadcast.
type TxResult struct {
	TxHash          string
	BlockNumber     uint64
	GasUsed         uint64
	ContractAddress string // set for contract creations
}

// receipt mirrors the fields of eth_getTransactionReceipt we care about.
type receipt struct {
	Status          string `json:"status"`
	BlockNumber     string `json:"blockNumber"`
	GasUsed         string `json:"gasUsed"`
	ContractAddress string `json:"contractAddress"`
}

// Session performs deploy, read, and write-and-confirm operations against
// one contract interface through the wallet endpoint.
type Session struct {
	endpoint *provider.Endpoint
	abi      []ABIEntry
	from     string
}

// NewSession binds an endpoint, an ABI, and the sending account.
func NewSession(endpoint *provider.Endpoint, abi []ABIEntry, from string) *Session {
	return &Session{endpoint: endpoint, abi: abi, from: from}
}

// SubmitDeploy broadcasts a contract-creation transaction and returns its
// hash. The contract address is only known after WaitMined.
func (s *Session) SubmitDeploy(ctx context.Context, bytecode string) (string, error) {
	txHash, err := s.submit(ctx, provider.TxParams{
		From: s.from,
		Data: bytecode,
	})
	if err != nil {
		return "", &DeployError{Err: err}
	}
	return txHash, nil
}

// Deploy submits a contract-creation transaction and waits until it is
// mined. The returned address always comes from the confirmed receipt.
func (s *Session) Deploy(ctx context.Context, bytecode string) (addr, txHash string, err error) {
	txHash, err = s.SubmitDeploy(ctx, bytecode)
	if err != nil {
		return "", "", err
	}

	res, err := WaitMined(ctx, s.endpoint, txHash, config.TxDeployTimeout)
	if err != nil {
		return "", txHash, &DeployError{TxHash: txHash, Err: err}
	}
	if res.ContractAddress == "" {
		return "", txHash, &DeployError{TxHash: txHash, Err: fmt.Errorf("receipt carries no contract address")}
	}
	return res.ContractAddress, txHash, nil
}

// SubmitWrite encodes and broadcasts a state-mutating call and returns the
// transaction hash without waiting for confirmation. value may be nil for
// nonpayable functions.
func (s *Session) SubmitWrite(ctx context.Context, contractAddr, method string, value *big.Int, args ...string) (string, error) {
	fn := findFunction(s.abi, method)
	if fn == nil {
		return "", &CallError{Method: method, Err: fmt.Errorf("function not in ABI")}
	}
	if !fn.IsWriteFunction() {
		return "", &CallError{Method: method, Err: fmt.Errorf("not a write function (stateMutability: %s)", fn.StateMutability)}
	}
	if value != nil && value.Sign() > 0 && !fn.IsPayable() {
		return "", &CallError{Method: method, Err: fmt.Errorf("function is not payable")}
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return "", &CallError{Method: method, Err: err}
	}

	params := provider.TxParams{
		From: s.from,
		To:   contractAddr,
		Data: calldata,
	}
	if value != nil && value.Sign() > 0 {
		params.Value = "0x" + value.Text(16)
	}

	txHash, err := s.submit(ctx, params)
	if err != nil {
		return "", &CallError{Method: method, Err: err}
	}
	return txHash, nil
}

// Write submits a state-mutating call and blocks until one confirmation.
func (s *Session) Write(ctx context.Context, contractAddr, method string, value *big.Int, args ...string) (*TxResult, error) {
	txHash, err := s.SubmitWrite(ctx, contractAddr, method, value, args...)
	if err != nil {
		return nil, err
	}
	res, err := WaitMined(ctx, s.endpoint, txHash, config.TxConfirmTimeout)
	if err != nil {
		return nil, &CallError{Method: method, TxHash: txHash, Err: err}
	}
	return res, nil
}

// Read executes a view/pure call and returns the decoded results. No
// transaction is created.
func (s *Session) Read(ctx context.Context, contractAddr, method string, args ...string) ([]string, error) {
	fn := findFunction(s.abi, method)
	if fn == nil {
		return nil, fmt.Errorf("function %q not in ABI", method)
	}
	if !fn.IsReadFunction() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", method, fn.StateMutability)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	raw, err := s.endpoint.Request(ctx, "eth_call", map[string]string{
		"to":   contractAddr,
		"data": calldata,
	}, "latest")
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}
	var hexStr string
	if err := json.Unmarshal(raw, &hexStr); err != nil {
		return nil, fmt.Errorf("parsing call result: %w", err)
	}

	return decodeResult(fn, hexStr)
}

// submit sends eth_sendTransaction and returns the tx hash.
func (s *Session) submit(ctx context.Context, params provider.TxParams) (string, error) {
	raw, err := s.endpoint.Request(ctx, "eth_sendTransaction", params)
	if err != nil {
		return "", err
	}
	var hash string
	if err := json.Unmarshal(raw, &hash); err != nil {
		return "", fmt.Errorf("parsing tx hash: %w", err)
	}
	return hash, nil
}

// WaitMined blocks until txHash has one confirmation and returns the
// mined result. Used by Session for contract writes and by the
// orchestrator for plain native transfers.
func WaitMined(ctx context.Context, endpoint *provider.Endpoint, txHash string, timeout time.Duration) (*TxResult, error) {
	rcpt, err := waitReceipt(ctx, endpoint, txHash, timeout)
	if err != nil {
		return nil, err
	}
	res := &TxResult{TxHash: txHash, ContractAddress: rcpt.ContractAddress}
	if n, ok := parseBigHex(rcpt.BlockNumber); ok {
		res.BlockNumber = n.Uint64()
	}
	if n, ok := parseBigHex(rcpt.GasUsed); ok {
		res.GasUsed = n.Uint64()
	}
	return res, nil
}

// waitReceipt polls eth_getTransactionReceipt until the transaction is
// mined, the context is canceled, or timeout expires. A status-0 receipt
// is a revert and returns an error.
func waitReceipt(ctx context.Context, endpoint *provider.Endpoint, txHash string, timeout time.Duration) (*receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(config.ReceiptPollEvery)
	defer ticker.Stop()

	for {
		raw, err := endpoint.Request(ctx, "eth_getTransactionReceipt", txHash)
		if err != nil {
			return nil, err
		}
		if !isNullResult(raw) {
			var r receipt
			if err := json.Unmarshal(raw, &r); err != nil {
				return nil, fmt.Errorf("parsing receipt: %w", err)
			}
			if st, ok := parseBigHex(r.Status); ok && st.Sign() == 0 {
				return &r, fmt.Errorf("transaction reverted")
			}
			return &r, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not mined within %s", txHash, timeout)
		case <-ticker.C:
		}
	}
}

func isNullResult(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func parseBigHex(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	return n, ok
}
