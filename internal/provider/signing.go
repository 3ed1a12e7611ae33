package provider

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/hexlane/dappdesk/internal/config"
	"github.com/hexlane/dappdesk/internal/wallet"
)

// TxParams is the transaction object accepted by eth_sendTransaction.
// All numeric fields are 0x-prefixed hex strings; To is empty for a
// contract creation.
type TxParams struct {
	From  string `json:"from"`
	To    string `json:"to,omitempty"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data,omitempty"`
}

// SigningProvider decorates a node-backed provider with a local signer so
// it can stand in for a wallet extension: it answers eth_requestAccounts
// from the signer and turns eth_sendTransaction into a signed
// eth_sendRawTransaction. Chain switch requests succeed only for the chain
// the underlying node actually serves.
type SigningProvider struct {
	node   Provider
	signer *wallet.Signer
}

// NewSigningProvider wraps node with signer.
func NewSigningProvider(node Provider, signer *wallet.Signer) *SigningProvider {
	return &SigningProvider{node: node, signer: signer}
}

// Request implements Provider.
func (p *SigningProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	switch method {
	case "eth_requestAccounts", "eth_accounts":
		return json.Marshal([]string{p.signer.Address()})
	case "eth_sendTransaction":
		return p.sendTransaction(ctx, params)
	case "wallet_switchEthereumChain":
		return p.switchChain(ctx, params)
	case "wallet_addEthereumChain":
		return p.addChain(ctx, params)
	default:
		return p.node.Request(ctx, method, params...)
	}
}

func (p *SigningProvider) sendTransaction(ctx context.Context, params []interface{}) (json.RawMessage, error) {
	if len(params) == 0 {
		return nil, &RPCError{Code: -32602, Message: "missing transaction object"}
	}
	tp, err := decodeParam[TxParams](params[0])
	if err != nil {
		return nil, &RPCError{Code: -32602, Message: err.Error()}
	}

	value := big.NewInt(0)
	if tp.Value != "" {
		v, ok := new(big.Int).SetString(strings.TrimPrefix(tp.Value, "0x"), 16)
		if !ok {
			return nil, &RPCError{Code: -32602, Message: fmt.Sprintf("invalid value %q", tp.Value)}
		}
		value = v
	}

	gas, err := p.estimateGas(ctx, tp)
	if err != nil {
		// The node could not simulate; fall back to conservative limits.
		if tp.To == "" {
			gas = config.GasLimitContractDeploy
		} else if tp.Data != "" {
			gas = config.GasLimitContractCall
		} else {
			gas = config.GasLimitNativeTransfer
		}
	}

	gasPrice, err := p.bigQuery(ctx, "eth_gasPrice")
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %w", err)
	}
	nonce, err := p.bigQuery(ctx, "eth_getTransactionCount", p.signer.Address(), "pending")
	if err != nil {
		return nil, fmt.Errorf("getting nonce: %w", err)
	}
	chainID, err := p.bigQuery(ctx, "eth_chainId")
	if err != nil {
		return nil, fmt.Errorf("getting chain id: %w", err)
	}

	var to *common.Address
	if tp.To != "" {
		addr := common.HexToAddress(tp.To)
		to = &addr
	}

	data, err := hexDecode(tp.Data)
	if err != nil {
		return nil, &RPCError{Code: -32602, Message: fmt.Sprintf("invalid data: %v", err)}
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce.Uint64(),
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        to,
		Value:     value,
		Data:      data,
	})

	raw, err := p.signer.SignTx(tx, chainID)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	return p.node.Request(ctx, "eth_sendRawTransaction", "0x"+hex.EncodeToString(raw))
}

// switchChainParam is the single parameter of wallet_switchEthereumChain.
type switchChainParam struct {
	ChainID string `json:"chainId"`
}

func (p *SigningProvider) switchChain(ctx context.Context, params []interface{}) (json.RawMessage, error) {
	if len(params) == 0 {
		return nil, &RPCError{Code: -32602, Message: "missing chainId parameter"}
	}
	sc, err := decodeParam[switchChainParam](params[0])
	if err != nil {
		return nil, &RPCError{Code: -32602, Message: err.Error()}
	}

	raw, err := p.node.Request(ctx, "eth_chainId")
	if err != nil {
		return nil, err
	}
	var nodeID string
	if err := json.Unmarshal(raw, &nodeID); err != nil {
		return nil, fmt.Errorf("parsing chain id: %w", err)
	}

	// Bound to a single node: only the chain that node serves is known.
	if !strings.EqualFold(nodeID, sc.ChainID) {
		return nil, &RPCError{
			Code:    CodeUnrecognizedChain,
			Message: fmt.Sprintf("unrecognized chain ID %q", sc.ChainID),
		}
	}
	return json.Marshal(nil)
}

func (p *SigningProvider) addChain(ctx context.Context, params []interface{}) (json.RawMessage, error) {
	// Accepted as a no-op: the node already serves whatever it serves, and
	// a subsequent switch will verify the id. Mirrors wallets that accept
	// the descriptor and still require an explicit switch.
	if len(params) == 0 {
		return nil, &RPCError{Code: -32602, Message: "missing chain descriptor"}
	}
	return json.Marshal(nil)
}

func (p *SigningProvider) estimateGas(ctx context.Context, tp TxParams) (uint64, error) {
	call := map[string]string{"from": tp.From}
	if call["from"] == "" {
		call["from"] = p.signer.Address()
	}
	if tp.To != "" {
		call["to"] = tp.To
	}
	if tp.Data != "" {
		call["data"] = tp.Data
	}
	if tp.Value != "" {
		call["value"] = tp.Value
	}
	n, err := p.bigQuery(ctx, "eth_estimateGas", call)
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// bigQuery issues a call whose result is a hex quantity.
func (p *SigningProvider) bigQuery(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	raw, err := p.node.Request(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	var hexStr string
	if err := json.Unmarshal(raw, &hexStr); err != nil {
		return nil, fmt.Errorf("parsing %s result: %w", method, err)
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(hexStr, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("could not parse %s result: %s", method, hexStr)
	}
	return n, nil
}

// decodeParam round-trips an RPC parameter through JSON into T, so both
// typed structs and raw map[string]interface{} params are accepted.
func decodeParam[T any](v interface{}) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("invalid parameter shape: %w", err)
	}
	return out, nil
}

func hexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, nil
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}
