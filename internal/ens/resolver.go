// Package ens resolves ENS names through a connected provider endpoint.
package ens

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/hexlane/dappdesk/internal/provider"
)

// Registry address, shared by Ethereum mainnet and Sepolia.
const registryAddr = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

// Function selectors for the registry and resolver contracts.
const (
	selResolver = "0x0178b8bf" // resolver(bytes32)
	selAddr     = "0x3b3b57de" // addr(bytes32)
	selName     = "0x691f3431" // name(bytes32)
)

// IsName reports whether s looks like an ENS name rather than a raw
// address.
func IsName(s string) bool {
	return strings.Contains(s, ".") && !strings.HasPrefix(s, "0x")
}

// Resolver answers ENS lookups over JSON-RPC.
type Resolver struct {
	endpoint *provider.Endpoint
}

func NewResolver(e *provider.Endpoint) *Resolver {
	return &Resolver{endpoint: e}
}

// Resolve returns the address an ENS name points at.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	node := Namehash(name)

	resolver, err := r.registryResolver(ctx, node)
	if err != nil {
		return "", err
	}
	if resolver == "" {
		return "", fmt.Errorf("no resolver set for %q", name)
	}

	out, err := r.call(ctx, resolver, selAddr+node)
	if err != nil {
		return "", fmt.Errorf("query resolver for %q: %w", name, err)
	}
	addr := wordToAddress(out)
	if addr == "" {
		return "", fmt.Errorf("no address record for %q", name)
	}
	return addr, nil
}

// ReverseName returns the primary name registered for an address, or ""
// when none is set.
func (r *Resolver) ReverseName(ctx context.Context, address string) (string, error) {
	node := Namehash(strings.ToLower(strings.TrimPrefix(address, "0x")) + ".addr.reverse")

	resolver, err := r.registryResolver(ctx, node)
	if err != nil {
		return "", err
	}
	if resolver == "" {
		return "", nil
	}

	out, err := r.call(ctx, resolver, selName+node)
	if err != nil {
		return "", fmt.Errorf("query reverse resolver: %w", err)
	}
	return wordToString(out), nil
}

func (r *Resolver) registryResolver(ctx context.Context, node string) (string, error) {
	out, err := r.call(ctx, registryAddr, selResolver+node)
	if err != nil {
		return "", fmt.Errorf("query ens registry: %w", err)
	}
	return wordToAddress(out), nil
}

func (r *Resolver) call(ctx context.Context, to, data string) (string, error) {
	raw, err := r.endpoint.Request(ctx, "eth_call", map[string]string{"to": to, "data": data}, "latest")
	if err != nil {
		return "", err
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode eth_call result: %w", err)
	}
	return out, nil
}

// Namehash implements the EIP-137 name hashing algorithm. The returned
// node is 64 hex characters with no 0x prefix, ready to append to
// calldata.
func Namehash(name string) string {
	node := make([]byte, 32)
	if name == "" {
		return hex.EncodeToString(node)
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := keccak256([]byte(labels[i]))
		node = keccak256(append(node, label...))
	}
	return hex.EncodeToString(node)
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// wordToAddress extracts a 20-byte address from a 32-byte ABI word,
// returning "" for the zero address.
func wordToAddress(word string) string {
	clean := strings.TrimPrefix(word, "0x")
	if len(clean) < 64 {
		return ""
	}
	addr := clean[24:64]
	if strings.Trim(addr, "0") == "" {
		return ""
	}
	return "0x" + addr
}

// wordToString decodes an ABI-encoded dynamic string return value.
func wordToString(out string) string {
	clean := strings.TrimPrefix(out, "0x")
	if len(clean) < 128 {
		return ""
	}
	n, err := strconv.ParseInt(clean[64:128], 16, 64)
	if err != nil || n <= 0 {
		return ""
	}
	end := 128 + int(n)*2
	if end > len(clean) {
		end = len(clean)
	}
	b, err := hex.DecodeString(clean[128:end])
	if err != nil {
		return ""
	}
	return string(b)
}
