package network

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hexlane/dappdesk/internal/provider"
)

// ErrNoHealthyRPC is returned when none of a network's RPC URLs respond.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

const probeTimeout = 5 * time.Second

// PickRPC probes the descriptor's RPC URLs in order and returns the first
// one that answers eth_blockNumber within the probe timeout (failover
// selection).
func PickRPC(ctx context.Context, d *Descriptor) (string, error) {
	for _, url := range d.RPCURLs {
		if probe(ctx, url) {
			return url, nil
		}
	}
	return "", ErrNoHealthyRPC
}

func probe(ctx context.Context, url string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	raw, err := provider.NewHTTPProvider(url).Request(probeCtx, "eth_blockNumber")
	if err != nil {
		return false
	}
	var blockHex string
	return json.Unmarshal(raw, &blockHex) == nil && blockHex != ""
}
