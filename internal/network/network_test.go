package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetByName(t *testing.T) {
	reg := NewRegistry()

	d, err := reg.GetByName("sepolia")
	require.NoError(t, err)
	assert.Equal(t, "0xaa36a7", d.ChainID)

	_, err = reg.GetByName("mainnet-of-nowhere")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}

func TestRegistryGetByChainIDCaseInsensitive(t *testing.T) {
	reg := NewRegistry()

	d, err := reg.GetByChainID("0xAA36A7")
	require.NoError(t, err)
	assert.Equal(t, "sepolia", d.Name)
}

func TestRegistryAll(t *testing.T) {
	names := make(map[string]bool)
	for _, d := range NewRegistry().All() {
		names[d.Name] = true
	}
	assert.True(t, names["sepolia"])
	assert.True(t, names["base-sepolia"])
	assert.True(t, names["localnet"])
}

func TestMatchesIgnoresHexCase(t *testing.T) {
	d := &Descriptor{ChainID: "0xaa36a7"}

	assert.True(t, d.Matches("0xaa36a7"))
	assert.True(t, d.Matches("0xAA36A7"))
	assert.True(t, d.Matches("0xAa36a7"))
	assert.False(t, d.Matches("0x1"))
}

func TestExplorerURLs(t *testing.T) {
	d := &Descriptor{BlockExplorerURLs: []string{"https://sepolia.etherscan.io/"}}

	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", d.TxURL("0xabc"))
	assert.Equal(t, "https://sepolia.etherscan.io/address/0xdef", d.AddressURL("0xdef"))
}

func TestExplorerURLsEmptyWithoutExplorer(t *testing.T) {
	d := &Descriptor{}

	assert.Empty(t, d.TxURL("0xabc"))
	assert.Empty(t, d.AddressURL("0xdef"))
}

func TestDefaultRPC(t *testing.T) {
	d := &Descriptor{RPCURLs: []string{"https://a", "https://b"}}
	assert.Equal(t, "https://a", d.DefaultRPC())
	assert.Empty(t, (&Descriptor{}).DefaultRPC())
}
