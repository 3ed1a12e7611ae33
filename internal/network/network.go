package network

import (
	"errors"
	"strings"
)

// ErrNetworkNotFound is returned when a network is not in the registry.
var ErrNetworkNotFound = errors.New("network not found")

// Currency is the native currency metadata carried by an add-chain request.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Descriptor is the full network description passed to
// wallet_addEthereumChain. ChainID is a 0x-prefixed hex string because
// that is the wire format providers compare against.
type Descriptor struct {
	ChainID           string   `json:"chainId"`
	ChainName         string   `json:"chainName"`
	NativeCurrency    Currency `json:"nativeCurrency"`
	RPCURLs           []string `json:"rpcUrls"`
	BlockExplorerURLs []string `json:"blockExplorerUrls,omitempty"`

	// Name is the registry slug; not part of the wire descriptor.
	Name string `json:"-"`
}

// Matches reports whether id refers to this network. Hex chain ids are
// compared case-insensitively so "0xAA36A7" and "0xaa36a7" agree.
func (d *Descriptor) Matches(id string) bool {
	return strings.EqualFold(d.ChainID, id)
}

// DefaultRPC returns the first RPC URL, or "".
func (d *Descriptor) DefaultRPC() string {
	if len(d.RPCURLs) == 0 {
		return ""
	}
	return d.RPCURLs[0]
}

// TxURL builds an explorer link for a transaction hash, or "" when the
// network has no explorer.
func (d *Descriptor) TxURL(hash string) string {
	if len(d.BlockExplorerURLs) == 0 {
		return ""
	}
	return strings.TrimSuffix(d.BlockExplorerURLs[0], "/") + "/tx/" + hash
}

// AddressURL builds an explorer link for an address.
func (d *Descriptor) AddressURL(addr string) string {
	if len(d.BlockExplorerURLs) == 0 {
		return ""
	}
	return strings.TrimSuffix(d.BlockExplorerURLs[0], "/") + "/address/" + addr
}

// Registry holds the built-in target networks.
type Registry struct {
	networks []Descriptor
	byName   map[string]*Descriptor
	byID     map[string]*Descriptor
}

// NewRegistry returns the registry of supported target networks.
func NewRegistry() *Registry {
	networks := builtinNetworks()
	r := &Registry{
		networks: networks,
		byName:   make(map[string]*Descriptor, len(networks)),
		byID:     make(map[string]*Descriptor, len(networks)),
	}
	for i := range r.networks {
		d := &r.networks[i]
		r.byName[d.Name] = d
		r.byID[strings.ToLower(d.ChainID)] = d
	}
	return r
}

// All returns every network in the registry.
func (r *Registry) All() []Descriptor {
	return r.networks
}

// GetByName finds a network by its slug (e.g. "sepolia").
func (r *Registry) GetByName(name string) (*Descriptor, error) {
	d, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return d, nil
}

// GetByChainID finds a network by hex chain id (case-insensitive).
func (r *Registry) GetByChainID(id string) (*Descriptor, error) {
	d, ok := r.byID[strings.ToLower(id)]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return d, nil
}

func builtinNetworks() []Descriptor {
	return []Descriptor{
		{
			Name:      "sepolia",
			ChainID:   "0xaa36a7",
			ChainName: "Sepolia Testnet",
			NativeCurrency: Currency{
				Name:     "Sepolia Ether",
				Symbol:   "ETH",
				Decimals: 18,
			},
			RPCURLs:           []string{"https://ethereum-sepolia-rpc.publicnode.com", "https://rpc.sepolia.org"},
			BlockExplorerURLs: []string{"https://sepolia.etherscan.io"},
		},
		{
			Name:      "base-sepolia",
			ChainID:   "0x14a34",
			ChainName: "Base Sepolia Testnet",
			NativeCurrency: Currency{
				Name:     "Sepolia Ether",
				Symbol:   "ETH",
				Decimals: 18,
			},
			RPCURLs:           []string{"https://sepolia.base.org"},
			BlockExplorerURLs: []string{"https://sepolia.basescan.org"},
		},
		{
			Name:      "localnet",
			ChainID:   "0x7a69", // 31337, anvil/hardhat default
			ChainName: "Local Devnet",
			NativeCurrency: Currency{
				Name:     "Ether",
				Symbol:   "ETH",
				Decimals: 18,
			},
			RPCURLs: []string{"http://127.0.0.1:8545"},
		},
	}
}
