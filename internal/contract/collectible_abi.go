package contract

// Collectible is the built-in NFT-style ledger: the deployer becomes the
// owner and may mint one unit at a time to any address.
//
// The creation code is hand-assembled EVM (Shanghai). The constructor
// stores the deployer in slot 0 and returns the runtime; balances live in
// a mapping at slot 1 (keccak256(account ‖ 1)). Nonpayable entries revert
// on callvalue, mint reverts unless the caller is the owner.
//
// Function selectors:
//
//	owner()        → 0x8da5cb5b
//	mint(address)  → 0x6a627842
//	balanceOf(a)   → 0x70a08231
func init() {
	RegisterBuiltin(Builtin{
		ID:          "collectible",
		Name:        "Collectible (owner-minted NFT ledger)",
		Description: "Minimal ownable collectible: owner mints one unit per call.",
		ABI:         collectibleABI,
		Bytecode:    collectibleBytecode,
	})
}

var collectibleABI = []ABIEntry{
	{
		Name: "owner", Type: "function",
		Inputs: nil, Outputs: []ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "balanceOf", Type: "function",
		Inputs:          []ABIParam{{Name: "account", Type: "address"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint256"}},
		StateMutability: "view",
	},
	{
		Name: "mint", Type: "function",
		Inputs:          []ABIParam{{Name: "to", Type: "address"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
}

const collectibleBytecode = "0x34156008575f5ffd5b335f55610089806100175f395ff35f3560e01c80638da5cb5b1461002957806370a082311461003c5780636a6278421461005c575f5ffd5b3415610033575f5ffd5b5f545f5260205ff35b3415610046575f5ffd5b6004355f52600160205260405f20545f5260205ff35b3415610066575f5ffd5b5f543314610072575f5ffd5b6004355f52600160205260405f208054600101905500"
