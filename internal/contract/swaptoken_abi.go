package contract

// SwapToken is the built-in ERC-20-style ledger: the deployer becomes the
// owner and may mint arbitrary amounts; anyone may call the payable swap()
// to mint themselves value × 100 tokens.
//
// The creation code is hand-assembled EVM (Shanghai), same layout as the
// collectible: owner in slot 0, balances in a mapping at slot 1, nonpayable
// entries revert on callvalue. swap() credits keccak256(caller ‖ 1) with
// callvalue × 100 raw units.
//
// Function selectors:
//
//	owner()             → 0x8da5cb5b
//	decimals()          → 0x313ce567
//	balanceOf(address)  → 0x70a08231
//	mint(address,u256)  → 0x40c10f19
//	swap()              → 0x8119c065
func init() {
	RegisterBuiltin(Builtin{
		ID:          "swaptoken",
		Name:        "SwapToken (fixed-rate swap ERC-20)",
		Description: "Ownable ERC-20 with owner mint and a payable swap() minting value x 100.",
		ABI:         swapTokenABI,
		Bytecode:    swapTokenBytecode,
	})
}

var swapTokenABI = []ABIEntry{
	// ── reads ────────────────────────────────────────────────────────────
	{
		Name: "owner", Type: "function",
		Inputs: nil, Outputs: []ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "decimals", Type: "function",
		Inputs: nil, Outputs: []ABIParam{{Name: "", Type: "uint8"}},
		StateMutability: "view",
	},
	{
		Name: "balanceOf", Type: "function",
		Inputs:          []ABIParam{{Name: "account", Type: "address"}},
		Outputs:         []ABIParam{{Name: "", Type: "uint256"}},
		StateMutability: "view",
	},
	// ── writes ───────────────────────────────────────────────────────────
	{
		Name: "mint", Type: "function",
		Inputs:          []ABIParam{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "swap", Type: "function",
		Inputs:          nil,
		Outputs:         nil,
		StateMutability: "payable",
	},
}

const swapTokenBytecode = "0x34156008575f5ffd5b335f556100ca806100175f395ff35f3560e01c80638da5cb5b1461003f578063313ce5671461005257806370a082311461006557806340c10f19146100855780638119c065146100b3575f5ffd5b3415610049575f5ffd5b5f545f5260205ff35b341561005c575f5ffd5b60125f5260205ff35b341561006f575f5ffd5b6004355f52600160205260405f20545f5260205ff35b341561008f575f5ffd5b5f54331461009b575f5ffd5b6004355f52600160205260405f206024358154019055005b335f52600160205260405f2034606402815401905500"
