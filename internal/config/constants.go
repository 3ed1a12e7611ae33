package config

import "time"

// Gas limits used as eth_estimateGas fallbacks when the node cannot
// simulate the transaction. Conservative upper bounds.
const (
	GasLimitNativeTransfer = uint64(21_000)
	GasLimitContractCall   = uint64(200_000)
	GasLimitContractDeploy = uint64(1_500_000)
)

// Confirmation wait bounds. The upstream page blocked forever on a hung
// provider; here every wait is capped.
const (
	TxConfirmTimeout = 3 * time.Minute
	TxDeployTimeout  = 5 * time.Minute
	ReceiptPollEvery = 2 * time.Second
)

// Token economics of the built-in swap token.
const (
	// TokensPerNative is the fixed swap rate displayed to the user. The
	// contract's own rate is authoritative; this constant only feeds the
	// success message.
	TokensPerNative = int64(100)

	// MintTokenUnits is the whole-token amount minted to the owner per
	// mint action, before scaling by the token's decimals.
	MintTokenUnits = int64(100)

	// TokenDecimals is the decimals of the built-in swap token.
	TokenDecimals = 18
)

// MaxLogMessageLen bounds activity log messages so one failed RPC dump
// cannot swamp the log.
const MaxLogMessageLen = 200
