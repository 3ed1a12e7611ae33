package provider

import (
	"fmt"
	"math/big"
	"strings"
)

const nativeDecimals = 18

// WeiToDecimal converts a wei amount to a native-currency decimal string.
func WeiToDecimal(wei *big.Int) string {
	return FormatUnits(wei, nativeDecimals)
}

// DecimalToWei parses a native-currency decimal string ("0.5") into wei.
// Parsing is pure integer arithmetic; more than 18 fractional digits is an
// error rather than a silent rounding.
func DecimalToWei(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("amount must not be negative")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > nativeDecimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, nativeDecimals)
	}
	frac += strings.Repeat("0", nativeDecimals-len(frac))
	wei, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return wei, nil
}

// FormatUnits converts a raw token amount to a decimal string for display.
// The digits are split at the decimal point rather than divided through a
// float, so the result is exact at any magnitude.
func FormatUnits(raw *big.Int, decimals int) string {
	if decimals <= 0 {
		return raw.String()
	}
	digits := new(big.Int).Abs(raw).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	out := digits[:len(digits)-decimals] + "." + digits[len(digits)-decimals:]
	if raw.Sign() < 0 {
		out = "-" + out
	}
	return out
}
