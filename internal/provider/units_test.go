package provider

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ether(n int64) *big.Int {
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return new(big.Int).Mul(big.NewInt(n), one)
}

func TestWeiToDecimal(t *testing.T) {
	assert.Equal(t, "0.000000000000000000", WeiToDecimal(big.NewInt(0)))
	assert.Equal(t, "1.000000000000000000", WeiToDecimal(ether(1)))
	assert.Equal(t, "0.000000000000000001", WeiToDecimal(big.NewInt(1)))
}

func TestDecimalToWei(t *testing.T) {
	wei, err := DecimalToWei("1")
	require.NoError(t, err)
	assert.Zero(t, wei.Cmp(ether(1)))

	wei, err = DecimalToWei("0.5")
	require.NoError(t, err)
	half := new(big.Int).Div(ether(1), big.NewInt(2))
	assert.Zero(t, wei.Cmp(half))
}

func TestDecimalToWeiExact(t *testing.T) {
	// 77 bits of significand — a float parse would round the last digit.
	wei, err := DecimalToWei("123456.123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, "123456123456789012345678", wei.String())

	_, err = DecimalToWei("0.0000000000000000001") // 19 places
	assert.Error(t, err)
}

func TestDecimalToWeiRejectsGarbage(t *testing.T) {
	_, err := DecimalToWei("abc")
	assert.Error(t, err)
	_, err = DecimalToWei("")
	assert.Error(t, err)
	_, err = DecimalToWei("1.2.3")
	assert.Error(t, err)
}

func TestDecimalToWeiRejectsNegative(t *testing.T) {
	_, err := DecimalToWei("-1")
	assert.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	hundred := new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	assert.Equal(t, "100.000000000000000000", FormatUnits(hundred, 18))
	assert.Equal(t, "42", FormatUnits(big.NewInt(42), 0))
}

func TestFormatUnitsExactAtLargeMagnitude(t *testing.T) {
	// 2^128 raw units — far past float precision, every digit must hold.
	raw := new(big.Int).Lsh(big.NewInt(1), 128)
	assert.Equal(t, "340282366920938463463.374607431768211456", FormatUnits(raw, 18))

	assert.Equal(t, "340282366920938463463.374607431768211456", WeiToDecimal(raw))
}
