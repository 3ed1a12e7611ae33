package contract

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	all := AllBuiltins()
	require.Len(t, all, 2)
	assert.Equal(t, "collectible", all[0].ID)
	assert.Equal(t, "swaptoken", all[1].ID)
}

func TestCollectibleSurface(t *testing.T) {
	b, ok := GetBuiltin("collectible")
	require.True(t, ok)

	mint := findFunction(b.ABI, "mint")
	require.NotNil(t, mint)
	assert.Equal(t, "0x6a627842", mint.Selector())
	assert.True(t, mint.IsWriteFunction())
	assert.False(t, mint.IsPayable())

	owner := findFunction(b.ABI, "owner")
	require.NotNil(t, owner)
	assert.True(t, owner.IsReadFunction())
}

func TestSwapTokenSurface(t *testing.T) {
	b, ok := GetBuiltin("swaptoken")
	require.True(t, ok)

	swap := findFunction(b.ABI, "swap")
	require.NotNil(t, swap)
	assert.Equal(t, "0x8119c065", swap.Selector())
	assert.True(t, swap.IsPayable())

	mint := findFunction(b.ABI, "mint")
	require.NotNil(t, mint)
	assert.Equal(t, "0x40c10f19", mint.Selector())
	assert.False(t, mint.IsPayable())
}

func TestBuiltinBytecodeIsValidHex(t *testing.T) {
	for _, b := range AllBuiltins() {
		require.True(t, strings.HasPrefix(b.Bytecode, "0x"), b.ID)
		_, err := hex.DecodeString(strings.TrimPrefix(b.Bytecode, "0x"))
		require.NoError(t, err, b.ID)
	}
}

// initCodeReturn parses the deploy trailer of a creation blob —
// PUSH2 <len> DUP1 PUSH2 <off> PUSH0 CODECOPY PUSH0 RETURN — and reports
// the runtime length and offset it promises to copy.
func initCodeReturn(t *testing.T, code []byte) (length, offset int) {
	t.Helper()
	for i := 0; i+10 < len(code); i++ {
		if code[i] == 0x61 && code[i+3] == 0x80 && code[i+4] == 0x61 &&
			code[i+7] == 0x5f && code[i+8] == 0x39 && code[i+9] == 0x5f && code[i+10] == 0xf3 {
			length = int(code[i+1])<<8 | int(code[i+2])
			offset = int(code[i+5])<<8 | int(code[i+6])
			return length, offset
		}
	}
	t.Fatal("no CODECOPY/RETURN trailer found in creation code")
	return 0, 0
}

// A creation blob whose trailer promises more runtime than the blob carries
// deploys fine (CODECOPY zero-fills) but leaves a contract whose dispatch
// targets land on zero bytes and revert.
func TestBuiltinInitCodeReturnsFullRuntime(t *testing.T) {
	for _, b := range AllBuiltins() {
		code, err := hex.DecodeString(strings.TrimPrefix(b.Bytecode, "0x"))
		require.NoError(t, err, b.ID)

		length, offset := initCodeReturn(t, code)
		assert.Positive(t, length, b.ID)
		require.GreaterOrEqual(t, len(code)-offset, length,
			"%s: init code returns %d runtime bytes from offset %d but only %d exist",
			b.ID, length, offset, len(code)-offset)

		// Every ABI function must be dispatchable: its selector appears as a
		// PUSH4 immediate in the shipped runtime.
		runtime := code[offset : offset+length]
		for _, fn := range b.ABI {
			sel, err := hex.DecodeString(strings.TrimPrefix(fn.Selector(), "0x"))
			require.NoError(t, err)
			assert.True(t, bytes.Contains(runtime, append([]byte{0x63}, sel...)),
				"%s: selector %s for %s missing from runtime dispatcher", b.ID, fn.Selector(), fn.Name)
		}
	}
}

func TestGetBuiltinUnknown(t *testing.T) {
	_, ok := GetBuiltin("nope")
	assert.False(t, ok)
}
