package abi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

const crowdsaleABI = `[{"type":"constructor","inputs":[
	{"name":"token","type":"address"},
	{"name":"startTime","type":"uint256"},
	{"name":"hardCap","type":"uint256"}
]}]`

func mustType(t *testing.T, name string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(name, "", nil)
	require.NoError(t, err)
	return typ
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return n
}

func TestCoerceIntegers(t *testing.T) {
	enc := NewConstructorEncoder(nil)

	tests := []struct {
		name    string
		typ     string
		value   any
		want    any
		wantErr string
	}{
		{name: "ether amount", typ: "uint256", value: "1666.67 ether", want: mustBig(t, "1666670000000000000000")},
		{name: "gwei amount", typ: "uint256", value: "2 gwei", want: big.NewInt(2_000_000_000)},
		{name: "scientific notation", typ: "uint256", value: "4e18", want: mustBig(t, "4000000000000000000")},
		{name: "hex", typ: "uint256", value: "0xff", want: big.NewInt(255)},
		{name: "half rounds up", typ: "uint256", value: "0.5", want: big.NewInt(1)},
		{name: "below half rounds down", typ: "uint256", value: "2.4", want: big.NewInt(2)},
		{name: "negative half rounds away from zero", typ: "int256", value: "-0.5", want: big.NewInt(-1)},
		{name: "float input", typ: "uint256", value: 1.5, want: big.NewInt(2)},
		{name: "exact uint8", typ: "uint8", value: "255", want: uint8(255)},
		{name: "exact uint64 from int", typ: "uint64", value: 100, want: uint64(100)},
		{name: "exact int8 minimum", typ: "int8", value: -128, want: int8(-128)},
		{name: "odd width uses big.Int", typ: "uint24", value: 7, want: big.NewInt(7)},
		{name: "uint8 overflow", typ: "uint8", value: "256", wantErr: "overflows"},
		{name: "int8 overflow", typ: "int8", value: 128, wantErr: "overflows"},
		{name: "negative uint", typ: "uint256", value: -1, wantErr: "negative"},
		{name: "unknown unit", typ: "uint256", value: "1 szabo", wantErr: "unknown unit"},
		{name: "not a number", typ: "uint256", value: "abc", wantErr: "invalid number"},
		{name: "wrong type", typ: "uint256", value: true, wantErr: "expected a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Coerce(mustType(t, tt.typ), tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if want, ok := tt.want.(*big.Int); ok {
				gotBig, ok := got.(*big.Int)
				require.True(t, ok, "expected *big.Int, got %T", got)
				assert.Equal(t, 0, want.Cmp(gotBig), "want %s, got %s", want, gotBig)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceOtherTypes(t *testing.T) {
	enc := NewConstructorEncoder(nil)
	addr := "0x00000000000000000000000000000000000000AA"

	t.Run("address", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "address"), addr)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(addr), got)
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := enc.Coerce(mustType(t, "address"), "0x1234")
		require.Error(t, err)
	})

	t.Run("bool from string", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "bool"), "true")
		require.NoError(t, err)
		assert.Equal(t, true, got)
	})

	t.Run("string", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "string"), "NigamCoin")
		require.NoError(t, err)
		assert.Equal(t, "NigamCoin", got)
	})

	t.Run("bytes", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "bytes"), "0x0102")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, got)
	})

	t.Run("fixed bytes left aligned", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "bytes4"), "0x01")
		require.NoError(t, err)
		assert.Equal(t, [4]byte{1, 0, 0, 0}, got)
	})

	t.Run("fixed bytes too long", func(t *testing.T) {
		_, err := enc.Coerce(mustType(t, "bytes2"), "0x010203")
		require.Error(t, err)
	})

	t.Run("dynamic list", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "uint256[]"), []any{"1 ether", 2})
		require.NoError(t, err)
		list, ok := got.([]*big.Int)
		require.True(t, ok, "got %T", got)
		require.Len(t, list, 2)
		assert.Equal(t, "1000000000000000000", list[0].String())
		assert.Equal(t, "2", list[1].String())
	})

	t.Run("fixed list length mismatch", func(t *testing.T) {
		_, err := enc.Coerce(mustType(t, "uint8[2]"), []any{1})
		require.Error(t, err)
	})

	t.Run("fixed list", func(t *testing.T) {
		got, err := enc.Coerce(mustType(t, "uint8[2]"), []any{1, "2"})
		require.NoError(t, err)
		assert.Equal(t, [2]uint8{1, 2}, got)
	})
}

func TestEncodeConstructor(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(crowdsaleABI))
	require.NoError(t, err)

	artifact := &models.Artifact{
		ContractName:   "NigamCrowdsale",
		ABI:            parsed,
		UnlinkedBinary: "0x6060",
	}
	enc := NewConstructorEncoder(nil)

	t.Run("packs after bytecode", func(t *testing.T) {
		token := "0x00000000000000000000000000000000000000aa"
		args, data, err := enc.EncodeConstructor(artifact, []any{token, 1508716800, "1666.67 ether"})
		require.NoError(t, err)
		require.Len(t, args, 3)

		assert.Equal(t, []byte{0x60, 0x60}, data[:2])
		assert.Len(t, data, 2+3*32)

		decoded, err := parsed.Constructor.Inputs.Unpack(data[2:])
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(token), decoded[0])
		assert.Equal(t, "1508716800", decoded[1].(*big.Int).String())
		assert.Equal(t, "1666670000000000000000", decoded[2].(*big.Int).String())
	})

	t.Run("argument count mismatch", func(t *testing.T) {
		_, _, err := enc.EncodeConstructor(artifact, []any{"0x00000000000000000000000000000000000000aa"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expects 3 arguments")
	})

	t.Run("names the failing argument", func(t *testing.T) {
		_, _, err := enc.EncodeConstructor(artifact, []any{"nope", 1, 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "argument token (address)")
	})

	t.Run("no constructor", func(t *testing.T) {
		empty, err := abi.JSON(strings.NewReader(`[]`))
		require.NoError(t, err)
		token := &models.Artifact{ContractName: "NigamCoin", ABI: empty, UnlinkedBinary: "0x6001"}

		args, data, err := enc.EncodeConstructor(token, nil)
		require.NoError(t, err)
		assert.Empty(t, args)
		assert.Equal(t, []byte{0x60, 0x01}, data)
	})
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "3", RoundHalfUp(big.NewRat(5, 2)).String())
	assert.Equal(t, "-3", RoundHalfUp(big.NewRat(-5, 2)).String())
	assert.Equal(t, "2", RoundHalfUp(big.NewRat(7, 4)).String())
	assert.Equal(t, "0", RoundHalfUp(big.NewRat(1, 3)).String())
}
