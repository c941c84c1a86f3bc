package blockchain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chain struct {
	backend *simulated.Backend
	client  simulated.Client
	key     *ecdsa.PrivateKey
	chainID *big.Int
	nonce   uint64
}

func newChain(t *testing.T) *chain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	balance := new(big.Int).Mul(big.NewInt(10), big.NewInt(1_000_000_000_000_000_000))
	backend := simulated.NewBackend(types.GenesisAlloc{from: {Balance: balance}})
	t.Cleanup(func() { _ = backend.Close() })

	client := backend.Client()
	chainID, err := client.ChainID(context.Background())
	require.NoError(t, err)

	return &chain{backend: backend, client: client, key: key, chainID: chainID}
}

// create mines a contract-creation transaction with the given init code
func (c *chain) create(t *testing.T, initCode string) common.Hash {
	t.Helper()
	return c.send(t, nil, common.FromHex(initCode))
}

// send mines a transaction to the given recipient, nil meaning contract creation
func (c *chain) send(t *testing.T, to *common.Address, data []byte) common.Hash {
	t.Helper()
	ctx := context.Background()

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	require.NoError(t, err)

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    c.nonce,
		GasPrice: gasPrice,
		To:       to,
		Gas:      500_000,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	require.NoError(t, err)
	require.NoError(t, c.client.SendTransaction(ctx, signed))
	c.backend.Commit()
	c.nonce++

	return signed.Hash()
}

func TestCheckerAdapter_Connect(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	checker := NewCheckerAdapterWithClient(c.client)
	require.NoError(t, checker.Connect(ctx, "", 0))
	assert.Equal(t, c.chainID.Uint64(), checker.chainID)

	require.NoError(t, checker.Connect(ctx, "", c.chainID.Uint64()))

	err := checker.Connect(ctx, "", c.chainID.Uint64()+1)
	assert.ErrorContains(t, err, "chain ID mismatch")
}

func TestCheckerAdapter_CheckCreation(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	checker := NewCheckerAdapterWithClient(c.client)
	require.NoError(t, checker.Connect(ctx, "", 0))

	t.Run("deployed", func(t *testing.T) {
		// runtime of 10 bytes that returns 42
		hash := c.create(t, "0x600a600c600039600a6000f3602a60005260206000f3")

		status, err := checker.CheckCreation(ctx, hash.Hex())
		require.NoError(t, err)
		assert.True(t, status.Mined)
		assert.True(t, status.Succeeded)
		assert.NotZero(t, status.BlockNumber)
		assert.True(t, common.IsHexAddress(status.ContractAddress))
	})

	t.Run("reverted", func(t *testing.T) {
		hash := c.create(t, "0x60006000fd")

		status, err := checker.CheckCreation(ctx, hash.Hex())
		require.NoError(t, err)
		assert.True(t, status.Mined)
		assert.False(t, status.Succeeded)
		assert.Empty(t, status.ContractAddress)
	})

	t.Run("no code left", func(t *testing.T) {
		hash := c.create(t, "0x00")

		status, err := checker.CheckCreation(ctx, hash.Hex())
		require.NoError(t, err)
		assert.True(t, status.Mined)
		assert.False(t, status.Succeeded)
		assert.Empty(t, status.ContractAddress)
	})

	t.Run("not a creation", func(t *testing.T) {
		to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
		hash := c.send(t, &to, nil)

		status, err := checker.CheckCreation(ctx, hash.Hex())
		require.NoError(t, err)
		assert.True(t, status.Mined)
		assert.False(t, status.Succeeded)
		assert.Empty(t, status.ContractAddress)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		status, err := checker.CheckCreation(ctx, common.HexToHash("0x1234").Hex())
		require.NoError(t, err)
		assert.False(t, status.Mined)
	})
}

func TestCheckerAdapter_NotConnected(t *testing.T) {
	_, err := NewCheckerAdapter().CheckCreation(context.Background(), "0x01")
	assert.ErrorContains(t, err, "not connected")
}
