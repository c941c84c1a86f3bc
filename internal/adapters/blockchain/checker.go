package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// receiptReader is the subset of ethclient the checker needs
type receiptReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// CheckerAdapter implements the BlockchainChecker interface using ethclient
type CheckerAdapter struct {
	client  receiptReader
	chainID uint64
	timeout time.Duration
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{timeout: 5 * time.Second}
}

// NewCheckerAdapterWithClient creates a checker over an existing client
func NewCheckerAdapterWithClient(client receiptReader) *CheckerAdapter {
	return &CheckerAdapter{client: client, timeout: 5 * time.Second}
}

// Connect establishes connection to the blockchain
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	if c.client == nil {
		client, err := ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.client = client
	}

	networkChainID, err := c.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if chainID == 0 {
		c.chainID = networkChainID.Uint64()
	} else if networkChainID.Uint64() != chainID {
		return fmt.Errorf("chain ID mismatch: expected %d, got %d", chainID, networkChainID.Uint64())
	} else {
		c.chainID = chainID
	}

	return nil
}

// CheckCreation looks up the receipt of a contract-creation transaction
func (c *CheckerAdapter) CheckCreation(ctx context.Context, txHash string) (*usecase.ReceiptStatus, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	receipt, err := c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &usecase.ReceiptStatus{Mined: false}, nil
		}
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}

	status := &usecase.ReceiptStatus{
		Mined:     true,
		Succeeded: receipt.Status == types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		status.BlockNumber = receipt.BlockNumber.Uint64()
	}
	// A receipt without a contract address is not a creation
	if status.Succeeded && receipt.ContractAddress == (common.Address{}) {
		status.Succeeded = false
	}
	if status.Succeeded {
		code, err := c.client.CodeAt(ctx, receipt.ContractAddress, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check code: %w", err)
		}
		// A successful creation that left no code is treated as failed
		if len(code) == 0 {
			status.Succeeded = false
		} else {
			status.ContractAddress = receipt.ContractAddress.Hex()
		}
	}

	return status, nil
}

// Ensure the adapter implements the interface
var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
