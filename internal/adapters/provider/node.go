package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// NodeProvider lets the node sign with its own unlocked accounts, like an
// injected wallet would
type NodeProvider struct {
	client       *rpc.Client
	network      *config.Network
	gasLimit     uint64
	pollInterval time.Duration
	log          *slog.Logger
}

// sendTxArgs is the eth_sendTransaction request body
type sendTxArgs struct {
	From common.Address  `json:"from"`
	Data hexutil.Bytes   `json:"data"`
	Gas  *hexutil.Uint64 `json:"gas,omitempty"`
}

// creationReceipt holds the receipt fields a deployment needs
type creationReceipt struct {
	Status          hexutil.Uint64  `json:"status"`
	BlockNumber     *hexutil.Big    `json:"blockNumber"`
	ContractAddress *common.Address `json:"contractAddress"`
}

// NewNodeProvider creates a provider over an RPC client
func NewNodeProvider(client *rpc.Client, network *config.Network, gasLimit uint64, pollInterval time.Duration, log *slog.Logger) *NodeProvider {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &NodeProvider{
		client:       client,
		network:      network,
		gasLimit:     gasLimit,
		pollInterval: pollInterval,
		log:          log,
	}
}

// Accounts returns the node's accounts
func (p *NodeProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Deploy sends {from, data} and polls for the receipt
func (p *NodeProvider) Deploy(ctx context.Context, req *models.DeploymentRequest) (usecase.Subscription, error) {
	args := sendTxArgs{From: req.From, Data: req.Data}
	if p.gasLimit > 0 {
		gas := hexutil.Uint64(p.gasLimit)
		args.Gas = &gas
	}

	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return nil, err
	}

	txHash := hash.Hex()
	p.log.Debug("creation transaction sent", "request", req.ID, "tx", txHash)

	sub := newSubscription(ctx)
	sub.run(func(ctx context.Context) {
		if !sub.send(models.Pending(txHash)) {
			return
		}

		ticker := time.NewTicker(p.pollInterval)
		defer ticker.Stop()

		for {
			var receipt *creationReceipt
			err := p.client.CallContext(ctx, &receipt, "eth_getTransactionReceipt", hash)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				sub.send(models.Failed(err.Error()))
				return
			}
			if receipt != nil {
				sub.send(p.classify(txHash, receipt))
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	})

	return sub, nil
}

func (p *NodeProvider) classify(txHash string, receipt *creationReceipt) models.DeploymentEvent {
	if receipt.Status != 1 {
		return models.Failed(fmt.Sprintf("transaction %s reverted", txHash))
	}
	if receipt.ContractAddress == nil || *receipt.ContractAddress == (common.Address{}) {
		return models.Failed(fmt.Sprintf("transaction %s created no contract", txHash))
	}
	return models.Confirmed(txHash, receipt.ContractAddress.Hex())
}

// Network returns the endpoint the provider is connected to
func (p *NodeProvider) Network() *config.Network {
	return p.network
}

// Close closes the RPC client
func (p *NodeProvider) Close() {
	p.client.Close()
}

var _ usecase.Provider = (*NodeProvider)(nil)
