package provider

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// Backend is what the keyed provider needs from a node
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// KeyedProvider signs creation transactions locally with a configured private key
type KeyedProvider struct {
	backend  Backend
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int
	gasLimit uint64
	network  *config.Network
	closer   func()
	log      *slog.Logger
}

// NewKeyedProvider creates a provider that signs with hexKey
func NewKeyedProvider(
	backend Backend,
	hexKey string,
	chainID *big.Int,
	network *config.Network,
	gasLimit uint64,
	closer func(),
	log *slog.Logger,
) (*KeyedProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid sender private key: %w", err)
	}

	return &KeyedProvider{
		backend:  backend,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:  chainID,
		gasLimit: gasLimit,
		network:  network,
		closer:   closer,
		log:      log,
	}, nil
}

// Accounts returns the single account derived from the key
func (p *KeyedProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{p.from}, nil
}

// Deploy signs and sends the creation transaction, then waits for the contract code
func (p *KeyedProvider) Deploy(ctx context.Context, req *models.DeploymentRequest) (usecase.Subscription, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(p.key, p.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = p.gasLimit

	_, tx, _, err := bind.DeployContract(opts, req.Artifact.ABI, req.Artifact.Bytecode(), p.backend, req.ConstructorArgs...)
	if err != nil {
		return nil, err
	}

	txHash := tx.Hash().Hex()
	p.log.Debug("creation transaction sent", "request", req.ID, "tx", txHash, "nonce", tx.Nonce())

	sub := newSubscription(ctx)
	sub.run(func(ctx context.Context) {
		if !sub.send(models.Pending(txHash)) {
			return
		}
		address, err := bind.WaitDeployed(ctx, p.backend, tx)
		if ctx.Err() != nil {
			return
		}
		addr := ""
		if err == nil {
			addr = address.Hex()
		}
		sub.send(models.ClassifyNotification(err, txHash, addr))
	})

	return sub, nil
}

// Network returns the endpoint the provider is connected to
func (p *KeyedProvider) Network() *config.Network {
	return p.network
}

// Close releases the underlying client
func (p *KeyedProvider) Close() {
	if p.closer != nil {
		p.closer()
	}
}

var _ usecase.Provider = (*KeyedProvider)(nil)
