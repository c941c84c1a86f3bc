package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	internalconfig "github.com/nigamshah29/TokenCrowdsale/internal/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// LoaderAdapter connects to the configured endpoint and picks the signing mode
type LoaderAdapter struct {
	config   *config.RuntimeConfig
	resolver *internalconfig.NetworkResolver
	selector usecase.NetworkSelector
	log      *slog.Logger
}

// NewLoaderAdapter creates a new provider loader
func NewLoaderAdapter(
	cfg *config.RuntimeConfig,
	resolver *internalconfig.NetworkResolver,
	selector usecase.NetworkSelector,
	log *slog.Logger,
) *LoaderAdapter {
	return &LoaderAdapter{
		config:   cfg,
		resolver: resolver,
		selector: selector,
		log:      log,
	}
}

// Load resolves the endpoint, dials it and verifies the chain ID.
// Every failure to reach a provider wraps domain.ErrProviderMissing.
func (l *LoaderAdapter) Load(ctx context.Context) (usecase.Provider, error) {
	network, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}

	client, err := rpc.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderMissing, err)
	}

	eth := ethclient.NewClient(client)
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %s did not answer: %v", domain.ErrProviderMissing, network.RPCURL, err)
	}
	if network.ChainID != 0 && network.ChainID != chainID.Uint64() {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch on %s: expected %d, got %d", network.Name, network.ChainID, chainID.Uint64())
	}
	network.ChainID = chainID.Uint64()
	l.config.Network = network

	sender := config.SenderConfig{}
	if l.config.Project != nil {
		sender = l.config.Project.Sender
	}

	if sender.PrivateKey != "" {
		l.log.Debug("using keyed provider", "network", network.Name, "chainId", network.ChainID)
		p, err := NewKeyedProvider(eth, sender.PrivateKey, chainID, network, sender.GasLimit, client.Close, l.log)
		if err != nil {
			client.Close()
			return nil, err
		}
		return p, nil
	}

	l.log.Debug("using node accounts", "network", network.Name, "chainId", network.ChainID)
	return NewNodeProvider(client, network, sender.GasLimit, l.config.PollInterval, l.log), nil
}

func (l *LoaderAdapter) resolve(ctx context.Context) (*config.Network, error) {
	network, err := l.resolver.Resolve(l.config.NetworkName, l.config.RPCURL)
	if err == nil {
		return network, nil
	}

	// Several endpoints and no choice made: ask when a terminal is available
	names := l.resolver.Networks()
	if !errors.Is(err, domain.ErrProviderMissing) || l.config.NetworkName != "" || len(names) < 2 ||
		l.selector == nil || l.config.NonInteractive {
		return nil, err
	}

	name, selErr := l.selector.SelectNetwork(ctx, names)
	if selErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderMissing, selErr)
	}
	return l.resolver.Resolve(name, "")
}

var _ usecase.ProviderLoader = (*LoaderAdapter)(nil)
