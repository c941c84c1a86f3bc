package adapters

import (
	"github.com/google/wire"

	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/abi"
	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/artifacts"
	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/blockchain"
	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/display"
	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/fs"
	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/interactive"
	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/provider"
	internalconfig "github.com/nigamshah29/TokenCrowdsale/internal/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewSessionStoreAdapter,
	wire.Bind(new(usecase.SessionRepository), new(*fs.SessionStoreAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// DisplaySet provides the error region
var DisplaySet = wire.NewSet(
	display.NewErrorRegion,
	wire.Bind(new(usecase.ErrorDisplay), new(*display.ErrorRegion)),
)

// ArtifactSet provides artifact loading and constructor encoding
var ArtifactSet = wire.NewSet(
	artifacts.NewLoaderAdapter,
	wire.Bind(new(usecase.ArtifactLoader), new(*artifacts.LoaderAdapter)),

	abi.NewConstructorEncoder,
	wire.Bind(new(usecase.ConstructorEncoder), new(*abi.ConstructorEncoder)),
)

// ProviderSet provides wallet provider acquisition
var ProviderSet = wire.NewSet(
	internalconfig.NewNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),

	provider.NewLoaderAdapter,
	wire.Bind(new(usecase.ProviderLoader), new(*provider.LoaderAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.BroadcastConfirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	DisplaySet,
	ArtifactSet,
	ProviderSet,
	InteractiveSet,
	BlockchainSet,
)
