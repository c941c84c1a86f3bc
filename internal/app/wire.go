//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/nigamshah29/TokenCrowdsale/internal/adapters"
	"github.com/nigamshah29/TokenCrowdsale/internal/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/logging"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Shared state
		usecase.NewController,

		// Use cases
		usecase.NewAcquireProvider,
		usecase.NewLoadContracts,
		usecase.NewDeployToken,
		usecase.NewDeployCrowdsale,
		usecase.NewRefreshDeployments,
		usecase.NewManageSession,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
