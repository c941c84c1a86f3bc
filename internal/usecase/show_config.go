package usecase

import (
	"context"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	// Networks lists the endpoints configured in icodeploy.toml
	Networks []string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	store    LocalConfigStore
	networks NetworkResolver
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigStore, networks NetworkResolver) *ShowConfig {
	return &ShowConfig{
		store:    store,
		networks: networks,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     exists,
		Networks:   uc.networks.Networks(),
	}, nil
}
