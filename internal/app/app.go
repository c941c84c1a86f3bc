package app

import (
	"log/slog"

	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/display"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared state
	Controller  *usecase.Controller
	ErrorRegion *display.ErrorRegion
	Log         *slog.Logger

	// Use cases
	AcquireProvider    *usecase.AcquireProvider
	LoadContracts      *usecase.LoadContracts
	DeployToken        *usecase.DeployToken
	DeployCrowdsale    *usecase.DeployCrowdsale
	RefreshDeployments *usecase.RefreshDeployments
	ManageSession      *usecase.ManageSession
	ShowConfig         *usecase.ShowConfig
	SetConfig          *usecase.SetConfig
	RemoveConfig       *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	controller *usecase.Controller,
	errorRegion *display.ErrorRegion,
	log *slog.Logger,
	acquireProvider *usecase.AcquireProvider,
	loadContracts *usecase.LoadContracts,
	deployToken *usecase.DeployToken,
	deployCrowdsale *usecase.DeployCrowdsale,
	refreshDeployments *usecase.RefreshDeployments,
	manageSession *usecase.ManageSession,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:             cfg,
		Controller:         controller,
		ErrorRegion:        errorRegion,
		Log:                log,
		AcquireProvider:    acquireProvider,
		LoadContracts:      loadContracts,
		DeployToken:        deployToken,
		DeployCrowdsale:    deployCrowdsale,
		RefreshDeployments: refreshDeployments,
		ManageSession:      manageSession,
		ShowConfig:         showConfig,
		SetConfig:          setConfig,
		RemoveConfig:       removeConfig,
	}, nil
}

// Close releases the provider and stops session watchers
func (a *App) Close() {
	a.Controller.Close()
}
