package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
)

// AcquireProvider connects to the wallet provider and stores it on the controller
type AcquireProvider struct {
	controller *Controller
	loader     ProviderLoader
	progress   ProgressSink
	log        *slog.Logger
}

// NewAcquireProvider creates a new acquire provider use case
func NewAcquireProvider(
	controller *Controller,
	loader ProviderLoader,
	progress ProgressSink,
	log *slog.Logger,
) *AcquireProvider {
	return &AcquireProvider{
		controller: controller,
		loader:     loader,
		progress:   progress,
		log:        log,
	}
}

// Execute acquires a provider. Failure is reported on the error display and
// is terminal for the current action.
func (a *AcquireProvider) Execute(ctx context.Context) (Provider, error) {
	a.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConnecting,
		Message: "Connecting to provider...",
		Spinner: true,
	})

	provider, err := a.loader.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrProviderMissing) {
			err = fmt.Errorf("%w: %v", domain.ErrProviderMissing, err)
		}
		a.progress.OnProgress(ctx, ProgressEvent{Stage: StageConnecting})
		a.controller.ReportError(ctx, err)
		return nil, err
	}

	a.controller.setProvider(provider)

	if network := provider.Network(); network != nil {
		a.log.Debug("provider acquired", "network", network.Name, "chainId", network.ChainID)
	}
	return provider, nil
}
