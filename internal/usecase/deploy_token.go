package usecase

import (
	"context"
	"log/slog"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// DeployToken publishes the token contract
type DeployToken struct {
	deployer
}

// NewDeployToken creates a new deploy token use case
func NewDeployToken(
	cfg *config.RuntimeConfig,
	controller *Controller,
	encoder ConstructorEncoder,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployToken {
	return &DeployToken{deployer{
		config:     cfg,
		controller: controller,
		encoder:    encoder,
		confirmer:  confirmer,
		progress:   progress,
		log:        log,
	}}
}

// Execute deploys the token. On confirmation the address is also written to
// the crowdsale form's token address field.
func (t *DeployToken) Execute(ctx context.Context, params DeployParams) (*models.DeploymentResult, error) {
	token, _ := t.controller.Artifacts()
	if token == nil {
		t.controller.ReportError(ctx, domain.ErrArtifactNotLoaded)
		return nil, domain.ErrArtifactNotLoaded
	}

	target := deployTarget{
		step:        models.StepToken,
		form:        models.FormPublishToken,
		onConfirmed: populateTokenAddress,
	}
	return t.deploy(ctx, target, token, nil, params)
}
