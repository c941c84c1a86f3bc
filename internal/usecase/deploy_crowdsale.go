package usecase

import (
	"context"
	"log/slog"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// DeployCrowdsale publishes the crowdsale contract for an already deployed token
type DeployCrowdsale struct {
	deployer
}

// NewDeployCrowdsale creates a new deploy crowdsale use case
func NewDeployCrowdsale(
	cfg *config.RuntimeConfig,
	controller *Controller,
	encoder ConstructorEncoder,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployCrowdsale {
	return &DeployCrowdsale{deployer{
		config:     cfg,
		controller: controller,
		encoder:    encoder,
		confirmer:  confirmer,
		progress:   progress,
		log:        log,
	}}
}

// DeployCrowdsaleParams contains parameters for the crowdsale step
type DeployCrowdsaleParams struct {
	DeployParams
	// TokenAddress, when set, is written to the form before the step runs
	TokenAddress string
}

// Execute deploys the crowdsale with the form's token address as the first
// constructor argument. Nothing is submitted while the artifact or a valid
// token address is missing.
func (c *DeployCrowdsale) Execute(ctx context.Context, params DeployCrowdsaleParams) (*models.DeploymentResult, error) {
	_, crowdsale := c.controller.Artifacts()
	if crowdsale == nil {
		c.controller.ReportError(ctx, domain.ErrArtifactNotLoaded)
		return nil, domain.ErrArtifactNotLoaded
	}

	if params.TokenAddress != "" {
		if err := c.controller.Update(ctx, func(s *models.Session) error {
			return s.SetField(models.FormPublishCrowdsale, models.FieldTokenAddress, params.TokenAddress)
		}); err != nil {
			return nil, err
		}
	}

	tokenAddress := c.controller.Snapshot().Field(models.FormPublishCrowdsale, models.FieldTokenAddress)
	if err := validTokenAddress(tokenAddress); err != nil {
		c.controller.ReportError(ctx, err)
		return nil, err
	}

	values := append([]any{tokenAddress}, c.config.Crowdsale.Values()...)

	target := deployTarget{
		step: models.StepCrowdsale,
		form: models.FormPublishCrowdsale,
	}
	return c.deploy(ctx, target, crowdsale, values, params.DeployParams)
}
