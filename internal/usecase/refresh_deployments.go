package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// RefreshDeployments re-checks deployments left pending by an interrupted or
// --no-wait run and promotes them from their receipts
type RefreshDeployments struct {
	controller *Controller
	acquire    *AcquireProvider
	checker    BlockchainChecker
	log        *slog.Logger
}

// NewRefreshDeployments creates a new refresh deployments use case
func NewRefreshDeployments(
	controller *Controller,
	acquire *AcquireProvider,
	checker BlockchainChecker,
	log *slog.Logger,
) *RefreshDeployments {
	return &RefreshDeployments{
		controller: controller,
		acquire:    acquire,
		checker:    checker,
		log:        log,
	}
}

// RefreshResult lists the results whose state changed
type RefreshResult struct {
	Updated []*models.DeploymentResult
}

// Execute checks every non-terminal result that has a transaction hash. Steps
// still in flight are left to the deployment watching them.
func (r *RefreshDeployments) Execute(ctx context.Context) (*RefreshResult, error) {
	snap := r.controller.Snapshot()

	var pending []models.DeploymentStep
	for _, step := range []models.DeploymentStep{models.StepToken, models.StepCrowdsale} {
		if r.controller.InFlight(step) {
			continue
		}
		if res, ok := snap.Results[step]; ok && !res.State.IsTerminal() && res.TxHash != "" {
			pending = append(pending, step)
		}
	}
	if len(pending) == 0 {
		return &RefreshResult{}, nil
	}

	provider, err := r.acquire.Execute(ctx)
	if err != nil {
		return nil, err
	}
	network := provider.Network()
	if network == nil {
		return nil, fmt.Errorf("provider does not expose its endpoint")
	}
	if err := r.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		r.controller.ReportError(ctx, err)
		return nil, err
	}

	result := &RefreshResult{}
	for _, step := range pending {
		txHash := snap.Results[step].TxHash
		status, err := r.checker.CheckCreation(ctx, txHash)
		if err != nil {
			r.controller.ReportError(ctx, err)
			return result, err
		}
		if !status.Mined {
			r.log.Debug("transaction not mined yet", "step", step, "tx", txHash)
			continue
		}

		event := models.Confirmed(txHash, status.ContractAddress)
		if !status.Succeeded {
			event = models.Failed(fmt.Sprintf("transaction %s reverted in block %d", txHash, status.BlockNumber))
		}

		var updated *models.DeploymentResult
		if err := r.controller.Update(ctx, func(s *models.Session) error {
			res, ok := s.Results[step]
			if !ok {
				return fmt.Errorf("no %s deployment in session", step)
			}
			if err := res.Apply(event); err != nil {
				return err
			}
			if event.Kind == models.EventConfirmed {
				form := formForStep(step)
				if err := s.SetField(form, models.FieldPublishedAddress, event.Address); err != nil {
					return err
				}
				if step == models.StepToken {
					if err := populateTokenAddress(s, res); err != nil {
						return err
					}
				}
			}
			copied := *res
			updated = &copied
			return nil
		}); err != nil {
			return result, err
		}

		if event.Kind == models.EventFailed {
			r.controller.PrintError(ctx, event.Message)
		}
		result.Updated = append(result.Updated, updated)
	}

	return result, nil
}

func formForStep(step models.DeploymentStep) string {
	if step == models.StepToken {
		return models.FormPublishToken
	}
	return models.FormPublishCrowdsale
}
