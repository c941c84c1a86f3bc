package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// DeployParams contains parameters shared by both deployment steps
type DeployParams struct {
	// NoWait returns once the transaction is pending instead of waiting for the address
	NoWait bool
	// AssumeYes skips the broadcast confirmation
	AssumeYes bool
}

// deployTarget names the fields a step writes and what happens on confirmation
type deployTarget struct {
	step        models.DeploymentStep
	form        string
	onConfirmed func(s *models.Session, result *models.DeploymentResult) error
}

// deployer submits creation transactions and follows their notifications
type deployer struct {
	config     *config.RuntimeConfig
	controller *Controller
	encoder    ConstructorEncoder
	confirmer  BroadcastConfirmer
	progress   ProgressSink
	log        *slog.Logger
}

func (d *deployer) deploy(
	ctx context.Context,
	target deployTarget,
	artifact *models.Artifact,
	values []any,
	params DeployParams,
) (*models.DeploymentResult, error) {
	if err := d.controller.begin(target.step); err != nil {
		d.controller.ReportError(ctx, err)
		return nil, err
	}
	defer d.controller.end(target.step)

	provider := d.controller.Provider()
	if provider == nil {
		d.controller.ReportError(ctx, domain.ErrProviderMissing)
		return nil, domain.ErrProviderMissing
	}

	accounts, err := provider.Accounts(ctx)
	if err != nil || len(accounts) == 0 {
		if err == nil {
			err = errors.New("provider has no accounts")
		}
		err = fmt.Errorf("%w: %v", domain.ErrProviderMissing, err)
		d.controller.ReportError(ctx, err)
		return nil, err
	}

	args, data, err := d.encoder.EncodeConstructor(artifact, values)
	if err != nil {
		err = fmt.Errorf("failed to encode %s constructor: %w", artifact.ContractName, err)
		d.controller.ReportError(ctx, err)
		return nil, err
	}

	req := &models.DeploymentRequest{
		ID:              uuid.NewString(),
		Step:            target.step,
		Artifact:        artifact,
		ConstructorArgs: args,
		From:            accounts[0],
		Data:            data,
	}

	d.log.Info("Creating contract "+artifact.ContractName,
		"request", req.ID,
		"from", req.From.Hex(),
		"arguments", fmt.Sprint(args...),
		"abi", string(artifact.RawABI),
	)

	if err := d.confirm(ctx, req, params); err != nil {
		return nil, err
	}

	result := models.NewDeploymentResult(req)
	if err := d.controller.Update(ctx, func(s *models.Session) error {
		s.Results[target.step] = result
		return nil
	}); err != nil {
		d.log.Warn("failed to persist session", "error", err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageSubmitting,
		Message: fmt.Sprintf("Publishing %s...", artifact.ContractName),
		Spinner: true,
	})
	defer d.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	sub, err := provider.Deploy(ctx, req)
	if err != nil {
		// A rejected submission is handled like a failure notification
		return d.watch(ctx, target, result, singleEvent(models.Failed(err.Error())), params)
	}
	return d.watch(ctx, target, result, sub, params)
}

func (d *deployer) confirm(ctx context.Context, req *models.DeploymentRequest, params DeployParams) error {
	if params.AssumeYes || d.config.AssumeYes || d.config.NonInteractive || d.confirmer == nil {
		return nil
	}

	network := "provider"
	if p := d.controller.Provider(); p != nil && p.Network() != nil {
		network = p.Network().Name
	}

	ok, err := d.confirmer.Confirm(ctx, fmt.Sprintf("Publish %s from %s on %s", req.Artifact.ContractName, req.From.Hex(), network))
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return domain.ErrCancelled
	}
	return nil
}

// watch applies notifications to the result until it is terminal, the
// subscription ends, or ctx is done
func (d *deployer) watch(
	ctx context.Context,
	target deployTarget,
	result *models.DeploymentResult,
	sub Subscription,
	params DeployParams,
) (*models.DeploymentResult, error) {
	defer sub.Unsubscribe()

	if err := d.controller.Update(ctx, func(s *models.Session) error {
		return result.MarkSubmitted()
	}); err != nil {
		d.log.Warn("failed to persist session", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("stopped waiting for %s: %w", result.ContractName, ctx.Err())

		case event, ok := <-sub.Events():
			if !ok {
				state := d.controller.stateOf(result)
				if state.IsTerminal() {
					return result, nil
				}
				return result, fmt.Errorf("provider closed the subscription for %s while %s", result.ContractName, state)
			}

			done, err := d.handle(ctx, target, result, event)
			if done || err != nil {
				return result, err
			}
			if params.NoWait && d.controller.stateOf(result) == models.StatePending {
				return result, nil
			}
		}
	}
}

// handle applies one notification; done reports whether the deployment finished
func (d *deployer) handle(
	ctx context.Context,
	target deployTarget,
	result *models.DeploymentResult,
	event models.DeploymentEvent,
) (bool, error) {
	switch event.Kind {
	case models.EventFailed:
		d.log.Error("Publishing failed", "contract", result.ContractName, "error", event.Message)
		err := d.controller.Update(ctx, func(s *models.Session) error {
			return result.Apply(event)
		})
		if err != nil && !errors.Is(err, domain.ErrTerminalState) {
			d.log.Warn("failed to persist session", "error", err)
		}
		depErr := &domain.DeploymentError{Message: domain.FirstLine(event.Message)}
		d.controller.ReportError(ctx, depErr)
		return true, depErr

	case models.EventPending:
		d.log.Info("Transaction published! transactionHash: " + event.TxHash)
		err := d.controller.Update(ctx, func(s *models.Session) error {
			if err := result.Apply(event); err != nil {
				return err
			}
			return s.SetField(target.form, models.FieldPublishedTx, event.TxHash)
		})
		if err != nil {
			d.log.Warn("failed to record pending transaction", "error", err)
		}
		d.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StagePending,
			Message:  fmt.Sprintf("Waiting for %s to be mined (tx %s)...", result.ContractName, event.TxHash),
			Spinner:  true,
			Metadata: event.TxHash,
		})
		return false, nil

	case models.EventConfirmed:
		d.log.Info("Contract mined! address: " + event.Address + " transactionHash: " + event.TxHash)
		err := d.controller.Update(ctx, func(s *models.Session) error {
			if err := result.Apply(event); err != nil {
				return err
			}
			if err := s.SetField(target.form, models.FieldPublishedTx, event.TxHash); err != nil {
				return err
			}
			if err := s.SetField(target.form, models.FieldPublishedAddress, event.Address); err != nil {
				return err
			}
			if target.onConfirmed != nil {
				return target.onConfirmed(s, result)
			}
			return nil
		})
		if err != nil {
			d.log.Warn("failed to record confirmed deployment", "error", err)
		}
		return true, nil

	default:
		// Logged only, never shown to the user
		d.log.Error("Unknown error", "contract", result.ContractName, "error", domain.ErrUnexpectedContractState, "address", event.Address)
		return false, nil
	}
}

// populateTokenAddress copies a confirmed token address into the crowdsale form
func populateTokenAddress(s *models.Session, result *models.DeploymentResult) error {
	return s.SetField(models.FormPublishCrowdsale, models.FieldTokenAddress, result.Address)
}

// validTokenAddress checks the operator-supplied token address
func validTokenAddress(address string) error {
	if address == "" {
		return domain.ErrTokenAddressMissing
	}
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}
	return nil
}

// staticSubscription replays fixed events
type staticSubscription struct {
	ch chan models.DeploymentEvent
}

func singleEvent(event models.DeploymentEvent) Subscription {
	ch := make(chan models.DeploymentEvent, 1)
	ch <- event
	close(ch)
	return &staticSubscription{ch: ch}
}

func (s *staticSubscription) Events() <-chan models.DeploymentEvent { return s.ch }
func (s *staticSubscription) Unsubscribe()                          {}
