package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// LoadContracts acquires the provider and loads both contract artifacts
type LoadContracts struct {
	config     *config.RuntimeConfig
	controller *Controller
	acquire    *AcquireProvider
	loader     ArtifactLoader
	progress   ProgressSink
	log        *slog.Logger
}

// NewLoadContracts creates a new load contracts use case
func NewLoadContracts(
	cfg *config.RuntimeConfig,
	controller *Controller,
	acquire *AcquireProvider,
	loader ArtifactLoader,
	progress ProgressSink,
	log *slog.Logger,
) *LoadContracts {
	return &LoadContracts{
		config:     cfg,
		controller: controller,
		acquire:    acquire,
		loader:     loader,
		progress:   progress,
		log:        log,
	}
}

// LoadContractsResult contains both loaded artifacts
type LoadContractsResult struct {
	Token     *models.Artifact
	Crowdsale *models.Artifact
}

// Execute runs the load action. Without a provider nothing is fetched. The two
// artifacts are fetched in parallel; each one that loads replaces the previous
// value even when the other fails.
func (l *LoadContracts) Execute(ctx context.Context) (*LoadContractsResult, error) {
	if _, err := l.acquire.Execute(ctx); err != nil {
		return nil, err
	}

	l.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: "Loading contract artifacts...",
		Spinner: true,
	})

	locations := l.locations()
	result := &LoadContractsResult{}

	var g errgroup.Group
	for _, step := range []models.DeploymentStep{models.StepToken, models.StepCrowdsale} {
		step := step
		g.Go(func() error {
			artifact, err := l.loader.Load(ctx, locations[step])
			if err != nil {
				return err
			}
			l.controller.setArtifact(step, artifact)
			if step == models.StepToken {
				result.Token = artifact
			} else {
				result.Crowdsale = artifact
			}
			l.log.Debug("artifact loaded", "step", step, "contract", artifact.ContractName, "source", artifact.Source)
			return nil
		})
	}

	err := g.Wait()
	l.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	if err != nil {
		l.controller.ReportError(ctx, err)
		return result, err
	}

	return result, nil
}

func (l *LoadContracts) locations() map[models.DeploymentStep]string {
	project := l.config.Project
	if project == nil {
		project = config.DefaultProjectConfig()
	}
	return map[models.DeploymentStep]string{
		models.StepToken:     project.Artifacts.Token,
		models.StepCrowdsale: project.Artifacts.Crowdsale,
	}
}
