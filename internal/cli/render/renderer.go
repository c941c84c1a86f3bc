package render

import (
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*usecase.SessionView]         = (*SessionRenderer)(nil)
	_ Renderer[*usecase.LoadContractsResult] = (*ArtifactsRenderer)(nil)
	_ Renderer[*models.DeploymentResult]     = (*DeploymentRenderer)(nil)
	_ Renderer[*usecase.RefreshResult]       = (*RefreshRenderer)(nil)
)
