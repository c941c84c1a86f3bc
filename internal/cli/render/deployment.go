package render

import (
	"fmt"
	"io"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// DeploymentRenderer renders the outcome of a publish command
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// Render displays a deployment result
func (r *DeploymentRenderer) Render(result *models.DeploymentResult) error {
	if result == nil {
		return fmt.Errorf("no result to render")
	}

	switch result.State {
	case models.StateConfirmed:
		fmt.Fprintln(r.out, FormatSuccess(result.ContractName+" published"))
	case models.StatePending, models.StateSubmitted:
		fmt.Fprintln(r.out, FormatWarning(result.ContractName+" submitted, not yet mined (run `icodeploy status --refresh` later)"))
	case models.StateFailed:
		fmt.Fprintln(r.out, FormatError(result.ContractName+" failed"))
	}

	if result.TxHash != "" {
		labelStyle.Fprint(r.out, "  Transaction: ")
		hashStyle.Fprintln(r.out, result.TxHash)
	}
	if result.Address != "" {
		labelStyle.Fprint(r.out, "  Address: ")
		addressStyle.Fprintln(r.out, result.Address)
	}
	return nil
}

// RefreshRenderer renders the deployments promoted by a refresh
type RefreshRenderer struct {
	deployment *DeploymentRenderer
	out        io.Writer
}

// NewRefreshRenderer creates a new refresh renderer
func NewRefreshRenderer(out io.Writer) *RefreshRenderer {
	return &RefreshRenderer{deployment: NewDeploymentRenderer(out), out: out}
}

// Render displays each updated deployment
func (r *RefreshRenderer) Render(result *usecase.RefreshResult) error {
	if result == nil || len(result.Updated) == 0 {
		faintStyle.Fprintln(r.out, "No pending deployments changed")
		return nil
	}
	for _, res := range result.Updated {
		if err := r.deployment.Render(res); err != nil {
			return err
		}
	}
	fmt.Fprintln(r.out)
	return nil
}
