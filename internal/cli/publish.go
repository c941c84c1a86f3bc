package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/app"
	"github.com/nigamshah29/TokenCrowdsale/internal/cli/render"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// NewPublishCmd creates the publish command group
func NewPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the token or the crowdsale",
		Long: `Publish one of the two contracts through the wallet provider.

The token is published first. Once it is mined its address is copied into
the crowdsale form, so a following "icodeploy publish crowdsale" needs no
arguments. Use --token-address to publish a crowdsale for another token.`,
	}

	cmd.PersistentFlags().Bool("no-wait", false, "Return once the transaction is submitted")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(newPublishTokenCmd())
	cmd.AddCommand(newPublishCrowdsaleCmd())

	return cmd
}

func newPublishTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Publish the token contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := ensureLoaded(cmd.Context(), app); err != nil {
				return displayed(app, err)
			}

			result, err := app.DeployToken.Execute(cmd.Context(), deployParams(app))
			return renderDeployment(cmd, app, result, err)
		},
	}
}

func newPublishCrowdsaleCmd() *cobra.Command {
	var tokenAddress string

	cmd := &cobra.Command{
		Use:   "crowdsale",
		Short: "Publish the crowdsale contract",
		Long: `Publish the crowdsale with the token address from the crowdsale form
and the parameters from crowdsale.yaml. Nothing is submitted while the token
address is missing or malformed.

Examples:
  icodeploy publish crowdsale
  icodeploy publish crowdsale --token-address 0x5FbDB2315678afecb367f032d93F642f64180aa3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := ensureLoaded(cmd.Context(), app); err != nil {
				return displayed(app, err)
			}

			result, err := app.DeployCrowdsale.Execute(cmd.Context(), usecase.DeployCrowdsaleParams{
				DeployParams: deployParams(app),
				TokenAddress: tokenAddress,
			})
			return renderDeployment(cmd, app, result, err)
		},
	}

	cmd.Flags().StringVar(&tokenAddress, "token-address", "", "Token address to use instead of the form value")

	return cmd
}

func deployParams(app *app.App) usecase.DeployParams {
	return usecase.DeployParams{
		NoWait:    app.Config.NoWait,
		AssumeYes: app.Config.AssumeYes,
	}
}

// ensureLoaded runs the load action when this process holds no artifacts
func ensureLoaded(ctx context.Context, app *app.App) error {
	token, crowdsale := app.Controller.Artifacts()
	if token != nil && crowdsale != nil {
		return nil
	}
	_, err := app.LoadContracts.Execute(ctx)
	return err
}

func renderDeployment(cmd *cobra.Command, app *app.App, result *models.DeploymentResult, err error) error {
	if result != nil {
		if rerr := render.NewDeploymentRenderer(cmd.OutOrStdout()).Render(result); rerr != nil && err == nil {
			err = fmt.Errorf("failed to render result: %w", rerr)
		}
	}
	return displayed(app, err)
}
