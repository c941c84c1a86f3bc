package cli

import (
	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/cli/render"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the forms, deployment results and the last error",
		Long: `Show the session: both forms, the result of each deployment step
and the error region.

With --refresh, deployments left pending by an interrupted or --no-wait run
are checked against the chain first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if refresh {
				result, err := app.RefreshDeployments.Execute(cmd.Context())
				if err != nil {
					return displayed(app, err)
				}
				if err := render.NewRefreshRenderer(cmd.OutOrStdout()).Render(result); err != nil {
					return err
				}
			}

			return render.NewSessionRenderer(cmd.OutOrStdout()).Render(app.ManageSession.Show(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Check pending deployments against the chain")

	return cmd
}
