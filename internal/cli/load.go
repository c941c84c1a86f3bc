package cli

import (
	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/cli/render"
)

// NewLoadCmd creates the load command
func NewLoadCmd() *cobra.Command {
	var showABI bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Connect to the provider and load both contract artifacts",
		Long: `Connect to the wallet provider and fetch the token and crowdsale
artifacts named in icodeploy.toml. Both artifacts are fetched in parallel;
a failure of one does not discard the other.

Examples:
  icodeploy load
  icodeploy load --abi
  icodeploy load --rpc-url http://127.0.0.1:8545`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.LoadContracts.Execute(cmd.Context())
			if result != nil {
				if rerr := render.NewArtifactsRenderer(cmd.OutOrStdout(), showABI).Render(result); rerr != nil && err == nil {
					err = rerr
				}
			}
			return displayed(app, err)
		},
	}

	cmd.Flags().BoolVar(&showABI, "abi", false, "Print the raw ABI of each artifact")

	return cmd
}
