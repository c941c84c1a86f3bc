package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/cli/render"
)

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a new session",
		Long: `Clear both forms, the deployment results and the error region.

Contracts already on chain are not affected; only the local record of them
is discarded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if !yes && !app.Config.NonInteractive {
				fmt.Fprint(cmd.OutOrStdout(), "Discard the current session? [y/N]: ")
				var response string
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil || (response != "y" && response != "Y") {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
					return nil
				}
			}

			if err := app.ManageSession.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess("Session reset"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
