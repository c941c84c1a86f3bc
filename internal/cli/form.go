package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// NewFormCmd creates the form command group
func NewFormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Edit form fields and the error region",
	}

	cmd.AddCommand(newFormSetCmd())
	cmd.AddCommand(newFormClearErrorCmd())

	return cmd
}

func newFormSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <form> <field> <value>",
		Short: "Set a form field",
		Long: fmt.Sprintf(`Set a form field. Known fields:

%s
Examples:
  icodeploy form set publishCrowdsaleForm tokenAddress 0x5FbDB2315678afecb367f032d93F642f64180aa3`, knownFields()),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := app.ManageSession.SetField(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s = %s\n", args[0], args[1], args[2])
			return nil
		},
	}
}

func newFormClearErrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-error",
		Short: "Clear the error region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			app.ManageSession.ClearError(cmd.Context())
			return nil
		},
	}
}

func knownFields() string {
	var b strings.Builder
	for _, form := range models.FormNames() {
		fmt.Fprintf(&b, "  %s: %s\n", form, strings.Join(models.FieldNames(form), ", "))
	}
	return b.String()
}
