package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nigamshah29/TokenCrowdsale/internal/adapters/progress"
	"github.com/nigamshah29/TokenCrowdsale/internal/app"
	"github.com/nigamshah29/TokenCrowdsale/internal/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "icodeploy",
		Short: "Token and crowdsale deployment for the NigamCoin ICO",
		Long: `icodeploy publishes the NigamCoin token and its crowdsale through a
wallet provider. Forms, deployment results and the last error are kept in
.icodeploy/session.json between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot := config.FindProjectRoot()
			v := config.SetupViper(projectRoot, cmd)

			// The console owns the terminal, so logs go to a file
			console := cmd.Name() == "console"
			if console && v.GetString("log_file") == "" {
				v.Set("log_file", filepath.Join(projectRoot, config.DataDirName, "console.log"))
			}

			var sink usecase.ProgressSink = progress.NewSpinnerProgressReporter()
			if console || v.GetBool("non_interactive") {
				sink = progress.NewNopSink()
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			if err := appInstance.Controller.Init(cmd.Context()); err != nil {
				appInstance.Close()
				return err
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			cancel := func() {}
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
				cancel()
				appInstance.Close()
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (name from icodeploy.toml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Provider endpoint, overrides --network")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Session Commands",
	})

	// Main commands
	for _, sub := range []*cobra.Command{NewLoadCmd(), NewPublishCmd(), NewConsoleCmd()} {
		sub.GroupID = "main"
		rootCmd.AddCommand(sub)
	}

	// Session commands
	for _, sub := range []*cobra.Command{NewStatusCmd(), NewFormCmd(), NewResetCmd(), NewConfigCmd()} {
		sub.GroupID = "management"
		rootCmd.AddCommand(sub)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// reportedError marks an error the error region already shows
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// displayed wraps err when the error region already shows it, so it is not
// printed a second time on exit
func displayed(a *app.App, err error) error {
	if err == nil || a == nil || a.ErrorRegion == nil {
		return err
	}
	if a.ErrorRegion.Current() == usecase.DisplayMessage(err) {
		return &reportedError{err: err}
	}
	return err
}

// IsReported reports whether err has already been shown to the user
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
