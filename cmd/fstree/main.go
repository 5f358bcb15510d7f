package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fstree/internal/app"
	"fstree/internal/config"
)

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "fstree: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	base, loadErr := config.LoadConfig()

	rootCmd := &cobra.Command{
		Use:           "fstree",
		Short:         "Composite file tree demo",
		Long:          `fstree builds a small in-memory file tree and prints or browses it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(rootCmd, base)

	rootCmd.AddCommand(
		newShowCmd(base, loadErr),
		newBrowseCmd(base, loadErr),
	)
	return rootCmd
}

func newShowCmd(base config.Config, loadErr error) *cobra.Command {
	var detach string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the sample tree and its total size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ApplyFlags(cmd, base)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cmd.ErrOrStderr(), cfg)
			if loadErr != nil {
				logger.Warn("using default config", "error", loadErr)
			}
			return app.Show(cmd.OutOrStdout(), cfg, logger, detach)
		},
	}
	cmd.Flags().StringVar(&detach, "detach", "", "Remove the named node from its parent before printing")
	return cmd
}

func newBrowseCmd(base config.Config, loadErr error) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the sample tree interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ApplyFlags(cmd, base)
			if err != nil {
				return err
			}

			var logOut io.Writer = io.Discard
			if logFile != "" {
				file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer file.Close()
				logOut = file
			}
			logger := app.NewLogger(logOut, cfg)

			status := ""
			if loadErr != nil {
				logger.Warn("using default config", "error", loadErr)
				status = "Config warning: using defaults"
			}

			updated, err := app.Browse(cfg, logger, status, tea.WithAltScreen())
			if err != nil {
				return err
			}
			base.SortMode = updated.SortMode
			if err := config.SaveConfig(base); err != nil {
				errorColor.Fprintf(cmd.ErrOrStderr(), "fstree: config save error: %v\n", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append browser logs to this file")
	return cmd
}
