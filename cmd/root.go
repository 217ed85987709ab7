package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wildrange/rsf-go/cmd/analyze"
	"github.com/wildrange/rsf-go/cmd/export"
	"github.com/wildrange/rsf-go/cmd/validate"
	"github.com/wildrange/rsf-go/internal/conf"
	"github.com/wildrange/rsf-go/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rsf-go",
		Short: "Wolf habitat selection analysis CLI",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		analyze.Command(settings),
		export.Command(settings),
		validate.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Parse the command line flags
		if err := cmd.Flags().Parse(args); err != nil {
			return err
		}

		if settings.Debug {
			logging.SetLevel(slog.LevelDebug)
		}

		return nil
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Input.KDE.Path, "kde", viper.GetString("input.kde.path"), "Path to the KDE used/available CSV")
	rootCmd.PersistentFlags().StringVar(&settings.Input.MCP.Path, "mcp", viper.GetString("input.mcp.path"), "Path to the MCP used/available CSV")
	rootCmd.PersistentFlags().IntVarP(&settings.Analysis.Workers, "workers", "w", viper.GetInt("analysis.workers"), "Concurrent fits per batch, 1 runs serially")
	rootCmd.PersistentFlags().Float64Var(&settings.Analysis.GLM.Confidence, "confidence", viper.GetFloat64("analysis.glm.confidence"), "Confidence level for the Wald intervals")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
