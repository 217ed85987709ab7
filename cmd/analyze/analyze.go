// Package analyze runs the full habitat selection model batch and renders
// the coefficient comparison figure.
package analyze

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wildrange/rsf-go/internal/analysis"
	"github.com/wildrange/rsf-go/internal/conf"
	"github.com/wildrange/rsf-go/internal/figure"
	"github.com/wildrange/rsf-go/internal/logging"
	"github.com/wildrange/rsf-go/internal/observability"
)

// Command creates the analyze command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Fit all habitat models and render the coefficient figure",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAnalysis(settings)
		},
	}

	cmd.PersistentFlags().StringVar(&settings.Output.Figure.Path, "output", settings.Output.Figure.Path, "Path to write the figure HTML to")
	cmd.PersistentFlags().BoolVar(&settings.Output.Export.Enabled, "export", settings.Output.Export.Enabled, "Also write the tidied coefficient CSV")

	return cmd
}

// RunAnalysis executes the model batch and writes every enabled output.
// The run fails before any output is produced if a single fit fails.
func RunAnalysis(settings *conf.Settings) error {
	var metrics *observability.Metrics
	if settings.Output.Metrics.Enabled {
		m, err := observability.NewMetrics()
		if err != nil {
			return err
		}
		metrics = m
	}

	panels, runErr := analysis.Run(settings, metrics)

	// The metrics textfile is written even for failed runs, it carries the
	// failure counters.
	if metrics != nil {
		if err := metrics.WriteTextfile(settings.Output.Metrics.Path); err != nil {
			logging.Warn("failed to write run metrics", "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if settings.Output.Export.Enabled {
		if err := analysis.ExportResults(settings.Output.Export.Path, panels); err != nil {
			return err
		}
		logging.Info("coefficient export written", "path", settings.Output.Export.Path)
	}

	if settings.Output.Figure.Enabled {
		if err := figure.WritePage(settings.Output.Figure.Path, panels, &settings.Output.Figure); err != nil {
			return err
		}
		logging.Info("figure written", "path", settings.Output.Figure.Path, "panels", len(panels))
		fmt.Println("Figure written to", settings.Output.Figure.Path)
	}

	return nil
}
