// Package export writes the tidied coefficient table as CSV without
// rendering the figure.
package export

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wildrange/rsf-go/internal/analysis"
	"github.com/wildrange/rsf-go/internal/conf"
)

// Command creates the export command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fit all habitat models and write the coefficient table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			panels, err := analysis.Run(settings, nil)
			if err != nil {
				return err
			}

			if err := analysis.ExportResults(settings.Output.Export.Path, panels); err != nil {
				return err
			}
			fmt.Println("Coefficient table written to", settings.Output.Export.Path)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&settings.Output.Export.Path, "output", settings.Output.Export.Path, "Path to write the coefficient CSV to")

	return cmd
}
