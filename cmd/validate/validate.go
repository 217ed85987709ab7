// Package validate checks the configuration and input tables without
// fitting any models.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wildrange/rsf-go/internal/conf"
	"github.com/wildrange/rsf-go/internal/habitat"
	"github.com/wildrange/rsf-go/internal/logging"
)

// Command creates the validate command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and input table schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(settings)
		},
	}
}

func runValidate(settings *conf.Settings) error {
	if err := conf.ValidateSettings(settings); err != nil {
		return err
	}
	fmt.Println("Configuration OK")

	inputs := []struct {
		label string
		path  string
	}{
		{settings.Input.KDE.Label, settings.Input.KDE.Path},
		{settings.Input.MCP.Label, settings.Input.MCP.Path},
	}

	required := append([]string{settings.Input.Response, settings.Input.Pack}, settings.Analysis.Predictors...)

	for _, in := range inputs {
		tbl, err := habitat.LoadCSV(in.path, in.label)
		if err != nil {
			return err
		}
		if err := tbl.RequireColumns(required...); err != nil {
			return err
		}

		packs, err := tbl.Column(settings.Input.Pack)
		if err != nil {
			return err
		}
		counts := make(map[string]int)
		for _, p := range packs {
			counts[p]++
		}
		for _, pack := range settings.Input.Packs {
			if counts[pack] == 0 {
				logging.Warn("no rows for pack", "table", in.label, "pack", pack)
			}
		}

		// A constant covariate cannot be fit, flag it before a run fails on it.
		for _, predictor := range settings.Analysis.Predictors {
			distinct, err := tbl.DistinctCount(predictor)
			if err != nil {
				return err
			}
			if distinct < 2 {
				logging.Warn("covariate is constant", "table", in.label, "predictor", predictor)
			}
		}

		fmt.Printf("%s: %d rows, %d columns OK\n", in.label, tbl.Len(), len(required))
	}

	fmt.Println("Input tables OK")
	return nil
}
