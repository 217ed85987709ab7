package analysis

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wildrange/rsf-go/internal/conf"
	"github.com/wildrange/rsf-go/internal/habitat"
	"github.com/wildrange/rsf-go/internal/logging"
	"github.com/wildrange/rsf-go/internal/observability"
)

// Panel is one figure panel: a title plus its tidied result table.
type Panel struct {
	Title   string
	Results ResultTable
}

// OptionsFromSettings converts the configured solver settings into FitOptions.
func OptionsFromSettings(settings *conf.Settings) FitOptions {
	opts := DefaultFitOptions()
	opts.GLM.MaxIterations = settings.Analysis.GLM.MaxIterations
	opts.GLM.Tolerance = settings.Analysis.GLM.Tolerance
	opts.Confidence = settings.Analysis.GLM.Confidence
	opts.Workers = settings.Analysis.Workers
	return opts
}

// Run executes the full model batch: both method tables are loaded and
// schema-checked, then the same predictor set is fit against the combined
// data and against each configured pack, under both estimation methods.
// One panel per partition set is returned, ready for rendering.
func Run(settings *conf.Settings, metrics *observability.Metrics) ([]Panel, error) {
	logger := logging.ForService("analysis")
	if logger == nil {
		logger = slog.Default()
	}

	runID := uuid.NewString()
	metrics.SetRunID(runID)

	logger.Info("starting habitat selection analysis",
		"run_id", runID,
		"predictors", len(settings.Analysis.Predictors),
		"packs", settings.Input.Packs,
	)

	kde, err := loadMethodTable(settings.Input.KDE, settings)
	if err != nil {
		return nil, err
	}
	mcp, err := loadMethodTable(settings.Input.MCP, settings)
	if err != nil {
		return nil, err
	}
	metrics.ObserveRows(kde.Name(), kde.Len())
	metrics.ObserveRows(mcp.Name(), mcp.Len())

	opts := OptionsFromSettings(settings)
	response := settings.Input.Response
	predictors := settings.Analysis.Predictors

	panels := make([]Panel, 0, 1+len(settings.Input.Packs))

	// Combined panel across all packs.
	combined, err := runPanel(kde, mcp, "", settings, response, predictors, opts, metrics)
	if err != nil {
		return nil, err
	}
	panels = append(panels, Panel{Title: "All wolves", Results: combined})

	// One panel per pack subset.
	for _, pack := range settings.Input.Packs {
		kdeSub, err := kde.Filter(settings.Input.Pack, pack)
		if err != nil {
			return nil, fmt.Errorf("selecting pack %q: %w", pack, err)
		}
		mcpSub, err := mcp.Filter(settings.Input.Pack, pack)
		if err != nil {
			return nil, fmt.Errorf("selecting pack %q: %w", pack, err)
		}

		results, err := runPanel(kdeSub, mcpSub, pack, settings, response, predictors, opts, metrics)
		if err != nil {
			return nil, err
		}
		panels = append(panels, Panel{Title: pack + " pack", Results: results})
	}

	logger.Info("analysis run complete",
		"run_id", runID,
		"panels", len(panels),
		"models", len(panels)*2*len(predictors),
	)

	return panels, nil
}

// runPanel fits one partition set: the KDE and MCP views of the same pack
// subset (or of all packs when pack is empty).
func runPanel(kde, mcp *habitat.Table, pack string, settings *conf.Settings, response string, predictors []string, opts FitOptions, metrics *observability.Metrics) (ResultTable, error) {
	kdeKey := PartitionKey{Pack: pack, Method: settings.Input.KDE.Label}
	mcpKey := PartitionKey{Pack: pack, Method: settings.Input.MCP.Label}

	keys := []PartitionKey{kdeKey, mcpKey}
	tables := map[PartitionKey]*habitat.Table{
		kdeKey: kde,
		mcpKey: mcp,
	}
	labels := map[PartitionKey]string{
		kdeKey: settings.Input.KDE.Label,
		mcpKey: settings.Input.MCP.Label,
	}

	return RunPartitions(keys, tables, labels, response, predictors, opts, metrics)
}

// loadMethodTable loads one method's observation table and verifies that
// every column the run needs is present before any model is fit.
func loadMethodTable(input conf.MethodInput, settings *conf.Settings) (*habitat.Table, error) {
	tbl, err := habitat.LoadCSV(input.Path, input.Label)
	if err != nil {
		return nil, err
	}

	required := make([]string, 0, 2+len(settings.Analysis.Predictors))
	required = append(required, settings.Input.Response, settings.Input.Pack)
	required = append(required, settings.Analysis.Predictors...)
	if err := tbl.RequireColumns(required...); err != nil {
		return nil, err
	}

	logging.Debug("loaded observation table",
		"table", tbl.Name(),
		"rows", tbl.Len(),
		"columns", len(tbl.Columns()),
	)

	return tbl, nil
}
