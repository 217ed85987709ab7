// conf/validate.go settings validation
package conf

import (
	"fmt"

	"github.com/wildrange/rsf-go/internal/errors"
)

// ValidateSettings checks the loaded settings for values that would make a
// run fail in a confusing way later. All problems are collected and reported
// together as one configuration error.
func ValidateSettings(settings *Settings) error {
	var problems []error

	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if settings.Input.KDE.Path == "" || settings.Input.MCP.Path == "" {
		addf("input paths must be set for both estimation methods")
	}
	if settings.Input.KDE.Label == "" || settings.Input.MCP.Label == "" {
		addf("method labels must not be empty")
	} else if settings.Input.KDE.Label == settings.Input.MCP.Label {
		addf("method labels must differ, both are %q", settings.Input.KDE.Label)
	}
	if settings.Input.Response == "" {
		addf("input.response column name must not be empty")
	}
	if settings.Input.Pack == "" {
		addf("input.pack column name must not be empty")
	}
	if len(settings.Input.Packs) == 0 {
		addf("at least one pack label is required")
	}

	if len(settings.Analysis.Predictors) == 0 {
		addf("analysis.predictors must not be empty")
	}
	seen := make(map[string]bool, len(settings.Analysis.Predictors))
	for _, p := range settings.Analysis.Predictors {
		if p == "" {
			addf("predictor names must not be empty")
			continue
		}
		if seen[p] {
			addf("duplicate predictor %q in analysis.predictors", p)
		}
		seen[p] = true
	}
	if settings.Analysis.Workers < 0 {
		addf("analysis.workers must not be negative, got %d", settings.Analysis.Workers)
	}

	glm := &settings.Analysis.GLM
	if glm.MaxIterations <= 0 {
		addf("analysis.glm.maxiterations must be positive, got %d", glm.MaxIterations)
	}
	if glm.Tolerance <= 0 {
		addf("analysis.glm.tolerance must be positive, got %g", glm.Tolerance)
	}
	if glm.Confidence <= 0 || glm.Confidence >= 1 {
		addf("analysis.glm.confidence must be in (0, 1), got %g", glm.Confidence)
	}

	if settings.Output.Figure.Enabled && settings.Output.Figure.Path == "" {
		addf("output.figure.path must be set when the figure is enabled")
	}
	if settings.Output.Export.Enabled && settings.Output.Export.Path == "" {
		addf("output.export.path must be set when export is enabled")
	}
	if settings.Output.Metrics.Enabled && settings.Output.Metrics.Path == "" {
		addf("output.metrics.path must be set when metrics are enabled")
	}

	switch settings.Main.Log.Rotation {
	case RotationDaily, RotationWeekly, RotationSize:
	default:
		addf("unknown log rotation type %q", settings.Main.Log.Rotation)
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.Join(problems...)).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Context("problems", len(problems)).
		Build()
}
