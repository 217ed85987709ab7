// Package analysis runs the batched habitat-selection model pipeline: one
// univariate logistic regression per covariate per data partition, tidied
// into flat coefficient tables ready for plotting.
package analysis

import (
	"github.com/wildrange/rsf-go/internal/glm"
)

// Coefficient is one tidied model term: the slope of a single univariate
// habitat model, reported on the odds-ratio scale.
type Coefficient struct {
	Predictor string  // covariate column the model was fit on
	Estimate  float64 // exponentiated slope
	Lower     float64 // exponentiated lower Wald bound
	Upper     float64 // exponentiated upper Wald bound
	LogOdds   float64 // slope on the logit scale
	StdErr    float64 // logit-scale standard error of the slope
	Label     string  // estimation method label, e.g. "KDE"
}

// ResultTable is an ordered concatenation of coefficient records, partition
// iteration order first, predictor order within each partition. It is built
// once per run and handed to the renderer as-is.
type ResultTable []Coefficient

// Predictors returns the distinct predictor names in first-seen order.
func (rt ResultTable) Predictors() []string {
	seen := make(map[string]bool, len(rt))
	var out []string
	for _, rec := range rt {
		if !seen[rec.Predictor] {
			seen[rec.Predictor] = true
			out = append(out, rec.Predictor)
		}
	}
	return out
}

// Labels returns the distinct method labels in first-seen order.
func (rt ResultTable) Labels() []string {
	seen := make(map[string]bool, 2)
	var out []string
	for _, rec := range rt {
		if !seen[rec.Label] {
			seen[rec.Label] = true
			out = append(out, rec.Label)
		}
	}
	return out
}

// ByLabel returns the records carrying the given method label, in order.
func (rt ResultTable) ByLabel(label string) ResultTable {
	var out ResultTable
	for _, rec := range rt {
		if rec.Label == label {
			out = append(out, rec)
		}
	}
	return out
}

// Find returns the record for a (predictor, label) pair, if present.
func (rt ResultTable) Find(predictor, label string) (Coefficient, bool) {
	for _, rec := range rt {
		if rec.Predictor == predictor && rec.Label == label {
			return rec, true
		}
	}
	return Coefficient{}, false
}

// FitOptions carries the solver and reporting settings shared by every fit
// in a run.
type FitOptions struct {
	GLM        glm.Options
	Confidence float64 // Wald interval confidence level
	Workers    int     // concurrent fits per batch, values below 1 run serially
}

// DefaultFitOptions mirrors the configuration defaults.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		GLM:        glm.DefaultOptions(),
		Confidence: 0.95,
		Workers:    1,
	}
}
