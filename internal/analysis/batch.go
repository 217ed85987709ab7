package analysis

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wildrange/rsf-go/internal/errors"
	"github.com/wildrange/rsf-go/internal/habitat"
	"github.com/wildrange/rsf-go/internal/observability"
)

// FitBatch runs FitSingle once per predictor against one observation table
// and concatenates the records, caller-supplied predictor order preserved.
// The label is attached to every record. The batch fails as a whole on the
// first failing fit, there is no partial success.
//
// Fits are independent, so they run under an errgroup bounded by
// opts.Workers; each goroutine writes only its own record slot, which keeps
// output order deterministic regardless of scheduling.
func FitBatch(tbl *habitat.Table, response string, predictors []string, label string, opts FitOptions, metrics *observability.Metrics) (ResultTable, error) {
	if len(predictors) == 0 {
		return nil, errors.Newf("no predictors given for batch %q", label).
			Component("analysis").
			Category(errors.CategoryValidation).
			Build()
	}

	seen := make(map[string]bool, len(predictors))
	for _, p := range predictors {
		if seen[p] {
			return nil, errors.Newf("duplicate predictor %q in batch %q", p, label).
				Component("analysis").
				Category(errors.CategorySchema).
				Context("predictor", p).
				Context("label", label).
				Build()
		}
		seen[p] = true
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	records := make(ResultTable, len(predictors))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, predictor := range predictors {
		i, predictor := i, predictor
		g.Go(func() error {
			start := time.Now()
			rec, err := FitSingle(tbl, response, predictor, opts)
			metrics.ObserveFit(label, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("batch %q: %w", label, err)
			}
			rec.Label = label
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
