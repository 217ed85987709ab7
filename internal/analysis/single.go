package analysis

import (
	"fmt"
	"math"

	"github.com/wildrange/rsf-go/internal/glm"
	"github.com/wildrange/rsf-go/internal/habitat"
)

// FitSingle fits a binomial regression of the response on one predictor only
// and returns the predictor's coefficient record, intercept excluded. The
// estimate and its Wald bounds are exponentiated to the odds-ratio scale.
func FitSingle(tbl *habitat.Table, response, predictor string, opts FitOptions) (Coefficient, error) {
	y, err := tbl.BinaryColumn(response)
	if err != nil {
		return Coefficient{}, fmt.Errorf("resolving response: %w", err)
	}
	x, err := tbl.NumericColumn(predictor)
	if err != nil {
		return Coefficient{}, fmt.Errorf("resolving predictor: %w", err)
	}

	res, err := glm.FitLogistic(x, y, opts.GLM)
	if err != nil {
		return Coefficient{}, fmt.Errorf("fitting %q on table %q: %w", predictor, tbl.Name(), err)
	}

	confidence := opts.Confidence
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultFitOptions().Confidence
	}
	z := glm.WaldZ(confidence)

	return Coefficient{
		Predictor: predictor,
		Estimate:  math.Exp(res.Coefficient),
		Lower:     math.Exp(res.Coefficient - z*res.StdErr),
		Upper:     math.Exp(res.Coefficient + z*res.StdErr),
		LogOdds:   res.Coefficient,
		StdErr:    res.StdErr,
	}, nil
}
