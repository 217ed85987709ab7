package glm

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// WaldZ returns the two-sided standard normal quantile for the given
// confidence level, e.g. 0.95 -> 1.96.
func WaldZ(confidence float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - (1-confidence)/2)
}
