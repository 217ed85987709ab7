// Package glm fits the univariate binomial regressions underlying the
// habitat-selection models. The solver is iteratively reweighted least
// squares over gonum matrices.
package glm

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/wildrange/rsf-go/internal/errors"
)

// Options controls the IRLS solver.
type Options struct {
	MaxIterations int     // iteration cap
	Tolerance     float64 // max absolute coefficient change considered converged
}

// DefaultOptions returns solver settings that converge for every
// well-conditioned used/available table.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 25,
		Tolerance:     1e-8,
	}
}

// Result holds the fitted intercept and slope of a univariate logistic
// regression, on the logit scale.
type Result struct {
	Intercept     float64
	Coefficient   float64 // slope on the single predictor
	StdErr        float64 // standard error of the slope
	LogLikelihood float64
	Iterations    int
	N             int
}

// weight floor keeps the working weights away from zero when fitted
// probabilities saturate.
const minWeight = 1e-10

// probability clamp for the log-likelihood and working response.
const probEps = 1e-10

func fitError(format string, args ...any) *errors.ErrorBuilder {
	return errors.Newf(format, args...).
		Component("glm").
		Category(errors.CategoryModelFit)
}

// FitLogistic fits response ~ intercept + predictor with a binomial response
// by IRLS. The response must be 0/1 coded with both classes present, and the
// predictor must not be constant. Fails with a model-fit error when the
// solver does not converge or the weighted system is degenerate.
func FitLogistic(predictor, response []float64, opts Options) (*Result, error) {
	n := len(predictor)
	if n == 0 {
		return nil, fitError("no observations to fit").Build()
	}
	if len(response) != n {
		return nil, errors.Newf("predictor has %d rows but response has %d", n, len(response)).
			Component("glm").
			Category(errors.CategoryValidation).
			Build()
	}
	if opts.MaxIterations <= 0 {
		opts = DefaultOptions()
	}

	ones, zeros := 0, 0
	for _, v := range response {
		switch v {
		case 0:
			zeros++
		case 1:
			ones++
		default:
			return nil, errors.Newf("response value %g is not 0/1 coded", v).
				Component("glm").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	if ones == 0 || zeros == 0 {
		return nil, fitError("response has a single class, %d used and %d available", ones, zeros).Build()
	}

	constant := true
	for _, v := range predictor {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Newf("predictor contains a non-finite value %g", v).
				Component("glm").
				Category(errors.CategoryValidation).
				Build()
		}
		if v != predictor[0] {
			constant = false
		}
	}
	if constant {
		return nil, fitError("predictor is constant with value %g", predictor[0]).Build()
	}

	// Design matrix with an intercept column.
	x := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, predictor[i])
	}

	beta := [2]float64{0, 0}
	eta := make([]float64, n)
	mu := make([]float64, n)
	w := make([]float64, n)

	sx := mat.NewDense(n, 2, nil)
	sz := mat.NewDense(n, 1, nil)
	var solved mat.Dense
	var qr mat.QR

	converged := false
	iterations := 0
	start := time.Now()

	for iter := 0; iter < opts.MaxIterations; iter++ {
		iterations = iter + 1

		for i := 0; i < n; i++ {
			eta[i] = beta[0] + beta[1]*predictor[i]
			mu[i] = 1 / (1 + math.Exp(-eta[i]))
			w[i] = mu[i] * (1 - mu[i])
			if w[i] < minWeight {
				w[i] = minWeight
			}
			// Working response for the weighted least squares step.
			z := eta[i] + (response[i]-mu[i])/w[i]
			sw := math.Sqrt(w[i])
			sx.Set(i, 0, sw*x.At(i, 0))
			sx.Set(i, 1, sw*x.At(i, 1))
			sz.Set(i, 0, sw*z)
		}

		qr.Factorize(sx)
		if err := qr.SolveTo(&solved, false, sz); err != nil {
			return nil, fitError("weighted least squares step is degenerate: %w", err).
				Context("iteration", iterations).
				Build()
		}

		next := [2]float64{solved.At(0, 0), solved.At(1, 0)}
		delta := math.Max(math.Abs(next[0]-beta[0]), math.Abs(next[1]-beta[1]))
		beta = next

		if delta < opts.Tolerance {
			converged = true
			break
		}
	}

	if !converged {
		return nil, fitError("IRLS did not converge after %d iterations, likely separation or an ill-scaled predictor", iterations).
			Context("iterations", iterations).
			Timing("irls", time.Since(start)).
			Build()
	}

	// Observed information at the fitted coefficients: XtWX for the final
	// weights, inverted for the coefficient covariance.
	var s00, s01, s11 float64
	var logLik float64
	for i := 0; i < n; i++ {
		eta[i] = beta[0] + beta[1]*predictor[i]
		mu[i] = 1 / (1 + math.Exp(-eta[i]))
		wi := mu[i] * (1 - mu[i])
		s00 += wi
		s01 += wi * predictor[i]
		s11 += wi * predictor[i] * predictor[i]

		p := math.Min(math.Max(mu[i], probEps), 1-probEps)
		if response[i] == 1 {
			logLik += math.Log(p)
		} else {
			logLik += math.Log(1 - p)
		}
	}

	det := s00*s11 - s01*s01
	if det <= 0 || math.IsNaN(det) {
		return nil, fitError("information matrix is singular, cannot estimate standard errors").Build()
	}
	slopeVar := s00 / det
	if slopeVar <= 0 {
		return nil, fitError("negative slope variance %g, fit is degenerate", slopeVar).Build()
	}

	return &Result{
		Intercept:     beta[0],
		Coefficient:   beta[1],
		StdErr:        math.Sqrt(slopeVar),
		LogLikelihood: logLik,
		Iterations:    iterations,
		N:             n,
	}, nil
}
