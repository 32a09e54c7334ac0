// Package fitter drives a small Newton-Raphson loop over coxdev.Context,
// the reference consumer the rest of this module's ambient stack (logging,
// metrics, config) is built to support.
package fitter

import (
	"fmt"
	"time"

	"github.com/katalvlaran/coxdev/coxdev"
	"github.com/katalvlaran/coxdev/design"
	"gonum.org/v1/gonum/mat"
)

// Options controls the Newton loop's stopping criteria.
type Options struct {
	MaxIterations int
	Tolerance     float64 // stop when |deviance_prev - deviance| < Tolerance
}

// DefaultOptions returns the Options this package was validated against.
func DefaultOptions() Options {
	return Options{MaxIterations: 25, Tolerance: 1e-8}
}

// Validate reports whether o describes a runnable loop.
func (o Options) Validate() error {
	if o.MaxIterations <= 0 {
		return fmt.Errorf("fitter: MaxIterations must be > 0, got %d", o.MaxIterations)
	}
	if o.Tolerance <= 0 {
		return fmt.Errorf("fitter: Tolerance must be > 0, got %v", o.Tolerance)
	}

	return nil
}

// IterationHook is invoked once per Newton step, before the stopping
// criteria are checked, so a caller can log progress or update metrics.
// evaluateDuration covers only that step's Context.Evaluate call, not the
// curvature solve that follows it.
type IterationHook func(iteration int, deviance float64, evaluateDuration time.Duration)

// Result holds the final fitted state.
type Result struct {
	Beta        []float64
	Deviance    float64
	Iterations  int
	Gradient    []float64
	DiagHessian []float64
}

// Fit runs Newton-Raphson on eta = X*beta, starting from beta=0, using
// design.XtHX to assemble the p×p curvature matrix at each step from
// coxdev's matrix-free Hessian operator.
func Fit(ctx *coxdev.Context, x *mat.Dense, opts Options, hook IterationHook) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	n, p := x.Dims()
	beta := mat.NewVecDense(p, nil)
	eta := make([]float64, n)

	prevDeviance := 0.0
	var res coxdev.EvalResult
	for it := 0; it < opts.MaxIterations; it++ {
		computeEta(x, beta, eta)

		var err error
		evalStart := time.Now()
		res, err = ctx.Evaluate(eta, nil)
		evalElapsed := time.Since(evalStart)
		if err != nil {
			return Result{}, fmt.Errorf("fitter: Fit: iteration %d: %w", it, err)
		}
		if hook != nil {
			hook(it, res.Deviance, evalElapsed)
		}
		if it > 0 && absf(prevDeviance-res.Deviance) < opts.Tolerance {
			return Result{Beta: beta.RawVector().Data, Deviance: res.Deviance, Iterations: it + 1, Gradient: res.Gradient, DiagHessian: res.DiagHessian}, nil
		}
		prevDeviance = res.Deviance

		info, err := ctx.Information(eta, nil)
		if err != nil {
			return Result{}, fmt.Errorf("fitter: Fit: iteration %d: %w", it, err)
		}
		hessian, err := design.XtHX(info, x)
		if err != nil {
			return Result{}, fmt.Errorf("fitter: Fit: iteration %d: %w", it, err)
		}

		grad := mat.NewVecDense(p, nil)
		grad.MulVec(x.T(), mat.NewVecDense(n, res.Gradient))

		var step mat.VecDense
		if err := step.SolveVec(hessian, grad); err != nil {
			return Result{}, fmt.Errorf("fitter: Fit: iteration %d: singular curvature matrix: %w", it, err)
		}

		var next mat.VecDense
		next.SubVec(beta, &step)
		beta = mat.NewVecDense(p, append([]float64(nil), next.RawVector().Data...))
	}

	return Result{Beta: beta.RawVector().Data, Deviance: res.Deviance, Iterations: opts.MaxIterations, Gradient: res.Gradient, DiagHessian: res.DiagHessian}, nil
}

func computeEta(x *mat.Dense, beta *mat.VecDense, eta []float64) {
	n := len(eta)
	etaVec := mat.NewVecDense(n, eta)
	etaVec.MulVec(x, beta)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
