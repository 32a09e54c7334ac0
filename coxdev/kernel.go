package coxdev

import "math"

// intermediates holds every per-(eta,w) quantity that both Evaluate and
// Information need, computed once and shared between them via the
// memoisation slot.
type intermediates struct {
	eNative  []float64 // exp(eta-mean(eta))*w, native order
	eEv      []float64 // e, event order
	riskSums []float64 // event order
	wAvg     []float64 // event order
	statusEv []float64 // event order, 0/1
	t1       []float64 // event order
	t2       []float64 // event order

	loglikSat   float64
	deviance    float64
	gradient    []float64 // native order
	diagHessian []float64 // native order
}

// evaluateCore runs the deviance & gradient kernel (and the forward
// cumulants the Hessian operator reuses) once for a given (eta, w) pair.
func (c *Context) evaluateCore(eta, w []float64) (*intermediates, error) {
	n := c.n

	mean := 0.0
	for _, v := range eta {
		mean += v
	}
	mean /= float64(n)

	eNative := make([]float64, n)
	for i := 0; i < n; i++ {
		eNative[i] = math.Exp(eta[i]-mean) * w[i]
	}

	eEv := gather(eNative, c.eventOrder)
	eSt := gather(eNative, c.startOrder)

	eventCumsum := reverseCumsum(eEv)
	startCumsum := reverseCumsum(eSt)

	riskSums := make([]float64, n)
	for k := 0; k < n; k++ {
		rs := eventCumsum[c.first[k]]
		if c.haveStart {
			rs -= startCumsum[c.eventMap[k]]
		}
		if c.efron {
			rs -= c.scaling[k] * (eventCumsum[c.first[k]] - eventCumsum[c.last[k]+1])
		}
		riskSums[k] = rs
	}

	wEv := gather(w, c.eventOrder)
	wCumsum := make([]float64, n+1)
	for k := 0; k < n; k++ {
		wCumsum[k+1] = wCumsum[k] + wEv[k]
	}
	wAvg := make([]float64, n)
	for k := 0; k < n; k++ {
		wAvg[k] = (wCumsum[c.last[k]+1] - wCumsum[c.first[k]]) / float64(c.last[k]+1-c.first[k])
	}

	statusEv := make([]float64, n)
	for k := 0; k < n; k++ {
		statusEv[k] = float64(c.statusNat[c.eventOrder[k]])
	}

	etaCenteredEv := make([]float64, n)
	for k := 0; k < n; k++ {
		etaCenteredEv[k] = eta[c.eventOrder[k]] - mean
	}

	loglik := 0.0
	for k := 0; k < n; k++ {
		// A zero-weight tie group contributes nothing to the partial
		// log-likelihood; skipping it here (rather than multiplying
		// wAvg[k]==0 through a degenerate log(riskSums[k])) keeps a
		// collapsed risk set in an all-zero-weight group from raising
		// ErrNumericalDegeneracy for a term that would not affect the
		// result anyway.
		if statusEv[k] == 0 || wAvg[k] == 0 {
			continue
		}
		if riskSums[k] <= 0 {
			return nil, wrapf(ErrNumericalDegeneracy, "evaluate: risk_sums[%d]=%v non-positive with status=1, w_avg=%v", k, riskSums[k], wAvg[k])
		}
		loglik += wAvg[k] * etaCenteredEv[k]
		loglik -= wAvg[k] * math.Log(riskSums[k])
	}

	loglikSat := c.saturatedLogLik(w)
	deviance := 2 * (loglikSat - loglik)

	// A10[k] = status*wAvg/riskSums, A20[k] = status*wAvg/riskSums^2.
	a10 := make([]float64, n)
	a20 := make([]float64, n)
	for k := 0; k < n; k++ {
		if statusEv[k] == 0 || wAvg[k] == 0 {
			continue
		}
		a10[k] = statusEv[k] * wAvg[k] / riskSums[k]
		a20[k] = statusEv[k] * wAvg[k] / (riskSums[k] * riskSums[k])
	}
	c10 := prefixCumsum(a10)
	c20 := prefixCumsum(a20)

	t1 := make([]float64, n)
	t2 := make([]float64, n)

	if !c.efron {
		for k := 0; k < n; k++ {
			if c.haveStart {
				t1[k] = c10[c.last[k]+1] - c10[c.firstStart[k]]
				t2[k] = c20[c.last[k]+1] - c20[c.firstStart[k]]
			} else {
				t1[k] = c10[c.last[k]+1]
				t2[k] = c20[c.last[k]+1]
			}
		}
	} else {
		a11 := make([]float64, n) // A11 = A21 = A22 = status*wAvg*scaling/riskSums
		for k := 0; k < n; k++ {
			a11[k] = a10[k] * c.scaling[k]
		}
		c11 := prefixCumsum(a11)
		c21 := c11
		c22 := c11
		for k := 0; k < n; k++ {
			t1[k] = c10[c.last[k]+1] - (c11[c.last[k]+1] - c11[c.first[k]])
			t2[k] = (c22[c.last[k]+1] - c22[c.first[k]]) - 2*(c21[c.last[k]+1]-c21[c.first[k]]) + c20[c.last[k]+1]
			if c.haveStart {
				t1[k] -= c10[c.firstStart[k]]
				t2[k] -= c20[c.first[k]] // intentionally first[k], not firstStart[k]; see DESIGN.md
			}
		}
	}

	gradEv := make([]float64, n)
	hdiagEv := make([]float64, n)
	for k := 0; k < n; k++ {
		gradEv[k] = wAvg[k]*statusEv[k] - eEv[k]*t1[k]
		hdiagEv[k] = eEv[k]*eEv[k]*t2[k] - eEv[k]*t1[k]
	}

	gradient := make([]float64, n)
	diagHessian := make([]float64, n)
	for k := 0; k < n; k++ {
		gradient[c.eventOrder[k]] = -2 * gradEv[k]
		diagHessian[c.eventOrder[k]] = -2 * hdiagEv[k]
	}

	return &intermediates{
		eNative:     eNative,
		eEv:         eEv,
		riskSums:    riskSums,
		wAvg:        wAvg,
		statusEv:    statusEv,
		t1:          t1,
		t2:          t2,
		loglikSat:   loglikSat,
		deviance:    deviance,
		gradient:    gradient,
		diagHessian: diagHessian,
	}, nil
}

// Evaluate computes the saturated log-likelihood, deviance, gradient and
// diagonal Hessian at the given linear predictor eta and case weights w
// (both length n, native order). A nil w is treated as all-ones.
//
// Repeated calls with the same (eta, w) content hit the Context's
// single-entry memoisation slot and skip recomputation.
func (c *Context) Evaluate(eta, w []float64) (EvalResult, error) {
	w = defaultWeights(w, c.n)
	if len(eta) != c.n || len(w) != c.n {
		return EvalResult{}, wrapf(ErrInputShape, "Evaluate: eta/w length must be %d, got %d/%d", c.n, len(eta), len(w))
	}
	if err := validateWeights(w); err != nil {
		return EvalResult{}, err
	}

	in, err := c.cached(eta, w)
	if err != nil {
		return EvalResult{}, err
	}

	return EvalResult{
		LogLikSat:   in.loglikSat,
		Deviance:    in.deviance,
		Gradient:    append([]float64(nil), in.gradient...),
		DiagHessian: append([]float64(nil), in.diagHessian...),
	}, nil
}

// validateWeights returns ErrInputDomain if any weight is negative. Zero
// weights are admissible (they simply drop a subject from the saturated
// and partial log-likelihoods).
func validateWeights(w []float64) error {
	for i, wi := range w {
		if wi < 0 {
			return wrapf(ErrInputDomain, "weight[%d]=%v must be >= 0", i, wi)
		}
	}

	return nil
}

func defaultWeights(w []float64, n int) []float64 {
	if w != nil {
		return w
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	return ones
}

func gather(src []float64, order []int) []float64 {
	out := make([]float64, len(order))
	for k, idx := range order {
		out[k] = src[idx]
	}

	return out
}

// reverseCumsum returns a length len(x)+1 slice where out[m] = sum(x[m:]),
// out[len(x)] = 0.
func reverseCumsum(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n+1)
	for k := n - 1; k >= 0; k-- {
		out[k] = out[k+1] + x[k]
	}

	return out
}

// prefixCumsum returns a length len(x)+1 slice where out[m] = sum(x[:m]),
// out[0] = 0.
func prefixCumsum(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n+1)
	for k := 0; k < n; k++ {
		out[k+1] = out[k] + x[k]
	}

	return out
}
