package coxdev

import "math"

// saturatedLogLik computes the saturated log-likelihood for the current
// (status, weight) combination: the log-likelihood a model that fits every
// tie group's hazard exactly would achieve. It depends on weight but not on
// eta, so Evaluate recomputes it only when the memoisation slot misses.
func (c *Context) saturatedLogLik(w []float64) float64 {
	n := c.n
	wEv := make([]float64, n)
	statusEv := make([]float64, n)
	for k := 0; k < n; k++ {
		wEv[k] = w[c.eventOrder[k]]
		statusEv[k] = float64(c.statusNat[c.eventOrder[k]])
	}

	// Prefix cumsum of wEv*statusEv, length n+1.
	cum := make([]float64, n+1)
	for k := 0; k < n; k++ {
		cum[k+1] = cum[k] + wEv[k]*statusEv[k]
	}

	loglikSat := 0.0
	prevFirst := -1
	for k := 0; k < n; k++ {
		sum := cum[c.last[k]+1] - cum[c.first[k]]
		if sum > 0 && c.first[k] != prevFirst {
			loglikSat -= sum * math.Log(sum)
		}
		prevFirst = c.first[k]
	}

	return loglikSat
}
