package coxdev

// Information is a handle returned by Context.Information that exposes the
// Hessian of the deviance at a fixed (eta, w) as a linear operator, without
// ever materializing the n×n matrix. Apply costs O(n) per call, using the
// same forward/reverse cumulative-sum machinery as Evaluate.
type Information struct {
	ctx *Context
	in  *intermediates
}

// Information prepares the Hessian-vector operator at (eta, w). It shares
// the Context's memoisation slot with Evaluate, so calling Evaluate and
// Information with the same (eta, w) in either order computes the O(n)
// kernel only once.
func (c *Context) Information(eta, w []float64) (*Information, error) {
	w = defaultWeights(w, c.n)
	if len(eta) != c.n || len(w) != c.n {
		return nil, wrapf(ErrInputShape, "Information: eta/w length must be %d, got %d/%d", c.n, len(eta), len(w))
	}
	if err := validateWeights(w); err != nil {
		return nil, err
	}

	in, err := c.cached(eta, w)
	if err != nil {
		return nil, err
	}

	return &Information{ctx: c, in: in}, nil
}

// Apply returns H*v, where H is the Hessian of the deviance at the (eta, w)
// this Information was built from, and v is a length-n vector in native
// subject order.
//
// Derivation: writing grad_i = w_avg_i*status_i - e_i*T1_i for the
// (pre -2) gradient, differentiating T1_i in direction v reuses exactly
// the risk-set algebra that built T1_i itself, with every per-row term
// A10[k] replaced by A20[k]*Sv[k], where Sv is the risk-set sum built from
// u = e⊙v instead of e. Apply never recomputes e, risk_sums, T1 or T2:
// it reuses the intermediates cached by the (eta, w) this handle was
// built from.
func (info *Information) Apply(v []float64) ([]float64, error) {
	c := info.ctx
	n := c.n
	if len(v) != n {
		return nil, wrapf(ErrInputShape, "Apply: v length must be %d, got %d", n, len(v))
	}

	u := make([]float64, n)
	for i := 0; i < n; i++ {
		u[i] = info.in.eNative[i] * v[i]
	}
	uEv := gather(u, c.eventOrder)
	uSt := gather(u, c.startOrder)

	uEventCumsum := reverseCumsum(uEv)
	uStartCumsum := reverseCumsum(uSt)

	sv := make([]float64, n)
	for k := 0; k < n; k++ {
		s := uEventCumsum[c.first[k]]
		if c.haveStart {
			s -= uStartCumsum[c.eventMap[k]]
		}
		if c.efron {
			s -= c.scaling[k] * (uEventCumsum[c.first[k]] - uEventCumsum[c.last[k]+1])
		}
		sv[k] = s
	}

	q20 := make([]float64, n)
	for k := 0; k < n; k++ {
		// Mirrors evaluateCore's A10/A20 gating: a zero-weight tie group
		// contributes nothing here either, and skipping it avoids a
		// 0/0 division when its risk sum has also collapsed to zero.
		if info.in.statusEv[k] == 0 || info.in.wAvg[k] == 0 {
			continue
		}
		q20[k] = info.in.statusEv[k] * info.in.wAvg[k] * sv[k] / (info.in.riskSums[k] * info.in.riskSums[k])
	}
	q20cum := prefixCumsum(q20)

	g := make([]float64, n)
	if !c.efron {
		for k := 0; k < n; k++ {
			if c.haveStart {
				g[k] = q20cum[c.last[k]+1] - q20cum[c.firstStart[k]]
			} else {
				g[k] = q20cum[c.last[k]+1]
			}
		}
	} else {
		q21 := make([]float64, n)
		for k := 0; k < n; k++ {
			q21[k] = c.scaling[k] * q20[k]
		}
		q21cum := prefixCumsum(q21)
		for k := 0; k < n; k++ {
			if c.haveStart {
				g[k] = (q20cum[c.last[k]+1] - q20cum[c.firstStart[k]]) - (q21cum[c.last[k]+1] - q21cum[c.first[k]])
			} else {
				g[k] = q20cum[c.last[k]+1] - (q21cum[c.last[k]+1] - q21cum[c.first[k]])
			}
		}
	}

	vEv := gather(v, c.eventOrder)
	hv := make([]float64, n)
	for k := 0; k < n; k++ {
		hvEv := info.in.eEv[k]*g[k] - info.in.eEv[k]*info.in.t1[k]*vEv[k]
		hv[c.eventOrder[k]] = -2 * hvEv
	}

	return hv, nil
}
