package coxdev

import (
	"errors"
	"fmt"
)

// Error kinds, checked with errors.Is. A caller that wants to distinguish a
// malformed call from a genuinely degenerate fit should match against these
// four sentinels rather than parsing message text.
//
// Priority when more than one condition applies: length and emptiness
// checks (ErrInputShape) run before any ErrInputDomain check (a length
// mismatch is reported before a domain violation that a shape check would
// have masked). NewContext then checks the TieBreaking value, and then each
// subject in index order (finite event time, ErrInputShape; status and
// start < event, ErrInputDomain), so a non-finite event time is reported
// only if no earlier subject failed a domain check. All of these are
// checked before
// ErrPreprocessInvariant (domain validity is required before the derived
// tie tables can even be trusted), which is checked before
// ErrNumericalDegeneracy (a degenerate risk set is only meaningful once
// preprocessing itself is known to be internally consistent).
var (
	// ErrInputShape indicates that start, event, status or weight slices
	// have inconsistent or non-positive lengths, or that an event time is
	// NaN or infinite.
	ErrInputShape = errors.New("coxdev: input shape invalid")

	// ErrInputDomain indicates a value outside its admissible domain:
	// status not in {0,1}, a negative weight, start >= event for some
	// subject, or an unrecognised TieBreaking value.
	ErrInputDomain = errors.New("coxdev: input domain invalid")

	// ErrPreprocessInvariant indicates that the derived tie tables failed
	// an internal consistency check (first_start != start_map). This
	// should never occur for inputs that passed shape and domain
	// validation; seeing it means the order/tie-table construction has a
	// bug, not that the caller's data is malformed.
	ErrPreprocessInvariant = errors.New("coxdev: preprocess invariant violated")

	// ErrNumericalDegeneracy indicates that a risk-set sum collapsed to a
	// non-positive value at a row with positive status and weight,
	// typically from underflow in exp(eta) for extreme linear predictors.
	ErrNumericalDegeneracy = errors.New("coxdev: numerical degeneracy")
)

// wrapf wraps a sentinel with call-site context, always placing the
// sentinel last so errors.Is keeps working through the wrap.
func wrapf(sentinel error, where string, args ...interface{}) error {
	return fmt.Errorf("coxdev: %s: %w", fmt.Sprintf(where, args...), sentinel)
}

// TieBreaking selects how concurrent failures (ties) are handled when
// assembling risk-set sums.
type TieBreaking int

const (
	// Breslow treats every tied failure as if it faced the full risk set;
	// cheapest, slightly biased toward the null when ties are frequent.
	Breslow TieBreaking = iota

	// Efron partially discounts the risk set by each tied failure's
	// position within its tie group; the standard default in modern
	// Cox-regression software.
	Efron
)

// String implements fmt.Stringer.
func (t TieBreaking) String() string {
	switch t {
	case Breslow:
		return "breslow"
	case Efron:
		return "efron"
	default:
		return fmt.Sprintf("TieBreaking(%d)", int(t))
	}
}

// EvalResult holds the four quantities a single Evaluate call produces, in
// native (caller-supplied) subject order.
type EvalResult struct {
	// LogLikSat is the saturated log-likelihood for the (status, weight)
	// combination evaluated, independent of eta.
	LogLikSat float64

	// Deviance is 2*(LogLikSat - partial log-likelihood at eta).
	Deviance float64

	// Gradient is d(Deviance)/d(eta), length n, native order.
	Gradient []float64

	// DiagHessian is the diagonal of d2(Deviance)/d(eta)2, length n,
	// native order.
	DiagHessian []float64
}
