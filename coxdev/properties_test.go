package coxdev_test

import (
	"testing"

	"github.com/katalvlaran/coxdev/coxdev"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// permuteF applies perm (perm[i] = new position of old index i is not what
// we need; here perm[k] = old index feeding new position k) to build a
// relabeled copy of a series.
func permuteF(x []float64, perm []int) []float64 {
	out := make([]float64, len(x))
	for k, old := range perm {
		out[k] = x[old]
	}

	return out
}

func permuteI(x []int, perm []int) []int {
	out := make([]int, len(x))
	for k, old := range perm {
		out[k] = x[old]
	}

	return out
}

// TestProperty_PermutationInvariance (invariant I-PERM) checks that
// relabeling every subject-indexed input by the same permutation leaves
// the saturated log-likelihood and deviance unchanged, and permutes the
// gradient and diagonal Hessian consistently.
func TestProperty_PermutationInvariance(t *testing.T) {
	event := []float64{2, 2, 4, 5, 7, 9}
	status := []int{1, 1, 0, 1, 1, 0}
	start := []float64{0, 0, 1, 0, 2, 0}
	eta := []float64{0.2, -0.4, 0.1, 0.3, -0.2, 0.05}
	w := []float64{1, 1, 2, 1, 1, 1.5}
	perm := []int{3, 0, 5, 1, 4, 2}

	ctx, err := coxdev.NewContext(start, event, status, true, coxdev.Efron)
	require.NoError(t, err)
	res, err := ctx.Evaluate(eta, w)
	require.NoError(t, err)

	ctxP, err := coxdev.NewContext(permuteF(start, perm), permuteF(event, perm), permuteI(status, perm), true, coxdev.Efron)
	require.NoError(t, err)
	resP, err := ctxP.Evaluate(permuteF(eta, perm), permuteF(w, perm))
	require.NoError(t, err)

	if !floats.EqualWithinAbs(res.Deviance, resP.Deviance, 1e-9) {
		t.Fatalf("deviance not permutation invariant: %v vs %v", res.Deviance, resP.Deviance)
	}
	if !floats.EqualWithinAbs(res.LogLikSat, resP.LogLikSat, 1e-9) {
		t.Fatalf("loglik_sat not permutation invariant: %v vs %v", res.LogLikSat, resP.LogLikSat)
	}
	for k, old := range perm {
		if !floats.EqualWithinAbs(res.Gradient[old], resP.Gradient[k], 1e-9) {
			t.Fatalf("gradient[%d] should equal permuted gradient[%d]", old, k)
		}
		if !floats.EqualWithinAbs(res.DiagHessian[old], resP.DiagHessian[k], 1e-9) {
			t.Fatalf("diag_hessian[%d] should equal permuted diag_hessian[%d]", old, k)
		}
	}
}

// TestProperty_DevianceNonNegative (invariant I-NONNEG) checks that the
// deviance never goes negative, across a spread of linear predictors.
func TestProperty_DevianceNonNegative(t *testing.T) {
	event := []float64{1, 2, 2, 3, 4, 5}
	status := []int{1, 1, 1, 0, 1, 1}
	start := make([]float64, 6)

	ctx, err := coxdev.NewContext(start, event, status, false, coxdev.Efron)
	require.NoError(t, err)

	etas := [][]float64{
		{0, 0, 0, 0, 0, 0},
		{0.5, -0.5, 0.2, -0.2, 0.1, -0.1},
		{2, -2, 1, -1, 3, -3},
	}
	for _, eta := range etas {
		res, err := ctx.Evaluate(eta, nil)
		require.NoError(t, err)
		if res.Deviance < -1e-9 {
			t.Fatalf("deviance went negative: %v for eta=%v", res.Deviance, eta)
		}
	}
}

// TestProperty_AllCensoredZeroGradient (invariant I-NOEVENT) checks that
// when no subject ever fails, the gradient and diagonal Hessian are
// identically zero: there is no partial-likelihood signal at all.
func TestProperty_AllCensoredZeroGradient(t *testing.T) {
	event := []float64{1, 2, 3, 4}
	status := []int{0, 0, 0, 0}
	start := make([]float64, 4)
	eta := []float64{0.2, -0.4, 0.1, 0.3}

	ctx, err := coxdev.NewContext(start, event, status, false, coxdev.Breslow)
	require.NoError(t, err)
	res, err := ctx.Evaluate(eta, nil)
	require.NoError(t, err)

	for i, g := range res.Gradient {
		if !floats.EqualWithinAbs(g, 0, 1e-12) {
			t.Fatalf("gradient[%d]=%v should be exactly zero with no failures", i, g)
		}
		if !floats.EqualWithinAbs(res.DiagHessian[i], 0, 1e-12) {
			t.Fatalf("diag_hessian[%d]=%v should be exactly zero with no failures", i, res.DiagHessian[i])
		}
	}
	if res.Deviance < -1e-12 || res.Deviance > 1e-12 {
		t.Fatalf("deviance should be exactly zero with no failures, got %v", res.Deviance)
	}
}

// TestProperty_SingleSubjectDeterministic (scenario S1-style: the smallest
// possible dataset) checks that a single failure has zero deviance: the
// saturated model and the fitted model coincide trivially.
func TestProperty_SingleSubjectDeterministic(t *testing.T) {
	ctx, err := coxdev.NewContext([]float64{0}, []float64{1}, []int{1}, false, coxdev.Breslow)
	require.NoError(t, err)
	res, err := ctx.Evaluate([]float64{0.7}, nil)
	require.NoError(t, err)

	if !floats.EqualWithinAbs(res.Deviance, 0, 1e-9) {
		t.Fatalf("single-subject deviance should be zero, got %v", res.Deviance)
	}
}

// TestProperty_LeftTruncationChangesRiskSet (scenario covering
// left-truncated data) checks that introducing a late entry time for one
// subject changes the deviance relative to treating everyone as always
// at risk.
func TestProperty_LeftTruncationChangesRiskSet(t *testing.T) {
	event := []float64{2, 3, 4}
	status := []int{1, 1, 1}
	eta := []float64{0.1, 0.2, -0.1}

	ctxNoTrunc, err := coxdev.NewContext(make([]float64, 3), event, status, false, coxdev.Breslow)
	require.NoError(t, err)
	resNoTrunc, err := ctxNoTrunc.Evaluate(eta, nil)
	require.NoError(t, err)

	ctxTrunc, err := coxdev.NewContext([]float64{0, 2.5, 0}, event, status, true, coxdev.Breslow)
	require.NoError(t, err)
	resTrunc, err := ctxTrunc.Evaluate(eta, nil)
	require.NoError(t, err)

	if floats.EqualWithinAbs(resNoTrunc.Deviance, resTrunc.Deviance, 1e-9) {
		t.Fatalf("left truncation that excludes a subject from a risk set should change deviance")
	}
}
