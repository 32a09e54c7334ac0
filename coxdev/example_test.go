package coxdev_test

import (
	"fmt"

	"github.com/katalvlaran/coxdev/coxdev"
)

// ExampleNewContext demonstrates the standard workflow: build a Context
// once from (start, event, status), then call Evaluate at whatever linear
// predictor a fitter proposes.
//
// Scenario: three subjects, no left truncation, no tied failure times.
// Options: Breslow tie-breaking (irrelevant here, since there are no ties).
// Use case: the inner loop of a Newton-Raphson Cox fit.
// Complexity: O(n log n) once in NewContext, O(n) per Evaluate call.
func ExampleNewContext() {
	start := []float64{0, 0, 0}
	event := []float64{1, 2, 3}
	status := []int{1, 1, 1}

	ctx, err := coxdev.NewContext(start, event, status, false, coxdev.Breslow)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := ctx.Evaluate([]float64{0, 0, 0}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("deviance >= 0: %v\n", res.Deviance >= 0)
	// Output:
	// deviance >= 0: true
}

// ExampleContext_Information demonstrates assembling a Hessian-vector
// product without ever forming the dense Hessian.
//
// Scenario: three subjects, no left truncation, the first two failing at
// the same time; Efron tie-breaking for that pair of tied failures.
// Use case: a conjugate-gradient step inside a trust-region Cox fit.
func ExampleContext_Information() {
	start := []float64{0, 0, 0}
	event := []float64{1, 1, 2}
	status := []int{1, 1, 1}

	ctx, err := coxdev.NewContext(start, event, status, false, coxdev.Efron)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	eta := []float64{0.1, -0.1, 0.2}
	info, err := ctx.Information(eta, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	hv, err := info.Apply([]float64{1, 0, 0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("len(Hv): %d\n", len(hv))
	// Output:
	// len(Hv): 3
}
