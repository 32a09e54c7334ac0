// Package coxdev (module github.com/katalvlaran/coxdev) is a Cox
// partial-likelihood evaluator for right-censored time-to-event data.
//
// What is coxdev?
//
//	A small, dependency-light numerical core that turns (start, event,
//	status) observations and a vector of linear predictors into the four
//	quantities a Newton-type fitter needs:
//
//	  - Saturated log-likelihood and deviance
//	  - Gradient of the deviance with respect to the linear predictor
//	  - Diagonal of the Hessian
//	  - A matrix-free Hessian-vector product, for forming XᵀHX without
//	    ever materializing H
//
// Why coxdev?
//
//   - Single preprocessing pass: one O(n log n) sort per (start, event,
//     status) triple, then O(n) per evaluation
//   - Both tie conventions: Breslow and Efron share one code path
//   - Left-truncation aware: "event-only" and "(start, stop]" data both
//     flow through the same risk-set machinery
//   - No hidden state: a Context is immutable after construction; the
//     only shared mutable state is a single-entry memoisation slot
//
// Under the hood, the implementation is organized as:
//
//	coxdev/     the core: order/tie preprocessing, saturated likelihood,
//	            the deviance/gradient kernel, and the Hessian operator
//	design/     a small dense-matrix helper that assembles XᵀHX from
//	            repeated Hessian-vector products (kept outside the core,
//	            which excludes design-matrix multiplication)
//	cmd/coxfit/ a demo/benchmark CLI layered on top of the core
//
// See SPEC_FULL.md and DESIGN.md for the full specification and the
// grounding ledger behind each package.
//
//	go get github.com/katalvlaran/coxdev/coxdev
package coxdev
