// Package coxdev computes the Cox partial-likelihood deviance, its gradient,
// the diagonal of its Hessian, and a matrix-free Hessian-vector product for
// right-censored (and optionally left-truncated) time-to-event data.
//
// A Context is built once from the raw (start, event, status) triple via
// NewContext; it amortizes the O(n log n) joint sort and the tie-group
// bookkeeping (order.go, preprocess.go) so that every subsequent Evaluate
// or Information call runs in O(n) using only forward/reverse cumulative
// sums (kernel.go, hessian.go). A Context is immutable after construction
// and safe to share across goroutines for read-only evaluation; the single
// memoisation slot it carries (cache.go) is the only mutable state, and it
// is guarded by a mutex.
package coxdev
