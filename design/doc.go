// Package design assembles the design-matrix-weighted Hessian XᵀHX from a
// coxdev.Information handle, one column of X at a time. It lives outside
// package coxdev deliberately: design-matrix multiplication is explicitly
// out of the core evaluator's scope, which only ever produces a
// Hessian-vector operator, never a materialized matrix.
package design
