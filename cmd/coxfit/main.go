// Command coxfit is a demonstration CLI layered on top of package coxdev:
// it fits a Cox model by Newton-Raphson over a CSV dataset (fit), or
// benchmarks the evaluator on a synthetic series (bench).
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
