package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/coxdev/coxdev"
)

var (
	benchN           int
	benchTieFraction float64
	benchIterations  int
	benchTieBreak    string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark Context.Evaluate on a synthetic series",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchN, "n", 10000, "number of synthetic subjects")
	benchCmd.Flags().Float64Var(&benchTieFraction, "tie-fraction", 0.0, "fraction of subjects sharing a failure time, in [0,1)")
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 100, "number of Evaluate calls to time")
	benchCmd.Flags().StringVar(&benchTieBreak, "tie-breaking", "efron", "breslow or efron")
}

func runBench(cmd *cobra.Command, args []string) error {
	tieBreak := coxdev.Efron
	if benchTieBreak == "breslow" {
		tieBreak = coxdev.Breslow
	}

	start, event, status := syntheticSeries(benchN, benchTieFraction)
	buildStart := time.Now()
	ctx, err := coxdev.NewContext(start, event, status, false, tieBreak)
	if err != nil {
		return fmt.Errorf("coxfit bench: %w", err)
	}
	buildElapsed := time.Since(buildStart)

	eta := make([]float64, benchN)
	evalStart := time.Now()
	for i := 0; i < benchIterations; i++ {
		eta[0] = float64(i) * 1e-9
		if _, err := ctx.Evaluate(eta, nil); err != nil {
			return fmt.Errorf("coxfit bench: %w", err)
		}
	}
	evalElapsed := time.Since(evalStart)

	log.Info().
		Int("n", benchN).
		Dur("preprocess", buildElapsed).
		Int("iterations", benchIterations).
		Dur("total_evaluate", evalElapsed).
		Dur("per_evaluate", evalElapsed/time.Duration(benchIterations)).
		Msg("bench complete")

	return nil
}

func syntheticSeries(n int, tieFraction float64) ([]float64, []float64, []int) {
	rng := rand.New(rand.NewSource(1))
	start := make([]float64, n)
	event := make([]float64, n)
	status := make([]int, n)

	nTimes := n
	if tieFraction > 0 {
		nTimes = int(float64(n) * (1 - tieFraction))
		if nTimes < 1 {
			nTimes = 1
		}
	}
	for i := 0; i < n; i++ {
		event[i] = float64(rng.Intn(nTimes) + 1)
		if rng.Float64() < 0.2 {
			status[i] = 0
		} else {
			status[i] = 1
		}
	}

	return start, event, status
}
