package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/coxdev/coxdev"
	"github.com/katalvlaran/coxdev/internal/config"
	"github.com/katalvlaran/coxdev/internal/fitter"
	"github.com/katalvlaran/coxdev/internal/metrics"
)

var (
	fitManifestPath string
	fitDatasetPath  string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a Cox model by Newton-Raphson over a CSV dataset",
	RunE:  runFit,
}

func init() {
	fitCmd.Flags().StringVar(&fitManifestPath, "manifest", "", "path to a YAML column manifest (required)")
	fitCmd.Flags().StringVar(&fitDatasetPath, "dataset", "", "path to the CSV dataset (required)")
	_ = fitCmd.MarkFlagRequired("manifest")
	_ = fitCmd.MarkFlagRequired("dataset")
}

func runFit(cmd *cobra.Command, args []string) error {
	manifest, err := config.LoadManifest(fitManifestPath)
	if err != nil {
		return err
	}
	dataset, err := config.LoadDataset(fitDatasetPath, manifest)
	if err != nil {
		return err
	}

	tieBreak := coxdev.Breslow
	if manifest.TieBreaking == "efron" {
		tieBreak = coxdev.Efron
	}

	ctx, err := coxdev.NewContext(dataset.Start, dataset.Event, dataset.Status, manifest.HaveStart, tieBreak)
	if err != nil {
		return fmt.Errorf("coxfit fit: %w", err)
	}

	n := len(dataset.Event)
	p := len(manifest.Covariates)
	if p == 0 {
		return fmt.Errorf("coxfit fit: manifest must list at least one covariate")
	}
	xData := make([]float64, n*p)
	for j, name := range manifest.Covariates {
		col := dataset.Covariates[name]
		for i := 0; i < n; i++ {
			xData[i*p+j] = col[i]
		}
	}
	x := mat.NewDense(n, p, xData)

	reg := prometheus.NewRegistry()
	mcol := metrics.New(reg)
	if metricsAddr != "" {
		go func() {
			if err := metrics.Serve(metricsAddr, reg); err != nil {
				log.Error().Err(err).Msg("metrics server exited")
			}
		}()
	}

	start := time.Now()
	result, err := fitter.Fit(ctx, x, fitter.DefaultOptions(), func(iteration int, deviance float64, evaluateDuration time.Duration) {
		mcol.Iterations.Inc()
		mcol.LastDeviance.Set(deviance)
		mcol.EvaluateDuration.Observe(evaluateDuration.Seconds())
		log.Info().Int("iteration", iteration).Float64("deviance", deviance).Dur("evaluate_duration", evaluateDuration).Msg("newton step")
	})
	totalElapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("coxfit fit: %w", err)
	}

	log.Info().
		Int("iterations", result.Iterations).
		Float64("deviance", result.Deviance).
		Floats64("beta", result.Beta).
		Dur("total_duration", totalElapsed).
		Msg("fit complete")

	return nil
}
