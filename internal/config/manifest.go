// Package config loads the column manifest coxfit reads before it touches
// any subject data, and the CSV dataset that manifest describes.
package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Manifest describes which columns of an input CSV hold the fields coxdev
// needs, so the same CLI can be pointed at differently-named exports
// without a code change.
type Manifest struct {
	StartColumn  string   `yaml:"start_column"`
	EventColumn  string   `yaml:"event_column"`
	StatusColumn string   `yaml:"status_column"`
	WeightColumn string   `yaml:"weight_column,omitempty"`
	HaveStart    bool     `yaml:"have_start"`
	TieBreaking  string   `yaml:"tie_breaking"` // "breslow" or "efron"
	Covariates   []string `yaml:"covariates,omitempty"`
}

// LoadManifest reads and parses a YAML column manifest from path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("config: read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("config: parse manifest %s: %w", path, err)
	}
	if m.EventColumn == "" || m.StatusColumn == "" {
		return Manifest{}, fmt.Errorf("config: manifest %s must set event_column and status_column", path)
	}

	return m, nil
}

// Dataset holds the parsed columns a Manifest points at, plus any
// covariate columns requested for a design matrix.
type Dataset struct {
	Start      []float64
	Event      []float64
	Status     []int
	Weight     []float64
	Covariates map[string][]float64
}

// LoadDataset reads csvPath per m, failing on an unknown column name, a
// non-numeric cell, or a status value outside {0,1}. Parsing is plain
// encoding/csv: no third-party CSV library surfaced anywhere in the
// retrieved pack, so the standard library is the only reasonable choice
// here (see DESIGN.md).
func LoadDataset(csvPath string, m Manifest) (Dataset, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return Dataset{}, fmt.Errorf("config: open dataset %s: %w", csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("config: read header of %s: %w", csvPath, err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}

	idx := func(name string) (int, bool) {
		if name == "" {
			return 0, false
		}
		i, ok := colIdx[name]
		return i, ok
	}

	eventIdx, ok := idx(m.EventColumn)
	if !ok {
		return Dataset{}, fmt.Errorf("config: event_column %q not found in %s", m.EventColumn, csvPath)
	}
	statusIdx, ok := idx(m.StatusColumn)
	if !ok {
		return Dataset{}, fmt.Errorf("config: status_column %q not found in %s", m.StatusColumn, csvPath)
	}
	startIdx, haveStartCol := idx(m.StartColumn)
	if m.StartColumn != "" && !haveStartCol {
		return Dataset{}, fmt.Errorf("config: start_column %q not found in %s", m.StartColumn, csvPath)
	}
	weightIdx, haveWeightCol := idx(m.WeightColumn)
	if m.WeightColumn != "" && !haveWeightCol {
		return Dataset{}, fmt.Errorf("config: weight_column %q not found in %s", m.WeightColumn, csvPath)
	}

	covIdx := make(map[string]int, len(m.Covariates))
	for _, c := range m.Covariates {
		i, ok := idx(c)
		if !ok {
			return Dataset{}, fmt.Errorf("config: covariate column %q not found in %s", c, csvPath)
		}
		covIdx[c] = i
	}

	ds := Dataset{Covariates: make(map[string][]float64, len(m.Covariates))}
	for _, c := range m.Covariates {
		ds.Covariates[c] = nil
	}

	for {
		row, err := r.Read()
		if errors.Is(err, csv.ErrFieldCount) {
			return Dataset{}, fmt.Errorf("config: malformed row in %s: %w", csvPath, err)
		}
		if err != nil {
			break
		}

		event, err := strconv.ParseFloat(row[eventIdx], 64)
		if err != nil {
			return Dataset{}, fmt.Errorf("config: %s column %q: %w", csvPath, m.EventColumn, err)
		}
		status, err := strconv.Atoi(row[statusIdx])
		if err != nil {
			return Dataset{}, fmt.Errorf("config: %s column %q: %w", csvPath, m.StatusColumn, err)
		}
		if status != 0 && status != 1 {
			return Dataset{}, fmt.Errorf("config: %s column %q: status %d not in {0,1}", csvPath, m.StatusColumn, status)
		}

		start := 0.0
		if haveStartCol {
			start, err = strconv.ParseFloat(row[startIdx], 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("config: %s column %q: %w", csvPath, m.StartColumn, err)
			}
		}
		weight := 1.0
		if haveWeightCol {
			weight, err = strconv.ParseFloat(row[weightIdx], 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("config: %s column %q: %w", csvPath, m.WeightColumn, err)
			}
		}

		ds.Event = append(ds.Event, event)
		ds.Status = append(ds.Status, status)
		ds.Start = append(ds.Start, start)
		ds.Weight = append(ds.Weight, weight)
		for _, c := range m.Covariates {
			v, err := strconv.ParseFloat(row[covIdx[c]], 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("config: %s column %q: %w", csvPath, c, err)
			}
			ds.Covariates[c] = append(ds.Covariates[c], v)
		}
	}

	return ds, nil
}
