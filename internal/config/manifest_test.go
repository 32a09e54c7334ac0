package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/coxdev/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// TestLoadManifest_RequiresEventAndStatus verifies that a manifest missing
// event_column or status_column is rejected rather than silently producing
// an unusable Manifest.
func TestLoadManifest_RequiresEventAndStatus(t *testing.T) {
	path := writeTemp(t, "manifest.yaml", "tie_breaking: efron\n")
	_, err := config.LoadManifest(path)
	assert.Error(t, err, "manifest without event_column/status_column should error")
}

// TestLoadManifest_ParsesFields verifies a well-formed manifest round
// trips through YAML correctly.
func TestLoadManifest_ParsesFields(t *testing.T) {
	path := writeTemp(t, "manifest.yaml", `
event_column: time
status_column: died
start_column: entry
have_start: true
tie_breaking: efron
covariates: [age, treated]
`)
	m, err := config.LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "time", m.EventColumn)
	assert.Equal(t, "died", m.StatusColumn)
	assert.True(t, m.HaveStart)
	assert.Equal(t, []string{"age", "treated"}, m.Covariates)
}

// TestLoadDataset_ParsesCSV verifies column extraction and defaulting of
// an absent weight column to 1.
func TestLoadDataset_ParsesCSV(t *testing.T) {
	manifestPath := writeTemp(t, "manifest.yaml", `
event_column: time
status_column: died
covariates: [age]
`)
	m, err := config.LoadManifest(manifestPath)
	require.NoError(t, err)

	csvPath := writeTemp(t, "data.csv", "time,died,age\n1,1,30\n2,0,40\n3,1,50\n")
	ds, err := config.LoadDataset(csvPath, m)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, ds.Event)
	assert.Equal(t, []int{1, 0, 1}, ds.Status)
	assert.Equal(t, []float64{1, 1, 1}, ds.Weight)
	assert.Equal(t, []float64{30, 40, 50}, ds.Covariates["age"])
}

// TestLoadDataset_UnknownColumn verifies a covariate name absent from the
// CSV header is reported rather than silently skipped.
func TestLoadDataset_UnknownColumn(t *testing.T) {
	manifestPath := writeTemp(t, "manifest.yaml", `
event_column: time
status_column: died
covariates: [missing]
`)
	m, err := config.LoadManifest(manifestPath)
	require.NoError(t, err)

	csvPath := writeTemp(t, "data.csv", "time,died\n1,1\n")
	_, err = config.LoadDataset(csvPath, m)
	assert.Error(t, err, "unknown covariate column should error")
}
