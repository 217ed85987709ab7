package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildrange/rsf-go/internal/analysis"
	"github.com/wildrange/rsf-go/internal/errors"
	"github.com/wildrange/rsf-go/internal/habitat"
)

func TestFitBatchOrderAndLabel(t *testing.T) {
	tbl := scenarioTable(t, "KDE", "PackA", "PackB")

	records, err := analysis.FitBatch(tbl, "used", []string{"Elk", "Deer"}, "KDE", analysis.DefaultFitOptions(), nil)
	require.NoError(t, err)

	// One record per predictor, caller-supplied order preserved.
	require.Len(t, records, 2)
	assert.Equal(t, "Elk", records[0].Predictor)
	assert.Equal(t, "Deer", records[1].Predictor)
	for _, rec := range records {
		assert.Equal(t, "KDE", rec.Label)
	}
}

func TestFitBatchRejectsDuplicates(t *testing.T) {
	tbl := scenarioTable(t, "KDE", "PackA")

	_, err := analysis.FitBatch(tbl, "used", []string{"Deer", "Deer"}, "KDE", analysis.DefaultFitOptions(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaError(err))
}

func TestFitBatchFailsAsWhole(t *testing.T) {
	// Deer is fine, Wigwam is missing: the batch must fail outright with no
	// partial result.
	tbl := scenarioTable(t, "KDE", "PackA")

	records, err := analysis.FitBatch(tbl, "used", []string{"Deer", "Wigwam"}, "KDE", analysis.DefaultFitOptions(), nil)
	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, errors.IsSchemaError(err))
	assert.Contains(t, err.Error(), "Wigwam")
}

func TestFitBatchParallelMatchesSerial(t *testing.T) {
	tbl := scenarioTable(t, "KDE", "PackA", "PackB")
	predictors := []string{"Deer", "Elk"}

	serialOpts := analysis.DefaultFitOptions()
	serialOpts.Workers = 1
	parallelOpts := analysis.DefaultFitOptions()
	parallelOpts.Workers = 4

	serial, err := analysis.FitBatch(tbl, "used", predictors, "KDE", serialOpts, nil)
	require.NoError(t, err)
	parallel, err := analysis.FitBatch(tbl, "used", predictors, "KDE", parallelOpts, nil)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestFitBatchEmptyPredictorSet(t *testing.T) {
	tbl := scenarioTable(t, "KDE", "PackA")

	_, err := analysis.FitBatch(tbl, "used", nil, "KDE", analysis.DefaultFitOptions(), nil)
	require.Error(t, err)
}

func TestFitBatchEmptyTable(t *testing.T) {
	tbl, err := habitat.New("KDE", []string{"pack", "used", "Deer"}, nil)
	require.NoError(t, err)

	_, ferr := analysis.FitBatch(tbl, "used", []string{"Deer"}, "KDE", analysis.DefaultFitOptions(), nil)
	require.Error(t, ferr)
	assert.True(t, errors.IsFitError(ferr))
}
