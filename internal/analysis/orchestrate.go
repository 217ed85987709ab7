package analysis

import (
	"fmt"

	"github.com/wildrange/rsf-go/internal/errors"
	"github.com/wildrange/rsf-go/internal/habitat"
	"github.com/wildrange/rsf-go/internal/observability"
)

// PartitionKey identifies one data subset: a pack crossed with a home-range
// estimation method. An empty Pack means all packs combined.
type PartitionKey struct {
	Pack   string
	Method string
}

func (k PartitionKey) String() string {
	if k.Pack == "" {
		return k.Method
	}
	return k.Pack + "/" + k.Method
}

// RunPartitions fits the same response and predictor set against every
// partition in key order and concatenates the outputs into one result table.
// The label lookup is deliberately a separate mapping from the tables, the
// caller states explicitly which series label each partition's records carry.
//
// The output has exactly len(keys) * len(predictors) rows, partition
// iteration order first, predictor order within each partition. Empty or
// undefined partitions fail before any fit is attempted.
func RunPartitions(keys []PartitionKey, tables map[PartitionKey]*habitat.Table, labels map[PartitionKey]string, response string, predictors []string, opts FitOptions, metrics *observability.Metrics) (ResultTable, error) {
	if len(keys) == 0 {
		return nil, errors.Newf("no partitions to analyze").
			Component("analysis").
			Category(errors.CategoryPartition).
			Build()
	}

	// All partitions are checked up front so a run fails before any
	// model is fit rather than part way through.
	for _, key := range keys {
		tbl, ok := tables[key]
		if !ok {
			return nil, errors.Newf("partition %s has no observation table", key).
				Component("analysis").
				Category(errors.CategoryPartition).
				Context("partition", key.String()).
				Build()
		}
		if _, ok := labels[key]; !ok {
			return nil, errors.Newf("partition %s has no series label", key).
				Component("analysis").
				Category(errors.CategoryPartition).
				Context("partition", key.String()).
				Build()
		}
		if tbl.Len() == 0 {
			return nil, errors.Newf("partition %s is empty after filtering", key).
				Component("analysis").
				Category(errors.CategoryPartition).
				Context("partition", key.String()).
				Build()
		}
	}

	out := make(ResultTable, 0, len(keys)*len(predictors))
	for _, key := range keys {
		records, err := FitBatch(tables[key], response, predictors, labels[key], opts, metrics)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", key, err)
		}
		out = append(out, records...)
	}

	return out, nil
}
