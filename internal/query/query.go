// Package query sequences filter -> decimate -> combine over the store.
// The engine holds no per-query state; every result is re-derivable from
// the store contents and the two inputs.
package query

import (
	"context"
	"fmt"

	"github.com/quirky-blu/heatmap/internal/aggregate"
	"github.com/quirky-blu/heatmap/internal/decimate"
	"github.com/quirky-blu/heatmap/internal/filter"
	"github.com/quirky-blu/heatmap/internal/model"
	"github.com/quirky-blu/heatmap/internal/store"
)

type Engine struct {
	store *store.Store
}

func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Query returns all features intersecting bb, decimated per partition for
// the zoom level and merged in ascending partition order. Absent
// partitions contribute nothing. Errors are either context cancellation
// or a reference-system mismatch from the combine step.
func (e *Engine) Query(ctx context.Context, bb model.BBox, zoom int) (model.QueryResult, error) {
	parts := make([]aggregate.Part, 0, e.store.N())
	for i := 1; i <= e.store.N(); i++ {
		p, ok := e.store.Get(i)
		if !ok {
			continue
		}
		feats, err := filter.Apply(ctx, p, bb)
		if err != nil {
			return model.QueryResult{}, fmt.Errorf("filter partition %d: %w", i, err)
		}
		// decimation happens per partition, before the merge; the volume
		// targets are therefore per partition as well
		feats = decimate.Apply(feats, zoom)
		parts = append(parts, aggregate.Part{
			PartitionIndex: i,
			CRS:            p.CRS,
			Features:       feats,
		})
	}

	res, err := aggregate.Combine(parts, bb)
	if err != nil {
		return model.QueryResult{}, fmt.Errorf("combine: %w", err)
	}
	return res, nil
}

// Summarize reports totals over everything loaded, ErrNoData when the
// store is empty.
func (e *Engine) Summarize() (model.StoreSummary, error) {
	return aggregate.Summarize(e.store.All())
}

// PartitionsScanned is the number of loaded partitions a query touches.
func (e *Engine) PartitionsScanned() int {
	return e.store.Loaded()
}
