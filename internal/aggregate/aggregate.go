// Package aggregate merges per-partition results into one collection and
// computes store-wide summaries.
package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"github.com/quirky-blu/heatmap/internal/model"
)

// ErrNoData is returned by Summarize when no partition is loaded. It is a
// sentinel, not a failure: it distinguishes "store empty" from "store has
// zero matching features".
var ErrNoData = errors.New("no data available")

// ReferenceSystemMismatchError reports partitions declaring different
// coordinate reference systems in one combining operation. Mixing them
// silently would produce coordinates in no single system, so the operation
// fails instead.
type ReferenceSystemMismatchError struct {
	PartitionIndex int
	Got            string
	Want           string
}

func (e *ReferenceSystemMismatchError) Error() string {
	return fmt.Sprintf("partition %d declares reference system %q, expected %q",
		e.PartitionIndex, e.Got, e.Want)
}

// Part is one partition's filtered-and-decimated contribution to a query.
type Part struct {
	PartitionIndex int
	CRS            string
	Features       []model.Feature
}

// Combine concatenates the parts in ascending partition-index order, each
// part's internal order preserved. All parts that contribute features must
// share one reference system; empty parts are ignored. All-empty input is
// a valid empty result.
func Combine(parts []Part, bounds model.BBox) (model.QueryResult, error) {
	ordered := make([]Part, len(parts))
	copy(ordered, parts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PartitionIndex < ordered[j].PartitionIndex
	})

	crs := ""
	crsSeen := false
	total := 0
	for _, p := range ordered {
		if len(p.Features) == 0 {
			continue
		}
		if !crsSeen {
			crs = p.CRS
			crsSeen = true
		} else if p.CRS != crs {
			return model.QueryResult{}, &ReferenceSystemMismatchError{
				PartitionIndex: p.PartitionIndex,
				Got:            p.CRS,
				Want:           crs,
			}
		}
		total += len(p.Features)
	}

	out := model.QueryResult{
		Features: make([]model.Feature, 0, total),
		Bounds:   bounds,
	}
	for _, p := range ordered {
		out.Features = append(out.Features, p.Features...)
	}
	out.Count = len(out.Features)
	return out, nil
}

// Summarize computes the combined totals over every loaded partition, with
// no spatial filter applied: total feature count, union extent, and the
// sorted union of attribute field names. Absent (nil) partitions are
// skipped; if no partition holds any features the result is ErrNoData,
// so empty-but-loaded partitions do not masquerade as data.
func Summarize(partitions []*model.Partition) (model.StoreSummary, error) {
	crs := ""
	crsSeen := false
	total := 0
	fields := map[string]struct{}{}
	var bound orb.Bound
	haveBound := false

	for _, p := range partitions {
		if p == nil {
			continue
		}
		if !crsSeen {
			crs = p.CRS
			crsSeen = true
		} else if p.CRS != crs {
			return model.StoreSummary{}, &ReferenceSystemMismatchError{
				PartitionIndex: p.Index,
				Got:            p.CRS,
				Want:           crs,
			}
		}

		total += len(p.Features)
		for i := range p.Features {
			f := &p.Features[i]
			for name := range f.Properties {
				fields[name] = struct{}{}
			}
			if f.Geometry == nil {
				continue
			}
			if !haveBound {
				bound = f.Bound
				haveBound = true
			} else {
				bound = bound.Union(f.Bound)
			}
		}
	}
	if total == 0 {
		return model.StoreSummary{}, ErrNoData
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return model.StoreSummary{
		TotalFeatures: total,
		Bounds:        model.BBoxFromBound(bound),
		Fields:        names,
	}, nil
}
