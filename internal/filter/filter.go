// Package filter selects the features of one partition that intersect a
// query rectangle.
package filter

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"

	"github.com/quirky-blu/heatmap/internal/model"
)

// Apply returns the subset of part's features whose geometry intersects
// the closed rectangle bb, preserving storage order. An absent partition
// or an inverted rectangle yields an empty result, never an error. The
// context is checked per feature so a transport deadline can cut a long
// scan short.
func Apply(ctx context.Context, part *model.Partition, bb model.BBox) ([]model.Feature, error) {
	if part == nil || len(part.Features) == 0 || !bb.Valid() {
		return nil, nil
	}

	bound := bb.Bound()
	var out []model.Feature
	for i := range part.Features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if Intersects(bound, part.Features[i]) {
			out = append(out, part.Features[i])
		}
	}
	return out, nil
}

// Intersects reports whether the feature's geometry shares at least one
// point with the rectangle. The precomputed feature bound is the cheap
// reject; lines and polygons then go through a real clip so a geometry
// whose bounding box merely overlaps the rectangle is not a false hit.
func Intersects(bound orb.Bound, f model.Feature) bool {
	if f.Geometry == nil {
		return false
	}
	if !bound.Intersects(f.Bound) {
		return false
	}

	switch g := f.Geometry.(type) {
	case orb.Point:
		return bound.Contains(g)
	case orb.MultiPoint:
		for _, p := range g {
			if bound.Contains(p) {
				return true
			}
		}
		return false
	}

	// clip works in place on coordinate slices, so clone first; the loaded
	// partitions must stay untouched.
	return clip.Geometry(bound, orb.Clone(f.Geometry)) != nil
}
