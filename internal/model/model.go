package model

import (
	"fmt"

	"github.com/paulmach/orb"
)

// BBox is the query rectangle in north/south/east/west form, matching the
// request parameters. Inverted boxes (north < south or east < west) are
// representable on purpose: they are valid input that matches nothing.
type BBox struct {
	North float64
	South float64
	East  float64
	West  float64
}

func (b BBox) String() string {
	return fmt.Sprintf("n=%.6f s=%.6f e=%.6f w=%.6f", b.North, b.South, b.East, b.West)
}

// Valid reports whether the box spans a non-empty closed rectangle.
func (b BBox) Valid() bool {
	return b.North >= b.South && b.East >= b.West
}

// Bound converts to an orb bound (min = south-west, max = north-east).
// Only meaningful when Valid.
func (b BBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// BBoxFromBound converts an orb bound back to north/south/east/west form.
func BBoxFromBound(bd orb.Bound) BBox {
	return BBox{
		North: bd.Max[1],
		South: bd.Min[1],
		East:  bd.Max[0],
		West:  bd.Min[0],
	}
}

// Feature is one geometry plus its attribute record. Immutable after load;
// Bound is precomputed so per-query filtering never re-walks coordinates
// for the cheap reject.
type Feature struct {
	ID         any
	Geometry   orb.Geometry
	Bound      orb.Bound
	Properties map[string]Value
}

// Partition is one independently loaded shard of the dataset: an ordered
// feature sequence plus its declared coordinate reference system.
type Partition struct {
	Index    int
	CRS      string
	Path     string
	Features []Feature
}

// QueryResult is the merged per-query output: features in ascending
// partition order (each partition's internal order preserved), the total
// count, and the echoed request rectangle.
type QueryResult struct {
	Features []Feature
	Count    int
	Bounds   BBox
}

// StoreSummary describes everything currently loaded: total feature count,
// union extent, and the sorted union of attribute field names.
type StoreSummary struct {
	TotalFeatures int
	Bounds        BBox
	Fields        []string
}
