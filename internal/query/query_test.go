package query

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/paulmach/orb"

	"github.com/quirky-blu/heatmap/internal/aggregate"
	"github.com/quirky-blu/heatmap/internal/model"
	"github.com/quirky-blu/heatmap/internal/store"
)

func gridPartition(index int, crs string, originX, originY float64, n int) *model.Partition {
	feats := make([]model.Feature, 0, n)
	for i := 0; i < n; i++ {
		// wrap every 100 points so even large partitions stay in-range
		g := orb.Point{originX + float64(i%100)*0.25, originY + float64(i/100)*0.25}
		feats = append(feats, model.Feature{
			Geometry: g,
			Bound:    g.Bound(),
			Properties: map[string]model.Value{
				"name": model.StringValue(fmt.Sprintf("p%d-%d", index, i)),
			},
		})
	}
	return &model.Partition{Index: index, CRS: crs, Features: feats}
}

func world() model.BBox {
	return model.BBox{North: 90, South: -90, East: 180, West: -180}
}

func TestQueryFullExtentHighZoomReturnsEverythingOnce(t *testing.T) {
	p1 := gridPartition(1, "EPSG:4326", 75.0, 22.0, 3)
	p2 := gridPartition(2, "EPSG:4326", 76.0, 23.0, 2)
	eng := New(store.New(2, p1, p2))

	res, err := eng.Query(context.Background(), world(), 15)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 5 {
		t.Fatalf("count=%d want 5", res.Count)
	}
	var got []string
	for _, f := range res.Features {
		got = append(got, f.Properties["name"].Str)
	}
	want := []string{"p1-0", "p1-1", "p1-2", "p2-0", "p2-1"}
	if !slices.Equal(got, want) {
		t.Fatalf("order=%v want %v", got, want)
	}
	if res.Bounds != world() {
		t.Fatalf("bounds not echoed: %v", res.Bounds)
	}
}

func TestQueryAbsentPartitionIsSilentlySkipped(t *testing.T) {
	// three configured, partition 2 failed to load
	p1 := gridPartition(1, "EPSG:4326", 75.0, 22.0, 4)
	p3 := gridPartition(3, "EPSG:4326", 77.0, 24.0, 6)
	eng := New(store.New(3, p1, p3))

	res, err := eng.Query(context.Background(), world(), 15)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 10 {
		t.Fatalf("count=%d want 10 (partitions 1 and 3 only)", res.Count)
	}
	for _, f := range res.Features {
		name := f.Properties["name"].Str
		if name[1] == '2' {
			t.Fatalf("feature attributed to absent partition: %s", name)
		}
	}
}

func TestQueryDisjointBBoxReturnsEmpty(t *testing.T) {
	eng := New(store.New(1, gridPartition(1, "EPSG:4326", 75.0, 22.0, 5)))
	res, err := eng.Query(context.Background(), model.BBox{North: -50, South: -60, East: 10, West: 0}, 15)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 0 || len(res.Features) != 0 {
		t.Fatalf("count=%d want 0", res.Count)
	}
}

func TestQueryInvertedBBoxReturnsEmpty(t *testing.T) {
	eng := New(store.New(1, gridPartition(1, "EPSG:4326", 75.0, 22.0, 5)))
	res, err := eng.Query(context.Background(), model.BBox{North: 10, South: 20, East: 30, West: 0}, 15)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 0 {
		t.Fatalf("count=%d want 0", res.Count)
	}
}

func TestQueryEmptyStore(t *testing.T) {
	eng := New(store.New(3))
	res, err := eng.Query(context.Background(), world(), 15)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 0 {
		t.Fatalf("count=%d want 0", res.Count)
	}
	if _, err := eng.Summarize(); !errors.Is(err, aggregate.ErrNoData) {
		t.Fatalf("Summarize err=%v want ErrNoData", err)
	}
}

func TestQueryDecimatesPerPartition(t *testing.T) {
	// 1000 features each at low zoom: ~100 per partition, not 100 total
	p1 := gridPartition(1, "EPSG:4326", 75.0, 22.0, 1000)
	p2 := gridPartition(2, "EPSG:4326", 76.0, 23.0, 1000)
	eng := New(store.New(2, p1, p2))

	res, err := eng.Query(context.Background(), world(), 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 200 {
		t.Fatalf("count=%d want 200 (100 per partition)", res.Count)
	}
}

func TestQueryReferenceSystemMismatchFails(t *testing.T) {
	p1 := gridPartition(1, "EPSG:4326", 75.0, 22.0, 2)
	p2 := gridPartition(2, "EPSG:3857", 76.0, 23.0, 2)
	eng := New(store.New(2, p1, p2))

	_, err := eng.Query(context.Background(), world(), 15)
	var mismatch *aggregate.ReferenceSystemMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err=%v want ReferenceSystemMismatchError", err)
	}
}

func TestSummarizeMatchesStoreContents(t *testing.T) {
	p1 := gridPartition(1, "EPSG:4326", 75.0, 22.0, 3)
	p2 := gridPartition(2, "EPSG:4326", 76.0, 23.0, 2)
	eng := New(store.New(2, p1, p2))

	sum, err := eng.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalFeatures != 5 {
		t.Fatalf("total=%d want 5", sum.TotalFeatures)
	}
	want := model.BBox{North: 23, South: 22, East: 76.25, West: 75}
	if sum.Bounds != want {
		t.Fatalf("bounds=%v want %v", sum.Bounds, want)
	}
	if !slices.Equal(sum.Fields, []string{"name"}) {
		t.Fatalf("fields=%v", sum.Fields)
	}
}
