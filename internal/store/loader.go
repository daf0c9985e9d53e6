package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/quirky-blu/heatmap/internal/model"
)

// DefaultCRS is assumed when a partition file carries no crs member
// (RFC 7946 GeoJSON is WGS 84).
const DefaultCRS = "EPSG:4326"

// Loader produces one partition per index. The file-backed implementation
// is the only one in production; tests substitute their own.
type Loader interface {
	Load(index int) (*model.Partition, error)
}

// FileLoader reads partition files named by a fmt pattern with a single
// %d verb, e.g. "density_grid_part_%d.geojson".
type FileLoader struct {
	Dir     string
	Pattern string
}

func (l FileLoader) Load(index int) (*model.Partition, error) {
	path := filepath.Join(l.Dir, fmt.Sprintf(l.Pattern, index))
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	part, err := DecodePartition(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	part.Index = index
	part.Path = path
	return part, nil
}

// DecodePartition parses a GeoJSON FeatureCollection into a partition.
// The legacy crs member is honored when present; everything else follows
// RFC 7946.
func DecodePartition(raw []byte) (*model.Partition, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse FeatureCollection: %w", err)
	}

	crs := DefaultCRS
	var crsDoc struct {
		CRS *struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
	}
	if err := json.Unmarshal(raw, &crsDoc); err == nil && crsDoc.CRS != nil && crsDoc.CRS.Properties.Name != "" {
		crs = crsDoc.CRS.Properties.Name
	}

	feats := make([]model.Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		mf := model.Feature{
			ID:       f.ID,
			Geometry: f.Geometry,
		}
		if f.Geometry != nil {
			mf.Bound = f.Geometry.Bound()
		}
		if len(f.Properties) > 0 {
			mf.Properties = make(map[string]model.Value, len(f.Properties))
			for k, v := range f.Properties {
				mf.Properties[k] = model.ValueFromAny(v)
			}
		}
		feats = append(feats, mf)
	}

	return &model.Partition{CRS: crs, Features: feats}, nil
}
