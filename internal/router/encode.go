package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/quirky-blu/heatmap/internal/model"
)

type boundsJSON struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// EncodeQueryResult renders the merged result as a FeatureCollection with
// the count and echoed bounds as top-level members.
func EncodeQueryResult(res model.QueryResult) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i := range res.Features {
		f := &res.Features[i]
		gf := geojson.NewFeature(f.Geometry)
		if f.ID != nil {
			gf.ID = f.ID
		}
		for k, v := range f.Properties {
			gf.Properties[k] = v.Interface()
		}
		fc.Append(gf)
	}
	fc.ExtraMembers = geojson.Properties{
		"count": res.Count,
		"bounds": boundsJSON{
			North: res.Bounds.North,
			South: res.Bounds.South,
			East:  res.Bounds.East,
			West:  res.Bounds.West,
		},
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal FeatureCollection: %w", err)
	}
	return body, nil
}

type summaryJSON struct {
	TotalFeatures int        `json:"total_features"`
	Bounds        boundsJSON `json:"bounds"`
	Columns       []string   `json:"columns"`
}

// EncodeSummary renders the store summary in the /api/info wire shape.
func EncodeSummary(sum model.StoreSummary) ([]byte, error) {
	cols := sum.Fields
	if cols == nil {
		cols = []string{}
	}
	out := summaryJSON{
		TotalFeatures: sum.TotalFeatures,
		Bounds: boundsJSON{
			North: sum.Bounds.North,
			South: sum.Bounds.South,
			East:  sum.Bounds.East,
			West:  sum.Bounds.West,
		},
		Columns: cols,
	}
	body, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	return body, nil
}

// writeWithETag writes the body with a content-hash ETag and answers
// revalidation requests with 304. The dataset never changes after load,
// so a matching tag is always still valid.
func writeWithETag(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// etagMatches scans an If-None-Match value per RFC 7232: a comma-separated
// tag list or the wildcard form, with weak tags compared by opaque value.
func etagMatches(header, etag string) bool {
	for _, tok := range strings.Split(header, ",") {
		tok = strings.TrimSpace(tok)
		tok = strings.TrimPrefix(tok, "W/")
		if tok == "*" || tok == etag {
			return true
		}
	}
	return false
}
