// Package router parses query requests and writes the wire responses.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quirky-blu/heatmap/internal/aggregate"
	"github.com/quirky-blu/heatmap/internal/logger"
	"github.com/quirky-blu/heatmap/internal/model"
	"github.com/quirky-blu/heatmap/internal/observability"
	"github.com/quirky-blu/heatmap/internal/query"
)

// DefaultZoom applies when the request omits the zoom parameter.
const DefaultZoom = 10

type Handlers struct {
	log *zerolog.Logger
	eng *query.Engine
}

func NewHandlers(log *zerolog.Logger, eng *query.Engine) *Handlers {
	return &Handlers{log: log, eng: eng}
}

// ParseBounds extracts the four required bounds plus the optional zoom.
// Inverted boxes pass through: the core treats them as matching nothing.
func ParseBounds(r *http.Request) (model.BBox, int, error) {
	q := r.URL.Query()

	var bb model.BBox
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"north", &bb.North},
		{"south", &bb.South},
		{"east", &bb.East},
		{"west", &bb.West},
	} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			return model.BBox{}, 0, fmt.Errorf("missing required parameter: %s", p.name)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.BBox{}, 0, fmt.Errorf("invalid %s: %q is not a number", p.name, raw)
		}
		*p.dst = f
	}

	zoom := DefaultZoom
	if raw := strings.TrimSpace(q.Get("zoom")); raw != "" {
		z, err := strconv.Atoi(raw)
		if err != nil {
			return model.BBox{}, 0, fmt.Errorf("invalid zoom: %q is not an integer", raw)
		}
		zoom = z
	}
	return bb, zoom, nil
}

// GeoJSON serves GET /api/geojson: all features intersecting the requested
// rectangle, decimated for the zoom level, as one FeatureCollection with
// count and echoed bounds.
func (h *Handlers) GeoJSON(w http.ResponseWriter, r *http.Request) {
	bb, zoom, err := ParseBounds(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.eng.Query(r.Context(), bb, zoom)
	if err != nil {
		var mismatch *aggregate.ReferenceSystemMismatchError
		switch {
		case errors.As(err, &mismatch):
			logger.FromContext(r.Context(), h.log).Error().Err(err).Msg("reference system mismatch")
			http.Error(w, "reference system mismatch: "+mismatch.Error(), http.StatusInternalServerError)
		case r.Context().Err() != nil:
			// client went away mid-scan; nothing useful to write
		default:
			logger.FromContext(r.Context(), h.log).Error().Err(err).Msg("query failed")
			http.Error(w, "error processing request", http.StatusInternalServerError)
		}
		return
	}
	observability.ObserveQuery(h.eng.PartitionsScanned(), res.Count)

	body, err := EncodeQueryResult(res)
	if err != nil {
		logger.FromContext(r.Context(), h.log).Error().Err(err).Msg("encode response")
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return
	}
	writeWithETag(w, r, "application/geo+json", body)
}

// Info serves GET /api/info: the store-wide summary, or the no-data
// sentinel body when nothing is loaded.
func (h *Handlers) Info(w http.ResponseWriter, r *http.Request) {
	sum, err := h.eng.Summarize()
	if err != nil {
		if errors.Is(err, aggregate.ErrNoData) {
			writeWithETag(w, r, "application/json", []byte(`{"status":"No data loaded"}`))
			return
		}
		var mismatch *aggregate.ReferenceSystemMismatchError
		if errors.As(err, &mismatch) {
			logger.FromContext(r.Context(), h.log).Error().Err(err).Msg("reference system mismatch")
			http.Error(w, "reference system mismatch: "+mismatch.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, "error retrieving info", http.StatusInternalServerError)
		return
	}

	body, err := EncodeSummary(sum)
	if err != nil {
		logger.FromContext(r.Context(), h.log).Error().Err(err).Msg("encode summary")
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return
	}
	writeWithETag(w, r, "application/json", body)
}

// Index serves the landing page.
func (h *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<h1>Density Grid API</h1>
<p>Use /api/geojson with north, south, east, west (and optional zoom) to query features.</p>
<p>/api/info reports totals for all loaded partitions.</p>
`))
}
