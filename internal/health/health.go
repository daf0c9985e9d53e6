package health

import (
	"encoding/json"
	"net/http"

	"github.com/quirky-blu/heatmap/internal/store"
)

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// Readiness reports how much of the configured dataset is actually
// serving. A store with zero loaded partitions still answers queries
// (with empty results), so this stays 200 and leaves the judgement to
// the operator.
func Readiness(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]int{
			"partitions_configured": s.N(),
			"partitions_loaded":     s.Loaded(),
		})
	}
}
