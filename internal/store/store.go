// Package store holds the loaded partitions for the process lifetime.
// Everything is read-only after Load returns, so concurrent queries need
// no synchronization.
package store

import (
	"log/slog"

	"github.com/quirky-blu/heatmap/internal/model"
	"github.com/quirky-blu/heatmap/internal/observability"
)

type Store struct {
	n     int
	parts []*model.Partition // position i holds partition i+1; nil = absent
}

// Load reads partitions 1..n through the loader. A partition that fails to
// load is logged and recorded as absent; the remaining partitions are still
// loaded and served. There is no retry and no reload later.
func Load(l Loader, n int, logger *slog.Logger) *Store {
	s := &Store{n: n, parts: make([]*model.Partition, n)}
	failed := 0
	for i := 1; i <= n; i++ {
		part, err := l.Load(i)
		if err != nil {
			logger.Error("partition load failed", "partition", i, "err", err)
			failed++
			continue
		}
		s.parts[i-1] = part
		observability.SetPartitionFeatures(i, len(part.Features))
		logger.Info("partition loaded", "partition", i, "features", len(part.Features), "path", part.Path)
	}
	observability.SetPartitionsLoaded(n-failed, failed)
	return s
}

// New builds a store directly from partitions, keyed by their Index.
// Indexes outside 1..n and duplicates are dropped.
func New(n int, parts ...*model.Partition) *Store {
	s := &Store{n: n, parts: make([]*model.Partition, n)}
	for _, p := range parts {
		if p == nil || p.Index < 1 || p.Index > n {
			continue
		}
		s.parts[p.Index-1] = p
	}
	return s
}

// N is the configured partition count, loaded or not.
func (s *Store) N() int { return s.n }

// Get returns partition index (1-based), or ok=false when the partition is
// absent or the index out of range.
func (s *Store) Get(index int) (*model.Partition, bool) {
	if index < 1 || index > s.n {
		return nil, false
	}
	p := s.parts[index-1]
	return p, p != nil
}

// All returns partitions in ascending index order; absent partitions are
// nil entries. The slice is a copy, the partitions are shared.
func (s *Store) All() []*model.Partition {
	out := make([]*model.Partition, s.n)
	copy(out, s.parts)
	return out
}

// Loaded is the number of partitions that loaded successfully.
func (s *Store) Loaded() int {
	n := 0
	for _, p := range s.parts {
		if p != nil {
			n++
		}
	}
	return n
}
