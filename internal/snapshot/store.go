// Package snapshot owns the enriched, ranked catalog as an immutable,
// versioned value. Enrichment and ranking always run over the complete
// dataset before any filtering; replacement is whole-snapshot and atomic.
package snapshot

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rentcompare/server/internal/models"
	"rentcompare/server/internal/parsing"
	"rentcompare/server/internal/proximity"
	"rentcompare/server/internal/ranking"
)

// Source supplies raw catalog rows plus a content version identifying them.
type Source interface {
	Load() ([]models.Listing, string, error)
}

// Snapshot is one frozen generation of the enriched catalog. Readers holding
// a snapshot keep it unchanged across reloads.
type Snapshot struct {
	Listings []models.EnrichedListing `json:"listings"`
	Version  string                   `json:"version"`
	Seq      int64                    `json:"seq"`
	LoadedAt time.Time                `json:"loaded_at"`
}

// Build enriches every row (deposit months, proximity score) and ranks the
// complete set, producing a frozen snapshot.
func Build(rows []models.Listing, version string, seq int64) *Snapshot {
	enriched := make([]models.EnrichedListing, len(rows))
	for i, row := range rows {
		enriched[i] = models.EnrichedListing{
			Row:     i,
			Listing: row,
			Derived: models.Derived{
				DepositMonthsMin: parsing.ParseDepositMonths(row.DepositRatio),
				ProximityScore:   proximity.Score(row.Area, row.Region),
			},
		}
	}

	ranking.Rank(enriched)

	return &Snapshot{
		Listings: enriched,
		Version:  version,
		Seq:      seq,
		LoadedAt: time.Now(),
	}
}

// Store holds the current snapshot and replaces it atomically on reload.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	seq     int64
	source  Source
	logger  *logrus.Logger
}

// NewStore creates a store seeded with an empty snapshot, so readers always
// see a table even before the first successful load.
func NewStore(source Source, logger *logrus.Logger) *Store {
	return &Store{
		current: Build(nil, "", 0),
		source:  source,
		logger:  logger,
	}
}

// Current returns the snapshot readers should use. The returned value is
// never mutated; a later Reload leaves it intact.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload loads the source, rebuilds the enriched snapshot from scratch and
// swaps it in. On failure the previous snapshot stays in place.
func (s *Store) Reload() (*Snapshot, error) {
	rows, version, err := s.source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to reload catalog: %w", err)
	}

	s.mu.Lock()
	s.seq++
	snap := Build(rows, version, s.seq)
	s.current = snap
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"version":  snap.Version,
		"seq":      snap.Seq,
		"listings": len(snap.Listings),
	}).Info("Catalog snapshot replaced")

	return snap, nil
}
