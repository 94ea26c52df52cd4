package store

import (
	"go.uber.org/zap"

	"github.com/idilsaglam/sorter/internal/model"
)

// Tick advances every bucketed item's countdown by one.
//
// Phase 1 decrements the TTL of each history entry. Phase 2 sends entries
// that reached zero back to main, in history order. Phase 3 rebuilds fruits
// and vegetables from the surviving history, so bucket membership is always
// derived from history after a tick.
func (s *Store) Tick() model.Snapshot {
	s.mu.Lock()

	// Phase 1+2: decrement and partition
	var expired, surviving []model.Item
	for _, it := range s.history {
		if it.TTL > 0 {
			it.TTL--
		}
		if it.TTL <= 0 {
			it.TTL = 0
			expired = append(expired, it)
			continue
		}
		surviving = append(surviving, it)
	}
	s.main = append(s.main, expired...)
	s.history = surviving

	// Phase 3: reconcile buckets against history
	orphans := s.reconcileLocked()

	s.seq++
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	if len(expired) > 0 {
		s.log.Debug("items expired", zap.Strings("items", model.Names(expired)))
	}
	if len(orphans) > 0 {
		s.log.Warn("bucket entries without history returned to main", zap.Strings("items", orphans))
	}
	notify(listeners, snap)
	return snap
}

// reconcileLocked recomputes both buckets from history. Bucket entries that
// have no history entry go back to main instead of being dropped, so no
// item is ever lost. It returns the names of those entries.
func (s *Store) reconcileLocked() []string {
	inHistory := make(map[string]bool, len(s.history))
	for _, it := range s.history {
		inHistory[it.Name] = true
	}

	// Expired items were already appended to main above.
	inMain := make(map[string]bool, len(s.main))
	for _, it := range s.main {
		inMain[it.Name] = true
	}

	var orphans []string
	for _, bucket := range [][]model.Item{s.fruits, s.vegetables} {
		for _, it := range bucket {
			if inHistory[it.Name] || inMain[it.Name] {
				continue
			}
			it.TTL = 0
			s.main = append(s.main, it)
			orphans = append(orphans, it.Name)
		}
	}

	fruits := make([]model.Item, 0, len(s.history))
	vegetables := make([]model.Item, 0, len(s.history))
	for _, it := range s.history {
		switch it.Category {
		case model.Fruit:
			fruits = append(fruits, it)
		case model.Vegetable:
			vegetables = append(vegetables, it)
		}
	}
	s.fruits, s.vegetables = fruits, vegetables
	return orphans
}
