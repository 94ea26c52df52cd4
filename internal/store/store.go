// Package store holds the classification state machine: three disjoint
// lists (main, fruits, vegetables), the history of bucketing operations and
// the per-item TTL countdown.
//
// Every intent runs under a single mutex, so a Tick from the scheduler
// goroutine never interleaves with Add, Remove or UndoLast from the UI.
package store

import (
	"sync"

	"go.uber.org/zap"

	serrors "github.com/idilsaglam/sorter/internal/errors"
	"github.com/idilsaglam/sorter/internal/model"
)

// DefaultTTL is the number of ticks a bucketed item stays before it
// returns to main.
const DefaultTTL = 3

// Listener receives the snapshot produced by an intent.
type Listener func(model.Snapshot)

// Store owns the classification state. The zero value is not usable; call New.
type Store struct {
	mu         sync.Mutex
	main       []model.Item
	fruits     []model.Item
	vegetables []model.Item
	history    []model.Item

	seq       uint64
	ttl       int
	log       *zap.Logger
	listeners []Listener
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the TTL given to newly bucketed items. Values below 1 are ignored.
func WithTTL(ttl int) Option {
	return func(s *Store) {
		if ttl >= 1 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener registers a listener at construction time.
func WithListener(fn Listener) Option {
	return func(s *Store) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// New creates a store with every seed item in main and an empty history.
// The seed must have unique, non-empty names and supported categories.
func New(seed []model.Item, opts ...Option) (*Store, error) {
	s := &Store{
		ttl: DefaultTTL,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var problems []string
	seen := make(map[string]bool, len(seed))
	for _, it := range seed {
		switch {
		case it.Name == "":
			problems = append(problems, "item with empty name")
			continue
		case seen[it.Name]:
			problems = append(problems, "duplicate item "+it.Name)
			continue
		}
		seen[it.Name] = true
		if _, err := model.BucketFor(it.Category); err != nil {
			return nil, serrors.CategoryMappingError(it.Name, it.Category.String())
		}
		it.TTL = 0
		s.main = append(s.main, it)
	}
	if len(problems) > 0 {
		return nil, serrors.SeedInvalid("store", problems)
	}

	s.log.Debug("store created", zap.Int("items", len(s.main)), zap.Int("ttl", s.ttl))
	return s, nil
}

// Subscribe registers fn to receive the snapshot after every successful intent.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// TTL returns the TTL assigned on add.
func (s *Store) TTL() int { return s.ttl }

// Snapshot returns a copy of the current lists.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// History returns the names on the history stack, oldest first.
func (s *Store) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Names(s.history)
}

// Add moves item from main into the bucket for its category with a fresh
// TTL and pushes it onto the history. The item must currently be in main.
func (s *Store) Add(item model.Item) (model.Snapshot, error) {
	bucket, err := model.BucketFor(item.Category)
	if err != nil {
		return model.Snapshot{}, serrors.CategoryMappingError(item.Name, item.Category.String())
	}

	s.mu.Lock()
	idx := indexOf(s.main, item.Name)
	if idx < 0 {
		s.mu.Unlock()
		return model.Snapshot{}, serrors.NotInMain(item.Name)
	}
	moved := s.main[idx]
	if moved.Category != item.Category {
		s.mu.Unlock()
		return model.Snapshot{}, serrors.CategoryMismatch(item.Name, item.Category.String(), moved.Category.String())
	}
	moved.TTL = s.ttl
	s.main = removeAt(s.main, idx)
	*s.bucketLocked(bucket) = append(*s.bucketLocked(bucket), moved)
	s.history = append(s.history, moved)
	s.seq++
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	s.log.Debug("item bucketed", zap.String("item", moved.Name), zap.Stringer("bucket", bucket), zap.Int("ttl", moved.TTL))
	notify(listeners, snap)
	return snap, nil
}

// Remove returns a bucketed item to the end of main, drops it from the
// history wherever it sits and clears its TTL. Removing an item that is not
// bucketed is a no-op.
func (s *Store) Remove(item model.Item) (model.Snapshot, error) {
	if _, err := model.BucketFor(item.Category); err != nil {
		return model.Snapshot{}, serrors.CategoryMappingError(item.Name, item.Category.String())
	}

	s.mu.Lock()
	removed := s.removeLocked(item.Name)
	s.seq++
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	if removed {
		s.log.Debug("item returned to main", zap.String("item", item.Name))
	}
	notify(listeners, snap)
	return snap, nil
}

// UndoLast pops the most recently bucketed item and removes it. An empty
// history is a no-op.
func (s *Store) UndoLast() model.Snapshot {
	s.mu.Lock()
	var undone string
	if n := len(s.history); n > 0 {
		last := s.history[n-1]
		s.history = s.history[:n-1]
		s.removeLocked(last.Name)
		undone = last.Name
	}
	s.seq++
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	if undone != "" {
		s.log.Debug("undo", zap.String("item", undone))
	}
	notify(listeners, snap)
	return snap
}

// removeLocked moves name from whichever bucket holds it back to main.
// History is matched by name rather than position.
func (s *Store) removeLocked(name string) bool {
	if i := indexOf(s.history, name); i >= 0 {
		s.history = removeAt(s.history, i)
	}
	for _, b := range []model.Bucket{model.Fruits, model.Vegetables} {
		items := s.bucketLocked(b)
		if i := indexOf(*items, name); i >= 0 {
			it := (*items)[i]
			*items = removeAt(*items, i)
			it.TTL = 0
			s.main = append(s.main, it)
			return true
		}
	}
	return false
}

func (s *Store) bucketLocked(b model.Bucket) *[]model.Item {
	if b == model.Fruits {
		return &s.fruits
	}
	return &s.vegetables
}

func (s *Store) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		Seq:        s.seq,
		Main:       clone(s.main),
		Fruits:     clone(s.fruits),
		Vegetables: clone(s.vegetables),
	}
}

func (s *Store) listenersLocked() []Listener {
	if len(s.listeners) == 0 {
		return nil
	}
	return append([]Listener(nil), s.listeners...)
}

func notify(listeners []Listener, snap model.Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func indexOf(items []model.Item, name string) int {
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

func removeAt(items []model.Item, i int) []model.Item {
	out := make([]model.Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func clone(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}
