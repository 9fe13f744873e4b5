package cache

import (
	"sync"

	"github.com/ting-32/noodle/internal/models"
)

const snapshotKey = "snapshot"

// SnapshotCache keeps the last snapshot read from storage. Callers get their
// own copy of the top-level slices.
//
// Every Invalidate starts a new generation. A reader fills the cache with
// PutSnapshotAt using the generation it saw before reading storage, so a
// snapshot read before a write cannot land in the cache after it.
type SnapshotCache struct {
	c *TTL[models.Snapshot]

	mu  sync.Mutex
	gen uint64
}

func NewSnapshotCache(c *TTL[models.Snapshot]) *SnapshotCache {
	return &SnapshotCache{c: c}
}

func (s *SnapshotCache) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// PutSnapshotAt caches snap only if no Invalidate happened since gen was taken.
func (s *SnapshotCache) PutSnapshotAt(gen uint64, snap models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.c.Put(snapshotKey, clone(snap))
	return true
}

func (s *SnapshotCache) CachedSnapshot() (models.Snapshot, bool) {
	snap, ok := s.c.Get(snapshotKey)
	if !ok {
		return models.Snapshot{}, false
	}
	return clone(snap), true
}

func (s *SnapshotCache) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.c.Delete(snapshotKey)
}

func clone(s models.Snapshot) models.Snapshot {
	out := models.Snapshot{
		Stores:   make([]models.Store, len(s.Stores)),
		Products: append([]models.Product(nil), s.Products...),
		Orders:   append([]models.Order(nil), s.Orders...),
	}
	for i, st := range s.Stores {
		st.HolidayDates = append([]string(nil), st.HolidayDates...)
		st.DefaultItems = append([]models.StoreDefaultItem(nil), st.DefaultItems...)
		out.Stores[i] = st
	}
	if out.Products == nil {
		out.Products = []models.Product{}
	}
	if out.Orders == nil {
		out.Orders = []models.Order{}
	}
	return out
}
