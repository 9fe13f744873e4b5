// Package reconcile owns the order book: the authoritative orders last fetched
// from the remote store and the orders staged in memory that have not been
// written there yet.
package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
)

// Remote is the slice of the remote store the order book talks to.
type Remote interface {
	Fetch(ctx context.Context) (models.Snapshot, error)
	SaveOrders(ctx context.Context, orders []models.Order) error
}

// Staged is an order admitted locally but not yet persisted remotely. Only
// staged orders can be discarded, and only through their staged ID.
type Staged struct {
	ID    string
	Order models.Order
}

type Store struct {
	mu     sync.RWMutex
	remote []models.Order
	staged []Staged

	inflight atomic.Bool

	newID func() string
	now   func() time.Time
}

type Option func(*Store)

func WithIDGenerator(fn func() string) Option { return func(s *Store) { s.newID = fn } }
func WithClock(fn func() time.Time) Option    { return func(s *Store) { s.now = fn } }

func NewStore(opts ...Option) *Store {
	s := &Store{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the remote orders wholesale. Staged orders are kept. It is
// rejected with ErrSyncInProgress while a remote round-trip is in flight.
func (s *Store) Load(orders []models.Order) error {
	if !s.inflight.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.inflight.Store(false)
	s.load(orders)
	return nil
}

func (s *Store) load(orders []models.Order) {
	remote := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		o.IsLocal = false
		remote = append(remote, o)
	}

	s.mu.Lock()
	s.remote = remote
	s.mu.Unlock()
}

// Admit validates b and stages one pending order per row. Either every row is
// staged or none is.
func (s *Store) Admit(b Batch) ([]Staged, error) {
	p, err := b.Prepare()
	if err != nil {
		return nil, err
	}
	return s.AdmitPrepared(p), nil
}

// AdmitPrepared stages an already validated batch.
func (s *Store) AdmitPrepared(p Prepared) []Staged {
	added := s.stage(p)

	s.mu.Lock()
	s.staged = append(s.staged, added...)
	s.mu.Unlock()
	return added
}

// AdmitUnlessConflicting stages p unless some of its rows duplicate an order
// already in the book; the check and the append happen under one lock. With
// override the conflicts are still reported but the batch is staged anyway.
func (s *Store) AdmitUnlessConflicting(p Prepared, override bool) ([]Staged, []planning.CandidateRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conflicts := planning.FindConflicts(p.Rows, s.all(), p.Date, p.StoreName)
	if len(conflicts) > 0 && !override {
		return nil, conflicts
	}
	added := s.stage(p)
	s.staged = append(s.staged, added...)
	return added, conflicts
}

func (s *Store) stage(p Prepared) []Staged {
	now := s.now().UTC()
	orders := p.orders()
	added := make([]Staged, 0, len(orders))
	for _, o := range orders {
		created := now
		o.CreatedAt = &created
		id := s.newID()
		o.ID = id
		added = append(added, Staged{ID: id, Order: o})
	}
	return added
}

// DiscardLocal removes the staged order with the given ID.
func (s *Store) DiscardLocal(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.staged {
		if st.ID == id {
			s.staged = append(s.staged[:i:i], s.staged[i+1:]...)
			return st.Order, nil
		}
	}
	return models.Order{}, ErrNotStaged
}

func (s *Store) Remote() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.remote...)
}

func (s *Store) Staged() []Staged {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Staged(nil), s.staged...)
}

// StagedOrders returns the staged orders in admission order.
func (s *Store) StagedOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.staged))
	for _, st := range s.staged {
		out = append(out, st.Order)
	}
	return out
}

// All returns remote orders followed by staged ones.
func (s *Store) All() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all()
}

// View returns All and Staged taken from the same state.
func (s *Store) View() ([]models.Order, []Staged) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all(), append([]Staged(nil), s.staged...)
}

func (s *Store) all() []models.Order {
	out := make([]models.Order, 0, len(s.remote)+len(s.staged))
	out = append(out, s.remote...)
	for _, st := range s.staged {
		out = append(out, st.Order)
	}
	return out
}

// Busy reports whether a remote round-trip is in flight.
func (s *Store) Busy() bool {
	return s.inflight.Load()
}

// Refresh fetches the remote snapshot and loads its orders. On failure the
// current state is left as it was.
func (s *Store) Refresh(ctx context.Context, r Remote) (models.Snapshot, error) {
	if !s.inflight.CompareAndSwap(false, true) {
		return models.Snapshot{}, ErrSyncInProgress
	}
	defer s.inflight.Store(false)
	return s.refresh(ctx, r)
}

func (s *Store) refresh(ctx context.Context, r Remote) (models.Snapshot, error) {
	snap, err := r.Fetch(ctx)
	if err != nil {
		return models.Snapshot{}, &LoadError{Err: err}
	}
	snap = models.NormalizeSnapshot(snap)
	s.load(snap.Orders)
	return snap, nil
}

type SyncResult struct {
	Committed []models.Order
	// Snapshot is the state fetched after the write. It is empty when Reloaded
	// is false.
	Snapshot models.Snapshot
	Reloaded bool
}

// CommitSync writes every staged order to r in one bulk call and reloads.
//
// On a failed write nothing changes and a *SyncError is returned. After a
// successful write the committed orders leave the staged set; if the reload
// then fails they are kept in the remote view until the next successful load
// and the *LoadError is returned along with the result. Orders admitted while
// the write was in flight stay staged.
func (s *Store) CommitSync(ctx context.Context, r Remote) (SyncResult, error) {
	if !s.inflight.CompareAndSwap(false, true) {
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.inflight.Store(false)

	batch := s.Staged()
	if len(batch) == 0 {
		return SyncResult{}, ErrNothingToSync
	}

	orders := make([]models.Order, 0, len(batch))
	for _, st := range batch {
		o := st.Order
		o.IsLocal = false
		orders = append(orders, o)
	}

	if err := r.SaveOrders(ctx, orders); err != nil {
		return SyncResult{}, &SyncError{Action: string(models.ActionSaveOrders), Records: len(batch), Err: err}
	}

	committed := make(map[string]struct{}, len(batch))
	for _, st := range batch {
		committed[st.ID] = struct{}{}
	}
	s.mu.Lock()
	kept := s.staged[:0:0]
	for _, st := range s.staged {
		if _, ok := committed[st.ID]; !ok {
			kept = append(kept, st)
		}
	}
	s.staged = kept
	s.remote = append(append([]models.Order(nil), s.remote...), orders...)
	s.mu.Unlock()

	res := SyncResult{Committed: orders}
	snap, err := s.refresh(ctx, r)
	if err != nil {
		return res, err
	}
	res.Snapshot = snap
	res.Reloaded = true
	return res, nil
}

// WriteThrough runs write under the same single-flight guard as CommitSync and
// reloads afterwards. It is meant for catalog collections, which are replaced
// as a whole; staged orders are not touched.
func (s *Store) WriteThrough(ctx context.Context, r Remote, action models.Action, records int, write func(context.Context) error) (models.Snapshot, error) {
	if !s.inflight.CompareAndSwap(false, true) {
		return models.Snapshot{}, ErrSyncInProgress
	}
	defer s.inflight.Store(false)

	if err := write(ctx); err != nil {
		return models.Snapshot{}, &SyncError{Action: string(action), Records: records, Err: err}
	}
	return s.refresh(ctx, r)
}
