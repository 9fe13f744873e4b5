package service

import (
	"context"
	"sync"

	"github.com/ting-32/noodle/internal/metrics"
	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
	"github.com/ting-32/noodle/internal/reconcile"
	"github.com/ting-32/noodle/internal/repository"
)

type Planner interface {
	Reload(ctx context.Context) error
	Snapshot() View

	EligibleStores(date string) []models.Store
	Draft(storeName, date string) (reconcile.Batch, error)
	CheckConflicts(b reconcile.Batch) ([]planning.CandidateRow, error)
	SubmitOrder(b reconcile.Batch, override bool) ([]reconcile.Staged, error)
	DiscardStaged(id string) (models.Order, error)
	SyncOrders(ctx context.Context) (reconcile.SyncResult, error)

	SaveStores(ctx context.Context, stores []models.Store) error
	SaveProducts(ctx context.Context, products []models.Product) error

	Summary() []planning.DayPlan
	Schedule() []planning.DaySchedule
}

// SyncNotifier is told about orders that reached the remote store.
type SyncNotifier interface {
	NotifySynced(ctx context.Context, orders []models.Order) error
}

// View is what a client renders: the catalog plus every order, staged ones
// flagged with isLocal.
type View struct {
	Stores   []models.Store   `json:"stores"`
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
	Staged   []StagedView     `json:"staged"`
	Syncing  bool             `json:"syncing"`
}

type StagedView struct {
	ID    string       `json:"id"`
	Order models.Order `json:"order"`
}

type Service struct {
	remote repository.Remote

	book     *reconcile.Store
	notifier SyncNotifier
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	stores   []models.Store
	products []models.Product
}

type Option func(*Service)

func WithNotifier(n SyncNotifier) Option    { return func(s *Service) { s.notifier = n } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }
func WithBook(b *reconcile.Store) Option    { return func(s *Service) { s.book = b } }

func NewService(remote repository.Remote, opts ...Option) *Service {
	s := &Service{remote: remote}
	for _, o := range opts {
		o(s)
	}
	if s.book == nil {
		s.book = reconcile.NewStore()
	}
	return s
}

func (s *Service) catalog() ([]models.Store, []models.Product) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stores, s.products
}

func (s *Service) setCatalog(stores []models.Store, products []models.Product) {
	s.mu.Lock()
	if stores != nil {
		s.stores = stores
	}
	if products != nil {
		s.products = products
	}
	s.mu.Unlock()
}

func (s *Service) trackStaged() {
	if s.metrics != nil {
		s.metrics.StagedOrders.Set(float64(len(s.book.Staged())))
	}
}
