package backend_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/ting-32/noodle/internal/backend"
	"github.com/ting-32/noodle/internal/metrics"
	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/repository"
	"github.com/ting-32/noodle/internal/repository/cache"
)

type pgStub struct {
	snap     models.Snapshot
	getErr   error
	writeErr error
	gets     int

	appended []models.Order
	stores   []models.Store
	products []models.Product
}

var _ repository.CatalogPostgres = (*pgStub)(nil)

func (p *pgStub) GetSnapshot(context.Context) (models.Snapshot, error) {
	p.gets++
	return p.snap, p.getErr
}

func (p *pgStub) AppendOrders(_ context.Context, orders []models.Order) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.appended = append(p.appended, orders...)
	p.snap.Orders = append(p.snap.Orders, orders...)
	return nil
}

func (p *pgStub) ReplaceStores(_ context.Context, stores []models.Store) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.stores = stores
	p.snap.Stores = stores
	return nil
}

func (p *pgStub) ReplaceProducts(_ context.Context, products []models.Product) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.products = products
	p.snap.Products = products
	return nil
}

func newBackend(pg *pgStub, opts ...backend.Option) *backend.Service {
	repo := &repository.Repository{
		CatalogPostgres: pg,
		SnapshotCache:   cache.NewSnapshotCache(cache.New[models.Snapshot]()),
	}
	opts = append([]backend.Option{
		backend.WithClock(func() time.Time { return time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC) }),
		backend.WithIDGenerator(func() string { return "gen" }),
	}, opts...)
	return backend.NewService(repo, opts...)
}

func TestSnapshot_ServedFromCacheUntilWrite(t *testing.T) {
	pg := &pgStub{snap: models.Snapshot{Products: []models.Product{{ItemName: "noodle"}}}}
	s := newBackend(pg)
	ctx := context.Background()

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)
	_, err = s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, pg.gets)

	require.NoError(t, s.Apply(ctx, models.WriteRequest{
		Action:   models.ActionSaveProducts,
		Products: []models.Product{{ItemName: "bun", Unit: "pc"}},
	}))
	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, pg.gets)
	require.Equal(t, "bun", snap.Products[0].ItemName)
}

// blockingPG holds the first GetSnapshot after it has copied the data until
// release is closed.
type blockingPG struct {
	pgStub

	mu      sync.Mutex
	blocked bool
	entered chan struct{}
	release chan struct{}
}

func (p *blockingPG) GetSnapshot(context.Context) (models.Snapshot, error) {
	p.mu.Lock()
	snap := p.snap
	snap.Orders = append([]models.Order(nil), p.snap.Orders...)
	first := !p.blocked
	p.blocked = true
	p.mu.Unlock()

	if first {
		close(p.entered)
		<-p.release
	}
	return snap, nil
}

func (p *blockingPG) AppendOrders(ctx context.Context, orders []models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pgStub.AppendOrders(ctx, orders)
}

func TestSnapshot_ReadOverlappingWriteIsNotCached(t *testing.T) {
	pg := &blockingPG{entered: make(chan struct{}), release: make(chan struct{})}
	s := backend.NewService(&repository.Repository{
		CatalogPostgres: pg,
		SnapshotCache:   cache.NewSnapshotCache(cache.New[models.Snapshot]()),
	})
	ctx := context.Background()

	type result struct {
		snap models.Snapshot
		err  error
	}
	stale := make(chan result, 1)
	go func() {
		snap, err := s.Snapshot(ctx)
		stale <- result{snap, err}
	}()
	<-pg.entered

	require.NoError(t, s.Apply(ctx, models.WriteRequest{
		Action: models.ActionSaveOrders,
		Orders: []models.Order{{
			Date: "2024-05-01", DeliveryTime: "08:00", StoreName: "North",
			ItemName: "noodle", Quantity: 5,
		}},
	}))
	close(pg.release)
	old := <-stale
	require.NoError(t, old.err)
	require.Empty(t, old.snap.Orders)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Orders, 1)
	require.Equal(t, "noodle", snap.Orders[0].ItemName)
}

func TestWarmCache(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	pg := &pgStub{}
	s := newBackend(pg)
	require.NoError(t, s.WarmCache(context.Background()))
	_, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, pg.gets)
	require.Equal(t, "snapshot cache warmed", hook.LastEntry().Message)

	pg.getErr = errors.New("db down")
	require.Error(t, newBackend(pg).WarmCache(context.Background()))
}

func TestApply_SaveOrders_FillsDefaults(t *testing.T) {
	pg := &pgStub{}
	s := newBackend(pg)

	err := s.Apply(context.Background(), models.WriteRequest{
		Action: models.ActionSaveOrders,
		Orders: []models.Order{
			{Date: "2024-05-01T00:00:00Z", DeliveryTime: "7:5x", StoreName: "North", ItemName: "noodle", Quantity: 3, IsLocal: true},
			{ID: "keep", Date: "2024-05-01", DeliveryTime: "09:15", StoreName: "North", ItemName: "bun", Quantity: 1, Status: models.StatusCompleted},
		},
	})
	require.NoError(t, err)
	require.Len(t, pg.appended, 2)

	first := pg.appended[0]
	require.Equal(t, "gen", first.ID)
	require.Equal(t, "2024-05-01", first.Date)
	require.Equal(t, "08:00", first.DeliveryTime)
	require.Equal(t, models.StatusPending, first.Status)
	require.False(t, first.IsLocal)
	require.NotNil(t, first.CreatedAt)

	require.Equal(t, "keep", pg.appended[1].ID)
	require.Equal(t, models.StatusCompleted, pg.appended[1].Status)
}

func TestApply_ValidationErrors(t *testing.T) {
	cases := map[string]models.WriteRequest{
		"bad quantity": {Action: models.ActionSaveOrders, Orders: []models.Order{{Date: "2024-05-01", StoreName: "N", ItemName: "x", Quantity: 0}}},
		"dup store":    {Action: models.ActionSaveStores, Stores: []models.Store{{StoreName: "N"}, {StoreName: "N"}}},
		"blank store":  {Action: models.ActionSaveStores, Stores: []models.Store{{StoreName: ""}}},
		"dup product":  {Action: models.ActionSaveProducts, Products: []models.Product{{ItemName: "a"}, {ItemName: "a"}}},
		"unknown":      {Action: "dropAll"},
		"bad default":  {Action: models.ActionSaveStores, Stores: []models.Store{{StoreName: "N", DefaultItems: []models.StoreDefaultItem{{ItemName: "a"}}}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			pg := &pgStub{}
			err := newBackend(pg).Apply(context.Background(), req)
			require.ErrorIs(t, err, backend.ErrValidation)
			require.Empty(t, pg.appended)
			require.Nil(t, pg.stores)
			require.Nil(t, pg.products)
		})
	}
}

func TestApply_SaveStores_Normalizes(t *testing.T) {
	pg := &pgStub{}
	err := newBackend(pg).Apply(context.Background(), models.WriteRequest{
		Action: models.ActionSaveStores,
		Stores: []models.Store{{StoreName: "N", HolidayDates: []string{"2024-05-02", "2024-5-1", "2024-05-02"}}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-05-01", "2024-05-02"}, pg.stores[0].HolidayDates)
	require.Equal(t, "08:00", pg.stores[0].DeliveryTime)
}

func TestApply_StorageErrorCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	pg := &pgStub{writeErr: errors.New("tx aborted")}
	s := newBackend(pg, backend.WithMetrics(m))

	err := s.Apply(context.Background(), models.WriteRequest{Action: models.ActionSaveProducts})
	require.EqualError(t, err, "tx aborted")
	require.NotErrorIs(t, err, backend.ErrValidation)
	require.Equal(t, 1.0, testutil.ToFloat64(m.BackendWrites.WithLabelValues("saveProducts", "error")))
}

func TestHandleMessage(t *testing.T) {
	pg := &pgStub{}
	s := newBackend(pg)

	err := s.HandleMessage(context.Background(), []byte("{not json"))
	require.ErrorIs(t, err, backend.ErrDecode)

	err = s.HandleMessage(context.Background(), []byte(`{"action":"saveProducts","products":[{"itemName":"noodle","unit":"kg"}]}`))
	require.NoError(t, err)
	require.Equal(t, []models.Product{{ItemName: "noodle", Unit: "kg"}}, pg.products)
}
