package repository

import (
	"context"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/repository/cache"
	"github.com/ting-32/noodle/internal/repository/postgres"
)

// Remote is the remote store as the planner sees it.
type Remote interface {
	Fetch(ctx context.Context) (models.Snapshot, error)
	SaveOrders(ctx context.Context, orders []models.Order) error
	SaveStores(ctx context.Context, stores []models.Store) error
	SaveProducts(ctx context.Context, products []models.Product) error
}

// CatalogPostgres is the durable storage behind the reference backend.
type CatalogPostgres interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
	AppendOrders(ctx context.Context, orders []models.Order) error
	ReplaceStores(ctx context.Context, stores []models.Store) error
	ReplaceProducts(ctx context.Context, products []models.Product) error
}

type SnapshotCache interface {
	Generation() uint64
	PutSnapshotAt(gen uint64, snap models.Snapshot) bool
	CachedSnapshot() (models.Snapshot, bool)
	Invalidate()
}

type Repository struct {
	CatalogPostgres
	SnapshotCache
}

func NewRepository(db *gorm.DB, ttl time.Duration) *Repository {
	return &Repository{
		CatalogPostgres: postgres.NewCatalogPostgres(db),
		SnapshotCache:   cache.NewSnapshotCache(cache.New[models.Snapshot](cache.WithTTL(ttl))),
	}
}
