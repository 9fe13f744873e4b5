package postgres

import (
	"context"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"

	"github.com/ting-32/noodle/internal/models"
)

type CatalogPostgresRepo struct {
	db *gorm.DB
}

func NewCatalogPostgres(db *gorm.DB) *CatalogPostgresRepo {
	return &CatalogPostgresRepo{db: db}
}

// GetSnapshot reads all three collections in one read transaction. Orders come
// back in append order.
func (r *CatalogPostgresRepo) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		var stores []storeRecord
		if err := tx.Order("position asc").Find(&stores).Error; err != nil {
			return errors.Wrap(err, "select stores")
		}
		var products []productRecord
		if err := tx.Order("position asc").Find(&products).Error; err != nil {
			return errors.Wrap(err, "select products")
		}
		var orders []orderRecord
		if err := tx.Order("seq asc").Find(&orders).Error; err != nil {
			return errors.Wrap(err, "select orders")
		}

		snap.Stores = make([]models.Store, 0, len(stores))
		for _, rec := range stores {
			s, err := rec.model()
			if err != nil {
				return errors.Wrapf(err, "decode store %q", rec.StoreName)
			}
			snap.Stores = append(snap.Stores, s)
		}
		snap.Products = make([]models.Product, 0, len(products))
		for _, rec := range products {
			snap.Products = append(snap.Products, models.Product{ItemName: rec.ItemName, Unit: rec.Unit})
		}
		snap.Orders = make([]models.Order, 0, len(orders))
		for _, rec := range orders {
			snap.Orders = append(snap.Orders, rec.model())
		}
		return nil
	})
	return snap, err
}

// AppendOrders inserts orders after the existing ones. An order whose ID is
// already stored is skipped, so a retried batch does not duplicate rows.
func (r *CatalogPostgresRepo) AppendOrders(ctx context.Context, orders []models.Order) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		var seq int64
		if err := tx.Model(&orderRecord{}).Select("COALESCE(MAX(seq), 0)").Row().Scan(&seq); err != nil {
			return errors.Wrap(err, "read order sequence")
		}

		for _, o := range orders {
			var count int
			if err := tx.Model(&orderRecord{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
				return errors.Wrapf(err, "lookup order %s", o.ID)
			}
			if count > 0 {
				continue
			}
			seq++
			rec := newOrderRecord(o, seq)
			if err := tx.Create(&rec).Error; err != nil {
				return errors.Wrapf(err, "insert order %s", o.ID)
			}
		}
		return nil
	})
}

// ReplaceStores swaps the whole store collection.
func (r *CatalogPostgresRepo) ReplaceStores(ctx context.Context, stores []models.Store) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM stores").Error; err != nil {
			return errors.Wrap(err, "clear stores")
		}
		for i, s := range stores {
			rec, err := newStoreRecord(s, i)
			if err != nil {
				return errors.Wrapf(err, "encode store %q", s.StoreName)
			}
			if err := tx.Create(&rec).Error; err != nil {
				return errors.Wrapf(err, "insert store %q", s.StoreName)
			}
		}
		return nil
	})
}

// ReplaceProducts swaps the whole product catalog.
func (r *CatalogPostgresRepo) ReplaceProducts(ctx context.Context, products []models.Product) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM products").Error; err != nil {
			return errors.Wrap(err, "clear products")
		}
		for i, p := range products {
			rec := productRecord{ItemName: p.ItemName, Position: i, Unit: p.Unit}
			if err := tx.Create(&rec).Error; err != nil {
				return errors.Wrapf(err, "insert product %q", p.ItemName)
			}
		}
		return nil
	})
}

func withTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit().Error, "commit transaction")
}
