package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/metrics"
	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/planning"
	"github.com/ting-32/noodle/internal/reconcile"
)

// Reload replaces the remote orders and the catalog with a fresh snapshot.
func (s *Service) Reload(ctx context.Context) error {
	snap, err := s.book.Refresh(ctx, s.remote)
	if s.metrics != nil && !errors.Is(err, reconcile.ErrSyncInProgress) {
		s.metrics.Loads.WithLabelValues(metrics.Result(err)).Inc()
	}
	if err != nil {
		logrus.WithError(err).Warn("remote load failed, keeping previous state")
		return err
	}
	s.setCatalog(snap.Stores, snap.Products)
	logrus.WithFields(logrus.Fields{
		"stores":   len(snap.Stores),
		"products": len(snap.Products),
		"orders":   len(snap.Orders),
	}).Info("remote snapshot loaded")
	return nil
}

func (s *Service) Snapshot() View {
	stores, products := s.catalog()
	orders, staged := s.book.View()
	v := View{
		Stores:   stores,
		Products: products,
		Orders:   orders,
		Staged:   make([]StagedView, 0, len(staged)),
		Syncing:  s.book.Busy(),
	}
	for _, st := range staged {
		v.Staged = append(v.Staged, StagedView{ID: st.ID, Order: st.Order})
	}
	if v.Stores == nil {
		v.Stores = []models.Store{}
	}
	if v.Products == nil {
		v.Products = []models.Product{}
	}
	return v
}

func (s *Service) EligibleStores(date string) []models.Store {
	stores, _ := s.catalog()
	return planning.EligibleStores(stores, models.NormalizeDate(date))
}

// Draft builds an order entry for storeName on date from the store's default
// items and delivery time.
func (s *Service) Draft(storeName, date string) (reconcile.Batch, error) {
	stores, _ := s.catalog()
	for _, st := range stores {
		if st.StoreName != storeName {
			continue
		}
		d := models.NormalizeDate(date)
		if d != "" && st.IsClosedOn(d) {
			return reconcile.Batch{}, fmt.Errorf("%s on %s: %w", storeName, d, ErrStoreClosed)
		}
		b := reconcile.Batch{
			Date:         d,
			DeliveryTime: models.NormalizeDeliveryTime(st.DeliveryTime),
			StoreName:    st.StoreName,
			Rows:         make([]reconcile.Row, 0, len(st.DefaultItems)),
		}
		for _, it := range st.DefaultItems {
			b.Rows = append(b.Rows, reconcile.Row{ItemName: it.ItemName, Quantity: reconcile.Quantity(fmt.Sprint(it.Quantity))})
		}
		return b, nil
	}
	return reconcile.Batch{}, fmt.Errorf("store %q: %w", storeName, ErrNotFound)
}

// CheckConflicts validates b and lists the rows that duplicate existing orders.
func (s *Service) CheckConflicts(b reconcile.Batch) ([]planning.CandidateRow, error) {
	p, err := b.Prepare()
	if err != nil {
		return nil, err
	}
	return planning.FindConflicts(p.Rows, s.book.All(), p.Date, p.StoreName), nil
}

// SubmitOrder admits b unless some rows duplicate existing orders, in which
// case a *ConflictError lists them and nothing is admitted. With override the
// whole batch is admitted as entered.
func (s *Service) SubmitOrder(b reconcile.Batch, override bool) (added []reconcile.Staged, err error) {
	defer func() {
		if s.metrics == nil {
			return
		}
		result := "admitted"
		switch {
		case IsConflict(err):
			result = "conflict"
		case err != nil:
			result = "invalid"
		case override:
			result = "overridden"
		}
		s.metrics.Admissions.WithLabelValues(result).Inc()
	}()

	p, err := b.Prepare()
	if err != nil {
		return nil, err
	}

	added, conflicts := s.book.AdmitUnlessConflicting(p, override)
	if added == nil {
		return nil, &ConflictError{Date: p.Date, StoreName: p.StoreName, Rows: conflicts}
	}
	s.trackStaged()

	log := logrus.WithFields(logrus.Fields{"store": p.StoreName, "date": p.Date})
	if s.isClosed(p.StoreName, p.Date) {
		log.Warn("order staged for a store closed on that date")
	}
	if len(conflicts) > 0 {
		log.WithField("conflicts", len(conflicts)).Info("duplicate rows admitted on override")
	}
	log.WithField("rows", len(added)).Info("order staged")
	return added, nil
}

func (s *Service) isClosed(storeName, date string) bool {
	stores, _ := s.catalog()
	for _, st := range stores {
		if st.StoreName == storeName {
			return st.IsClosedOn(date)
		}
	}
	return false
}

func (s *Service) DiscardStaged(id string) (models.Order, error) {
	o, err := s.book.DiscardLocal(id)
	if err != nil {
		return models.Order{}, err
	}
	s.trackStaged()
	logrus.WithFields(logrus.Fields{"id": id, "store": o.StoreName, "item": o.ItemName}).Info("staged order discarded")
	return o, nil
}

// SyncOrders writes every staged order to the remote store and reloads. When
// the write went through but the reload did not, the result still lists the
// committed orders next to the *reconcile.LoadError.
func (s *Service) SyncOrders(ctx context.Context) (reconcile.SyncResult, error) {
	res, err := s.book.CommitSync(ctx, s.remote)
	s.trackStaged()
	if s.metrics != nil && (len(res.Committed) > 0 || isSyncFailure(err)) {
		s.metrics.Syncs.WithLabelValues(string(models.ActionSaveOrders), metrics.Result(syncErr(err))).Inc()
	}

	if res.Reloaded {
		s.setCatalog(res.Snapshot.Stores, res.Snapshot.Products)
	}
	if len(res.Committed) > 0 {
		logrus.WithField("count", len(res.Committed)).Info("staged orders synced")
		s.notify(ctx, res.Committed)
	}
	if err != nil {
		logrus.WithError(err).Warn("order sync incomplete")
	}
	return res, err
}

func isSyncFailure(err error) bool {
	var se *reconcile.SyncError
	return errors.As(err, &se)
}

// syncErr keeps only write failures; a failed reload after a good write still
// counts as a successful sync.
func syncErr(err error) error {
	if isSyncFailure(err) {
		return err
	}
	return nil
}

func (s *Service) notify(ctx context.Context, orders []models.Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifySynced(ctx, orders); err != nil {
		logrus.WithError(err).Warn("sync notification not delivered")
	}
}

// SaveStores replaces the remote store collection and reloads. Staged orders
// are left alone.
func (s *Service) SaveStores(ctx context.Context, stores []models.Store) error {
	clean := make([]models.Store, 0, len(stores))
	seen := make(map[string]struct{}, len(stores))
	for _, st := range stores {
		st = st.Normalize()
		if err := models.Validate(st); err != nil {
			return reconcile.NewValidationError("%s", err.Error())
		}
		if _, dup := seen[st.StoreName]; dup {
			return reconcile.NewValidationError("duplicate store %q", st.StoreName)
		}
		seen[st.StoreName] = struct{}{}
		clean = append(clean, st)
	}

	snap, err := s.book.WriteThrough(ctx, s.remote, models.ActionSaveStores, len(clean), func(ctx context.Context) error {
		return s.remote.SaveStores(ctx, clean)
	})
	return s.afterCatalogWrite(models.ActionSaveStores, snap, err, func() { s.setCatalog(clean, nil) })
}

// SaveProducts replaces the remote product catalog and reloads.
func (s *Service) SaveProducts(ctx context.Context, products []models.Product) error {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := models.Validate(p); err != nil {
			return reconcile.NewValidationError("%s", err.Error())
		}
		if _, dup := seen[p.ItemName]; dup {
			return reconcile.NewValidationError("duplicate product %q", p.ItemName)
		}
		seen[p.ItemName] = struct{}{}
	}

	snap, err := s.book.WriteThrough(ctx, s.remote, models.ActionSaveProducts, len(products), func(ctx context.Context) error {
		return s.remote.SaveProducts(ctx, products)
	})
	return s.afterCatalogWrite(models.ActionSaveProducts, snap, err, func() {
		s.setCatalog(nil, append([]models.Product{}, products...))
	})
}

// afterCatalogWrite applies the reloaded snapshot, or the written collection
// when only the reload failed.
func (s *Service) afterCatalogWrite(action models.Action, snap models.Snapshot, err error, keepWritten func()) error {
	if s.metrics != nil && !errors.Is(err, reconcile.ErrSyncInProgress) {
		s.metrics.Syncs.WithLabelValues(string(action), metrics.Result(syncErr(err))).Inc()
	}
	log := logrus.WithField("action", action)
	switch {
	case err == nil:
		s.setCatalog(snap.Stores, snap.Products)
		log.Info("catalog saved")
	case isSyncFailure(err) || errors.Is(err, reconcile.ErrSyncInProgress):
		log.WithError(err).Warn("catalog save failed")
	default:
		keepWritten()
		log.WithError(err).Warn("catalog saved, reload failed")
	}
	return err
}

// Summary is the production plan over every pending order, staged included.
func (s *Service) Summary() []planning.DayPlan {
	_, products := s.catalog()
	return planning.Plan(planning.Aggregate(s.book.All()), products)
}

func (s *Service) Schedule() []planning.DaySchedule {
	return planning.Schedule(s.book.All())
}
