// Package backend is the reference remote store: it serves the snapshot and
// applies bulk write envelopes on top of Postgres.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ting-32/noodle/internal/metrics"
	"github.com/ting-32/noodle/internal/models"
	"github.com/ting-32/noodle/internal/repository"
)

type Backend interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
	Apply(ctx context.Context, req models.WriteRequest) error
	HandleMessage(ctx context.Context, payload []byte) error
}

type Service struct {
	repository.CatalogPostgres
	repository.SnapshotCache

	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option   { return func(s *Service) { s.metrics = m } }
func WithClock(now func() time.Time) Option   { return func(s *Service) { s.now = now } }
func WithIDGenerator(fn func() string) Option { return func(s *Service) { s.newID = fn } }

func NewService(repo *repository.Repository, opts ...Option) *Service {
	s := &Service{
		CatalogPostgres: repo.CatalogPostgres,
		SnapshotCache:   repo.SnapshotCache,
		now:             time.Now,
		newID:           uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WarmCache loads the snapshot from the database into the cache.
func (s *Service) WarmCache(ctx context.Context) error {
	gen := s.Generation()
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	s.PutSnapshotAt(gen, snap)
	logrus.WithFields(logrus.Fields{
		"stores":   len(snap.Stores),
		"products": len(snap.Products),
		"orders":   len(snap.Orders),
	}).Info("snapshot cache warmed")
	return nil
}

// Snapshot serves the cached snapshot or reads it from storage. A read that
// overlapped a write is returned but not cached.
func (s *Service) Snapshot(ctx context.Context) (models.Snapshot, error) {
	if snap, ok := s.CachedSnapshot(); ok {
		return snap, nil
	}
	gen := s.Generation()
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	if !s.PutSnapshotAt(gen, snap) {
		logrus.Debug("snapshot changed during read, not cached")
	}
	return snap, nil
}

// Apply validates req and runs it in one storage transaction. The cached
// snapshot is dropped afterwards whatever the outcome.
func (s *Service) Apply(ctx context.Context, req models.WriteRequest) (err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.BackendWrites.WithLabelValues(string(req.Action), metrics.Result(err)).Inc()
		}
	}()

	switch req.Action {
	case models.ActionSaveOrders:
		orders := s.prepareOrders(req.Orders)
		if err := validateAll(orders); err != nil {
			return err
		}
		defer s.Invalidate()
		if err := s.AppendOrders(ctx, orders); err != nil {
			return err
		}
		logrus.WithField("count", len(orders)).Info("orders appended")

	case models.ActionSaveStores:
		stores := make([]models.Store, 0, len(req.Stores))
		seen := make(map[string]struct{}, len(req.Stores))
		for _, st := range req.Stores {
			if _, dup := seen[st.StoreName]; dup {
				return fmt.Errorf("%w: duplicate store %q", ErrValidation, st.StoreName)
			}
			seen[st.StoreName] = struct{}{}
			stores = append(stores, st.Normalize())
		}
		if err := validateAll(stores); err != nil {
			return err
		}
		defer s.Invalidate()
		if err := s.ReplaceStores(ctx, stores); err != nil {
			return err
		}
		logrus.WithField("count", len(stores)).Info("stores replaced")

	case models.ActionSaveProducts:
		seen := make(map[string]struct{}, len(req.Products))
		for _, p := range req.Products {
			if _, dup := seen[p.ItemName]; dup {
				return fmt.Errorf("%w: duplicate product %q", ErrValidation, p.ItemName)
			}
			seen[p.ItemName] = struct{}{}
		}
		if err := validateAll(req.Products); err != nil {
			return err
		}
		defer s.Invalidate()
		if err := s.ReplaceProducts(ctx, req.Products); err != nil {
			return err
		}
		logrus.WithField("count", len(req.Products)).Info("products replaced")

	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, req.Action)
	}
	return nil
}

func (s *Service) HandleMessage(ctx context.Context, payload []byte) error {
	var req models.WriteRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return s.Apply(ctx, req)
}

func (s *Service) prepareOrders(in []models.Order) []models.Order {
	now := s.now().UTC()
	out := make([]models.Order, 0, len(in))
	for _, o := range in {
		if o.ID == "" {
			o.ID = s.newID()
		}
		if o.CreatedAt == nil {
			created := now
			o.CreatedAt = &created
		}
		if o.Status == "" {
			o.Status = models.StatusPending
		}
		o.Date = models.NormalizeDate(o.Date)
		o.DeliveryTime = models.NormalizeDeliveryTime(o.DeliveryTime)
		o.IsLocal = false
		out = append(out, o)
	}
	return out
}

func validateAll[T any](items []T) error {
	for _, it := range items {
		if err := models.Validate(it); err != nil {
			return fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
	}
	return nil
}
