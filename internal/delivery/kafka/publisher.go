package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	kafka "github.com/segmentio/kafka-go"

	"github.com/ting-32/noodle/internal/models"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	})
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// PublishWrite sends a write envelope for the backend consumer.
func (p *Publisher) PublishWrite(ctx context.Context, req models.WriteRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "encode write request")
	}
	return errors.Wrapf(p.Publish(ctx, string(req.Action), payload), "publish %s", req.Action)
}

// SyncedEvent announces orders that reached the remote store.
type SyncedEvent struct {
	SyncedAt time.Time      `json:"syncedAt"`
	Orders   []models.Order `json:"orders"`
}

// NotifySynced publishes one event per sync, keyed by the first order date so
// events for a day stay on one partition.
func (p *Publisher) NotifySynced(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	payload, err := json.Marshal(SyncedEvent{SyncedAt: p.now().UTC(), Orders: orders})
	if err != nil {
		return errors.Wrap(err, "encode sync event")
	}
	return errors.Wrap(p.Publish(ctx, orders[0].Date, payload), "publish sync event")
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
