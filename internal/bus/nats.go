package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

const (
	subjectShipmentWrites = "shipments.writes"
	subjectBidCreates     = "bids.creates"
)

// NATSBus carries document write events over a NATS connection so the
// lifecycle orchestrator can run apart from the API process.
type NATSBus struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

// NewNATSBus connects to the NATS server.
func NewNATSBus(url string, logger *slog.Logger) (*NATSBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSBus{conn: conn, logger: logger}, nil
}

// Close drains subscriptions and closes the connection.
func (b *NATSBus) Close() error {
	for _, sub := range b.subs {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn("unsubscribe failed", slog.String("error", err.Error()))
		}
	}
	b.conn.Close()
	return nil
}

// PublishShipmentWrite announces one shipment document write.
func (b *NATSBus) PublishShipmentWrite(ctx context.Context, event model.ShipmentEvent) error {
	return b.publish(subjectShipmentWrites, event)
}

// PublishBidCreated announces one new bid.
func (b *NATSBus) PublishBidCreated(ctx context.Context, event model.BidEvent) error {
	return b.publish(subjectBidCreates, event)
}

func (b *NATSBus) publish(subject string, event any) error {
	encoded, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.conn.Publish(subject, encoded); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// SubscribeShipmentWrites registers a handler for shipment write events.
// Undecodable messages are logged and dropped.
func (b *NATSBus) SubscribeShipmentWrites(handler ShipmentHandler) error {
	sub, err := b.conn.Subscribe(subjectShipmentWrites, func(msg *nats.Msg) {
		var event model.ShipmentEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Error("undecodable shipment event", slog.String("error", err.Error()))
			return
		}
		handler(context.Background(), event)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subjectShipmentWrites, err)
	}
	b.subs = append(b.subs, sub)
	return nil
}

// SubscribeBidCreates registers a handler for bid creation events.
func (b *NATSBus) SubscribeBidCreates(handler BidHandler) error {
	sub, err := b.conn.Subscribe(subjectBidCreates, func(msg *nats.Msg) {
		var event model.BidEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Error("undecodable bid event", slog.String("error", err.Error()))
			return
		}
		handler(context.Background(), event)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subjectBidCreates, err)
	}
	b.subs = append(b.subs, sub)
	return nil
}

var _ EventBus = (*NATSBus)(nil)
