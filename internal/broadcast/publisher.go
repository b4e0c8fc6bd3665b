package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

const channelPrefix = "shipment_events:"

// Event is the envelope pushed to dashboard watchers of one shipment.
type Event struct {
	Type             string     `json:"type"`
	ShipmentPublicID string     `json:"shipmentPublicId"`
	Status           string     `json:"status,omitempty"`
	Bid              *model.Bid `json:"bid,omitempty"`
}

// Publisher forwards status changes and new bids to Redis pub/sub, one
// channel per shipment public id, best-effort.
type Publisher struct {
	client    *redis.Client
	shipments repository.ShipmentRepository
	logger    *slog.Logger
}

// NewPublisher connects to Redis and verifies connectivity.
func NewPublisher(ctx context.Context, addr, password string, db int, shipments repository.ShipmentRepository, logger *slog.Logger) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Publisher{client: client, shipments: shipments, logger: logger}, nil
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// OnShipmentWrite publishes a status event when a write creates a shipment
// or moves its status.
func (p *Publisher) OnShipmentWrite(ctx context.Context, event model.ShipmentEvent) {
	after := event.After
	if after == nil {
		return
	}
	if event.Before != nil && event.Before.Status == after.Status {
		return
	}
	p.publish(ctx, after.PublicID, Event{
		Type:             "status",
		ShipmentPublicID: after.PublicID,
		Status:           string(after.Status),
	})
}

// OnBidCreate publishes a bid event to the shipment's channel.
func (p *Publisher) OnBidCreate(ctx context.Context, event model.BidEvent) {
	bid := event.Bid
	shipment, err := p.shipments.Get(ctx, bid.ShipmentID)
	if err != nil {
		p.logger.Error("broadcast bid lookup failed",
			slog.String("shipmentID", bid.ShipmentID),
			slog.String("error", err.Error()))
		return
	}
	p.publish(ctx, shipment.PublicID, Event{
		Type:             "bid",
		ShipmentPublicID: shipment.PublicID,
		Bid:              &bid,
	})
}

func (p *Publisher) publish(ctx context.Context, publicID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("broadcast marshal failed", slog.String("error", err.Error()))
		return
	}
	if err := p.client.Publish(ctx, channelPrefix+publicID, payload).Err(); err != nil {
		p.logger.Error("broadcast publish failed",
			slog.String("shipment", publicID),
			slog.String("error", err.Error()))
	}
}

func publicIDFromChannel(channel string) string {
	return strings.TrimPrefix(channel, channelPrefix)
}
