package bus

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// ShipmentHandler consumes one shipment write event.
type ShipmentHandler func(ctx context.Context, event model.ShipmentEvent)

// BidHandler consumes one bid creation event.
type BidHandler func(ctx context.Context, event model.BidEvent)

// EventBus fans document write events out to lifecycle subscribers. Every
// user-visible shipment write and every new bid is published here; the
// orchestrator's own bookkeeping writes are not, which is what keeps the
// trigger from feeding itself.
type EventBus interface {
	PublishShipmentWrite(ctx context.Context, event model.ShipmentEvent) error
	PublishBidCreated(ctx context.Context, event model.BidEvent) error

	SubscribeShipmentWrites(handler ShipmentHandler) error
	SubscribeBidCreates(handler BidHandler) error
}
