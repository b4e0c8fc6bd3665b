package test

import (
	"context"
	"sync"

	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// BusStub is a synchronous in-process event bus. Published events are
// recorded and delivered to subscribed handlers before Publish returns,
// which makes trigger chains observable in a single test step.
type BusStub struct {
	mu sync.Mutex

	ShipmentEvents []model.ShipmentEvent
	BidEvents      []model.BidEvent

	shipmentHandlers []bus.ShipmentHandler
	bidHandlers      []bus.BidHandler

	PublishErr error
}

func (b *BusStub) PublishShipmentWrite(ctx context.Context, event model.ShipmentEvent) error {
	if b.PublishErr != nil {
		return b.PublishErr
	}
	b.mu.Lock()
	b.ShipmentEvents = append(b.ShipmentEvents, event)
	handlers := append([]bus.ShipmentHandler(nil), b.shipmentHandlers...)
	b.mu.Unlock()
	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

func (b *BusStub) PublishBidCreated(ctx context.Context, event model.BidEvent) error {
	if b.PublishErr != nil {
		return b.PublishErr
	}
	b.mu.Lock()
	b.BidEvents = append(b.BidEvents, event)
	handlers := append([]bus.BidHandler(nil), b.bidHandlers...)
	b.mu.Unlock()
	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

func (b *BusStub) SubscribeShipmentWrites(handler bus.ShipmentHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shipmentHandlers = append(b.shipmentHandlers, handler)
	return nil
}

func (b *BusStub) SubscribeBidCreates(handler bus.BidHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bidHandlers = append(b.bidHandlers, handler)
	return nil
}

// LastShipmentEvent returns the most recently published shipment event.
func (b *BusStub) LastShipmentEvent() *model.ShipmentEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.ShipmentEvents) == 0 {
		return nil
	}
	event := b.ShipmentEvents[len(b.ShipmentEvents)-1]
	return &event
}

var _ bus.EventBus = (*BusStub)(nil)
