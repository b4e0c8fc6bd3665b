package handlers

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/archive"
	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// ShipmentFacade encapsulates shipment operations exposed via HTTP.
type ShipmentFacade interface {
	CreateShipment(ctx context.Context, draft model.ShipmentDraft) (*model.Shipment, error)
	Shipment(ctx context.Context, id string) (*model.Shipment, error)
	ShipmentByPublicID(ctx context.Context, publicID string) (*model.Shipment, error)
	ShipmentsByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error)
	ShipmentsByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error)
	UpdateShipment(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, error)
	DeleteShipment(ctx context.Context, id string) error
	AwardShipment(ctx context.Context, id string, winner model.WinningBid) (*model.Shipment, error)
}

// BidFacade provides bid placement and listings.
type BidFacade interface {
	PlaceBid(ctx context.Context, bid *model.Bid) (*model.Bid, error)
	ShipmentBids(ctx context.Context, shipmentID string) ([]model.Bid, error)
	CarrierBids(ctx context.Context, carrierID string) ([]model.Bid, error)
}

// RegistrationFacade provides carrier registration operations.
type RegistrationFacade interface {
	RegisterCarrier(ctx context.Context, reg *model.Registration) error
	ShipmentRegistrations(ctx context.Context, shipmentID string) ([]model.Registration, error)
}

// NotificationFacade exposes per-recipient inboxes.
type NotificationFacade interface {
	RecipientNotifications(ctx context.Context, recipientID string) ([]model.Notification, error)
}

// TaskFacade runs the deferred lifecycle callbacks delivered by the task
// queue. The boolean reports whether the delivery performed the transition.
type TaskFacade interface {
	ExecuteGoLive(ctx context.Context, shipmentID string) (bool, error)
	ExecuteCloseBidding(ctx context.Context, shipmentID string) (bool, error)
}

// HistoryFacade reads the archived record of a shipment.
type HistoryFacade interface {
	ShipmentTransitions(ctx context.Context, shipmentID string) ([]archive.Transition, error)
	ShipmentArchivedBids(ctx context.Context, shipmentID string) ([]archive.ArchivedBid, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	ShipmentFacade
	BidFacade
	RegistrationFacade
	NotificationFacade
	TaskFacade
	HistoryFacade
}
