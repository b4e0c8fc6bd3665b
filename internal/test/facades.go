package test

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/archive"
	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// ShipmentFacadeStub implements the shipment facade with overridable hooks.
type ShipmentFacadeStub struct {
	CreateFn     func(ctx context.Context, draft model.ShipmentDraft) (*model.Shipment, error)
	GetFn        func(ctx context.Context, id string) (*model.Shipment, error)
	TrackFn      func(ctx context.Context, publicID string) (*model.Shipment, error)
	ByExporterFn func(ctx context.Context, exporterID string) ([]model.Shipment, error)
	ByStatusFn   func(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error)
	UpdateFn     func(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, error)
	DeleteFn     func(ctx context.Context, id string) error
	AwardFn      func(ctx context.Context, id string, winner model.WinningBid) (*model.Shipment, error)
}

func (s ShipmentFacadeStub) CreateShipment(ctx context.Context, draft model.ShipmentDraft) (*model.Shipment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return &model.Shipment{}, nil
}

func (s ShipmentFacadeStub) Shipment(ctx context.Context, id string) (*model.Shipment, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Shipment{ID: id}, nil
}

func (s ShipmentFacadeStub) ShipmentByPublicID(ctx context.Context, publicID string) (*model.Shipment, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, publicID)
	}
	return &model.Shipment{PublicID: publicID}, nil
}

func (s ShipmentFacadeStub) ShipmentsByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error) {
	if s.ByExporterFn != nil {
		return s.ByExporterFn(ctx, exporterID)
	}
	return nil, nil
}

func (s ShipmentFacadeStub) ShipmentsByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error) {
	if s.ByStatusFn != nil {
		return s.ByStatusFn(ctx, status)
	}
	return nil, nil
}

func (s ShipmentFacadeStub) UpdateShipment(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, draft)
	}
	return &model.Shipment{ID: id}, nil
}

func (s ShipmentFacadeStub) DeleteShipment(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s ShipmentFacadeStub) AwardShipment(ctx context.Context, id string, winner model.WinningBid) (*model.Shipment, error) {
	if s.AwardFn != nil {
		return s.AwardFn(ctx, id, winner)
	}
	return &model.Shipment{ID: id}, nil
}

// BidFacadeStub implements the bid facade with overridable hooks.
type BidFacadeStub struct {
	PlaceFn      func(ctx context.Context, bid *model.Bid) (*model.Bid, error)
	ByShipmentFn func(ctx context.Context, shipmentID string) ([]model.Bid, error)
	ByCarrierFn  func(ctx context.Context, carrierID string) ([]model.Bid, error)
}

func (s BidFacadeStub) PlaceBid(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, bid)
	}
	return bid, nil
}

func (s BidFacadeStub) ShipmentBids(ctx context.Context, shipmentID string) ([]model.Bid, error) {
	if s.ByShipmentFn != nil {
		return s.ByShipmentFn(ctx, shipmentID)
	}
	return nil, nil
}

func (s BidFacadeStub) CarrierBids(ctx context.Context, carrierID string) ([]model.Bid, error) {
	if s.ByCarrierFn != nil {
		return s.ByCarrierFn(ctx, carrierID)
	}
	return nil, nil
}

// RegistrationFacadeStub implements the registration facade with overridable hooks.
type RegistrationFacadeStub struct {
	RegisterFn func(ctx context.Context, reg *model.Registration) error
	ListFn     func(ctx context.Context, shipmentID string) ([]model.Registration, error)
}

func (s RegistrationFacadeStub) RegisterCarrier(ctx context.Context, reg *model.Registration) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return nil
}

func (s RegistrationFacadeStub) ShipmentRegistrations(ctx context.Context, shipmentID string) ([]model.Registration, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, shipmentID)
	}
	return nil, nil
}

// NotificationFacadeStub implements the notification facade with an overridable hook.
type NotificationFacadeStub struct {
	ListFn func(ctx context.Context, recipientID string) ([]model.Notification, error)
}

func (s NotificationFacadeStub) RecipientNotifications(ctx context.Context, recipientID string) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, recipientID)
	}
	return nil, nil
}

// TaskFacadeStub implements the task callback facade with overridable hooks.
type TaskFacadeStub struct {
	GoLiveFn       func(ctx context.Context, shipmentID string) (bool, error)
	CloseBiddingFn func(ctx context.Context, shipmentID string) (bool, error)
}

func (s TaskFacadeStub) ExecuteGoLive(ctx context.Context, shipmentID string) (bool, error) {
	if s.GoLiveFn != nil {
		return s.GoLiveFn(ctx, shipmentID)
	}
	return true, nil
}

func (s TaskFacadeStub) ExecuteCloseBidding(ctx context.Context, shipmentID string) (bool, error) {
	if s.CloseBiddingFn != nil {
		return s.CloseBiddingFn(ctx, shipmentID)
	}
	return true, nil
}

// MarketplaceFacadeStub aggregates the per-concern stubs into the full
// facade expected by the router.
type MarketplaceFacadeStub struct {
	ShipmentFacadeStub
	BidFacadeStub
	RegistrationFacadeStub
	NotificationFacadeStub
	TaskFacadeStub
	HistoryFacadeStub
}

// HistoryFacadeStub implements the archive read facade with overridable hooks.
type HistoryFacadeStub struct {
	TransitionsFn func(ctx context.Context, shipmentID string) ([]archive.Transition, error)
	BidsFn        func(ctx context.Context, shipmentID string) ([]archive.ArchivedBid, error)
}

func (s HistoryFacadeStub) ShipmentTransitions(ctx context.Context, shipmentID string) ([]archive.Transition, error) {
	if s.TransitionsFn != nil {
		return s.TransitionsFn(ctx, shipmentID)
	}
	return nil, nil
}

func (s HistoryFacadeStub) ShipmentArchivedBids(ctx context.Context, shipmentID string) ([]archive.ArchivedBid, error) {
	if s.BidsFn != nil {
		return s.BidsFn(ctx, shipmentID)
	}
	return nil, nil
}
