package app

import (
	"context"
	"time"

	"github.com/cargoflow/cargoflow/internal/archive"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
	"github.com/cargoflow/cargoflow/internal/lifecycle"
	"github.com/cargoflow/cargoflow/internal/usecase"
)

// CargoFacade aggregates the application services behind the HTTP handlers
// and the sweeper. One type implements both facade surfaces so the wiring
// stays in a single place.
type CargoFacade struct {
	shipments     *usecase.ShipmentUseCase
	bids          *usecase.BidUseCase
	registrations *usecase.RegistrationUseCase
	notifications *usecase.NotificationUseCase
	orchestrator  *lifecycle.Orchestrator
	archive       *archive.Archive
	repo          repository.ShipmentRepository
}

// NewCargoFacade constructs CargoFacade.
func NewCargoFacade(
	shipments *usecase.ShipmentUseCase,
	bids *usecase.BidUseCase,
	registrations *usecase.RegistrationUseCase,
	notifications *usecase.NotificationUseCase,
	orchestrator *lifecycle.Orchestrator,
	arch *archive.Archive,
	repo repository.ShipmentRepository,
) *CargoFacade {
	return &CargoFacade{
		shipments:     shipments,
		bids:          bids,
		registrations: registrations,
		notifications: notifications,
		orchestrator:  orchestrator,
		archive:       arch,
		repo:          repo,
	}
}

func (f *CargoFacade) CreateShipment(ctx context.Context, draft model.ShipmentDraft) (*model.Shipment, error) {
	return f.shipments.Create(ctx, draft)
}

func (f *CargoFacade) Shipment(ctx context.Context, id string) (*model.Shipment, error) {
	return f.shipments.Get(ctx, id)
}

func (f *CargoFacade) ShipmentByPublicID(ctx context.Context, publicID string) (*model.Shipment, error) {
	return f.shipments.GetByPublicID(ctx, publicID)
}

func (f *CargoFacade) ShipmentsByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error) {
	return f.shipments.ListByExporter(ctx, exporterID)
}

func (f *CargoFacade) ShipmentsByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error) {
	return f.shipments.ListByStatus(ctx, status)
}

func (f *CargoFacade) UpdateShipment(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, error) {
	return f.shipments.Update(ctx, id, draft)
}

func (f *CargoFacade) DeleteShipment(ctx context.Context, id string) error {
	return f.shipments.Delete(ctx, id)
}

func (f *CargoFacade) AwardShipment(ctx context.Context, id string, winner model.WinningBid) (*model.Shipment, error) {
	return f.shipments.Award(ctx, id, winner)
}

func (f *CargoFacade) PlaceBid(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	return f.bids.Place(ctx, bid)
}

func (f *CargoFacade) ShipmentBids(ctx context.Context, shipmentID string) ([]model.Bid, error) {
	return f.bids.ListByShipment(ctx, shipmentID)
}

func (f *CargoFacade) CarrierBids(ctx context.Context, carrierID string) ([]model.Bid, error) {
	return f.bids.ListByCarrier(ctx, carrierID)
}

func (f *CargoFacade) RegisterCarrier(ctx context.Context, reg *model.Registration) error {
	return f.registrations.Register(ctx, reg)
}

func (f *CargoFacade) ShipmentRegistrations(ctx context.Context, shipmentID string) ([]model.Registration, error) {
	return f.registrations.ListByShipment(ctx, shipmentID)
}

func (f *CargoFacade) RecipientNotifications(ctx context.Context, recipientID string) ([]model.Notification, error) {
	return f.notifications.ListByRecipient(ctx, recipientID)
}

func (f *CargoFacade) ExecuteGoLive(ctx context.Context, shipmentID string) (bool, error) {
	return f.orchestrator.ExecuteGoLive(ctx, shipmentID)
}

func (f *CargoFacade) ExecuteCloseBidding(ctx context.Context, shipmentID string) (bool, error) {
	return f.orchestrator.ExecuteCloseBidding(ctx, shipmentID)
}

func (f *CargoFacade) ShipmentTransitions(ctx context.Context, shipmentID string) ([]archive.Transition, error) {
	return f.archive.Transitions(ctx, shipmentID)
}

func (f *CargoFacade) ShipmentArchivedBids(ctx context.Context, shipmentID string) ([]archive.ArchivedBid, error) {
	return f.archive.Bids(ctx, shipmentID)
}

func (f *CargoFacade) ShipmentsDueForGoLive(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	return f.repo.ListDueForGoLive(ctx, now, limit)
}

func (f *CargoFacade) ShipmentsDueForReview(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	return f.repo.ListDueForReview(ctx, now, limit)
}

// MarkShipmentLive is the sweeper's repair move. A nil closeAt keeps the
// already-derived bidding close untouched.
func (f *CargoFacade) MarkShipmentLive(ctx context.Context, id string, closeAt *time.Time) (*model.Shipment, error) {
	return f.shipments.MarkLive(ctx, id, closeAt)
}

func (f *CargoFacade) MarkShipmentReviewing(ctx context.Context, id string) (*model.Shipment, error) {
	return f.shipments.MarkReviewing(ctx, id)
}
