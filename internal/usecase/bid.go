package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cargoflow/cargoflow/internal/bus"
	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// BidUseCase encapsulates carrier bidding rules. Bids are immutable and only
// accepted while the shipment is live, from registered carriers, up to the
// per-carrier cap.
type BidUseCase struct {
	bids          repository.BidRepository
	shipments     repository.ShipmentRepository
	registrations repository.RegistrationRepository
	events        bus.EventBus
	maxPerCarrier int64
	logger        *slog.Logger
}

// NewBidUseCase constructs BidUseCase.
func NewBidUseCase(
	bids repository.BidRepository,
	shipments repository.ShipmentRepository,
	registrations repository.RegistrationRepository,
	events bus.EventBus,
	maxPerCarrier int64,
	logger *slog.Logger,
) *BidUseCase {
	return &BidUseCase{
		bids:          bids,
		shipments:     shipments,
		registrations: registrations,
		events:        events,
		maxPerCarrier: maxPerCarrier,
		logger:        logger,
	}
}

// Place records one carrier bid and announces it on the event bus.
func (u *BidUseCase) Place(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	if bid.BidAmount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	shipment, err := u.shipments.Get(ctx, bid.ShipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.Status != model.ShipmentStatusLive {
		return nil, domainErrors.ErrBiddingClosed
	}

	if _, err := u.registrations.Get(ctx, bid.ShipmentID, bid.CarrierID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotRegistered
		}
		return nil, err
	}

	count, err := u.bids.CountByCarrier(ctx, bid.ShipmentID, bid.CarrierID)
	if err != nil {
		return nil, err
	}
	if count >= u.maxPerCarrier {
		return nil, domainErrors.ErrBidLimitReached
	}

	created, err := u.bids.Create(ctx, bid)
	if err != nil {
		return nil, err
	}

	if err := u.events.PublishBidCreated(ctx, model.BidEvent{Bid: *created}); err != nil {
		u.logger.Error("publish bid event failed",
			slog.String("bidID", created.ID),
			slog.String("error", err.Error()))
	}
	return created, nil
}

// ListByShipment returns bids placed on one shipment.
func (u *BidUseCase) ListByShipment(ctx context.Context, shipmentID string) ([]model.Bid, error) {
	return u.bids.ListByShipment(ctx, shipmentID)
}

// ListByCarrier returns bids placed by one carrier.
func (u *BidUseCase) ListByCarrier(ctx context.Context, carrierID string) ([]model.Bid, error) {
	return u.bids.ListByCarrier(ctx, carrierID)
}
