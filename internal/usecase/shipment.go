package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cargoflow/cargoflow/internal/bus"
	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// ShipmentUseCase encapsulates shipment lifecycle logic. Every mutation here
// publishes a before/after write event; the lifecycle trigger handler runs
// off those events. Publish failures are logged and swallowed so a lost
// event degrades to sweeper-repaired state, never to a failed user write.
type ShipmentUseCase struct {
	shipments repository.ShipmentRepository
	events    bus.EventBus
	logger    *slog.Logger
}

// NewShipmentUseCase constructs ShipmentUseCase.
func NewShipmentUseCase(shipments repository.ShipmentRepository, events bus.EventBus, logger *slog.Logger) *ShipmentUseCase {
	return &ShipmentUseCase{shipments: shipments, events: events, logger: logger}
}

// Create posts a new shipment as draft or scheduled and assigns its public id.
func (u *ShipmentUseCase) Create(ctx context.Context, draft model.ShipmentDraft) (*model.Shipment, error) {
	if draft.Status == "" {
		draft.Status = model.ShipmentStatusDraft
	}
	if draft.Status != model.ShipmentStatusDraft && draft.Status != model.ShipmentStatusScheduled {
		return nil, domainErrors.ErrInvalidStatus
	}

	shipment := &model.Shipment{
		PublicID:       uuid.NewString(),
		ExporterID:     draft.ExporterID,
		ExporterName:   draft.ExporterName,
		Status:         draft.Status,
		ProductName:    draft.ProductName,
		CargoType:      draft.CargoType,
		Origin:         draft.Origin,
		Destination:    draft.Destination,
		CargoReadyDate: draft.CargoReadyDate,
		GoLiveAt:       draft.GoLiveAt,
	}

	created, err := u.shipments.Create(ctx, shipment)
	if err != nil {
		return nil, err
	}
	u.publish(ctx, model.ShipmentEvent{After: created})
	return created, nil
}

// Get returns one shipment by internal id.
func (u *ShipmentUseCase) Get(ctx context.Context, id string) (*model.Shipment, error) {
	return u.shipments.Get(ctx, id)
}

// GetByPublicID returns one shipment by its external-facing id.
func (u *ShipmentUseCase) GetByPublicID(ctx context.Context, publicID string) (*model.Shipment, error) {
	return u.shipments.GetByPublicID(ctx, publicID)
}

// ListByExporter returns shipments posted by one exporter.
func (u *ShipmentUseCase) ListByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error) {
	return u.shipments.ListByExporter(ctx, exporterID)
}

// ListByStatus returns shipments in one lifecycle state.
func (u *ShipmentUseCase) ListByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.shipments.ListByStatus(ctx, status)
}

// Update replaces the exporter-owned fields of a shipment.
func (u *ShipmentUseCase) Update(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, error) {
	if !draft.Status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	before, after, err := u.shipments.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	u.publish(ctx, model.ShipmentEvent{Before: before, After: after})
	return after, nil
}

// Delete removes a shipment.
func (u *ShipmentUseCase) Delete(ctx context.Context, id string) error {
	before, err := u.shipments.Delete(ctx, id)
	if err != nil {
		return err
	}
	u.publish(ctx, model.ShipmentEvent{Before: before})
	return nil
}

// Award moves a reviewing shipment to awarded with the chosen winner.
func (u *ShipmentUseCase) Award(ctx context.Context, id string, winner model.WinningBid) (*model.Shipment, error) {
	before, after, err := u.shipments.Transition(ctx, id, model.StatusTransition{
		From:   model.ShipmentStatusReviewing,
		To:     model.ShipmentStatusAwarded,
		Winner: &winner,
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, model.ShipmentEvent{Before: before, After: after})
	return after, nil
}

// MarkLive conditionally moves a scheduled shipment to live. A nil closeAt
// leaves biddingCloseAt untouched, which is how the sweeper path works; the
// go-live callback passes the recomputed close time. ErrInvalidStatus means
// the shipment already moved on.
func (u *ShipmentUseCase) MarkLive(ctx context.Context, id string, closeAt *time.Time) (*model.Shipment, error) {
	before, after, err := u.shipments.Transition(ctx, id, model.StatusTransition{
		From:           model.ShipmentStatusScheduled,
		To:             model.ShipmentStatusLive,
		BiddingCloseAt: closeAt,
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, model.ShipmentEvent{Before: before, After: after})
	return after, nil
}

// MarkReviewing conditionally moves a live shipment to reviewing.
func (u *ShipmentUseCase) MarkReviewing(ctx context.Context, id string) (*model.Shipment, error) {
	before, after, err := u.shipments.Transition(ctx, id, model.StatusTransition{
		From: model.ShipmentStatusLive,
		To:   model.ShipmentStatusReviewing,
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, model.ShipmentEvent{Before: before, After: after})
	return after, nil
}

func (u *ShipmentUseCase) publish(ctx context.Context, event model.ShipmentEvent) {
	if err := u.events.PublishShipmentWrite(ctx, event); err != nil {
		u.logger.Error("publish shipment event failed",
			slog.String("shipmentID", event.ShipmentID()),
			slog.String("error", err.Error()))
	}
}
