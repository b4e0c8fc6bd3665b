package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/scheduler"
)

// ExecuteGoLive runs the deferred go-live callback for one shipment. It
// reports whether this invocation performed the scheduled→live transition;
// false with a nil error means the shipment already moved on and the stale
// delivery was absorbed.
func (o *Orchestrator) ExecuteGoLive(ctx context.Context, shipmentID string) (bool, error) {
	shipment, err := o.shipments.Get(ctx, shipmentID)
	if err != nil {
		return false, err
	}
	if shipment.Status != model.ShipmentStatusScheduled {
		return false, nil
	}

	// Bidding closes relative to actual execution time, not the originally
	// scheduled go-live, since task delivery is not perfectly punctual.
	closeAt := o.now().Add(o.biddingWindow)
	after, err := o.shipmentUC.MarkLive(ctx, shipmentID, &closeAt)
	if errors.Is(err, domainErrors.ErrInvalidStatus) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	o.notifyRegistrants(ctx, after)

	// Fire-and-forget: no handle is tracked for the close-bidding task, the
	// reviewing sweeper is the backstop if this enqueue is lost.
	payload, err := json.Marshal(TaskPayload{ShipmentID: after.ID})
	if err == nil {
		_, err = o.tasks.Enqueue(ctx, scheduler.Task{
			TargetURL:  o.callbackBaseURL + closeBiddingCallbackPath,
			Payload:    payload,
			ScheduleAt: closeAt,
		})
	}
	if err != nil {
		o.logger.Error("close-bidding task enqueue failed",
			slog.String("shipmentID", after.ID),
			slog.String("error", err.Error()))
	}

	return true, nil
}

// notifyRegistrants tells every registered carrier that bidding opened.
// Each notification attempt is independent.
func (o *Orchestrator) notifyRegistrants(ctx context.Context, shipment *model.Shipment) {
	registrations, err := o.registrations.ListByShipment(ctx, shipment.ID)
	if err != nil {
		o.logger.Error("registration fan-out lookup failed",
			slog.String("shipmentID", shipment.ID),
			slog.String("error", err.Error()))
		return
	}
	for _, reg := range registrations {
		o.notifier.Notify(ctx, reg.CarrierID,
			fmt.Sprintf("Bidding is now open for %q.", shipment.ProductName),
			"/dashboard/carrier/shipment/"+shipment.PublicID)
	}
}

// ExecuteCloseBidding runs the deferred close-bidding callback. Same
// idempotence structure as ExecuteGoLive, for the live→reviewing move.
func (o *Orchestrator) ExecuteCloseBidding(ctx context.Context, shipmentID string) (bool, error) {
	shipment, err := o.shipments.Get(ctx, shipmentID)
	if err != nil {
		return false, err
	}
	if shipment.Status != model.ShipmentStatusLive {
		return false, nil
	}

	_, err = o.shipmentUC.MarkReviewing(ctx, shipmentID)
	if errors.Is(err, domainErrors.ErrInvalidStatus) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
