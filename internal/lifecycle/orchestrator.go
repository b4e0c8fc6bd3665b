package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
	"github.com/cargoflow/cargoflow/internal/scheduler"
	"github.com/cargoflow/cargoflow/internal/usecase"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
)

const (
	goLiveCallbackPath       = "/api/tasks/go-live"
	closeBiddingCallbackPath = "/api/tasks/close-bidding"
)

// TaskPayload is the JSON body carried by a deferred lifecycle callback.
type TaskPayload struct {
	ShipmentID string `json:"shipmentId"`
}

// Orchestrator drives the shipment state machine. It reacts to document
// write events, runs the two deferred-task callbacks, and emits user
// notifications. Each reaction step is individually failure-tolerant: a
// failed step is logged and the remaining steps still run, with the sweeper
// as the safety net for missed transitions.
type Orchestrator struct {
	shipments     repository.ShipmentRepository
	registrations repository.RegistrationRepository
	tasks         scheduler.Scheduler
	shipmentUC    *usecase.ShipmentUseCase
	notifier      *usecase.NotificationUseCase

	callbackBaseURL string
	biddingWindow   time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// NewOrchestrator constructs the lifecycle orchestrator.
func NewOrchestrator(
	shipments repository.ShipmentRepository,
	registrations repository.RegistrationRepository,
	tasks scheduler.Scheduler,
	shipmentUC *usecase.ShipmentUseCase,
	notifier *usecase.NotificationUseCase,
	callbackBaseURL string,
	biddingWindow time.Duration,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		shipments:       shipments,
		registrations:   registrations,
		tasks:           tasks,
		shipmentUC:      shipmentUC,
		notifier:        notifier,
		callbackBaseURL: callbackBaseURL,
		biddingWindow:   biddingWindow,
		logger:          logger,
		now:             time.Now,
	}
}

// OnShipmentWrite handles one shipment document write event. The bookkeeping
// writes it makes (biddingCloseAt, goLiveTaskName) go through the silent
// repository setters and therefore never produce a follow-up event.
func (o *Orchestrator) OnShipmentWrite(ctx context.Context, event model.ShipmentEvent) {
	before, after := event.Before, event.After
	if before == nil && after == nil {
		return
	}

	o.cancelStaleTask(ctx, before)

	if after == nil {
		// Deleted shipments need no further lifecycle work.
		return
	}

	o.deriveBiddingClose(ctx, before, after)
	o.notifyAward(ctx, before, after)
	o.scheduleGoLive(ctx, before, after)
}

// cancelStaleTask deletes the deferred task named by the before image.
// NOT_FOUND means the task already fired or was cancelled earlier.
func (o *Orchestrator) cancelStaleTask(ctx context.Context, before *model.Shipment) {
	if before == nil || before.GoLiveTaskName == "" {
		return
	}
	err := o.tasks.Cancel(ctx, before.GoLiveTaskName)
	if err != nil && !errors.Is(err, domainErrors.ErrTaskNotFound) {
		o.logger.Warn("stale task cancellation failed",
			slog.String("shipmentID", before.ID),
			slog.String("task", before.GoLiveTaskName),
			slog.String("error", err.Error()))
	}
}

// deriveBiddingClose keeps biddingCloseAt consistent with goLiveAt. It only
// writes when the close time is missing or the exporter rescheduled, so a
// write that already carries a consistent pair is left alone.
func (o *Orchestrator) deriveBiddingClose(ctx context.Context, before, after *model.Shipment) {
	if after.GoLiveAt == nil {
		return
	}
	rescheduled := before != nil && !timesEqual(before.GoLiveAt, after.GoLiveAt)
	if after.BiddingCloseAt != nil && !rescheduled {
		return
	}

	closeAt := after.GoLiveAt.Add(o.biddingWindow)
	if err := o.shipments.SetBiddingCloseAt(ctx, after.ID, closeAt); err != nil {
		o.logger.Error("bidding close derivation failed",
			slog.String("shipmentID", after.ID),
			slog.String("error", err.Error()))
	}
}

// notifyAward congratulates the winning carrier when a write moves the
// shipment into awarded.
func (o *Orchestrator) notifyAward(ctx context.Context, before, after *model.Shipment) {
	if after.Status != model.ShipmentStatusAwarded {
		return
	}
	if before != nil && before.Status == model.ShipmentStatusAwarded {
		return
	}
	if after.WinningCarrierID == "" || after.ProductName == "" {
		return
	}
	o.notifier.Notify(ctx, after.WinningCarrierID,
		fmt.Sprintf("Congratulations! You won the bid for %q.", after.ProductName),
		"/dashboard/carrier/registered-shipment/"+after.PublicID)
}

// scheduleGoLive enqueues the deferred go-live callback for a scheduled
// shipment with a future go-live time and persists the task handle. In every
// other case the handle is cleared, since any previously outstanding task
// was already cancelled.
func (o *Orchestrator) scheduleGoLive(ctx context.Context, before, after *model.Shipment) {
	eligible := after.Status == model.ShipmentStatusScheduled &&
		after.GoLiveAt != nil &&
		after.GoLiveAt.After(o.now())

	if !eligible {
		if before != nil && before.GoLiveTaskName != "" {
			if err := o.shipments.SetGoLiveTask(ctx, after.ID, ""); err != nil {
				o.logger.Error("go-live task handle clear failed",
					slog.String("shipmentID", after.ID),
					slog.String("error", err.Error()))
			}
		}
		return
	}

	payload, err := json.Marshal(TaskPayload{ShipmentID: after.ID})
	if err != nil {
		o.logger.Error("go-live payload marshal failed",
			slog.String("shipmentID", after.ID),
			slog.String("error", err.Error()))
		return
	}

	name, err := o.tasks.Enqueue(ctx, scheduler.Task{
		TargetURL:  o.callbackBaseURL + goLiveCallbackPath,
		Payload:    payload,
		ScheduleAt: *after.GoLiveAt,
	})
	if err != nil {
		// Leave the handle absent; the minute sweeper repairs a missed go-live.
		o.logger.Error("go-live task enqueue failed",
			slog.String("shipmentID", after.ID),
			slog.String("error", err.Error()))
		return
	}

	if err := o.shipments.SetGoLiveTask(ctx, after.ID, name); err != nil {
		o.logger.Error("go-live task handle persist failed",
			slog.String("shipmentID", after.ID),
			slog.String("task", name),
			slog.String("error", err.Error()))
	}
}

// OnBidCreate notifies the exporter about a newly placed bid.
func (o *Orchestrator) OnBidCreate(ctx context.Context, event model.BidEvent) {
	bid := event.Bid
	shipment, err := o.shipments.Get(ctx, bid.ShipmentID)
	if err != nil {
		o.logger.Error("bid notification lookup failed",
			slog.String("shipmentID", bid.ShipmentID),
			slog.String("error", err.Error()))
		return
	}
	o.notifier.Notify(ctx, shipment.ExporterID,
		fmt.Sprintf("%s placed a bid of $%.2f on %q.", bid.CarrierName, bid.BidAmount, shipment.ProductName),
		"/dashboard/shipment/"+shipment.PublicID)
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
