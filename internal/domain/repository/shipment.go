package repository

import (
	"context"
	"time"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// ShipmentRepository describes persistence operations with shipments.
//
// Methods that mutate the document return the before and after images so the
// caller can publish a write event. Bookkeeping setters (SetBiddingCloseAt,
// SetGoLiveTask) intentionally do not: the lifecycle orchestrator uses them
// for writes that must not re-enter the trigger.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error)
	Get(ctx context.Context, id string) (*model.Shipment, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.Shipment, error)
	ListByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error)
	ListByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error)

	// Update replaces the exporter-owned fields and returns both images.
	Update(ctx context.Context, id string, draft model.ShipmentDraft) (before, after *model.Shipment, err error)

	// Transition applies a conditional status move. It returns
	// ErrInvalidStatus when the shipment no longer holds transition.From.
	Transition(ctx context.Context, id string, transition model.StatusTransition) (before, after *model.Shipment, err error)

	Delete(ctx context.Context, id string) (before *model.Shipment, err error)

	SetBiddingCloseAt(ctx context.Context, id string, at time.Time) error
	SetGoLiveTask(ctx context.Context, id string, taskName string) error

	// ListDueForGoLive returns scheduled shipments whose goLiveAt has passed.
	ListDueForGoLive(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error)
	// ListDueForReview returns live shipments whose biddingCloseAt has passed.
	ListDueForReview(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error)
}
