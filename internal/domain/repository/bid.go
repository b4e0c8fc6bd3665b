package repository

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// BidRepository describes persistence operations with carrier bids.
type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) (*model.Bid, error)
	ListByShipment(ctx context.Context, shipmentID string) ([]model.Bid, error)
	ListByCarrier(ctx context.Context, carrierID string) ([]model.Bid, error)
	CountByCarrier(ctx context.Context, shipmentID, carrierID string) (int64, error)
}
