package repository

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// RegistrationRepository describes persistence operations with carrier
// registrations of interest.
type RegistrationRepository interface {
	// Create stores a registration; ErrAlreadyExists when the carrier has
	// one for this shipment already.
	Create(ctx context.Context, reg *model.Registration) error
	Get(ctx context.Context, shipmentID, carrierID string) (*model.Registration, error)
	ListByShipment(ctx context.Context, shipmentID string) ([]model.Registration, error)
}
