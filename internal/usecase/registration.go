package usecase

import (
	"context"

	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// RegistrationUseCase records carrier interest in bidding on a shipment.
type RegistrationUseCase struct {
	registrations repository.RegistrationRepository
	shipments     repository.ShipmentRepository
}

// NewRegistrationUseCase constructs RegistrationUseCase.
func NewRegistrationUseCase(registrations repository.RegistrationRepository, shipments repository.ShipmentRepository) *RegistrationUseCase {
	return &RegistrationUseCase{registrations: registrations, shipments: shipments}
}

// Register stores one carrier registration. ErrAlreadyExists when the
// carrier already registered for this shipment.
func (u *RegistrationUseCase) Register(ctx context.Context, reg *model.Registration) error {
	if _, err := u.shipments.Get(ctx, reg.ShipmentID); err != nil {
		return err
	}
	return u.registrations.Create(ctx, reg)
}

// ListByShipment returns every registration for a shipment.
func (u *RegistrationUseCase) ListByShipment(ctx context.Context, shipmentID string) ([]model.Registration, error) {
	return u.registrations.ListByShipment(ctx, shipmentID)
}
