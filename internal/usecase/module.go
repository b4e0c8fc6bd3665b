package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewShipmentUseCase,
	NewRegistrationUseCase,
	NewNotificationUseCase,
	newBidUseCase,
)

type bidParams struct {
	fx.In

	Bids          repository.BidRepository
	Shipments     repository.ShipmentRepository
	Registrations repository.RegistrationRepository
	Events        bus.EventBus
	Config        *config.Config
	Logger        *slog.Logger
}

func newBidUseCase(p bidParams) *BidUseCase {
	return NewBidUseCase(p.Bids, p.Shipments, p.Registrations, p.Events, int64(p.Config.MaxBidsPerCarrier), p.Logger)
}
