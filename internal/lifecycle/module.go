package lifecycle

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
	"github.com/cargoflow/cargoflow/internal/scheduler"
	"github.com/cargoflow/cargoflow/internal/usecase"
)

// Module wires the lifecycle orchestrator and its bus subscriptions.
var Module = fx.Options(
	fx.Provide(newOrchestrator),
	fx.Invoke(subscribe),
)

type orchestratorParams struct {
	fx.In

	Shipments     repository.ShipmentRepository
	Registrations repository.RegistrationRepository
	Tasks         scheduler.Scheduler
	ShipmentUC    *usecase.ShipmentUseCase
	Notifier      *usecase.NotificationUseCase
	Config        *config.Config
	Logger        *slog.Logger
}

func newOrchestrator(p orchestratorParams) *Orchestrator {
	return NewOrchestrator(
		p.Shipments,
		p.Registrations,
		p.Tasks,
		p.ShipmentUC,
		p.Notifier,
		p.Config.CallbackBaseURL,
		p.Config.BiddingWindow,
		p.Logger,
	)
}

func subscribe(lc fx.Lifecycle, events bus.EventBus, orchestrator *Orchestrator) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := events.SubscribeShipmentWrites(orchestrator.OnShipmentWrite); err != nil {
				return err
			}
			return events.SubscribeBidCreates(orchestrator.OnBidCreate)
		},
	})
}
