package broadcast

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// Module wires the live dashboard broadcast pipeline.
var Module = fx.Options(
	fx.Provide(
		func(logger *slog.Logger) *Hub { return NewHub(logger) },
		newPublisher,
		newSubscriber,
	),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Shipments repository.ShipmentRepository
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (*Publisher, error) {
	return NewPublisher(p.Ctx, p.Config.RedisAddr, p.Config.RedisPassword, p.Config.RedisDB, p.Shipments, p.Logger)
}

type subscriberParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Hub    *Hub
	Logger *slog.Logger
}

func newSubscriber(p subscriberParams) (*Subscriber, error) {
	return NewSubscriber(p.Ctx, p.Config.RedisAddr, p.Config.RedisPassword, p.Config.RedisDB, p.Hub, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, events bus.EventBus, publisher *Publisher, subscriber *Subscriber) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := events.SubscribeShipmentWrites(publisher.OnShipmentWrite); err != nil {
				return err
			}
			if err := events.SubscribeBidCreates(publisher.OnBidCreate); err != nil {
				return err
			}
			subscriber.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			if err := subscriber.Stop(); err != nil {
				return err
			}
			return publisher.Close()
		},
	})
}
