package bus

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/config"
)

// Module wires the NATS event bus.
var Module = fx.Options(
	fx.Provide(newBus),
	fx.Provide(func(b *NATSBus) EventBus { return b }),
	fx.Invoke(registerLifecycle),
)

type busParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newBus(p busParams) (*NATSBus, error) {
	return NewNATSBus(p.Config.NatsURL, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, b *NATSBus) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return b.Close()
		},
	})
}
