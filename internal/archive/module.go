package archive

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/config"
)

// Module wires the PostgreSQL event archive.
var Module = fx.Options(
	fx.Provide(newArchive),
	fx.Invoke(registerLifecycle),
)

type archiveParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newArchive(p archiveParams) (*Archive, error) {
	return New(p.Ctx, p.Config.ArchiveDSN, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, events bus.EventBus, archive *Archive) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := events.SubscribeShipmentWrites(archive.OnShipmentWrite); err != nil {
				return err
			}
			return events.SubscribeBidCreates(archive.OnBidCreate)
		},
		OnStop: func(context.Context) error {
			archive.Close()
			return nil
		},
	})
}
