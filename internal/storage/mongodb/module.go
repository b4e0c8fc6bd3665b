package mongodb

import (
	"context"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// Module wires MongoDB storage as the repository factory.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.ShipmentRepository { return s.Shipments() },
		func(s *Storage) repository.BidRepository { return s.Bids() },
		func(s *Storage) repository.RegistrationRepository { return s.Registrations() },
		func(s *Storage) repository.NotificationRepository { return s.Notifications() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
}

func newStorage(p storageParams) (*Storage, error) {
	return NewStorage(p.Ctx, p.Config.MongoURI, p.Config.MongoDatabase)
}

func registerLifecycle(lc fx.Lifecycle, s *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close(ctx)
		},
	})
}
