package di

import (
	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/app"
	"github.com/cargoflow/cargoflow/internal/archive"
	"github.com/cargoflow/cargoflow/internal/broadcast"
	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/lifecycle"
	"github.com/cargoflow/cargoflow/internal/logger"
	"github.com/cargoflow/cargoflow/internal/pkg/identity"
	"github.com/cargoflow/cargoflow/internal/scheduler"
	"github.com/cargoflow/cargoflow/internal/server/http/handlers"
	"github.com/cargoflow/cargoflow/internal/server/http/middleware"
	"github.com/cargoflow/cargoflow/internal/server/http/router"
	"github.com/cargoflow/cargoflow/internal/storage/mongodb"
	"github.com/cargoflow/cargoflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		identity.Module,
		mongodb.Module,
		bus.Module,
		scheduler.Module,
		usecase.Module,
		lifecycle.Module,
		archive.Module,
		broadcast.Module,
		fx.Provide(func(f *app.CargoFacade) handlers.MarketplaceFacade { return f }),
		fx.Provide(func(s *identity.Signer) middleware.TokenVerifier { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
