package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/app"
	"github.com/cargoflow/cargoflow/internal/archive"
	"github.com/cargoflow/cargoflow/internal/broadcast"
	"github.com/cargoflow/cargoflow/internal/bus"
	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
	"github.com/cargoflow/cargoflow/internal/scheduler"
	"github.com/cargoflow/cargoflow/internal/storage/mongodb"
	"github.com/cargoflow/cargoflow/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:            ":0",
		MongoURI:              "mongodb://stub",
		RedisAddr:             "localhost:0",
		NatsURL:               "nats://stub",
		ArchiveDSN:            "postgres://stub",
		CallbackBaseURL:       "https://core.example.com",
		ServiceTokenSecret:    "secret",
		ServiceTokenTTL:       time.Minute,
		BiddingWindow:         3 * time.Minute,
		SweepInterval:         time.Minute,
		SweepBatchLimit:       10,
		SchedulerPollInterval: time.Second,
		ShutdownTimeout:       time.Millisecond,
		MaxBidsPerCarrier:     3,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	factory := test.NewFactoryStub()

	var facade *app.CargoFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&mongodb.Storage{}),
			fx.Replace(repository.Factory(factory)),
			fx.Replace(repository.ShipmentRepository(factory.ShipmentRepo)),
			fx.Replace(repository.BidRepository(factory.BidRepo)),
			fx.Replace(repository.RegistrationRepository(factory.RegistrationRepo)),
			fx.Replace(repository.NotificationRepository(factory.NotificationRepo)),
			fx.Replace(&bus.NATSBus{}),
			fx.Replace(bus.EventBus(&test.BusStub{})),
			fx.Replace(&scheduler.RedisQueue{}),
			fx.Replace(scheduler.Scheduler(test.NewSchedulerStub())),
			fx.Replace(&archive.Archive{}),
			fx.Replace(&broadcast.Publisher{}),
			fx.Replace(&broadcast.Subscriber{}),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected cargo facade instance")
	}
}
