package scheduler

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/config"
	"github.com/cargoflow/cargoflow/internal/pkg/identity"
)

// Module wires the Redis task queue and its callback dispatcher.
var Module = fx.Options(
	fx.Provide(newQueue),
	fx.Provide(func(q *RedisQueue) Scheduler { return q }),
	fx.Provide(newDispatcher),
	fx.Invoke(registerLifecycle),
)

type queueParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newQueue(p queueParams) (*RedisQueue, error) {
	return NewRedisQueue(p.Ctx, p.Config.RedisAddr, p.Config.RedisPassword, p.Config.RedisDB, p.Logger)
}

type dispatcherParams struct {
	fx.In

	Queue  *RedisQueue
	Signer *identity.Signer
	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Queue, p.Signer, p.Config.SchedulerPollInterval, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, queue *RedisQueue, dispatcher *Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			dispatcher.Stop()
			return queue.Close()
		},
	})
}
