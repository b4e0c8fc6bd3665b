package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
)

const (
	pendingKey       = "tasks:pending"
	payloadKeyPrefix = "tasks:payload:"
)

// RedisQueue is a durable delayed task queue on Redis: a sorted set scored by
// due time plus one payload key per task.
type RedisQueue struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisQueue connects to Redis and verifies connectivity.
func NewRedisQueue(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisQueue{client: client, logger: logger}, nil
}

// Close releases the Redis connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Enqueue stores the task payload and schedules it in the pending set.
func (q *RedisQueue) Enqueue(ctx context.Context, task Task) (string, error) {
	task.Name = "task-" + uuid.NewString()

	encoded, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.Set(ctx, payloadKeyPrefix+task.Name, encoded, 0)
	pipe.ZAdd(ctx, pendingKey, redis.Z{
		Score:  float64(task.ScheduleAt.Unix()),
		Member: task.Name,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("enqueue task: %w", err)
	}

	return task.Name, nil
}

// Cancel removes a pending task by handle.
func (q *RedisQueue) Cancel(ctx context.Context, name string) error {
	removed, err := q.client.ZRem(ctx, pendingKey, name).Result()
	if err != nil {
		return fmt.Errorf("cancel task: %w", err)
	}
	if removed == 0 {
		return domainErrors.ErrTaskNotFound
	}
	if err := q.client.Del(ctx, payloadKeyPrefix+name).Err(); err != nil {
		q.logger.Warn("task payload cleanup failed",
			slog.String("task", name), slog.String("error", err.Error()))
	}
	return nil
}

// ClaimDue atomically removes tasks whose schedule time has passed and
// returns them for delivery. A task another dispatcher removed first is
// skipped silently.
func (q *RedisQueue) ClaimDue(ctx context.Context, now time.Time, limit int64) ([]Task, error) {
	names, err := q.client.ZRangeByScore(ctx, pendingKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}

	var claimed []Task
	for _, name := range names {
		removed, err := q.client.ZRem(ctx, pendingKey, name).Result()
		if err != nil {
			return claimed, fmt.Errorf("claim task %s: %w", name, err)
		}
		if removed == 0 {
			continue
		}

		payloadKey := payloadKeyPrefix + name
		encoded, err := q.client.Get(ctx, payloadKey).Bytes()
		if err != nil {
			q.logger.Error("claimed task without payload",
				slog.String("task", name), slog.String("error", err.Error()))
			continue
		}
		if err := q.client.Del(ctx, payloadKey).Err(); err != nil {
			q.logger.Warn("task payload cleanup failed",
				slog.String("task", name), slog.String("error", err.Error()))
		}

		var task Task
		if err := json.Unmarshal(encoded, &task); err != nil {
			q.logger.Error("undecodable task payload", slog.String("task", name))
			continue
		}
		claimed = append(claimed, task)
	}

	return claimed, nil
}
