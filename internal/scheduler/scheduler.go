package scheduler

import (
	"context"
	"time"
)

// Task describes a single deferred HTTP callback.
type Task struct {
	Name       string    `json:"name"`
	TargetURL  string    `json:"targetUrl"`
	Payload    []byte    `json:"payload"`
	ScheduleAt time.Time `json:"scheduleAt"`
}

// Scheduler is the deferred task queue capability: enqueue one future HTTP
// callback, cancel it by handle. Delivery is at-least-once; callers are
// expected to keep their callback endpoints idempotent.
type Scheduler interface {
	// Enqueue stores the task and returns its opaque handle.
	Enqueue(ctx context.Context, task Task) (string, error)
	// Cancel removes a pending task. Returns ErrTaskNotFound when the task
	// already fired or was cancelled before.
	Cancel(ctx context.Context, name string) error
}

// TaskSource yields tasks that have come due, removing them from the pending
// set so no other dispatcher delivers them.
type TaskSource interface {
	ClaimDue(ctx context.Context, now time.Time, limit int64) ([]Task, error)
}
