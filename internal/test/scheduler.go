package test

import (
	"context"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/scheduler"
)

// Clock is a manually advanceable time source for deterministic tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock constructs a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// SchedulerStub is an in-memory deferred task queue. Tests enqueue through
// the production code path and then drain due tasks against the stub clock.
type SchedulerStub struct {
	mu      sync.Mutex
	Pending map[string]scheduler.Task
	next    int

	Enqueued  []scheduler.Task
	Cancelled []string

	EnqueueErr error
	CancelErr  error
}

// NewSchedulerStub constructs a stub with an initialized pending set.
func NewSchedulerStub() *SchedulerStub {
	return &SchedulerStub{Pending: make(map[string]scheduler.Task)}
}

// Enqueue assigns a handle and records the task.
func (s *SchedulerStub) Enqueue(ctx context.Context, task scheduler.Task) (string, error) {
	if s.EnqueueErr != nil {
		return "", s.EnqueueErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	task.Name = "task-" + strconv.Itoa(s.next)
	s.Pending[task.Name] = task
	s.Enqueued = append(s.Enqueued, task)
	return task.Name, nil
}

// Cancel removes a pending task; ErrTaskNotFound when it is not pending.
func (s *SchedulerStub) Cancel(ctx context.Context, name string) error {
	if s.CancelErr != nil {
		return s.CancelErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancelled = append(s.Cancelled, name)
	if _, ok := s.Pending[name]; !ok {
		return domainErrors.ErrTaskNotFound
	}
	delete(s.Pending, name)
	return nil
}

// DueTasks removes and returns tasks whose schedule time has passed.
func (s *SchedulerStub) DueTasks(now time.Time) []scheduler.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []scheduler.Task
	for name, task := range s.Pending {
		if task.ScheduleAt.After(now) {
			continue
		}
		due = append(due, task)
		delete(s.Pending, name)
	}
	return due
}

// PendingCount reports how many tasks remain scheduled.
func (s *SchedulerStub) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Pending)
}

var _ scheduler.Scheduler = (*SchedulerStub)(nil)
