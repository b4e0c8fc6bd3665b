package scheduler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// TokenIssuer signs a service identity token for one callback delivery.
type TokenIssuer interface {
	Issue() (string, error)
}

// Dispatcher polls the task source and delivers due tasks as authenticated
// HTTP POST callbacks. Delivery failures are logged and dropped: the
// lifecycle sweepers repair any transition a lost callback would have made.
type Dispatcher struct {
	source       TaskSource
	issuer       TokenIssuer
	pollInterval time.Duration
	claimLimit   int64
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the callback dispatcher.
func NewDispatcher(source TaskSource, issuer TokenIssuer, pollInterval time.Duration, logger *slog.Logger) *Dispatcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Dispatcher{
		source:       source,
		issuer:       issuer,
		pollInterval: pollInterval,
		claimLimit:   100,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		now:          time.Now,
	}
}

// Start launches background polling.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.loop(runCtx)
}

// Stop waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatchDue(ctx)
		}
	}
}

func (d *Dispatcher) dispatchDue(ctx context.Context) {
	tasks, err := d.source.ClaimDue(ctx, d.now(), d.claimLimit)
	if err != nil {
		d.logger.Error("claim due tasks failed", slog.String("error", err.Error()))
		return
	}

	for _, task := range tasks {
		if ctx.Err() != nil {
			return
		}
		d.deliver(ctx, task)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, task Task) {
	token, err := d.issuer.Issue()
	if err != nil {
		d.logger.Error("issue service token failed",
			slog.String("task", task.Name), slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, task.TargetURL, bytes.NewReader(task.Payload))
	if err != nil {
		d.logger.Error("build callback request failed",
			slog.String("task", task.Name), slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Error("callback delivery failed",
			slog.String("task", task.Name),
			slog.String("url", task.TargetURL),
			slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	if resp.StatusCode >= http.StatusBadRequest {
		d.logger.Error("callback rejected",
			slog.String("task", task.Name),
			slog.String("url", task.TargetURL),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return
	}

	d.logger.Info("task delivered",
		slog.String("task", task.Name),
		slog.Int("status", resp.StatusCode))
}
