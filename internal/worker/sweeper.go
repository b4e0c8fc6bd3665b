package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// SweepFacade exposes the subset of application functionality required by the sweeper.
type SweepFacade interface {
	ShipmentsDueForGoLive(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error)
	ShipmentsDueForReview(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error)
	MarkShipmentLive(ctx context.Context, id string, closeAt *time.Time) (*model.Shipment, error)
	MarkShipmentReviewing(ctx context.Context, id string) (*model.Shipment, error)
}

// Sweeper is the fixed-interval safety net for the shipment state machine.
// Each tick it repairs missed go-live transitions (scheduled past goLiveAt)
// and missed bidding closes (live past biddingCloseAt). Transitions are
// status-only: biddingCloseAt recomputation and notification fan-out stay
// with the go-live callback path.
type Sweeper struct {
	facade     SweepFacade
	interval   time.Duration
	batchLimit int64
	logger     *slog.Logger
	now        func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the lifecycle sweeper.
func NewSweeper(facade SweepFacade, interval time.Duration, batchLimit int64, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchLimit <= 0 {
		batchLimit = 500
	}
	return &Sweeper{
		facade:     facade,
		interval:   interval,
		batchLimit: batchLimit,
		logger:     logger,
		now:        time.Now,
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs both repair passes once.
func (s *Sweeper) Sweep(ctx context.Context) {
	s.sweepGoLive(ctx)
	s.sweepReview(ctx)
}

func (s *Sweeper) sweepGoLive(ctx context.Context) {
	due, err := s.facade.ShipmentsDueForGoLive(ctx, s.now(), s.batchLimit)
	if err != nil {
		s.logger.Error("go-live sweep query failed", slog.String("error", err.Error()))
		return
	}

	for _, shipment := range due {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.facade.MarkShipmentLive(ctx, shipment.ID, nil); err != nil {
			if errors.Is(err, domainErrors.ErrInvalidStatus) || errors.Is(err, domainErrors.ErrNotFound) {
				continue
			}
			s.logger.Error("go-live sweep transition failed",
				slog.String("shipmentID", shipment.ID),
				slog.String("error", err.Error()))
		}
	}
}

func (s *Sweeper) sweepReview(ctx context.Context) {
	due, err := s.facade.ShipmentsDueForReview(ctx, s.now(), s.batchLimit)
	if err != nil {
		s.logger.Error("review sweep query failed", slog.String("error", err.Error()))
		return
	}

	for _, shipment := range due {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.facade.MarkShipmentReviewing(ctx, shipment.ID); err != nil {
			if errors.Is(err, domainErrors.ErrInvalidStatus) || errors.Is(err, domainErrors.ErrNotFound) {
				continue
			}
			s.logger.Error("review sweep transition failed",
				slog.String("shipmentID", shipment.ID),
				slog.String("error", err.Error()))
		}
	}
}
