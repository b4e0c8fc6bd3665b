package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/test"
	"github.com/cargoflow/cargoflow/internal/usecase"
)

type facadeAdapter struct {
	repo *test.ShipmentRepositoryStub
	uc   *usecase.ShipmentUseCase
}

func (f *facadeAdapter) ShipmentsDueForGoLive(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	return f.repo.ListDueForGoLive(ctx, now, limit)
}

func (f *facadeAdapter) ShipmentsDueForReview(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	return f.repo.ListDueForReview(ctx, now, limit)
}

func (f *facadeAdapter) MarkShipmentLive(ctx context.Context, id string, closeAt *time.Time) (*model.Shipment, error) {
	return f.uc.MarkLive(ctx, id, closeAt)
}

func (f *facadeAdapter) MarkShipmentReviewing(ctx context.Context, id string) (*model.Shipment, error) {
	return f.uc.MarkReviewing(ctx, id)
}

func newSweeperFixture(batchLimit int64) (*Sweeper, *test.ShipmentRepositoryStub, *test.Clock) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := test.NewShipmentRepositoryStub()
	events := &test.BusStub{}
	uc := usecase.NewShipmentUseCase(repo, events, logger)
	clock := test.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	sweeper := NewSweeper(&facadeAdapter{repo: repo, uc: uc}, time.Minute, batchLimit, logger)
	sweeper.now = clock.Now
	return sweeper, repo, clock
}

func TestSweeperMovesDueScheduledToLive(t *testing.T) {
	sweeper, repo, clock := newSweeperFixture(500)
	due := repo.Seed(test.ScheduledShipment(clock.Now().Add(-time.Minute)))
	future := repo.Seed(test.ScheduledShipment(clock.Now().Add(time.Hour)))

	sweeper.Sweep(context.Background())

	got, _ := repo.Get(context.Background(), due.ID)
	if got.Status != model.ShipmentStatusLive {
		t.Fatalf("expected due shipment live, got %s", got.Status)
	}
	if got.BiddingCloseAt != nil && !got.BiddingCloseAt.Equal(*due.BiddingCloseAt) {
		t.Fatal("sweeper must not rewrite biddingCloseAt")
	}

	untouched, _ := repo.Get(context.Background(), future.ID)
	if untouched.Status != model.ShipmentStatusScheduled {
		t.Fatalf("future shipment must stay scheduled, got %s", untouched.Status)
	}
}

func TestSweeperMovesExpiredLiveToReviewing(t *testing.T) {
	sweeper, repo, clock := newSweeperFixture(500)
	expired := repo.Seed(test.LiveShipment(clock.Now().Add(-time.Second)))
	open := repo.Seed(test.LiveShipment(clock.Now().Add(2 * time.Minute)))

	sweeper.Sweep(context.Background())

	got, _ := repo.Get(context.Background(), expired.ID)
	if got.Status != model.ShipmentStatusReviewing {
		t.Fatalf("expected expired shipment reviewing, got %s", got.Status)
	}
	stillOpen, _ := repo.Get(context.Background(), open.ID)
	if stillOpen.Status != model.ShipmentStatusLive {
		t.Fatalf("open shipment must stay live, got %s", stillOpen.Status)
	}
}

func TestSweeperConvergesAcrossBatches(t *testing.T) {
	sweeper, repo, clock := newSweeperFixture(2)
	for i := 0; i < 3; i++ {
		repo.Seed(test.ScheduledShipment(clock.Now().Add(-time.Minute)))
	}

	sweeper.Sweep(context.Background())
	remaining, _ := repo.ListDueForGoLive(context.Background(), clock.Now(), 500)
	if len(remaining) != 1 {
		t.Fatalf("expected one shipment left after capped sweep, got %d", len(remaining))
	}

	sweeper.Sweep(context.Background())
	remaining, _ = repo.ListDueForGoLive(context.Background(), clock.Now(), 500)
	if len(remaining) != 0 {
		t.Fatalf("expected convergence on the next tick, got %d left", len(remaining))
	}
}

func TestSweeperTicksInBackground(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := test.NewShipmentRepositoryStub()
	uc := usecase.NewShipmentUseCase(repo, &test.BusStub{}, logger)
	due := repo.Seed(test.ScheduledShipment(time.Now().Add(-time.Minute)))

	sweeper := NewSweeper(&facadeAdapter{repo: repo, uc: uc}, 5*time.Millisecond, 500, logger)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		got, _ := repo.Get(context.Background(), due.ID)
		if got.Status == model.ShipmentStatusLive {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("sweeper did not repair the missed go-live in time")
}
