package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

// pool is the subset of pgxpool.Pool the archive uses, narrow enough to
// swap in a mock for tests.
type pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// Transition is one archived lifecycle move of a shipment.
type Transition struct {
	ShipmentID string    `json:"shipmentId"`
	PublicID   string    `json:"publicId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ArchivedBid is one archived bid record.
type ArchivedBid struct {
	BidID       string    `json:"bidId"`
	ShipmentID  string    `json:"shipmentId"`
	CarrierID   string    `json:"carrierId"`
	CarrierName string    `json:"carrierName"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Archive appends lifecycle transitions and bids to PostgreSQL. It consumes
// bus events best-effort; a lost row never affects the marketplace path.
type Archive struct {
	pool   pool
	logger *slog.Logger
}

// New connects to PostgreSQL and initializes the archive schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Archive, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse archive dsn: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect archive db: %w", err)
	}

	archive := &Archive{pool: p, logger: logger}
	if err := archive.initSchema(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return archive, nil
}

// Close releases database resources.
func (a *Archive) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *Archive) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS shipment_transitions (
            id SERIAL PRIMARY KEY,
            shipment_id TEXT NOT NULL,
            public_id TEXT NOT NULL,
            from_status TEXT NOT NULL,
            to_status TEXT NOT NULL,
            occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS archived_bids (
            id SERIAL PRIMARY KEY,
            bid_id TEXT NOT NULL,
            shipment_id TEXT NOT NULL,
            carrier_id TEXT NOT NULL,
            carrier_name TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_shipment ON shipment_transitions(shipment_id, occurred_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_archived_bids_shipment ON archived_bids(shipment_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := a.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init archive schema: %w", err)
		}
	}
	return nil
}

// OnShipmentWrite archives the status move carried by one write event.
// Writes that do not change status produce no row.
func (a *Archive) OnShipmentWrite(ctx context.Context, event model.ShipmentEvent) {
	var fromStatus, toStatus string
	var publicID string

	switch {
	case event.Before == nil && event.After != nil:
		toStatus = string(event.After.Status)
		publicID = event.After.PublicID
	case event.Before != nil && event.After == nil:
		fromStatus = string(event.Before.Status)
		toStatus = "deleted"
		publicID = event.Before.PublicID
	case event.Before != nil && event.After != nil:
		if event.Before.Status == event.After.Status {
			return
		}
		fromStatus = string(event.Before.Status)
		toStatus = string(event.After.Status)
		publicID = event.After.PublicID
	default:
		return
	}

	const query = `INSERT INTO shipment_transitions (shipment_id, public_id, from_status, to_status)
        VALUES ($1, $2, $3, $4)`
	if _, err := a.pool.Exec(ctx, query, event.ShipmentID(), publicID, fromStatus, toStatus); err != nil {
		a.logger.Error("archive transition failed",
			slog.String("shipmentID", event.ShipmentID()),
			slog.String("error", err.Error()))
	}
}

// OnBidCreate archives one bid event.
func (a *Archive) OnBidCreate(ctx context.Context, event model.BidEvent) {
	const query = `INSERT INTO archived_bids (bid_id, shipment_id, carrier_id, carrier_name, amount, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	bid := event.Bid
	if _, err := a.pool.Exec(ctx, query, bid.ID, bid.ShipmentID, bid.CarrierID, bid.CarrierName, bid.BidAmount, bid.CreatedAt); err != nil {
		a.logger.Error("archive bid failed",
			slog.String("bidID", bid.ID),
			slog.String("error", err.Error()))
	}
}

// Transitions returns the archived lifecycle history of one shipment,
// newest first.
func (a *Archive) Transitions(ctx context.Context, shipmentID string) ([]Transition, error) {
	const query = `SELECT shipment_id, public_id, from_status, to_status, occurred_at
        FROM shipment_transitions WHERE shipment_id = $1 ORDER BY occurred_at DESC`
	rows, err := a.pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var transitions []Transition
	for rows.Next() {
		var t Transition
		if err := rows.Scan(&t.ShipmentID, &t.PublicID, &t.FromStatus, &t.ToStatus, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transitions: %w", err)
	}
	return transitions, nil
}

// Bids returns the archived bids of one shipment, newest first.
func (a *Archive) Bids(ctx context.Context, shipmentID string) ([]ArchivedBid, error) {
	const query = `SELECT bid_id, shipment_id, carrier_id, carrier_name, amount, created_at
        FROM archived_bids WHERE shipment_id = $1 ORDER BY created_at DESC`
	rows, err := a.pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("query archived bids: %w", err)
	}
	defer rows.Close()

	var bids []ArchivedBid
	for rows.Next() {
		var b ArchivedBid
		if err := rows.Scan(&b.BidID, &b.ShipmentID, &b.CarrierID, &b.CarrierName, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan archived bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archived bids: %w", err)
	}
	return bids, nil
}
