package model

import "time"

// ShipmentStatus describes the bidding lifecycle of a shipment.
type ShipmentStatus string

const (
	ShipmentStatusDraft     ShipmentStatus = "draft"
	ShipmentStatusScheduled ShipmentStatus = "scheduled"
	ShipmentStatusLive      ShipmentStatus = "live"
	ShipmentStatusReviewing ShipmentStatus = "reviewing"
	ShipmentStatusAwarded   ShipmentStatus = "awarded"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusDraft, ShipmentStatusScheduled, ShipmentStatusLive,
		ShipmentStatusReviewing, ShipmentStatusAwarded, ShipmentStatusDelivered:
		return true
	}
	return false
}

// Shipment is the primary tradable unit: a freight job posted by an exporter
// and opened to carrier bidding for a bounded window.
type Shipment struct {
	ID                 string         `bson:"_id,omitempty" json:"id"`
	PublicID           string         `bson:"publicId" json:"publicId"`
	ExporterID         string         `bson:"exporterId" json:"exporterId"`
	ExporterName       string         `bson:"exporterName" json:"exporterName"`
	Status             ShipmentStatus `bson:"status" json:"status"`
	ProductName        string         `bson:"productName" json:"productName"`
	CargoType          string         `bson:"cargoType" json:"cargoType"`
	Origin             string         `bson:"origin" json:"origin"`
	Destination        string         `bson:"destination" json:"destination"`
	CargoReadyDate     *time.Time     `bson:"cargoReadyDate,omitempty" json:"cargoReadyDate,omitempty"`
	GoLiveAt           *time.Time     `bson:"goLiveAt,omitempty" json:"goLiveAt,omitempty"`
	BiddingCloseAt     *time.Time     `bson:"biddingCloseAt,omitempty" json:"biddingCloseAt,omitempty"`
	GoLiveTaskName     string         `bson:"goLiveTaskName,omitempty" json:"-"`
	WinningCarrierID   string         `bson:"winningCarrierId,omitempty" json:"winningCarrierId,omitempty"`
	WinningCarrierName string         `bson:"winningCarrierName,omitempty" json:"winningCarrierName,omitempty"`
	WinningBidID       string         `bson:"winningBidId,omitempty" json:"winningBidId,omitempty"`
	WinningBidAmount   float64        `bson:"winningBidAmount,omitempty" json:"winningBidAmount,omitempty"`
	CreatedAt          time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Clone returns a deep copy so document snapshots shared through events
// cannot be mutated by later writes.
func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	out := *s
	out.CargoReadyDate = cloneTime(s.CargoReadyDate)
	out.GoLiveAt = cloneTime(s.GoLiveAt)
	out.BiddingCloseAt = cloneTime(s.BiddingCloseAt)
	return &out
}

// GoLiveChangedFrom reports whether the go-live time differs from the one on
// the previous document snapshot. A snapshot without a go-live time never
// counts as a change origin.
func (s *Shipment) GoLiveChangedFrom(before *Shipment) bool {
	if s == nil || s.GoLiveAt == nil {
		return false
	}
	if before == nil || before.GoLiveAt == nil {
		return false
	}
	return !before.GoLiveAt.Equal(*s.GoLiveAt)
}

// ShipmentDraft carries the exporter-owned fields of a shipment: everything
// the exporter writes through the dashboard. Lifecycle bookkeeping fields
// (biddingCloseAt, goLiveTaskName, winner data) never travel through it.
type ShipmentDraft struct {
	ExporterID     string
	ExporterName   string
	Status         ShipmentStatus
	ProductName    string
	CargoType      string
	Origin         string
	Destination    string
	CargoReadyDate *time.Time
	GoLiveAt       *time.Time
}

// WinningBid identifies the carrier and bid an exporter awarded.
type WinningBid struct {
	CarrierID   string
	CarrierName string
	BidID       string
	Amount      float64
}

// StatusTransition describes a conditional lifecycle move. The write applies
// only while the shipment still holds From.
type StatusTransition struct {
	From           ShipmentStatus
	To             ShipmentStatus
	BiddingCloseAt *time.Time
	Winner         *WinningBid
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
