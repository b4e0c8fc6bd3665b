package model

import "time"

// Bid is a carrier's offer on a shipment. Bids are immutable once created.
type Bid struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ShipmentID  string    `bson:"shipmentId" json:"shipmentId"`
	CarrierID   string    `bson:"carrierId" json:"carrierId"`
	CarrierName string    `bson:"carrierName" json:"carrierName"`
	BidAmount   float64   `bson:"bidAmount" json:"bidAmount"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
