package dto

import "time"

// PlaceBidRequest is a carrier's offer payload.
type PlaceBidRequest struct {
	CarrierID   string  `json:"carrierId"`
	CarrierName string  `json:"carrierName"`
	BidAmount   float64 `json:"bidAmount"`
}

// BidResponse describes a stored bid.
type BidResponse struct {
	ID          string    `json:"id"`
	ShipmentID  string    `json:"shipmentId"`
	CarrierID   string    `json:"carrierId"`
	CarrierName string    `json:"carrierName"`
	BidAmount   float64   `json:"bidAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}
