package dto

import "time"

// TransitionResponse is one archived lifecycle move.
type TransitionResponse struct {
	ShipmentID string    `json:"shipmentId"`
	PublicID   string    `json:"publicId"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ArchivedBidResponse is one bid from the archive.
type ArchivedBidResponse struct {
	BidID       string    `json:"bidId"`
	ShipmentID  string    `json:"shipmentId"`
	CarrierID   string    `json:"carrierId"`
	CarrierName string    `json:"carrierName"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryResponse bundles the archived record of one shipment.
type HistoryResponse struct {
	Transitions []TransitionResponse  `json:"transitions"`
	Bids        []ArchivedBidResponse `json:"bids"`
}
