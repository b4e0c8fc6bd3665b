package dto

import "time"

// ShipmentRequest carries the exporter-editable fields for create and update.
type ShipmentRequest struct {
	ExporterID     string     `json:"exporterId"`
	ExporterName   string     `json:"exporterName"`
	Status         string     `json:"status"`
	ProductName    string     `json:"productName"`
	CargoType      string     `json:"cargoType"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	CargoReadyDate *time.Time `json:"cargoReadyDate,omitempty"`
	GoLiveAt       *time.Time `json:"goLiveAt,omitempty"`
}

// AwardRequest names the winning carrier and bid.
type AwardRequest struct {
	CarrierID   string  `json:"carrierId"`
	CarrierName string  `json:"carrierName"`
	BidID       string  `json:"bidId"`
	Amount      float64 `json:"amount"`
}

// ShipmentResponse describes a shipment as returned to dashboard clients.
type ShipmentResponse struct {
	ID                 string     `json:"id"`
	PublicID           string     `json:"publicId"`
	ExporterID         string     `json:"exporterId"`
	ExporterName       string     `json:"exporterName"`
	Status             string     `json:"status"`
	ProductName        string     `json:"productName"`
	CargoType          string     `json:"cargoType"`
	Origin             string     `json:"origin"`
	Destination        string     `json:"destination"`
	CargoReadyDate     *time.Time `json:"cargoReadyDate,omitempty"`
	GoLiveAt           *time.Time `json:"goLiveAt,omitempty"`
	BiddingCloseAt     *time.Time `json:"biddingCloseAt,omitempty"`
	WinningCarrierID   string     `json:"winningCarrierId,omitempty"`
	WinningCarrierName string     `json:"winningCarrierName,omitempty"`
	WinningBidID       string     `json:"winningBidId,omitempty"`
	WinningBidAmount   float64    `json:"winningBidAmount,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
