package dto

import "time"

// RegisterRequest records a carrier's interest in a shipment.
type RegisterRequest struct {
	CarrierID  string `json:"carrierId"`
	PaymentRef string `json:"paymentRef,omitempty"`
}

// RegistrationResponse describes a stored registration.
type RegistrationResponse struct {
	ShipmentID   string    `json:"shipmentId"`
	CarrierID    string    `json:"carrierId"`
	PaymentRef   string    `json:"paymentRef,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}
