package model

import "time"

// Registration records a carrier's paid interest in bidding on a shipment.
// One registration per carrier per shipment; the go-live notification fan-out
// is addressed from these records.
type Registration struct {
	ShipmentID   string    `bson:"shipmentId" json:"shipmentId"`
	CarrierID    string    `bson:"carrierId" json:"carrierId"`
	PaymentRef   string    `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`
}
