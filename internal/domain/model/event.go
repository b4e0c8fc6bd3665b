package model

// ShipmentEvent is the before/after image pair of a single shipment write.
// A nil Before means the write created the document; a nil After means it
// deleted the document. Both nil never occurs for published events.
type ShipmentEvent struct {
	Before *Shipment `json:"before,omitempty"`
	After  *Shipment `json:"after,omitempty"`
}

// ShipmentID returns the document id regardless of which image is present.
func (e ShipmentEvent) ShipmentID() string {
	if e.After != nil {
		return e.After.ID
	}
	if e.Before != nil {
		return e.Before.ID
	}
	return ""
}

// BidEvent announces a newly created bid.
type BidEvent struct {
	Bid Bid `json:"bid"`
}
