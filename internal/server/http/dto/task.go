package dto

// TaskCallbackRequest is the payload delivered by the task queue dispatcher.
type TaskCallbackRequest struct {
	ShipmentID string `json:"shipmentId"`
}
