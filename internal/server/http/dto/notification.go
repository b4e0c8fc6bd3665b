package dto

import "time"

// NotificationResponse describes one inbox entry.
type NotificationResponse struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	Message     string    `json:"message"`
	Link        string    `json:"link"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}
