package model

import "time"

// Notification is an append-only message for a single recipient. The core
// only ever creates notifications; reading and marking them is dashboard
// territory.
type Notification struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	RecipientID string    `bson:"recipientId" json:"recipientId"`
	Message     string    `bson:"message" json:"message"`
	Link        string    `bson:"link" json:"link"`
	IsRead      bool      `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
