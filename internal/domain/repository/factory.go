package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Shipments() ShipmentRepository
	Bids() BidRepository
	Registrations() RegistrationRepository
	Notifications() NotificationRepository
}
