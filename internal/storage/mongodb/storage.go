package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

const (
	collectionShipments     = "shipments"
	collectionBids          = "bids"
	collectionRegistrations = "registrations"
	collectionNotifications = "notifications"

	connectTimeout = 10 * time.Second
)

// Storage provides repositories backed by a MongoDB database.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database

	shipments     *shipmentRepository
	bids          *bidRepository
	registrations *registrationRepository
	notifications *notificationRepository
}

// NewStorage connects to MongoDB, verifies connectivity and prepares the
// collection indexes.
func NewStorage(ctx context.Context, uri, database string) (*Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	storage := &Storage{
		client:        client,
		db:            db,
		shipments:     &shipmentRepository{collection: db.Collection(collectionShipments)},
		bids:          &bidRepository{collection: db.Collection(collectionBids)},
		registrations: &registrationRepository{collection: db.Collection(collectionRegistrations)},
		notifications: &notificationRepository{collection: db.Collection(collectionNotifications)},
	}
	if err := storage.ensureIndexes(connectCtx); err != nil {
		return nil, err
	}
	return storage, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	shipmentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "publicId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "goLiveAt", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "biddingCloseAt", Value: 1}}},
	}
	if _, err := s.db.Collection(collectionShipments).Indexes().CreateMany(ctx, shipmentIndexes); err != nil {
		return fmt.Errorf("create shipment indexes: %w", err)
	}

	registrationIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "shipmentId", Value: 1}, {Key: "carrierId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection(collectionRegistrations).Indexes().CreateOne(ctx, registrationIndex); err != nil {
		return fmt.Errorf("create registration index: %w", err)
	}

	bidIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "shipmentId", Value: 1}, {Key: "carrierId", Value: 1}},
	}
	if _, err := s.db.Collection(collectionBids).Indexes().CreateOne(ctx, bidIndex); err != nil {
		return fmt.Errorf("create bid index: %w", err)
	}

	notificationIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	if _, err := s.db.Collection(collectionNotifications).Indexes().CreateOne(ctx, notificationIndex); err != nil {
		return fmt.Errorf("create notification index: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Shipments returns the shipment repository.
func (s *Storage) Shipments() repository.ShipmentRepository { return s.shipments }

// Bids returns the bid repository.
func (s *Storage) Bids() repository.BidRepository { return s.bids }

// Registrations returns the registration repository.
func (s *Storage) Registrations() repository.RegistrationRepository { return s.registrations }

// Notifications returns the notification repository.
func (s *Storage) Notifications() repository.NotificationRepository { return s.notifications }

var _ repository.Factory = (*Storage)(nil)
