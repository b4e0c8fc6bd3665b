package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
)

type registrationRepository struct {
	collection *mongo.Collection
}

func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	stored := *reg
	if stored.RegisteredAt.IsZero() {
		stored.RegisteredAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, stored)
	if mongo.IsDuplicateKeyError(err) {
		return domainErrors.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) Get(ctx context.Context, shipmentID, carrierID string) (*model.Registration, error) {
	var reg model.Registration
	err := r.collection.FindOne(ctx, bson.M{
		"shipmentId": shipmentID,
		"carrierId":  carrierID,
	}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepository) ListByShipment(ctx context.Context, shipmentID string) ([]model.Registration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"shipmentId": shipmentID})
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []model.Registration
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return registrations, nil
}
