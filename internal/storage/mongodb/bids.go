package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

type bidRepository struct {
	collection *mongo.Collection
}

func (r *bidRepository) Create(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	stored := *bid
	stored.ID = primitive.NewObjectID().Hex()
	stored.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert bid: %w", err)
	}
	return &stored, nil
}

func (r *bidRepository) ListByShipment(ctx context.Context, shipmentID string) ([]model.Bid, error) {
	return r.list(ctx, bson.M{"shipmentId": shipmentID})
}

func (r *bidRepository) ListByCarrier(ctx context.Context, carrierID string) ([]model.Bid, error) {
	return r.list(ctx, bson.M{"carrierId": carrierID})
}

func (r *bidRepository) CountByCarrier(ctx context.Context, shipmentID, carrierID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"shipmentId": shipmentID,
		"carrierId":  carrierID,
	})
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return count, nil
}

func (r *bidRepository) list(ctx context.Context, filter bson.M) ([]model.Bid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer cursor.Close(ctx)

	var bids []model.Bid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return bids, nil
}
