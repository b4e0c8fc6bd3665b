package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
)

type shipmentRepository struct {
	collection *mongo.Collection
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	stored := shipment.Clone()
	stored.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert shipment: %w", err)
	}
	return stored, nil
}

func (r *shipmentRepository) Get(ctx context.Context, id string) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shipment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find shipment: %w", err)
	}
	return &shipment, nil
}

func (r *shipmentRepository) GetByPublicID(ctx context.Context, publicID string) (*model.Shipment, error) {
	var shipment model.Shipment
	err := r.collection.FindOne(ctx, bson.M{"publicId": publicID}).Decode(&shipment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find shipment by public id: %w", err)
	}
	return &shipment, nil
}

func (r *shipmentRepository) ListByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error) {
	return r.list(ctx, bson.M{"exporterId": exporterID}, nil)
}

func (r *shipmentRepository) ListByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error) {
	return r.list(ctx, bson.M{"status": status}, nil)
}

func (r *shipmentRepository) Update(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, *model.Shipment, error) {
	now := time.Now().UTC()
	set := bson.M{
		"exporterId":   draft.ExporterID,
		"exporterName": draft.ExporterName,
		"status":       draft.Status,
		"productName":  draft.ProductName,
		"cargoType":    draft.CargoType,
		"origin":       draft.Origin,
		"destination":  draft.Destination,
		"updatedAt":    now,
	}
	update := bson.M{"$set": set}
	unset := bson.M{}
	if draft.CargoReadyDate != nil {
		set["cargoReadyDate"] = *draft.CargoReadyDate
	} else {
		unset["cargoReadyDate"] = ""
	}
	if draft.GoLiveAt != nil {
		set["goLiveAt"] = *draft.GoLiveAt
	} else {
		unset["goLiveAt"] = ""
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var before model.Shipment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("update shipment: %w", err)
	}

	after := before.Clone()
	after.ExporterID = draft.ExporterID
	after.ExporterName = draft.ExporterName
	after.Status = draft.Status
	after.ProductName = draft.ProductName
	after.CargoType = draft.CargoType
	after.Origin = draft.Origin
	after.Destination = draft.Destination
	after.CargoReadyDate = draft.CargoReadyDate
	after.GoLiveAt = draft.GoLiveAt
	after.UpdatedAt = now
	return &before, after, nil
}

func (r *shipmentRepository) Transition(ctx context.Context, id string, transition model.StatusTransition) (*model.Shipment, *model.Shipment, error) {
	now := time.Now().UTC()
	set := bson.M{
		"status":    transition.To,
		"updatedAt": now,
	}
	if transition.BiddingCloseAt != nil {
		set["biddingCloseAt"] = *transition.BiddingCloseAt
	}
	if transition.Winner != nil {
		set["winningCarrierId"] = transition.Winner.CarrierID
		set["winningCarrierName"] = transition.Winner.CarrierName
		set["winningBidId"] = transition.Winner.BidID
		set["winningBidAmount"] = transition.Winner.Amount
	}

	filter := bson.M{"_id": id, "status": transition.From}
	var before model.Shipment
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the document is gone or it moved to another status first.
		if _, getErr := r.Get(ctx, id); errors.Is(getErr, domainErrors.ErrNotFound) {
			return nil, nil, domainErrors.ErrNotFound
		}
		return nil, nil, domainErrors.ErrInvalidStatus
	}
	if err != nil {
		return nil, nil, fmt.Errorf("transition shipment: %w", err)
	}

	after := before.Clone()
	after.Status = transition.To
	after.UpdatedAt = now
	if transition.BiddingCloseAt != nil {
		at := *transition.BiddingCloseAt
		after.BiddingCloseAt = &at
	}
	if transition.Winner != nil {
		after.WinningCarrierID = transition.Winner.CarrierID
		after.WinningCarrierName = transition.Winner.CarrierName
		after.WinningBidID = transition.Winner.BidID
		after.WinningBidAmount = transition.Winner.Amount
	}
	return &before, after, nil
}

func (r *shipmentRepository) Delete(ctx context.Context, id string) (*model.Shipment, error) {
	var before model.Shipment
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete shipment: %w", err)
	}
	return &before, nil
}

func (r *shipmentRepository) SetBiddingCloseAt(ctx context.Context, id string, at time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"biddingCloseAt": at}})
	if err != nil {
		return fmt.Errorf("set bidding close: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *shipmentRepository) SetGoLiveTask(ctx context.Context, id string, taskName string) error {
	update := bson.M{"$set": bson.M{"goLiveTaskName": taskName}}
	if taskName == "" {
		update = bson.M{"$unset": bson.M{"goLiveTaskName": ""}}
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set go-live task: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *shipmentRepository) ListDueForGoLive(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	filter := bson.M{
		"status":   model.ShipmentStatusScheduled,
		"goLiveAt": bson.M{"$lte": now},
	}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "goLiveAt", Value: 1}})
	return r.list(ctx, filter, opts)
}

func (r *shipmentRepository) ListDueForReview(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	filter := bson.M{
		"status":         model.ShipmentStatusLive,
		"biddingCloseAt": bson.M{"$lte": now},
	}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "biddingCloseAt", Value: 1}})
	return r.list(ctx, filter, opts)
}

func (r *shipmentRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Shipment, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer cursor.Close(ctx)

	var shipments []model.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, fmt.Errorf("decode shipments: %w", err)
	}
	return shipments, nil
}
