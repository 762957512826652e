package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubscriptionRepository implements SubscriptionRepository
type MongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new MongoDB subscription repository
func NewMongoSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	collection := db.Collection("flight_subscriptions")

	ctx := context.Background()

	// Unique compound index on the composite primary key makes
	// re-subscribing an idempotent upsert instead of a duplicate row
	primaryIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "recipientId", Value: 1},
			{Key: "airline", Value: 1},
			{Key: "flightNumber", Value: 1},
			{Key: "flightDate", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, primaryIndex)

	// Index on the key components for recipient and grouping queries
	keyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "airline", Value: 1},
			{Key: "flightNumber", Value: 1},
			{Key: "flightDate", Value: 1},
		},
	}
	collection.Indexes().CreateOne(ctx, keyIndex)

	return &MongoSubscriptionRepository{
		collection: collection,
	}
}

func keyFilter(key entity.FlightKey) bson.M {
	return bson.M{
		"airline":      key.Airline,
		"flightNumber": key.FlightNumber,
		"flightDate":   key.FlightDate,
	}
}

func rowFilter(recipientID string, key entity.FlightKey) bson.M {
	filter := keyFilter(key)
	filter["recipientId"] = recipientID
	return filter
}

// Upsert creates or replaces a subscription by its composite primary key
func (r *MongoSubscriptionRepository) Upsert(ctx context.Context, sub *entity.Subscription) error {
	if err := sub.Key.Validate(); err != nil {
		return err
	}

	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, rowFilter(sub.RecipientID, sub.Key), update, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

// RecipientsFor returns every recipient subscribed to exactly that key
func (r *MongoSubscriptionRepository) RecipientsFor(ctx context.Context, key entity.FlightKey) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "recipientId", keyFilter(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	recipients := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			recipients = append(recipients, id)
		}
	}
	sort.Strings(recipients)
	return recipients, nil
}

// GroupedActive returns one group per distinct key with date >= asOf,
// ordered lexicographically by key components
func (r *MongoSubscriptionRepository) GroupedActive(ctx context.Context, asOf time.Time) ([]*entity.SubscriptionGroup, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"flightDate": bson.M{"$gte": asOf.Format(entity.DateLayout)},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"airline":      "$airline",
				"flightNumber": "$flightNumber",
				"flightDate":   "$flightDate",
			},
			"recipients": bson.M{"$addToSet": "$recipientId"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "_id.airline", Value: 1},
			{Key: "_id.flightNumber", Value: 1},
			{Key: "_id.flightDate", Value: 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			Airline      string `bson:"airline"`
			FlightNumber string `bson:"flightNumber"`
			FlightDate   string `bson:"flightDate"`
		} `bson:"_id"`
		Recipients []string `bson:"recipients"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	groups := make([]*entity.SubscriptionGroup, 0, len(rows))
	for _, row := range rows {
		// $addToSet order is unspecified; sort for deterministic output
		sort.Strings(row.Recipients)
		groups = append(groups, &entity.SubscriptionGroup{
			Key: entity.FlightKey{
				Airline:      row.ID.Airline,
				FlightNumber: row.ID.FlightNumber,
				FlightDate:   row.ID.FlightDate,
			},
			Recipients: row.Recipients,
		})
	}
	return groups, nil
}

// Delete removes one subscription row
func (r *MongoSubscriptionRepository) Delete(ctx context.Context, recipientID string, key entity.FlightKey) error {
	_, err := r.collection.DeleteOne(ctx, rowFilter(recipientID, key))
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}
