package repository

import (
	"context"
	"fmt"

	"github.com/fjod/swiftrail/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tripsCollection = "trips"

type mongoTripRepository struct {
	collection *mongo.Collection
}

func NewTripRepository(db *mongo.Database) TripRepository {
	return &mongoTripRepository{
		collection: db.Collection(tripsCollection),
	}
}

func routeFilter(departure, arrival, date string) bson.M {
	return bson.M{"departure": departure, "arrival": arrival, "date": date}
}

func (m *mongoTripRepository) FindTrips(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}, {Key: "time", Value: 1}})

	cursor, err := m.collection.Find(ctx, routeFilter(departure, arrival, date), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []domain.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

func (m *mongoTripRepository) CountTrips(ctx context.Context, departure, arrival, date string) (int64, error) {
	n, err := m.collection.CountDocuments(ctx, routeFilter(departure, arrival, date))
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return n, nil
}

func (m *mongoTripRepository) InsertTrips(ctx context.Context, trips []domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	docs := make([]interface{}, len(trips))
	for i := range trips {
		docs[i] = trips[i]
	}

	if _, err := m.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert trips: %w", err)
	}
	return nil
}

func (m *mongoTripRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "departure", Value: 1}, {Key: "arrival", Value: 1}, {Key: "date", Value: 1}, {Key: "price", Value: 1}}},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create trip indexes: %w", err)
	}
	return nil
}
