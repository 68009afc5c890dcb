package listingRepo

import (
	"context"
	"fmt"
	"time"

	"autolot/database"
	"autolot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongoListingRepo creates a new ListingRepository instance using MongoDB.
func NewMongoListingRepo() ListingRepository {
	coll := database.MongoClient.Database("autolot").Collection("listings")
	repo := &MongoListingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new listing and stamps its ID and timestamps.
func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// Replace overwrites a listing wholesale. Listings are never patched in
// place, only replaced.
func (r *MongoListingRepo) Replace(ctx context.Context, id primitive.ObjectID, listing *models.Listing) error {
	listing.ID = id
	listing.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, listing)
	if err != nil {
		return fmt.Errorf("failed to replace listing %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a single listing with its detail, option and feature
// references resolved, using the same lookup stages as Search.
func (r *MongoListingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ResolvedListing, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, resolveReferenceStages()...)
	pipeline = append(pipeline, dropScratchStage())

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing %s: %w", id.Hex(), err)
	}
	defer cursor.Close(ctx)

	var listings []models.ResolvedListing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	if len(listings) == 0 {
		return nil, ErrNotFound
	}
	return &listings[0], nil
}

// FindByPage returns resolved listings pinned to a UI page, newest first.
func (r *MongoListingRepo) FindByPage(ctx context.Context, page string, limit int64) ([]models.ResolvedListing, error) {
	if limit <= 0 {
		limit = 20
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"pages": page}}},
	}
	pipeline = append(pipeline, resolveReferenceStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		dropScratchStage(),
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings for page %s: %w", page, err)
	}
	defer cursor.Close(ctx)

	var listings []models.ResolvedListing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}
