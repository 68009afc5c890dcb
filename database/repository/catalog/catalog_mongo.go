package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"autolot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoCatalogRepo) GetDetails(ctx context.Context) ([]models.Detail, error) {
	cursor, err := r.details.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve details: %w", err)
	}
	defer cursor.Close(ctx)

	var details []models.Detail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("failed to decode details: %w", err)
	}
	return details, nil
}

func (r *MongoCatalogRepo) GetOptions(ctx context.Context) ([]models.Option, error) {
	cursor, err := r.options.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve options: %w", err)
	}
	defer cursor.Close(ctx)

	var options []models.Option
	if err := cursor.All(ctx, &options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return options, nil
}

func (r *MongoCatalogRepo) GetFeatures(ctx context.Context) ([]models.Feature, error) {
	cursor, err := r.features.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve features: %w", err)
	}
	defer cursor.Close(ctx)

	var features []models.Feature
	if err := cursor.All(ctx, &features); err != nil {
		return nil, fmt.Errorf("failed to decode features: %w", err)
	}
	return features, nil
}

// GetOrdering returns the display ordering for the named entity class, or
// nil when none has been persisted. Orderings are externally maintained and
// consulted read-only.
func (r *MongoCatalogRepo) GetOrdering(ctx context.Context, name string) (*models.Ordering, error) {
	var ordering models.Ordering
	err := r.orderings.FindOne(ctx, bson.M{"name": name}).Decode(&ordering)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ordering %s: %w", name, err)
	}
	return &ordering, nil
}

func (r *MongoCatalogRepo) CountDetailsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return countByIDs(ctx, r.details, ids)
}

func (r *MongoCatalogRepo) CountOptionsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return countByIDs(ctx, r.options, ids)
}

func (r *MongoCatalogRepo) CountFeaturesByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return countByIDs(ctx, r.features, ids)
}

func countByIDs(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	count, err := coll.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s by ids: %w", coll.Name(), err)
	}
	return count, nil
}
