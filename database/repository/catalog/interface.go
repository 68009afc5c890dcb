package catalogRepo

import (
	"context"

	"autolot/database"
	"autolot/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository reads the immutable reference data that listings point
// at: detail facets, their options, feature tags and display orderings.
type CatalogRepository interface {
	GetDetails(ctx context.Context) ([]models.Detail, error)
	GetOptions(ctx context.Context) ([]models.Option, error)
	GetFeatures(ctx context.Context) ([]models.Feature, error)
	GetOrdering(ctx context.Context, name string) (*models.Ordering, error)
	CountDetailsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountOptionsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountFeaturesByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	details   *mongo.Collection
	options   *mongo.Collection
	features  *mongo.Collection
	orderings *mongo.Collection
}

// NewMongoCatalogRepo returns a new CatalogRepository instance using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("autolot")
	return &MongoCatalogRepo{
		details:   db.Collection("details"),
		options:   db.Collection("options"),
		features:  db.Collection("features"),
		orderings: db.Collection("orderings"),
	}
}
