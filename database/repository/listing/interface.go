package listingRepo

import (
	"context"
	"errors"

	"autolot/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when the requested listing does not exist.
var ErrNotFound = errors.New("listing not found")

// DetailFilter keeps listings whose named detail carries one of the allowed
// option values. Values within one filter OR together; separate filters AND.
type DetailFilter struct {
	Name   string
	Values []string
}

// SortKey is one externally supplied sort field with its direction.
type SortKey struct {
	Field string
	Desc  bool
}

// SearchQuery is the strongly-typed filter a search request is parsed into
// before any pipeline is built. Degenerate entries (detail filters with no
// values) must be dropped by the caller.
type SearchQuery struct {
	Domain      string // empty means all domains
	Search      string
	Details     []DetailFilter
	Features    []string
	Sort        []SortKey
	MinPrice    float64
	MaxPrice    float64 // zero or negative means unbounded
	Skip        int64
	Limit       int64
	DetailOrder []primitive.ObjectID // display order for resolved detail facets
}

// PriceRange is the min/max derived numeric price over the entire filtered
// set, not just the returned page.
type PriceRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// SearchResult bundles the page of listings, the total match count and the
// price range, all computed in a single aggregation round trip.
type SearchResult struct {
	Listings   []models.ResolvedListing
	Total      int64
	PriceRange PriceRange
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	Replace(ctx context.Context, id primitive.ObjectID, listing *models.Listing) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ResolvedListing, error)
	FindByPage(ctx context.Context, page string, limit int64) ([]models.ResolvedListing, error)
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
}

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}
